package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	once       sync.Once
	translator *gst.ShaderTranslator
	initErr    error
)

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// Fragment is a fragment shader ready for a desktop GL 4.1 context.
type Fragment struct {
	Code string
	// Uniforms maps each declared uniform to the name it has in Code.
	Uniforms map[string]string
}

// TranslateFragment converts a WebGL2 fragment shader to GLSL 4.10.
func TranslateFragment(source string) (*Fragment, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	res, err := t.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}
	f := &Fragment{Code: res.Code, Uniforms: make(map[string]string, len(res.Variables))}
	for name, v := range res.Variables {
		f.Uniforms[name] = v.MappedName
	}
	return f, nil
}
