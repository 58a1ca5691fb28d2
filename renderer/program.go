package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gomist/shader"
	xlate "github.com/richinsley/gomist/translator"
	"github.com/richinsley/gomist/uniforms"
)

// mistPass is the compiled mist shader with its uniform locations cached by
// source name.
type mistPass struct {
	program   uint32
	locations map[string]int32
}

func newMistPass() (*mistPass, error) {
	fs, err := xlate.TranslateFragment(shader.GetMistFragmentShader())
	if err != nil {
		return nil, err
	}
	program, err := newProgram(shader.GenerateVertexShader(), fs.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create mist program: %w", err)
	}

	p := &mistPass{program: program, locations: make(map[string]int32)}
	gl.UseProgram(program)
	for _, name := range uniforms.Names() {
		loc := int32(-1)
		if mapped, ok := fs.Uniforms[name]; ok {
			loc = gl.GetUniformLocation(program, gl.Str(mapped+"\x00"))
		}
		p.locations[name] = loc
	}
	return p, nil
}

// missing lists uniforms the linked program does not expose.
func (p *mistPass) missing() []string {
	var out []string
	for name, loc := range p.locations {
		if loc < 0 {
			out = append(out, name)
		}
	}
	return out
}

// upload writes every value in set. The program must be in use.
func (p *mistPass) upload(set *uniforms.Set) {
	for name, v := range set.Floats {
		if loc := p.locations[name]; loc >= 0 {
			gl.Uniform1f(loc, v)
		}
	}
	for name, v := range set.Vec2s {
		if loc := p.locations[name]; loc >= 0 {
			gl.Uniform2f(loc, v[0], v[1])
		}
	}
	for name, v := range set.Vec3s {
		if loc := p.locations[name]; loc >= 0 {
			gl.Uniform3f(loc, v[0], v[1], v[2])
		}
	}
}

func (p *mistPass) destroy() {
	gl.DeleteProgram(p.program)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
