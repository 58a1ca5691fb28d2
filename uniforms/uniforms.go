// Package uniforms projects mist parameters onto the shader's uniform set.
package uniforms

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/richinsley/gomist/params"
)

// Frame uniforms are driven by the render loop rather than by parameters.
const (
	Time       = "u_time"
	Resolution = "u_resolution"
	Mouse      = "u_mouse"
)

type Type int

const (
	Float Type = iota
	Vec2
	Vec3
)

// Binding ties a parameter to a uniform. Component selects x or y when the
// uniform is a vec2 assembled from two scalar parameters.
type Binding struct {
	Param     string
	Uniform   string
	Type      Type
	Component int
}

// Bindings maps every shader-facing parameter to its uniform. renderScale and
// maxDpr size the render target and have no uniform.
var Bindings = buildBindings()

var vec2Pairs = map[string][2]string{
	"u_flow":              {"flowX", "flowY"},
	"u_swirlFreq":         {"swirlFreqX", "swirlFreqY"},
	"u_accentSpeedA":      {"accentSpeedAX", "accentSpeedAY"},
	"u_accentSpeedB":      {"accentSpeedBX", "accentSpeedBY"},
	"u_postNoiseMaskFlow": {"postNoiseMaskFlowX", "postNoiseMaskFlowY"},
}

var sizingParams = map[string]bool{"renderScale": true, "maxDpr": true}

func buildBindings() []Binding {
	paired := make(map[string]Binding)
	for u, pair := range vec2Pairs {
		paired[pair[0]] = Binding{Param: pair[0], Uniform: u, Type: Vec2, Component: 0}
		paired[pair[1]] = Binding{Param: pair[1], Uniform: u, Type: Vec2, Component: 1}
	}

	var out []Binding
	for _, f := range params.Fields {
		if sizingParams[f.Name] {
			continue
		}
		if b, ok := paired[f.Name]; ok {
			out = append(out, b)
			continue
		}
		switch f.Kind {
		case params.KindColor:
			out = append(out, Binding{Param: f.Name, Uniform: "u_" + f.Name, Type: Vec3})
		default:
			out = append(out, Binding{Param: f.Name, Uniform: "u_" + f.Name, Type: Float})
		}
	}
	return out
}

// Set mirrors the values the renderer uploads each frame.
type Set struct {
	Floats map[string]float32
	Vec2s  map[string]mgl32.Vec2
	Vec3s  map[string]mgl32.Vec3
}

func NewSet() *Set {
	s := &Set{
		Floats: make(map[string]float32),
		Vec2s:  make(map[string]mgl32.Vec2),
		Vec3s:  make(map[string]mgl32.Vec3),
	}
	s.Floats[Time] = 0
	s.Vec2s[Resolution] = mgl32.Vec2{1, 1}
	s.Vec2s[Mouse] = mgl32.Vec2{0.5, 0.5}
	return s
}

// Sync rewrites every parameter-derived uniform from p. There is no partial
// mode; frame uniforms are left alone.
func (s *Set) Sync(p *params.Params) {
	for _, b := range Bindings {
		switch b.Type {
		case Vec3:
			hex, _ := p.Color(b.Param)
			s.Vec3s[b.Uniform] = HexToLinear(hex)
		case Vec2:
			v, _ := p.Float(b.Param)
			vec := s.Vec2s[b.Uniform]
			vec[b.Component] = float32(v)
			s.Vec2s[b.Uniform] = vec
		default:
			kind, _ := params.KindOf(b.Param)
			if kind == params.KindBool {
				on, _ := p.Bool(b.Param)
				s.Floats[b.Uniform] = boolToFloat(on)
				continue
			}
			v, _ := p.Float(b.Param)
			s.Floats[b.Uniform] = float32(v)
		}
	}
}

// SetFrame stores the per-frame uniforms.
func (s *Set) SetFrame(elapsed float64, resolution, mouse mgl32.Vec2) {
	s.Floats[Time] = float32(elapsed)
	s.Vec2s[Resolution] = resolution
	s.Vec2s[Mouse] = mouse
}

// Names returns every uniform name the set can hold, frame uniforms included.
func Names() []string {
	seen := map[string]bool{Time: true, Resolution: true, Mouse: true}
	out := []string{Time, Resolution, Mouse}
	for _, b := range Bindings {
		if !seen[b.Uniform] {
			seen[b.Uniform] = true
			out = append(out, b.Uniform)
		}
	}
	return out
}

// HexToLinear decodes an sRGB hex color into linear RGB. Unparseable input
// yields black.
func HexToLinear(hex string) mgl32.Vec3 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return mgl32.Vec3{}
	}
	r, g, b := c.LinearRgb()
	return mgl32.Vec3{float32(r), float32(g), float32(b)}
}

func boolToFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
