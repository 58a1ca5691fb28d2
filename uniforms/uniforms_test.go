package uniforms

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gomist/params"
	"github.com/richinsley/gomist/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var glslType = map[Type]string{Float: "float", Vec2: "vec2", Vec3: "vec3"}

func TestBindingsMatchShader(t *testing.T) {
	declared := shader.DeclaredUniforms(shader.GetMistFragmentShader())

	perUniform := make(map[string][]Binding)
	for _, b := range Bindings {
		perUniform[b.Uniform] = append(perUniform[b.Uniform], b)
		typ, ok := declared[b.Uniform]
		require.True(t, ok, "%s is not declared by the shader", b.Uniform)
		assert.Equal(t, typ, glslType[b.Type], b.Uniform)
	}

	for name, typ := range declared {
		switch name {
		case Time, Resolution, Mouse:
			continue
		}
		bs := perUniform[name]
		switch typ {
		case "vec2":
			require.Len(t, bs, 2, name)
			assert.ElementsMatch(t, []int{0, 1}, []int{bs[0].Component, bs[1].Component}, name)
		default:
			assert.Len(t, bs, 1, "%s must have exactly one parameter", name)
		}
	}
	assert.ElementsMatch(t, keys(declared), Names())
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestSyncConversions(t *testing.T) {
	p := params.Defaults()
	p.EnableVignette = false
	p.ColorPale = "#ffffff"
	p.ColorDeep = "#000000"

	s := NewSet()
	s.Sync(&p)

	assert.Equal(t, float32(0.16), s.Floats["u_timeScale"])
	assert.Equal(t, mgl32.Vec2{0.18, 0.1}, s.Vec2s["u_flow"])
	assert.Equal(t, mgl32.Vec2{0.12, 0.08}, s.Vec2s["u_postNoiseMaskFlow"])
	assert.Equal(t, float32(1), s.Floats["u_enableBloom"])
	assert.Equal(t, float32(0), s.Floats["u_enableVignette"])
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s.Vec3s["u_colorPale"])
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, s.Vec3s["u_colorDeep"])
	_, hasScale := s.Floats["u_renderScale"]
	assert.False(t, hasScale)
}

func TestSyncIsIdempotent(t *testing.T) {
	p := params.Defaults()
	s := NewSet()
	s.Sync(&p)
	first := copySet(s)
	s.Sync(&p)
	assert.Equal(t, first, s)
}

func TestSyncRewritesEverything(t *testing.T) {
	p := params.Defaults()
	s := NewSet()
	s.Sync(&p)

	for k := range s.Floats {
		s.Floats[k] = -1
	}
	for k := range s.Vec2s {
		s.Vec2s[k] = mgl32.Vec2{-1, -1}
	}
	s.SetFrame(0, mgl32.Vec2{1, 1}, mgl32.Vec2{0.5, 0.5})
	s.Sync(&p)

	fresh := NewSet()
	fresh.Sync(&p)
	assert.Equal(t, fresh, s)
}

func TestSetFrame(t *testing.T) {
	s := NewSet()
	s.SetFrame(12.5, mgl32.Vec2{640, 360}, mgl32.Vec2{0.25, 0.75})
	assert.Equal(t, float32(12.5), s.Floats[Time])
	assert.Equal(t, mgl32.Vec2{640, 360}, s.Vec2s[Resolution])
	assert.Equal(t, mgl32.Vec2{0.25, 0.75}, s.Vec2s[Mouse])
}

func TestHexToLinear(t *testing.T) {
	v := HexToLinear("#808080")
	assert.InDelta(t, 0.2158, v[0], 1e-3)
	assert.Equal(t, v[0], v[1])
	assert.Equal(t, mgl32.Vec3{}, HexToLinear("bogus"))
}

func copySet(s *Set) *Set {
	c := &Set{
		Floats: make(map[string]float32, len(s.Floats)),
		Vec2s:  make(map[string]mgl32.Vec2, len(s.Vec2s)),
		Vec3s:  make(map[string]mgl32.Vec3, len(s.Vec3s)),
	}
	for k, v := range s.Floats {
		c.Floats[k] = v
	}
	for k, v := range s.Vec2s {
		c.Vec2s[k] = v
	}
	for k, v := range s.Vec3s {
		c.Vec3s[k] = v
	}
	return c
}
