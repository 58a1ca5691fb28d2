// Package randomize redraws groups of mist parameters within hand-tuned
// ranges. Each group only touches its own fields; callers resync uniforms.
package randomize

import (
	"math"
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/richinsley/gomist/params"
)

// Source supplies uniform samples in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Group names a randomization action.
type Group string

const (
	GroupAll         Group = "all"
	GroupPerformance Group = "performance"
	GroupMotion      Group = "motion"
	GroupNoise       Group = "noise"
	GroupMouse       Group = "mouse"
	GroupAccent      Group = "accent layer"
	GroupPost        Group = "glow/vignette"
	GroupColors      Group = "colors"
)

// Groups lists every group in panel order.
var Groups = []Group{
	GroupAll, GroupPerformance, GroupMotion, GroupNoise,
	GroupMouse, GroupAccent, GroupPost, GroupColors,
}

type Randomizer struct {
	src Source
}

// New returns a Randomizer drawing from src, or from the unseeded global
// generator when src is nil.
func New(src Source) *Randomizer {
	if src == nil {
		src = globalSource{}
	}
	return &Randomizer{src: src}
}

func (r *Randomizer) float(min, max float64) float64 {
	return min + r.src.Float64()*(max-min)
}

// step samples [min, max] and rounds to the nearest multiple of step.
func (r *Randomizer) step(rg Range) float64 {
	return math.Round(r.float(rg.Min, rg.Max)/rg.Step) * rg.Step
}

// chance returns true with probability p.
func (r *Randomizer) chance(p float64) bool {
	return r.src.Float64() < p
}

func (r *Randomizer) hslHex(b HSLBounds) string {
	h := r.float(b.H[0], b.H[1])
	s := r.float(b.S[0], b.S[1])
	l := r.float(b.L[0], b.L[1])
	return colorful.Hsl(h*360, s, l).Clamped().Hex()
}

// Apply runs the named group against p. Unknown groups do nothing and return
// false.
func (r *Randomizer) Apply(g Group, p *params.Params) bool {
	switch g {
	case GroupAll:
		r.All(p)
	case GroupPerformance:
		r.Performance(p)
	case GroupMotion:
		r.Motion(p)
	case GroupNoise:
		r.Noise(p)
	case GroupMouse:
		r.Mouse(p)
	case GroupAccent:
		r.AccentLayer(p)
	case GroupPost:
		r.Post(p)
	case GroupColors:
		r.Colors(p)
	default:
		return false
	}
	return true
}

func (r *Randomizer) All(p *params.Params) {
	r.Performance(p)
	r.Motion(p)
	r.Noise(p)
	r.Mouse(p)
	r.AccentLayer(p)
	r.Post(p)
	r.Colors(p)
}

func (r *Randomizer) Performance(p *params.Params) {
	p.RenderScale = r.step(Ranges["renderScale"])
	p.MaxDpr = r.step(Ranges["maxDpr"])
}

func (r *Randomizer) Motion(p *params.Params) {
	p.TimeScale = r.step(Ranges["timeScale"])
	p.FlowX = r.step(Ranges["flowX"])
	p.FlowY = r.step(Ranges["flowY"])
	p.SwirlFreqX = r.step(Ranges["swirlFreqX"])
	p.SwirlFreqY = r.step(Ranges["swirlFreqY"])
	p.SwirlStrength = r.step(Ranges["swirlStrength"])
}

func (r *Randomizer) Noise(p *params.Params) {
	p.MistScaleA = r.step(Ranges["mistScaleA"])
	p.MistScaleB = r.step(Ranges["mistScaleB"])
	p.WaterScale = r.step(Ranges["waterScale"])
	p.WaterStrength = r.step(Ranges["waterStrength"])
	p.DetailScaleA = r.step(Ranges["detailScaleA"])
	p.DetailStrengthA = r.step(Ranges["detailStrengthA"])
	p.DetailScaleB = r.step(Ranges["detailScaleB"])
	p.DetailStrengthB = r.step(Ranges["detailStrengthB"])
	p.MixBase = r.step(Ranges["mixBase"])
	p.MixDetail = r.step(Ranges["mixDetail"])
	p.MistLow = r.step(Ranges["mistLow"])
	p.MistHigh = r.step(Pairs["mistHigh"].Range(p.MistLow))
	p.MistPow = r.step(Ranges["mistPow"])
}

func (r *Randomizer) Mouse(p *params.Params) {
	p.MouseFalloff = r.step(Ranges["mouseFalloff"])
	p.MouseStrength = r.step(Ranges["mouseStrength"])
	p.MouseWaveFreq = r.step(Ranges["mouseWaveFreq"])
	p.MouseWaveFalloff = r.step(Ranges["mouseWaveFalloff"])
	p.MouseWaveStrength = r.step(Ranges["mouseWaveStrength"])
}

func (r *Randomizer) AccentLayer(p *params.Params) {
	p.AccentScaleA = r.step(Ranges["accentScaleA"])
	p.AccentScaleB = r.step(Ranges["accentScaleB"])
	p.AccentSpeedAX = r.step(Ranges["accentSpeedAX"])
	p.AccentSpeedAY = r.step(Ranges["accentSpeedAY"])
	p.AccentSpeedBX = r.step(Ranges["accentSpeedBX"])
	p.AccentSpeedBY = r.step(Ranges["accentSpeedBY"])
	p.AccentStrength = r.step(Ranges["accentStrength"])
	p.HueDriftStrength = r.step(Ranges["hueDriftStrength"])
}

func (r *Randomizer) Post(p *params.Params) {
	p.EnableBloom = r.chance(Toggles["enableBloom"])
	p.EnableMouseGlow = r.chance(Toggles["enableMouseGlow"])
	p.EnableVignette = r.chance(Toggles["enableVignette"])
	p.EnablePostNoise = r.chance(Toggles["enablePostNoise"])
	p.BloomLow = r.step(Ranges["bloomLow"])
	p.BloomHigh = r.step(Pairs["bloomHigh"].Range(p.BloomLow))
	p.BloomStrength = r.step(Ranges["bloomStrength"])
	p.MouseGlowStrength = r.step(Ranges["mouseGlowStrength"])
	p.VignetteOuter = r.step(Ranges["vignetteOuter"])
	p.VignetteInner = r.step(Ranges["vignetteInner"])
	p.VignetteMin = r.step(Ranges["vignetteMin"])
	p.PostNoiseAmount = r.step(Ranges["postNoiseAmount"])
	p.PostNoiseScale = r.step(Ranges["postNoiseScale"])
	p.PostNoiseSpeed = r.step(Ranges["postNoiseSpeed"])
	p.PostNoiseMaskScale = r.step(Ranges["postNoiseMaskScale"])
	p.PostNoiseMaskFlowX = r.step(Ranges["postNoiseMaskFlowX"])
	p.PostNoiseMaskFlowY = r.step(Ranges["postNoiseMaskFlowY"])
	p.PostNoiseMaskLow = r.step(Ranges["postNoiseMaskLow"])
	p.PostNoiseMaskHigh = r.step(Pairs["postNoiseMaskHigh"].Range(p.PostNoiseMaskLow))
}

func (r *Randomizer) Colors(p *params.Params) {
	p.ColorDeep = r.hslHex(Palette["colorDeep"])
	p.ColorMauve = r.hslHex(Palette["colorMauve"])
	p.ColorPink = r.hslHex(Palette["colorPink"])
	p.ColorPale = r.hslHex(Palette["colorPale"])
	p.ColorPeriwinkle = r.hslHex(Palette["colorPeriwinkle"])
	p.ColorOrchid = r.hslHex(Palette["colorOrchid"])
	p.BloomTint = r.hslHex(Palette["bloomTint"])
}
