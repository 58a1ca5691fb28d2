package params

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

type Kind int

const (
	KindFloat Kind = iota
	KindBool
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindColor:
		return "color"
	default:
		return "float"
	}
}

// Folder names group fields in the control panel.
const (
	FolderPerformance = "performance"
	FolderMotion      = "motion"
	FolderNoise       = "noise"
	FolderMouse       = "mouse"
	FolderAccent      = "accent layer"
	FolderPost        = "glow/vignette"
	FolderColors      = "colors"
)

// Field describes how a parameter is edited. Min, Max and Step only apply to
// KindFloat.
type Field struct {
	Name   string
	Label  string
	Folder string
	Kind   Kind
	Min    float64
	Max    float64
	Step   float64
}

func slider(folder, name string, min, max, step float64) Field {
	return Field{Name: name, Label: name, Folder: folder, Kind: KindFloat, Min: min, Max: max, Step: step}
}

func toggle(name, label string) Field {
	return Field{Name: name, Label: label, Folder: FolderPost, Kind: KindBool}
}

func color(name string) Field {
	return Field{Name: name, Label: name, Folder: FolderColors, Kind: KindColor}
}

// Fields lists every parameter in control panel order.
var Fields = []Field{
	{Name: "renderScale", Label: "render scale", Folder: FolderPerformance, Kind: KindFloat, Min: 0.4, Max: 1, Step: 0.01},
	{Name: "maxDpr", Label: "max dpr", Folder: FolderPerformance, Kind: KindFloat, Min: 0.75, Max: 2, Step: 0.05},

	slider(FolderMotion, "timeScale", 0.05, 0.5, 0.005),
	slider(FolderMotion, "flowX", 0, 0.5, 0.005),
	slider(FolderMotion, "flowY", 0, 0.5, 0.005),
	slider(FolderMotion, "swirlFreqX", 0, 1.2, 0.01),
	slider(FolderMotion, "swirlFreqY", 0, 1.2, 0.01),
	slider(FolderMotion, "swirlStrength", 0, 0.2, 0.002),

	slider(FolderNoise, "mistScaleA", 0.4, 2.5, 0.02),
	slider(FolderNoise, "mistScaleB", 0.4, 2.5, 0.02),
	slider(FolderNoise, "waterScale", 0.5, 5, 0.05),
	slider(FolderNoise, "waterStrength", 0, 0.2, 0.005),
	slider(FolderNoise, "detailScaleA", 1, 10, 0.1),
	slider(FolderNoise, "detailStrengthA", 0, 0.12, 0.002),
	slider(FolderNoise, "detailScaleB", 1, 12, 0.1),
	slider(FolderNoise, "detailStrengthB", 0, 0.12, 0.002),
	slider(FolderNoise, "mixBase", 0, 1, 0.01),
	slider(FolderNoise, "mixDetail", 0, 1, 0.01),
	slider(FolderNoise, "mistLow", 0, 0.6, 0.01),
	slider(FolderNoise, "mistHigh", 0.5, 1.2, 0.01),
	slider(FolderNoise, "mistPow", 0.4, 1.4, 0.01),

	slider(FolderMouse, "mouseFalloff", 0.5, 8, 0.1),
	slider(FolderMouse, "mouseStrength", 0, 0.5, 0.01),
	slider(FolderMouse, "mouseWaveFreq", 0, 20, 0.1),
	slider(FolderMouse, "mouseWaveFalloff", 0.5, 8, 0.1),
	slider(FolderMouse, "mouseWaveStrength", 0, 0.08, 0.002),

	slider(FolderAccent, "accentScaleA", 0.5, 4, 0.05),
	slider(FolderAccent, "accentScaleB", 0.5, 5, 0.05),
	slider(FolderAccent, "accentSpeedAX", 0, 1, 0.01),
	slider(FolderAccent, "accentSpeedAY", 0, 1, 0.01),
	slider(FolderAccent, "accentSpeedBX", 0, 1, 0.01),
	slider(FolderAccent, "accentSpeedBY", 0, 1, 0.01),
	slider(FolderAccent, "accentStrength", 0, 0.6, 0.01),
	slider(FolderAccent, "hueDriftStrength", 0, 0.2, 0.005),

	toggle("enableBloom", "bloom"),
	toggle("enableMouseGlow", "mouse glow"),
	toggle("enableVignette", "vignette"),
	toggle("enablePostNoise", "post noise"),
	slider(FolderPost, "bloomLow", 0, 1.2, 0.01),
	slider(FolderPost, "bloomHigh", 0.4, 1.6, 0.01),
	slider(FolderPost, "bloomStrength", 0, 0.6, 0.01),
	slider(FolderPost, "mouseGlowStrength", 0, 0.8, 0.01),
	slider(FolderPost, "vignetteOuter", 0.8, 2.2, 0.01),
	slider(FolderPost, "vignetteInner", 0, 0.8, 0.01),
	slider(FolderPost, "vignetteMin", 0.5, 1, 0.01),
	slider(FolderPost, "postNoiseAmount", 0, 0.12, 0.005),
	slider(FolderPost, "postNoiseScale", 0.8, 6.0, 0.05),
	slider(FolderPost, "postNoiseSpeed", 0, 0.6, 0.01),
	slider(FolderPost, "postNoiseMaskScale", 0.2, 4.0, 0.01),
	slider(FolderPost, "postNoiseMaskFlowX", 0, 1, 0.01),
	slider(FolderPost, "postNoiseMaskFlowY", 0, 1, 0.01),
	slider(FolderPost, "postNoiseMaskLow", 0, 0.9, 0.01),
	slider(FolderPost, "postNoiseMaskHigh", 0.1, 1, 0.01),

	color("colorDeep"),
	color("colorMauve"),
	color("colorPink"),
	color("colorPale"),
	color("colorOrchid"),
	color("colorPeriwinkle"),
	color("bloomTint"),
}

// Folders returns the distinct folder names of Fields in first-seen order.
func Folders() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range Fields {
		if !seen[f.Folder] {
			seen[f.Folder] = true
			out = append(out, f.Folder)
		}
	}
	return out
}

// Lookup finds the descriptor for name.
func Lookup(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// NormalizeHex parses "#rrggbb" or "#rgb" and returns lowercase "#rrggbb".
func NormalizeHex(s string) (string, bool) {
	c, err := colorful.Hex(s)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}
