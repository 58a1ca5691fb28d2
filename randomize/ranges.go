package randomize

import "math"

// Range is a sampling interval quantized to Step.
type Range struct {
	Min, Max, Step float64
}

// Pair draws the upper end of a threshold pair. Its lower bound is derived from
// the already chosen low value so that high >= low + Gap.
type Pair struct {
	Low   string
	Gap   float64
	Floor float64
	Max   float64
	Step  float64
}

// Range returns the sampling interval for the high value given low.
func (p Pair) Range(low float64) Range {
	return Range{Min: math.Max(low+p.Gap, p.Floor), Max: p.Max, Step: p.Step}
}

// HSLBounds bounds hue (as a fraction of a turn), saturation and lightness.
type HSLBounds struct {
	H, S, L [2]float64
}

var Ranges = map[string]Range{
	"renderScale": {0.45, 0.95, 0.01},
	"maxDpr":      {0.85, 1.5, 0.05},

	"timeScale":     {0.08, 0.36, 0.005},
	"flowX":         {0.04, 0.32, 0.005},
	"flowY":         {0.03, 0.26, 0.005},
	"swirlFreqX":    {0.15, 0.8, 0.01},
	"swirlFreqY":    {0.12, 0.7, 0.01},
	"swirlStrength": {0.03, 0.13, 0.002},

	"mistScaleA":      {0.8, 2.2, 0.02},
	"mistScaleB":      {0.7, 2.0, 0.02},
	"waterScale":      {1.0, 4.4, 0.05},
	"waterStrength":   {0.01, 0.16, 0.005},
	"detailScaleA":    {2.2, 8.8, 0.1},
	"detailStrengthA": {0.01, 0.09, 0.002},
	"detailScaleB":    {3.5, 11.2, 0.1},
	"detailStrengthB": {0.005, 0.06, 0.001},
	"mixBase":         {0.3, 0.72, 0.01},
	"mixDetail":       {0.2, 0.58, 0.01},
	"mistLow":         {0.14, 0.42, 0.01},
	"mistPow":         {0.65, 1.15, 0.01},

	"mouseFalloff":      {1.2, 5.2, 0.1},
	"mouseStrength":     {0.04, 0.34, 0.01},
	"mouseWaveFreq":     {3.5, 14.0, 0.1},
	"mouseWaveFalloff":  {1.1, 4.6, 0.1},
	"mouseWaveStrength": {0.0, 0.055, 0.001},

	"accentScaleA":     {0.8, 3.1, 0.05},
	"accentScaleB":     {1.1, 4.2, 0.05},
	"accentSpeedAX":    {0.05, 0.9, 0.01},
	"accentSpeedAY":    {0.03, 0.8, 0.01},
	"accentSpeedBX":    {0.03, 0.8, 0.01},
	"accentSpeedBY":    {0.03, 0.9, 0.01},
	"accentStrength":   {0.06, 0.4, 0.01},
	"hueDriftStrength": {0.0, 0.12, 0.005},

	"bloomLow":           {0.38, 0.92, 0.01},
	"bloomStrength":      {0.02, 0.42, 0.01},
	"mouseGlowStrength":  {0.04, 0.52, 0.01},
	"vignetteOuter":      {1.0, 1.8, 0.01},
	"vignetteInner":      {0.06, 0.42, 0.01},
	"vignetteMin":        {0.68, 0.96, 0.01},
	"postNoiseAmount":    {0.005, 0.08, 0.005},
	"postNoiseScale":     {1.2, 5.0, 0.05},
	"postNoiseSpeed":     {0.0, 0.4, 0.01},
	"postNoiseMaskScale": {0.6, 2.5, 0.01},
	"postNoiseMaskFlowX": {0.01, 0.35, 0.01},
	"postNoiseMaskFlowY": {0.01, 0.35, 0.01},
	"postNoiseMaskLow":   {0.16, 0.52, 0.01},
}

var Pairs = map[string]Pair{
	"mistHigh":          {Low: "mistLow", Gap: 0.22, Floor: 0.52, Max: 1.1, Step: 0.01},
	"bloomHigh":         {Low: "bloomLow", Gap: 0.25, Floor: 0.72, Max: 1.45, Step: 0.01},
	"postNoiseMaskHigh": {Low: "postNoiseMaskLow", Gap: 0.12, Floor: 0.5, Max: 0.96, Step: 0.01},
}

// Toggles holds the probability of each switch coming up enabled.
var Toggles = map[string]float64{
	"enableBloom":     0.8,
	"enableMouseGlow": 0.8,
	"enableVignette":  0.85,
	"enablePostNoise": 0.9,
}

var Palette = map[string]HSLBounds{
	"colorDeep":       {H: [2]float64{0.67, 0.78}, S: [2]float64{0.2, 0.4}, L: [2]float64{0.2, 0.36}},
	"colorMauve":      {H: [2]float64{0.69, 0.82}, S: [2]float64{0.2, 0.45}, L: [2]float64{0.36, 0.54}},
	"colorPink":       {H: [2]float64{0.8, 0.95}, S: [2]float64{0.2, 0.45}, L: [2]float64{0.58, 0.72}},
	"colorPale":       {H: [2]float64{0.72, 0.92}, S: [2]float64{0.14, 0.3}, L: [2]float64{0.78, 0.92}},
	"colorPeriwinkle": {H: [2]float64{0.58, 0.72}, S: [2]float64{0.2, 0.45}, L: [2]float64{0.54, 0.72}},
	"colorOrchid":     {H: [2]float64{0.74, 0.9}, S: [2]float64{0.2, 0.45}, L: [2]float64{0.5, 0.68}},
	"bloomTint":       {H: [2]float64{0.66, 0.9}, S: [2]float64{0.16, 0.4}, L: [2]float64{0.06, 0.2}},
}
