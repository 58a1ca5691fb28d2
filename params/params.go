package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrUnknownParam = errors.New("unknown parameter")
	ErrKindMismatch = errors.New("parameter kind mismatch")
)

// Params is the full set of tunable knobs for the mist shader. The JSON names
// are the preset keys, so the field order here is also the export order.
type Params struct {
	// Performance
	RenderScale float64 `json:"renderScale"`
	MaxDpr      float64 `json:"maxDpr"`

	// Motion
	TimeScale     float64 `json:"timeScale"`
	FlowX         float64 `json:"flowX"`
	FlowY         float64 `json:"flowY"`
	SwirlFreqX    float64 `json:"swirlFreqX"`
	SwirlFreqY    float64 `json:"swirlFreqY"`
	SwirlStrength float64 `json:"swirlStrength"`

	// Noise
	MistScaleA      float64 `json:"mistScaleA"`
	MistScaleB      float64 `json:"mistScaleB"`
	WaterScale      float64 `json:"waterScale"`
	WaterStrength   float64 `json:"waterStrength"`
	DetailScaleA    float64 `json:"detailScaleA"`
	DetailStrengthA float64 `json:"detailStrengthA"`
	DetailScaleB    float64 `json:"detailScaleB"`
	DetailStrengthB float64 `json:"detailStrengthB"`
	MixBase         float64 `json:"mixBase"`
	MixDetail       float64 `json:"mixDetail"`
	MistLow         float64 `json:"mistLow"`
	MistHigh        float64 `json:"mistHigh"`
	MistPow         float64 `json:"mistPow"`

	// Mouse
	MouseFalloff      float64 `json:"mouseFalloff"`
	MouseStrength     float64 `json:"mouseStrength"`
	MouseWaveFreq     float64 `json:"mouseWaveFreq"`
	MouseWaveFalloff  float64 `json:"mouseWaveFalloff"`
	MouseWaveStrength float64 `json:"mouseWaveStrength"`

	// Accent layer
	AccentScaleA     float64 `json:"accentScaleA"`
	AccentScaleB     float64 `json:"accentScaleB"`
	AccentSpeedAX    float64 `json:"accentSpeedAX"`
	AccentSpeedAY    float64 `json:"accentSpeedAY"`
	AccentSpeedBX    float64 `json:"accentSpeedBX"`
	AccentSpeedBY    float64 `json:"accentSpeedBY"`
	AccentStrength   float64 `json:"accentStrength"`
	HueDriftStrength float64 `json:"hueDriftStrength"`

	// Glow + vignette
	EnableBloom        bool    `json:"enableBloom"`
	EnableMouseGlow    bool    `json:"enableMouseGlow"`
	EnableVignette     bool    `json:"enableVignette"`
	EnablePostNoise    bool    `json:"enablePostNoise"`
	BloomLow           float64 `json:"bloomLow"`
	BloomHigh          float64 `json:"bloomHigh"`
	BloomStrength      float64 `json:"bloomStrength"`
	MouseGlowStrength  float64 `json:"mouseGlowStrength"`
	VignetteOuter      float64 `json:"vignetteOuter"`
	VignetteInner      float64 `json:"vignetteInner"`
	VignetteMin        float64 `json:"vignetteMin"`
	PostNoiseAmount    float64 `json:"postNoiseAmount"`
	PostNoiseScale     float64 `json:"postNoiseScale"`
	PostNoiseSpeed     float64 `json:"postNoiseSpeed"`
	PostNoiseMaskScale float64 `json:"postNoiseMaskScale"`
	PostNoiseMaskFlowX float64 `json:"postNoiseMaskFlowX"`
	PostNoiseMaskFlowY float64 `json:"postNoiseMaskFlowY"`
	PostNoiseMaskLow   float64 `json:"postNoiseMaskLow"`
	PostNoiseMaskHigh  float64 `json:"postNoiseMaskHigh"`

	// Colors
	ColorDeep       string `json:"colorDeep"`
	ColorMauve      string `json:"colorMauve"`
	ColorPink       string `json:"colorPink"`
	ColorPale       string `json:"colorPale"`
	ColorPeriwinkle string `json:"colorPeriwinkle"`
	ColorOrchid     string `json:"colorOrchid"`
	BloomTint       string `json:"bloomTint"`
}

// Defaults returns the built-in look, used until remote defaults arrive.
func Defaults() Params {
	return Params{
		RenderScale: 0.62,
		MaxDpr:      1.0,

		TimeScale:     0.16,
		FlowX:         0.18,
		FlowY:         0.1,
		SwirlFreqX:    0.38,
		SwirlFreqY:    0.26,
		SwirlStrength: 0.08,

		MistScaleA:      1.28,
		MistScaleB:      1.08,
		WaterScale:      2.6,
		WaterStrength:   0.08,
		DetailScaleA:    5.4,
		DetailStrengthA: 0.045,
		DetailScaleB:    7.8,
		DetailStrengthB: 0.025,
		MixBase:         0.46,
		MixDetail:       0.36,
		MistLow:         0.24,
		MistHigh:        0.88,
		MistPow:         0.86,

		MouseFalloff:      2.6,
		MouseStrength:     0.17,
		MouseWaveFreq:     8.2,
		MouseWaveFalloff:  2.2,
		MouseWaveStrength: 0.03,

		AccentScaleA:     1.35,
		AccentScaleB:     2.15,
		AccentSpeedAX:    0.42,
		AccentSpeedAY:    0.15,
		AccentSpeedBX:    0.18,
		AccentSpeedBY:    0.36,
		AccentStrength:   0.22,
		HueDriftStrength: 0.04,

		EnableBloom:        true,
		EnableMouseGlow:    true,
		EnableVignette:     true,
		EnablePostNoise:    true,
		BloomLow:           0.62,
		BloomHigh:          1.18,
		BloomStrength:      0.2,
		MouseGlowStrength:  0.28,
		VignetteOuter:      1.35,
		VignetteInner:      0.2,
		VignetteMin:        0.86,
		PostNoiseAmount:    0.02,
		PostNoiseScale:     2.4,
		PostNoiseSpeed:     0.12,
		PostNoiseMaskScale: 1.15,
		PostNoiseMaskFlowX: 0.12,
		PostNoiseMaskFlowY: 0.08,
		PostNoiseMaskLow:   0.32,
		PostNoiseMaskHigh:  0.78,

		ColorDeep:       "#574a75",
		ColorMauve:      "#8c78a8",
		ColorPink:       "#bd9ec2",
		ColorPale:       "#e0d4eb",
		ColorPeriwinkle: "#8a94cc",
		ColorOrchid:     "#a885bd",
		BloomTint:       "#1a1221",
	}
}

// fieldIndex maps preset keys to struct field indices.
var fieldIndex = func() map[string]int {
	t := reflect.TypeOf(Params{})
	idx := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		idx[name] = i
	}
	return idx
}()

// Names returns every preset key in declaration order.
func Names() []string {
	t := reflect.TypeOf(Params{})
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		names = append(names, name)
	}
	return names
}

// KindOf reports the value kind stored under name.
func KindOf(name string) (Kind, bool) {
	i, ok := fieldIndex[name]
	if !ok {
		return 0, false
	}
	switch reflect.TypeOf(Params{}).Field(i).Type.Kind() {
	case reflect.Bool:
		return KindBool, true
	case reflect.String:
		return KindColor, true
	default:
		return KindFloat, true
	}
}

func (p *Params) field(name string, want Kind) (reflect.Value, error) {
	kind, ok := KindOf(name)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	if kind != want {
		return reflect.Value{}, fmt.Errorf("%w: %q is a %s, not a %s", ErrKindMismatch, name, kind, want)
	}
	return reflect.ValueOf(p).Elem().Field(fieldIndex[name]), nil
}

func (p *Params) Float(name string) (float64, error) {
	v, err := p.field(name, KindFloat)
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}

func (p *Params) SetFloat(name string, value float64) error {
	v, err := p.field(name, KindFloat)
	if err != nil {
		return err
	}
	v.SetFloat(value)
	return nil
}

func (p *Params) Bool(name string) (bool, error) {
	v, err := p.field(name, KindBool)
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

func (p *Params) SetBool(name string, value bool) error {
	v, err := p.field(name, KindBool)
	if err != nil {
		return err
	}
	v.SetBool(value)
	return nil
}

func (p *Params) Color(name string) (string, error) {
	v, err := p.field(name, KindColor)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// SetColor stores a hex color. The value is normalized to lowercase #rrggbb.
func (p *Params) SetColor(name string, value string) error {
	v, err := p.field(name, KindColor)
	if err != nil {
		return err
	}
	hex, ok := NormalizeHex(value)
	if !ok {
		return fmt.Errorf("invalid color %q for %q", value, name)
	}
	v.SetString(hex)
	return nil
}

// Value returns the current value of name as float64, bool or string.
func (p *Params) Value(name string) (any, error) {
	kind, ok := KindOf(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	switch kind {
	case KindBool:
		return p.Bool(name)
	case KindColor:
		return p.Color(name)
	default:
		return p.Float(name)
	}
}

// Values snapshots every parameter keyed by name.
func (p *Params) Values() map[string]any {
	out := make(map[string]any, len(fieldIndex))
	for name := range fieldIndex {
		v, _ := p.Value(name)
		out[name] = v
	}
	return out
}

// Set assigns value to name, accepting any numeric type for floats.
func (p *Params) Set(name string, value any) error {
	kind, ok := KindOf(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	switch kind {
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %q wants a bool, got %T", ErrKindMismatch, name, value)
		}
		return p.SetBool(name, b)
	case KindColor:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %q wants a color string, got %T", ErrKindMismatch, name, value)
		}
		return p.SetColor(name, s)
	default:
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("%w: %q wants a number, got %T", ErrKindMismatch, name, value)
		}
		return p.SetFloat(name, f)
	}
}

// ApplyKnown merges recognized keys from an arbitrary decoded object into p.
// Anything that is not an object is ignored, as is any key whose value has the
// wrong type. Ranges are not checked. It returns the number of keys applied.
func (p *Params) ApplyKnown(source any) int {
	obj, ok := source.(map[string]any)
	if !ok {
		return 0
	}
	applied := 0
	for name := range fieldIndex {
		value, present := obj[name]
		if !present {
			continue
		}
		if err := p.Set(name, value); err != nil {
			continue
		}
		applied++
	}
	return applied
}

// ApplyKnownJSON decodes data and merges it with ApplyKnown. On a decode error
// p is left untouched.
func (p *Params) ApplyKnownJSON(data []byte) (int, error) {
	var source any
	if err := json.Unmarshal(data, &source); err != nil {
		return 0, fmt.Errorf("failed to decode preset: %w", err)
	}
	return p.ApplyKnown(source), nil
}

// MarshalPreset renders the full set as indented JSON.
func (p *Params) MarshalPreset() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
