// Package options resolves runtime settings from flags, MIST_* environment
// variables and an optional mist.yaml, in that order of precedence.
package options

import (
	"errors"
	"fmt"
	"strings"

	"github.com/richinsley/gomist/preset"
	"github.com/spf13/viper"
)

const EnvPrefix = "MIST"

// Keys shared by flags, environment and config file.
const (
	KeyWidth       = "width"
	KeyHeight      = "height"
	KeyDefaultsURL = "defaults-url"
	KeyStorageDir  = "storage-dir"
	KeyNoStorage   = "no-storage"
	KeyControls    = "controls"
	KeyDev         = "dev"
	KeyLogLevel    = "log-level"
	KeyFFmpeg      = "ffmpeg"
	KeyDuration    = "duration"
	KeyFPS         = "fps"
	KeyOutput      = "output"
	KeyCodec       = "codec"
	KeyConfig      = "config"
)

type MistOptions struct {
	Width       int
	Height      int
	DefaultsURL string
	StorageDir  string
	NoStorage   bool
	// Controls is true when the controls key is present at all, whatever
	// its value.
	Controls   bool
	Dev        bool
	LogLevel   string
	FFmpegPath string

	Duration float64
	FPS      int
	Output   string
	Codec    string
}

// ShowControls reports whether the terminal control panel should start.
func (o *MistOptions) ShowControls() bool {
	return o.Dev || o.Controls
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	v.SetDefault(KeyWidth, 1280)
	v.SetDefault(KeyHeight, 720)
	v.SetDefault(KeyDefaultsURL, preset.DefaultsFile)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyDuration, 10.0)
	v.SetDefault(KeyFPS, 30)
	v.SetDefault(KeyOutput, "mist.mp4")
	v.SetDefault(KeyCodec, "h264")
	// no default for controls: IsSet has to mean the key is present
	return v
}

// ReadConfig loads path, or mist.yaml from the working directory when path is
// empty. A missing default file is not an error.
func ReadConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mist")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load resolves v into options and validates them.
func Load(v *viper.Viper) (*MistOptions, error) {
	o := &MistOptions{
		Width:       v.GetInt(KeyWidth),
		Height:      v.GetInt(KeyHeight),
		DefaultsURL: v.GetString(KeyDefaultsURL),
		StorageDir:  v.GetString(KeyStorageDir),
		NoStorage:   v.GetBool(KeyNoStorage),
		Controls:    v.IsSet(KeyControls),
		Dev:         v.GetBool(KeyDev),
		LogLevel:    v.GetString(KeyLogLevel),
		FFmpegPath:  v.GetString(KeyFFmpeg),
		Duration:    v.GetFloat64(KeyDuration),
		FPS:         v.GetInt(KeyFPS),
		Output:      v.GetString(KeyOutput),
		Codec:       strings.ToLower(v.GetString(KeyCodec)),
	}

	if o.Width <= 0 || o.Height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", o.Width, o.Height)
	}
	if o.Codec != "h264" && o.Codec != "hevc" {
		return nil, fmt.Errorf("unsupported codec %q (want h264 or hevc)", o.Codec)
	}
	if o.StorageDir == "" {
		dir, err := preset.DefaultDir()
		if err != nil {
			return nil, err
		}
		o.StorageDir = dir
	}
	return o, nil
}

// ValidateRecord checks the settings only the record command uses.
func (o *MistOptions) ValidateRecord() error {
	if o.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", o.FPS)
	}
	if o.Duration <= 0 {
		return fmt.Errorf("invalid duration %v", o.Duration)
	}
	if o.Output == "" {
		return errors.New("no output file")
	}
	return nil
}
