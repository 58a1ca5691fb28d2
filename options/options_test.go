package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := New()
	v.Set(KeyStorageDir, t.TempDir())
	o, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 1280, o.Width)
	assert.Equal(t, 720, o.Height)
	assert.Equal(t, "public/mist-defaults.json", o.DefaultsURL)
	assert.False(t, o.Controls)
	assert.False(t, o.ShowControls())
	assert.Equal(t, 30, o.FPS)
	assert.Equal(t, "h264", o.Codec)
	assert.NoError(t, o.ValidateRecord())
}

func TestControlsPresenceIgnoresValue(t *testing.T) {
	t.Setenv("MIST_CONTROLS", "false")
	v := New()
	v.Set(KeyStorageDir, t.TempDir())
	o, err := Load(v)
	require.NoError(t, err)
	assert.True(t, o.Controls)
	assert.True(t, o.ShowControls())
}

func TestDevShowsControls(t *testing.T) {
	v := New()
	v.Set(KeyStorageDir, t.TempDir())
	v.Set(KeyDev, true)
	o, err := Load(v)
	require.NoError(t, err)
	assert.True(t, o.ShowControls())
}

func TestEnvironment(t *testing.T) {
	t.Setenv("MIST_DEFAULTS_URL", "https://example.com/mist-defaults.json")
	t.Setenv("MIST_WIDTH", "640")
	v := New()
	v.Set(KeyStorageDir, t.TempDir())
	o, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/mist-defaults.json", o.DefaultsURL)
	assert.Equal(t, 640, o.Width)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("height: 400\ncodec: HEVC\n"), 0644))

	v := New()
	require.NoError(t, ReadConfig(v, path))
	v.Set(KeyStorageDir, t.TempDir())
	o, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 400, o.Height)
	assert.Equal(t, "hevc", o.Codec)
}

func TestMissingExplicitConfig(t *testing.T) {
	v := New()
	assert.Error(t, ReadConfig(v, filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestValidation(t *testing.T) {
	v := New()
	v.Set(KeyStorageDir, t.TempDir())
	v.Set(KeyCodec, "vp9")
	_, err := Load(v)
	assert.Error(t, err)

	v = New()
	v.Set(KeyStorageDir, t.TempDir())
	v.Set(KeyWidth, 0)
	_, err = Load(v)
	assert.Error(t, err)

	o := &MistOptions{FPS: 0, Duration: 1, Output: "x.mp4"}
	assert.Error(t, o.ValidateRecord())
}
