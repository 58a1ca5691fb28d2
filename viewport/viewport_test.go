package viewport

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name        string
		w, h        int
		dpr         float64
		renderScale float64
		maxDpr      float64
		wantW       int
		wantH       int
	}{
		{"defaults on a standard display", 1280, 720, 1, 0.62, 1, 793, 446},
		{"retina capped by maxDpr", 1280, 720, 2, 0.5, 1.5, 960, 540},
		{"retina under the cap", 1280, 720, 2, 0.5, 2, 1280, 720},
		{"low dpr below the cap", 1000, 500, 0.75, 1, 2, 750, 375},
		{"degenerate window", 0, 0, 1, 0.62, 1, 1, 1},
		{"zero scale falls back", 100, 100, 1, 0, 1, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := TargetSize(tt.w, tt.h, tt.dpr, tt.renderScale, tt.maxDpr)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestPixelRatio(t *testing.T) {
	assert.Equal(t, 2.0, PixelRatio(2560, 1280))
	assert.Equal(t, 1.0, PixelRatio(0, 0))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, mgl32.Vec2{0.25, 0.75}, Normalize(200, 100, 800, 400))
	assert.Equal(t, mgl32.Vec2{0.5, 0.5}, Normalize(1, 1, 0, 0))
}
