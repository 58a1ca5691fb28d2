package viewport

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PixelRatio is the device pixel ratio of a window whose framebuffer is
// fbWidth pixels wide for winWidth screen coordinates.
func PixelRatio(fbWidth, winWidth int) float64 {
	if winWidth <= 0 || fbWidth <= 0 {
		return 1
	}
	return float64(fbWidth) / float64(winWidth)
}

// TargetSize is the resolution the mist is actually rendered at: the window
// size scaled by renderScale and by the device pixel ratio capped at maxDpr.
// The result is at least 1x1.
func TargetSize(winWidth, winHeight int, devicePixelRatio, renderScale, maxDpr float64) (int, int) {
	ratio := math.Min(devicePixelRatio, maxDpr)
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	if renderScale <= 0 || math.IsNaN(renderScale) {
		renderScale = 1
	}
	w := int(math.Floor(float64(winWidth) * renderScale * ratio))
	h := int(math.Floor(float64(winHeight) * renderScale * ratio))
	return max(w, 1), max(h, 1)
}

// Normalize converts a cursor position in window coordinates (origin top left)
// to the shader's normalized space (origin bottom left).
func Normalize(x, y float64, winWidth, winHeight int) mgl32.Vec2 {
	if winWidth <= 0 || winHeight <= 0 {
		return mgl32.Vec2{0.5, 0.5}
	}
	return mgl32.Vec2{
		float32(x / float64(winWidth)),
		float32(1 - y/float64(winHeight)),
	}
}
