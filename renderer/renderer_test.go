package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

type fakeWindow struct {
	winW, winH int
	fbW, fbH   int
}

func (w *fakeWindow) MakeCurrent()                   {}
func (w *fakeWindow) Shutdown()                      {}
func (w *fakeWindow) ShouldClose() bool              { return false }
func (w *fakeWindow) EndFrame()                      {}
func (w *fakeWindow) GetFramebufferSize() (int, int) { return w.fbW, w.fbH }
func (w *fakeWindow) GetWindowSize() (int, int)      { return w.winW, w.winH }
func (w *fakeWindow) Time() float64                  { return 0 }

func TestResolutionIsWindowSize(t *testing.T) {
	// a 2x display at render scale 0.62 still reports the window size
	win := &fakeWindow{winW: 1280, winH: 720, fbW: 2560, fbH: 1440}
	assert.Equal(t, mgl32.Vec2{1280, 720}, windowResolution(win))

	assert.Equal(t, mgl32.Vec2{1, 1}, windowResolution(&fakeWindow{}))
}

func TestResolutionWhileRecording(t *testing.T) {
	r := &Renderer{fixedWidth: 1920, fixedHeight: 1080}
	assert.Equal(t, mgl32.Vec2{1920, 1080}, r.resolution())
}
