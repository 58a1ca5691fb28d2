package graphics

// Context defines the interface for an OpenGL context backing a window.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	// GetWindowSize returns the size in screen coordinates, which differs from
	// the framebuffer size on high density displays.
	GetWindowSize() (int, int)
	Time() float64
}
