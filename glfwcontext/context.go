package glfwcontext

import (
	"fmt"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gomist/graphics"
)

var _ graphics.Context = (*Context)(nil)

type Config struct {
	Width   int
	Height  int
	Title   string
	Visible bool
}

// Context wraps a GLFW window and routes its input callbacks.
type Context struct {
	window *glfw.Window
	keyCallbacks map[glfw.Key]func()
	onCursor     func(x, y float64)
	onResize     func(width, height int)
}

// New creates a window with a GL 4.1 core context.
func New(cfg Config) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if cfg.Visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	title := cfg.Title
	if title == "" {
		title = "mist"
	}
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}
	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetCursorPosCallback(c.glfwCursorCallback)
	win.SetSizeCallback(c.glfwSizeCallback)

	return c, nil
}

// RegisterKeyCallback runs f on the render thread whenever key is pressed in
// the window. A later registration for the same key replaces the earlier one.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

// OnCursor registers f for cursor movement, in window coordinates with the
// origin at the top left.
func (c *Context) OnCursor(f func(x, y float64)) {
	c.onCursor = f
}

// OnResize registers f for window size changes, in screen coordinates.
func (c *Context) OnResize(f func(width, height int)) {
	c.onResize = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	c.dispatchKey(key, action)
}

// dispatchKey runs the callback registered for key on press. Repeats and
// releases are ignored.
func (c *Context) dispatchKey(key glfw.Key, action glfw.Action) bool {
	if action != glfw.Press {
		return false
	}
	callback, ok := c.keyCallbacks[key]
	if ok {
		callback()
	}
	return ok
}

func (c *Context) glfwCursorCallback(w *glfw.Window, x, y float64) {
	if c.onCursor != nil {
		c.onCursor(x, y)
	}
}

func (c *Context) glfwSizeCallback(w *glfw.Window, width, height int) {
	if c.onResize != nil {
		c.onResize(width, height)
	}
}

// SetClipboard puts text on the system clipboard. GLFW reports clipboard
// failures by panicking; those come back as errors.
func (c *Context) SetClipboard(text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard write failed: %v", r)
		}
	}()
	c.window.SetClipboardString(text)
	return nil
}

func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// SetVSync enables or disables waiting for vertical retrace on swap. The
// context must be current.
func (c *Context) SetVSync(on bool) {
	if on {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) GetWindowSize() (int, int) {
	return c.window.GetSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
}
