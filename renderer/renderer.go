// Package renderer draws the mist into a scaled offscreen target and presents
// it, either to a window every display frame or to ffmpeg at a fixed timestep.
package renderer

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gomist/glfwcontext"
	"github.com/richinsley/gomist/graphics"
	"github.com/richinsley/gomist/params"
	"github.com/richinsley/gomist/pointer"
	"github.com/richinsley/gomist/shader"
	"github.com/richinsley/gomist/uniforms"
	"github.com/richinsley/gomist/viewport"
	"github.com/rs/zerolog"
)

var glInitOnce sync.Once

type Config struct {
	Width  int
	Height int
	// Hidden creates an invisible window for offscreen recording.
	Hidden bool
	Logger zerolog.Logger
}

type Renderer struct {
	context     *glfwcontext.Context
	logger      zerolog.Logger
	quadVAO     uint32
	quadVBO     uint32
	mist        *mistPass
	blitProgram uint32
	target      *offscreenTarget
	uniforms    *uniforms.Set
	tracker     *pointer.Tracker

	renderScale float64
	maxDpr      float64
	// fixedWidth and fixedHeight pin the target size while recording.
	fixedWidth  int
	fixedHeight int
}

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// NewRenderer opens the window and builds the GL scene. GLFW must already be
// initialized on the calling thread.
func NewRenderer(cfg Config) (*Renderer, error) {
	ctx, err := glfwcontext.New(glfwcontext.Config{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Title:   "mist",
		Visible: !cfg.Hidden,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize glfw context: %w", err)
	}

	r := &Renderer{
		context:     ctx,
		logger:      cfg.Logger.With().Str("component", "renderer").Logger(),
		uniforms:    uniforms.NewSet(),
		tracker:     pointer.NewTracker(time.Now()),
		renderScale: params.Defaults().RenderScale,
		maxDpr:      params.Defaults().MaxDpr,
	}
	if cfg.Hidden {
		// recordings have no pointer, so the mist drifts from the first frame
		r.fixedWidth, r.fixedHeight = cfg.Width, cfg.Height
		r.tracker = pointer.NewIdleTracker()
	}

	r.context.MakeCurrent()
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		ctx.Shutdown()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	r.context.SetVSync(!cfg.Hidden)
	r.logger.Debug().Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).Msg("context ready")

	if err := r.initScene(); err != nil {
		r.Shutdown()
		return nil, err
	}

	r.context.OnCursor(func(x, y float64) {
		w, h := r.context.GetWindowSize()
		r.tracker.Observe(viewport.Normalize(x, y, w, h), time.Now())
	})
	r.context.OnResize(func(width, height int) {
		r.resizeTarget()
	})
	return r, nil
}

func (r *Renderer) initScene() error {
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	var err error
	r.blitProgram, err = newProgram(shader.GenerateVertexShader(), shader.GetBlitFragmentShader())
	if err != nil {
		return fmt.Errorf("failed to create blit program: %w", err)
	}

	r.mist, err = newMistPass()
	if err != nil {
		return err
	}
	if missing := r.mist.missing(); len(missing) > 0 {
		// the compiler may strip uniforms that do not reach the output
		r.logger.Debug().Strs("uniforms", missing).Msg("uniforms not active in linked program")
	}

	w, h := r.targetSize()
	r.target, err = newOffscreenTarget(w, h)
	if err != nil {
		return fmt.Errorf("failed to create offscreen target: %w", err)
	}
	return nil
}

// Context exposes the window, for clipboard access and key bindings.
func (r *Renderer) Context() *glfwcontext.Context { return r.context }

// window is the part of the context the frame loop depends on.
func (r *Renderer) window() graphics.Context { return r.context }

// ApplyRendererSettings updates the scaling controls and resizes the target.
func (r *Renderer) ApplyRendererSettings(renderScale, maxDpr float64) {
	r.renderScale = renderScale
	r.maxDpr = maxDpr
	r.resizeTarget()
}

// SyncUniforms copies p into the uniform set uploaded on the next frame.
func (r *Renderer) SyncUniforms(p *params.Params) {
	r.uniforms.Sync(p)
}

// TargetSize returns the current offscreen resolution.
func (r *Renderer) TargetSize() (int, int) {
	if r.target == nil {
		return r.targetSize()
	}
	return r.target.width, r.target.height
}

func (r *Renderer) targetSize() (int, int) {
	if r.fixedWidth > 0 && r.fixedHeight > 0 {
		return r.fixedWidth, r.fixedHeight
	}
	win := r.window()
	winW, winH := win.GetWindowSize()
	fbW, _ := win.GetFramebufferSize()
	return viewport.TargetSize(winW, winH, viewport.PixelRatio(fbW, winW), r.renderScale, r.maxDpr)
}

func (r *Renderer) resizeTarget() {
	if r.target == nil {
		return
	}
	w, h := r.targetSize()
	if r.target.resize(w, h) {
		r.logger.Debug().Int("width", w).Int("height", h).Msg("render target resized")
	}
}

// resolution is the u_resolution value: the window size in screen
// coordinates, independent of render scale. A fixed recording size wins.
func (r *Renderer) resolution() mgl32.Vec2 {
	if r.fixedWidth > 0 && r.fixedHeight > 0 {
		return mgl32.Vec2{float32(r.fixedWidth), float32(r.fixedHeight)}
	}
	return windowResolution(r.window())
}

func windowResolution(win graphics.Context) mgl32.Vec2 {
	w, h := win.GetWindowSize()
	return mgl32.Vec2{float32(max(w, 1)), float32(max(h, 1))}
}

// RenderFrame draws one frame of the mist into the offscreen target.
func (r *Renderer) RenderFrame(elapsed float64, mouse mgl32.Vec2) {
	w, h := r.target.width, r.target.height
	r.uniforms.SetFrame(elapsed, r.resolution(), mouse)

	gl.BindFramebuffer(gl.FRAMEBUFFER, r.target.fbo)
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.UseProgram(r.mist.program)
	r.mist.upload(r.uniforms)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// present stretches the offscreen target over the window framebuffer.
func (r *Renderer) present() {
	fbWidth, fbHeight := r.window().GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(r.blitProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.target.textureID)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Run renders until the window is closed. onFrame runs at the top of every
// frame, before the clock is sampled.
func (r *Renderer) Run(onFrame func()) {
	win := r.window()
	startTime := win.Time()
	var frames int64

	for !win.ShouldClose() {
		if onFrame != nil {
			onFrame()
		}
		elapsed := win.Time() - startTime
		mouse := r.tracker.Step(elapsed, time.Now())

		r.RenderFrame(elapsed, mouse)
		r.present()
		win.EndFrame()
		frames++
	}
	r.logger.Info().Int64("frames", frames).Float64("seconds", win.Time()-startTime).Msg("render loop finished")
}

func (r *Renderer) Shutdown() {
	if r.mist != nil {
		r.mist.destroy()
	}
	if r.blitProgram != 0 {
		gl.DeleteProgram(r.blitProgram)
	}
	if r.target != nil {
		r.target.destroy()
	}
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
	r.context.Shutdown()
}
