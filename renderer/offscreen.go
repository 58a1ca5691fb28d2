package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// offscreenTarget is the scaled render target the mist is drawn into before
// being stretched onto the window.
type offscreenTarget struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

func newOffscreenTarget(width, height int) (*offscreenTarget, error) {
	t := &offscreenTarget{}
	gl.GenFramebuffers(1, &t.fbo)
	gl.GenTextures(1, &t.textureID)
	gl.BindTexture(gl.TEXTURE_2D, t.textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	t.allocate(width, height)

	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.textureID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		t.destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete: 0x%x", status)
	}
	return t, nil
}

func (t *offscreenTarget) allocate(width, height int) {
	gl.BindTexture(gl.TEXTURE_2D, t.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	t.width = width
	t.height = height
}

// resize reallocates storage when the size changed. It reports whether it did.
func (t *offscreenTarget) resize(width, height int) bool {
	if width == t.width && height == t.height {
		return false
	}
	t.allocate(width, height)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return true
}

// readPixels copies the target into dst as tightly packed RGBA, bottom row
// first. dst must hold width*height*4 bytes.
func (t *offscreenTarget) readPixels(dst []byte) error {
	if need := t.width * t.height * 4; len(dst) < need {
		return fmt.Errorf("pixel buffer too small: %d < %d", len(dst), need)
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(t.width), int32(t.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return nil
}

func (t *offscreenTarget) destroy() {
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteTextures(1, &t.textureID)
}
