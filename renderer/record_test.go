package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncoderArgs(t *testing.T) {
	opts := RecordOptions{FPS: 30, Output: "mist.mp4", Codec: "h264"}
	in, out := encoderArgs(opts, 1920, 1080, "linux")

	assert.Equal(t, "rawvideo", in["format"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "1920x1080", in["s"])
	assert.Equal(t, 30, in["framerate"])

	assert.Equal(t, "vflip", out["vf"])
	assert.Equal(t, "libx264", out["c:v"])
	assert.NotContains(t, out, "tag:v")
}

func TestEncoderArgsHEVC(t *testing.T) {
	opts := RecordOptions{FPS: 60, Output: "MIST.MP4", Codec: "hevc"}
	_, out := encoderArgs(opts, 640, 360, "linux")
	assert.Equal(t, "libx265", out["c:v"])
	assert.Equal(t, "hvc1", out["tag:v"])

	_, out = encoderArgs(opts, 640, 360, "darwin")
	assert.Equal(t, "hevc_videotoolbox", out["c:v"])

	opts.Output = "mist.mkv"
	_, out = encoderArgs(opts, 640, 360, "linux")
	assert.NotContains(t, out, "tag:v")
}

func TestFrameCount(t *testing.T) {
	assert.Equal(t, 300, frameCount(RecordOptions{Duration: 10, FPS: 30}))
	assert.Equal(t, 1, frameCount(RecordOptions{Duration: 0.02, FPS: 60}))
	assert.Equal(t, 0, frameCount(RecordOptions{Duration: 0, FPS: 60}))
}
