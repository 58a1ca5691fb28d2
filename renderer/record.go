package renderer

import (
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type RecordOptions struct {
	Duration   float64
	FPS        int
	Output     string
	Codec      string
	FFmpegPath string
}

// encoderArgs builds the ffmpeg arguments for raw RGBA frames of width x
// height read bottom row first.
func encoderArgs(opts RecordOptions, width, height int, goos string) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": opts.FPS,
	}

	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
		"b:v":     "25M",
	}
	hevc := opts.Codec == "hevc"
	switch goos {
	case "darwin":
		if hevc {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
	default:
		if hevc {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
	}
	if hevc && strings.HasSuffix(strings.ToLower(opts.Output), ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return inputArgs, outputArgs
}

// frameCount is the number of frames in a recording of opts.
func frameCount(opts RecordOptions) int {
	return int(math.Round(opts.Duration * float64(opts.FPS)))
}

// Record renders opts.Duration seconds at a fixed timestep and encodes them to
// opts.Output. The renderer must have been created hidden. onFrame runs
// before every frame.
func (r *Renderer) Record(opts RecordOptions, onFrame func()) error {
	if r.fixedWidth <= 0 || r.fixedHeight <= 0 {
		return errors.New("recording needs a hidden renderer with a fixed size")
	}
	if opts.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", opts.FPS)
	}
	if opts.Output == "" {
		return errors.New("no output file")
	}

	width, height := r.target.width, r.target.height
	inputArgs, outputArgs := encoderArgs(opts, width, height, runtime.GOOS)

	pipeReader, pipeWriter := io.Pipe()
	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.Output, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if opts.FFmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(opts.FFmpegPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		if err == nil {
			err = io.ErrClosedPipe
		}
		// unblock the writer if ffmpeg exits early
		pipeReader.CloseWithError(err)
		errc <- err
	}()

	total := frameCount(opts)
	timeStep := 1.0 / float64(opts.FPS)
	pixels := make([]byte, width*height*4)
	started := time.Now()
	r.logger.Info().Int("frames", total).Int("width", width).Int("height", height).Str("output", opts.Output).Msg("recording")

	for i := 0; i < total; i++ {
		if onFrame != nil {
			onFrame()
		}
		currentTime := float64(i) * timeStep
		mouse := r.tracker.Step(currentTime, time.Time{})

		r.RenderFrame(currentTime, mouse)
		if err := r.target.readPixels(pixels); err != nil {
			pipeWriter.CloseWithError(err)
			<-errc
			return fmt.Errorf("failed to read frame %d: %w", i, err)
		}
		if _, err := pipeWriter.Write(pixels); err != nil {
			pipeWriter.Close()
			return fmt.Errorf("encoder stopped at frame %d: %w", i, <-errc)
		}
		if opts.FPS > 0 && (i+1)%opts.FPS == 0 {
			r.logger.Debug().Int("frame", i+1).Int("total", total).Msg("recording progress")
		}
	}

	pipeWriter.Close()
	if err := <-errc; err != nil && !errors.Is(err, io.ErrClosedPipe) {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	r.logger.Info().Dur("took", time.Since(started)).Str("output", opts.Output).Msg("recording finished")
	return nil
}
