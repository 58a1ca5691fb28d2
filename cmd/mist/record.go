package main

import (
	"context"
	"time"

	"github.com/richinsley/gomist/controller"
	"github.com/richinsley/gomist/glfwcontext"
	"github.com/richinsley/gomist/options"
	"github.com/richinsley/gomist/preset"
	"github.com/richinsley/gomist/renderer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bootTimeout bounds how long a recording waits for remote defaults before
// going ahead with the built-in values.
const bootTimeout = 30 * time.Second

func newRecordCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Render the mist offscreen to a video file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := options.Load(v)
			if err != nil {
				return err
			}
			if err := o.ValidateRecord(); err != nil {
				return err
			}
			return runRecord(cmd.Context(), o)
		},
	}

	f := cmd.Flags()
	f.Float64(options.KeyDuration, 10, "duration to record in seconds")
	f.Int(options.KeyFPS, 30, "frames per second")
	f.String(options.KeyOutput, "mist.mp4", "output file")
	f.String(options.KeyCodec, "h264", "video codec (h264 or hevc)")
	f.String(options.KeyFFmpeg, "", "path to the ffmpeg executable")
	bind(v, cmd)
	return cmd
}

func runRecord(ctx context.Context, o *options.MistOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, logCloser, err := setupLogging(o, false)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	r, err := renderer.NewRenderer(renderer.Config{Width: o.Width, Height: o.Height, Hidden: true, Logger: logger})
	if err != nil {
		return err
	}
	defer r.Shutdown()

	c := controller.New(controller.Options{
		Surface:  r,
		Store:    newStore(o),
		Defaults: preset.NewRemoteDefaults(o.DefaultsURL),
		Logger:   logger,
	})

	bootCtx, cancel := context.WithTimeout(ctx, bootTimeout)
	defer cancel()
	c.Boot(bootCtx)
	c.AwaitBoot(bootCtx)

	return r.Record(renderer.RecordOptions{
		Duration:   o.Duration,
		FPS:        o.FPS,
		Output:     o.Output,
		Codec:      o.Codec,
		FFmpegPath: o.FFmpegPath,
	}, nil)
}
