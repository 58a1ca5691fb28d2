package main

import (
	"context"
	"io"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gomist/controller"
	"github.com/richinsley/gomist/glfwcontext"
	"github.com/richinsley/gomist/logging"
	"github.com/richinsley/gomist/options"
	"github.com/richinsley/gomist/panel"
	"github.com/richinsley/gomist/params"
	"github.com/richinsley/gomist/preset"
	"github.com/richinsley/gomist/randomize"
	"github.com/richinsley/gomist/renderer"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := options.New()
	var configPath string

	root := &cobra.Command{
		Use:          "mist",
		Short:        "Animated procedural mist background",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return options.ReadConfig(v, configPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := options.Load(v)
			if err != nil {
				return err
			}
			return runInteractive(cmd.Context(), o)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, options.KeyConfig, "", "config file (default ./mist.yaml)")
	pf.Int(options.KeyWidth, 1280, "window or video width")
	pf.Int(options.KeyHeight, 720, "window or video height")
	pf.String(options.KeyDefaultsURL, preset.DefaultsFile, "URL or path of the defaults preset JSON (empty disables)")
	pf.String(options.KeyStorageDir, "", "directory for the captured preset and log file")
	pf.Bool(options.KeyNoStorage, false, "keep the captured preset in memory only")
	pf.String(options.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	root.Flags().Bool(options.KeyControls, false, "show the terminal control panel")
	root.Flags().Bool(options.KeyDev, false, "development mode (shows the control panel)")

	bind(v, root)
	root.AddCommand(newRecordCmd(v), newDefaultsCmd())
	return root
}

func bind(v *viper.Viper, cmd *cobra.Command) {
	// binding only fails for a nil flag set
	_ = v.BindPFlags(cmd.PersistentFlags())
	_ = v.BindPFlags(cmd.Flags())
}

// setupLogging applies the level and, when the terminal belongs to the
// control panel, moves logs into the storage directory. The returned closer
// is never nil.
func setupLogging(o *options.MistOptions, toFile bool) (zerolog.Logger, io.Closer, error) {
	if err := logging.SetLevel(o.LogLevel); err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	var closer io.Closer = nopCloser{}
	if toFile {
		f, err := logging.OpenFile(o.StorageDir)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		logging.SetOutput(f)
		closer = f
	}
	return *logging.GetDefaultLogger(), closer, nil
}

func newStore(o *options.MistOptions) preset.Store {
	if o.NoStorage {
		return preset.NewMemoryStore()
	}
	return &preset.FileStore{Dir: o.StorageDir}
}

func runInteractive(ctx context.Context, o *options.MistOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, logCloser, err := setupLogging(o, o.ShowControls())
	if err != nil {
		return err
	}
	defer logCloser.Close()

	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	r, err := renderer.NewRenderer(renderer.Config{Width: o.Width, Height: o.Height, Logger: logger})
	if err != nil {
		return err
	}
	defer r.Shutdown()

	pane := panel.New(params.Fields)
	c := controller.New(controller.Options{
		Surface:  r,
		Pane:     pane,
		Store:    newStore(o),
		Defaults: preset.NewRemoteDefaults(o.DefaultsURL),
		Exporter: &preset.Exporter{
			Clipboard: r.Context(),
			Notifier:  preset.DialogNotifier{Logger: logger},
			Logger:    logger,
		},
		Randomizer: randomize.New(nil),
		Logger:     logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if o.ShowControls() {
		term, err := panel.Open(pane, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("control panel unavailable")
		} else {
			done := make(chan struct{})
			go func() {
				term.Run(ctx)
				close(done)
			}()
			defer func() {
				cancel()
				<-done
			}()
		}
	}

	bindShortcuts(r.Context(), c, logger)
	c.Boot(ctx)
	logger.Info().Int("width", o.Width).Int("height", o.Height).Bool("controls", o.ShowControls()).Msg("starting render loop")
	r.Run(c.Pump)
	return nil
}

// shortcuts are the window keys that run panel actions without the terminal
// pane.
var shortcuts = map[glfw.Key]panel.Action{
	glfw.KeyR: panel.RandomizeAction(randomize.GroupAll),
	glfw.KeyC: panel.ActionCapture,
	glfw.KeyL: panel.ActionLoadCapture,
	glfw.KeyD: panel.ActionResetDefaults,
	glfw.KeyE: panel.ActionExportJSON,
}

type keyRegistrar interface {
	RegisterKeyCallback(key glfw.Key, f func())
}

type actionRunner interface {
	RunAction(a panel.Action) error
}

func bindShortcuts(win keyRegistrar, c actionRunner, logger zerolog.Logger) {
	for key, action := range shortcuts {
		win.RegisterKeyCallback(key, func() {
			if err := c.RunAction(action); err != nil {
				logger.Warn().Err(err).Str("action", string(action)).Msg("shortcut failed")
			}
		})
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
