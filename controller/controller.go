// Package controller owns the live parameter set and routes everything that
// changes it: boot-time defaults, captured presets, panel edits, randomize
// buttons and exports. All methods run on the render thread; the only other
// goroutine is the defaults fetch started by Boot, whose result is handed
// back through Pump or AwaitBoot.
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/richinsley/gomist/panel"
	"github.com/richinsley/gomist/params"
	"github.com/richinsley/gomist/preset"
	"github.com/richinsley/gomist/randomize"
	"github.com/rs/zerolog"
)

// Surface is the renderer as seen by the controller.
type Surface interface {
	ApplyRendererSettings(renderScale, maxDpr float64)
	SyncUniforms(p *params.Params)
}

type Pane interface {
	Events() <-chan panel.Event
	Refresh(values map[string]any)
}

type DefaultsSource interface {
	Fetch(ctx context.Context) (map[string]any, error)
}

type Exporter interface {
	Export(doc []byte) preset.ExportResult
}

type Options struct {
	Surface    Surface
	Pane       Pane
	Store      preset.Store
	Defaults   DefaultsSource
	Exporter   Exporter
	Randomizer *randomize.Randomizer
	Logger     zerolog.Logger
}

type bootResult struct {
	doc map[string]any
	err error
}

type Controller struct {
	params   params.Params
	defaults params.Params

	surface  Surface
	pane     Pane
	store    preset.Store
	source   DefaultsSource
	exporter Exporter
	rnd      *randomize.Randomizer
	logger   zerolog.Logger

	boot   chan bootResult
	booted bool
}

func New(opts Options) *Controller {
	rnd := opts.Randomizer
	if rnd == nil {
		rnd = randomize.New(nil)
	}
	d := params.Defaults()
	return &Controller{
		params:   d,
		defaults: d,
		surface:  opts.Surface,
		pane:     opts.Pane,
		store:    opts.Store,
		source:   opts.Defaults,
		exporter: opts.Exporter,
		rnd:      rnd,
		logger:   opts.Logger.With().Str("component", "controller").Logger(),
		boot:     make(chan bootResult, 1),
	}
}

// Boot pushes the built-in defaults to the surface and starts fetching the
// remote defaults in the background. Rendering may begin immediately.
func (c *Controller) Boot(ctx context.Context) {
	c.ApplyCurrentSettings(true)
	if c.source == nil {
		c.boot <- bootResult{err: preset.ErrNoDefaultsURL}
		return
	}
	go func() {
		doc, err := c.source.Fetch(ctx)
		c.boot <- bootResult{doc: doc, err: err}
	}()
}

// AwaitBoot blocks until the defaults fetch started by Boot has resolved, or
// ctx is done. Either way the captured preset is merged and settings applied;
// a fetch that has not answered in time counts as a failed one.
func (c *Controller) AwaitBoot(ctx context.Context) {
	if c.booted {
		return
	}
	select {
	case res := <-c.boot:
		c.finishBoot(res)
	case <-ctx.Done():
		c.finishBoot(bootResult{err: fmt.Errorf("defaults fetch: %w", ctx.Err())})
	}
}

// Booted reports whether remote defaults and the captured preset have been
// applied.
func (c *Controller) Booted() bool { return c.booted }

// Pump applies pending work without blocking: a finished defaults fetch and
// any queued panel events. Call it once per frame.
func (c *Controller) Pump() {
	if !c.booted {
		select {
		case res := <-c.boot:
			c.finishBoot(res)
		default:
		}
	}
	if c.pane == nil {
		return
	}
	for {
		select {
		case ev := <-c.pane.Events():
			c.HandleEvent(ev)
		default:
			return
		}
	}
}

func (c *Controller) finishBoot(res bootResult) {
	c.booted = true
	switch {
	case res.err == nil:
		n := c.params.ApplyKnown(res.doc)
		c.defaults = c.params
		c.logger.Info().Int("keys", n).Msg("remote defaults applied")
	case errors.Is(res.err, preset.ErrNoDefaultsURL), errors.Is(res.err, fs.ErrNotExist):
		c.logger.Debug().Err(res.err).Msg("no remote defaults")
	default:
		c.logger.Warn().Err(res.err).Msg("remote defaults unavailable, using built-in values")
	}
	if err := c.LoadCapture(); err != nil {
		c.logger.Warn().Err(err).Msg("ignoring captured preset")
	}
	c.ApplyCurrentSettings(true)
}

// HandleEvent applies one panel event.
func (c *Controller) HandleEvent(ev panel.Event) {
	switch ev := ev.(type) {
	case panel.EventChange:
		if err := c.params.Set(ev.Field, ev.Value); err != nil {
			c.logger.Warn().Err(err).Str("field", ev.Field).Msg("rejected panel edit")
			c.ApplyCurrentSettings(true)
			return
		}
		c.ApplyCurrentSettings(false)
	case panel.EventAction:
		if err := c.RunAction(ev.Action); err != nil {
			c.logger.Warn().Err(err).Str("action", string(ev.Action)).Msg("action failed")
		}
	}
}

// RunAction performs a button action and then re-applies every setting,
// refreshing the panel.
func (c *Controller) RunAction(a panel.Action) error {
	var err error
	switch a {
	case panel.ActionCapture:
		err = c.Capture()
	case panel.ActionLoadCapture:
		err = c.LoadCapture()
	case panel.ActionResetDefaults:
		c.Reset()
	case panel.ActionExportJSON:
		_, err = c.Export()
	default:
		g, ok := a.RandomizeGroup()
		if !ok || !c.rnd.Apply(g, &c.params) {
			return fmt.Errorf("unknown action %q", a)
		}
		c.logger.Debug().Str("group", string(g)).Msg("randomized")
	}
	c.ApplyCurrentSettings(true)
	return err
}

// Reset restores the defaults snapshot, which includes any remote defaults.
func (c *Controller) Reset() {
	c.params = c.defaults
}

// Capture stores the current parameters as the captured preset.
func (c *Controller) Capture() error {
	if c.store == nil {
		return nil
	}
	doc, err := json.Marshal(&c.params)
	if err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	if err := c.store.Set(preset.CaptureKey, doc); err != nil {
		return fmt.Errorf("failed to capture preset: %w", err)
	}
	c.logger.Info().Msg("preset captured")
	return nil
}

// LoadCapture merges the captured preset over the current parameters. A
// missing capture is not an error; a malformed one leaves parameters as they
// were.
func (c *Controller) LoadCapture() error {
	if c.store == nil {
		return nil
	}
	data, err := c.store.Get(preset.CaptureKey)
	if errors.Is(err, preset.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	n, err := c.params.ApplyKnownJSON(data)
	if err != nil {
		return err
	}
	c.logger.Debug().Int("keys", n).Msg("captured preset loaded")
	return nil
}

// Export hands the full parameter set, as indented JSON, to the exporter.
func (c *Controller) Export() (preset.ExportResult, error) {
	doc, err := c.params.MarshalPreset()
	if err != nil {
		return preset.ExportManual, fmt.Errorf("failed to encode preset: %w", err)
	}
	if c.exporter == nil {
		return preset.ExportManual, errors.New("no exporter configured")
	}
	return c.exporter.Export(doc), nil
}

// ApplyCurrentSettings pushes sizing and uniforms to the surface, and the
// parameter values to the panel when refresh is set.
func (c *Controller) ApplyCurrentSettings(refresh bool) {
	if c.surface != nil {
		c.surface.ApplyRendererSettings(c.params.RenderScale, c.params.MaxDpr)
		c.surface.SyncUniforms(&c.params)
	}
	if refresh && c.pane != nil {
		c.pane.Refresh(c.params.Values())
	}
}

// Params returns a copy of the live parameters.
func (c *Controller) Params() params.Params { return c.params }

// Defaults returns a copy of the defaults snapshot.
func (c *Controller) Defaults() params.Params { return c.defaults }
