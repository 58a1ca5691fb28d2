package preset

import (
	"errors"

	"github.com/ncruces/zenity"
	"github.com/rs/zerolog"
)

// DialogNotifier shows export results in native dialogs. Each dialog runs on
// its own goroutine so the render loop keeps going.
type DialogNotifier struct {
	Logger zerolog.Logger
}

func (d DialogNotifier) Notify(message string) {
	go func() {
		if err := zenity.Info(message, zenity.Title("mist"), zenity.InfoIcon); err != nil {
			d.Logger.Debug().Err(err).Msg("notice dialog failed")
		}
	}()
}

// ShowText presents text in an editable entry so it can be selected and copied.
func (d DialogNotifier) ShowText(prompt, text string) {
	go func() {
		_, err := zenity.Entry(prompt, zenity.Title("mist"), zenity.EntryText(text))
		if err != nil && !errors.Is(err, zenity.ErrCanceled) {
			d.Logger.Warn().Err(err).Msg("preset dialog failed")
		}
	}()
}
