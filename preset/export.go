package preset

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// CopiedMessage is shown after the preset lands on the clipboard.
const CopiedMessage = "Preset copied. Paste into " + DefaultsFile + " to make it the new default."

// ManualPrompt titles the fallback prompt shown when the clipboard is unavailable.
const ManualPrompt = "Copy preset JSON:"

var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	SetClipboard(text string) error
}

// Notifier surfaces export results to the user. Implementations must not
// block the caller.
type Notifier interface {
	Notify(message string)
	ShowText(prompt, text string)
}

type ExportResult int

const (
	ExportCopied ExportResult = iota
	ExportManual
)

func (r ExportResult) String() string {
	switch r {
	case ExportCopied:
		return "copied"
	case ExportManual:
		return "manual"
	default:
		return fmt.Sprintf("ExportResult(%d)", int(r))
	}
}

type Exporter struct {
	Clipboard Clipboard
	Notifier  Notifier
	Logger    zerolog.Logger
}

// Export copies doc to the clipboard and confirms, or falls back to showing
// doc for manual copy when the clipboard refuses.
func (e *Exporter) Export(doc []byte) ExportResult {
	text := string(doc)
	if e.Clipboard != nil {
		err := e.Clipboard.SetClipboard(text)
		if err == nil {
			e.Logger.Info().Int("bytes", len(doc)).Msg("preset copied to clipboard")
			e.notify(CopiedMessage)
			return ExportCopied
		}
		e.Logger.Warn().Err(err).Msg("clipboard write failed, showing preset for manual copy")
	}
	if e.Notifier != nil {
		e.Notifier.ShowText(ManualPrompt, text)
	}
	return ExportManual
}

func (e *Exporter) notify(msg string) {
	if e.Notifier != nil {
		e.Notifier.Notify(msg)
	}
}
