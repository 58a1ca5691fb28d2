package panel

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/richinsley/gomist/params"
	"github.com/rs/zerolog"
)

var (
	styleTitle    = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorWhite)
	styleFolder   = tcell.StyleDefault.Foreground(tcell.ColorMediumPurple)
	styleButton   = tcell.StyleDefault.Foreground(tcell.ColorLightSkyBlue)
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleValue    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Terminal draws a Pane on a tcell screen and feeds key presses back to it.
type Terminal struct {
	pane   *Pane
	screen tcell.Screen
	logger zerolog.Logger
	hidden bool
}

func NewTerminal(pane *Pane, screen tcell.Screen, logger zerolog.Logger) *Terminal {
	return &Terminal{
		pane:   pane,
		screen: screen,
		logger: logger.With().Str("component", "panel").Logger(),
	}
}

// Open creates and initializes a terminal screen for pane.
func Open(pane *Pane, logger zerolog.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	return NewTerminal(pane, screen, logger), nil
}

// Run processes input and redraws until ctx is done. The screen is finalized
// on return.
func (t *Terminal) Run(ctx context.Context) {
	defer t.screen.Fini()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			t.HandleEvent(ev)
			t.Draw()
		case <-t.pane.Changed():
			t.Draw()
		}
	}
}

// HandleEvent applies one terminal event to the pane.
func (t *Terminal) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		if editing, _ := t.pane.Editing(); editing {
			t.handleEditKey(ev)
			return
		}
		if t.hidden {
			if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
				t.hidden = false
			}
			return
		}
		coarse := ev.Modifiers()&tcell.ModShift != 0
		switch ev.Key() {
		case tcell.KeyUp:
			t.pane.Move(-1)
		case tcell.KeyDown:
			t.pane.Move(1)
		case tcell.KeyLeft:
			t.pane.Step(-1, coarse)
		case tcell.KeyRight:
			t.pane.Step(1, coarse)
		case tcell.KeyEnter:
			t.pane.Activate()
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				t.pane.Toggle()
			case 'q':
				t.hidden = true
			case 'k':
				t.pane.Move(-1)
			case 'j':
				t.pane.Move(1)
			case 'h':
				t.pane.Step(-1, false)
			case 'l':
				t.pane.Step(1, false)
			case 'H':
				t.pane.Step(-1, true)
			case 'L':
				t.pane.Step(1, true)
			}
		}
	}
}

func (t *Terminal) handleEditKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		t.pane.CommitEdit()
	case tcell.KeyEscape:
		t.pane.CancelEdit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		t.pane.Backspace()
	case tcell.KeyRune:
		t.pane.TypeRune(ev.Rune())
	}
}

// Draw renders the visible rows.
func (t *Terminal) Draw() {
	t.screen.Clear()
	if t.hidden {
		t.print(0, 0, "q: show "+Title, styleHelp)
		t.screen.Show()
		return
	}

	rows := t.pane.Visible()
	cursor := t.pane.Cursor()
	editing, buf := t.pane.Editing()
	_, height := t.screen.Size()

	// scroll so the cursor stays on screen, leaving a help line
	first := 0
	if height > 1 && cursor >= height-1 {
		first = cursor - (height - 2)
	}
	y := 0
	for i := first; i < len(rows) && y < height-1; i++ {
		t.drawRow(y, rows[i], i == cursor, editing && i == cursor, buf)
		y++
	}
	t.print(0, max(height-1, y), "↑↓ move  ←→ step (shift x10)  space toggle  enter open/run  q hide", styleHelp)
	t.screen.Show()
}

func (t *Terminal) drawRow(y int, r Row, selected, editing bool, buf string) {
	pick := func(s tcell.Style) tcell.Style {
		if selected {
			return styleSelected
		}
		return s
	}
	switch r.Kind {
	case RowTitle:
		t.print(0, y, marker(t.pane.isExpanded())+" "+r.Label, pick(styleTitle))
	case RowFolder:
		t.print(1, y, marker(!t.pane.isCollapsed(r.Folder))+" "+r.Label, pick(styleFolder))
	case RowButton:
		t.print(3, y, "["+r.Label+"]", pick(styleButton))
	case RowField:
		x := t.print(3, y, fmt.Sprintf("%-20s", r.Label), pick(styleLabel))
		if editing {
			t.print(x+1, y, buf+"_", styleValue)
			return
		}
		v := t.pane.Value(r.Field.Name)
		x = t.print(x+1, y, FormatValue(r.Field, v), styleValue)
		if r.Field.Kind == params.KindColor {
			if s, ok := v.(string); ok {
				t.print(x+1, y, "  ", tcell.StyleDefault.Background(swatch(s)))
			}
		}
	}
}

func (t *Terminal) print(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// FormatValue renders v the way the pane displays it for f.
func FormatValue(f params.Field, v any) string {
	switch f.Kind {
	case params.KindBool:
		if truthy(v) {
			return "[x]"
		}
		return "[ ]"
	case params.KindColor:
		s, _ := v.(string)
		return s
	default:
		n, ok := v.(float64)
		if !ok {
			return "-"
		}
		return strconv.FormatFloat(n, 'f', decimals(f.Step), 64)
	}
}

func swatch(hex string) tcell.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func marker(open bool) string {
	if open {
		return "▾"
	}
	return "▸"
}

func (p *Pane) isExpanded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expanded
}

func (p *Pane) isCollapsed(folder string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.collapsed[folder]
}
