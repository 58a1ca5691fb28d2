package panel

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/richinsley/gomist/params"
	"github.com/richinsley/gomist/randomize"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPane(t *testing.T) *Pane {
	t.Helper()
	p := New(params.Fields)
	d := params.Defaults()
	p.Refresh(d.Values())
	p.Activate() // expand
	return p
}

func selectField(t *testing.T, p *Pane, name string) {
	t.Helper()
	for i := 0; i < len(p.Rows()); i++ {
		if r := p.Selected(); r.Kind == RowField && r.Field.Name == name {
			return
		}
		p.Move(1)
	}
	t.Fatalf("field %q not reachable", name)
}

func selectAction(t *testing.T, p *Pane, a Action) {
	t.Helper()
	for i := 0; i < len(p.Rows()); i++ {
		if r := p.Selected(); r.Kind == RowButton && r.Action == a {
			return
		}
		p.Move(1)
	}
	t.Fatalf("action %q not reachable", a)
}

func nextEvent(t *testing.T, p *Pane) Event {
	t.Helper()
	select {
	case ev := <-p.Events():
		return ev
	default:
		t.Fatal("expected an event")
		return nil
	}
}

func assertNoEvent(t *testing.T, p *Pane) {
	t.Helper()
	select {
	case ev := <-p.Events():
		t.Fatalf("unexpected event %#v", ev)
	default:
	}
}

func TestLayout(t *testing.T) {
	p := New(params.Fields)
	require.Len(t, p.Visible(), 1, "starts collapsed to the title")
	assert.Equal(t, Title, p.Visible()[0].Label)

	var folders []string
	for _, r := range p.Rows() {
		if r.Kind == RowFolder {
			folders = append(folders, r.Label)
		}
	}
	want := append([]string{FolderPreset, FolderRandomize}, params.Folders()...)
	assert.Equal(t, want, folders)

	var presetButtons []Action
	var randomButtons []Action
	fields := 0
	for _, r := range p.Rows() {
		switch {
		case r.Kind == RowButton && r.Folder == FolderPreset:
			presetButtons = append(presetButtons, r.Action)
		case r.Kind == RowButton && r.Folder == FolderRandomize:
			randomButtons = append(randomButtons, r.Action)
		case r.Kind == RowField:
			fields++
		}
	}
	assert.Equal(t, []Action{ActionCapture, ActionLoadCapture, ActionResetDefaults, ActionExportJSON}, presetButtons)
	require.Len(t, randomButtons, len(randomize.Groups))
	for i, g := range randomize.Groups {
		assert.Equal(t, RandomizeAction(g), randomButtons[i])
	}
	assert.Equal(t, len(params.Fields), fields)
}

func TestRandomizeActionRoundTrip(t *testing.T) {
	g, ok := RandomizeAction(randomize.GroupColors).RandomizeGroup()
	assert.True(t, ok)
	assert.Equal(t, randomize.GroupColors, g)

	_, ok = ActionCapture.RandomizeGroup()
	assert.False(t, ok)
}

func TestButtonEmitsAction(t *testing.T) {
	p := newPane(t)
	selectAction(t, p, ActionExportJSON)
	p.Activate()
	assert.Equal(t, EventAction{Action: ActionExportJSON}, nextEvent(t, p))
}

func TestSliderStep(t *testing.T) {
	p := newPane(t)
	selectField(t, p, "renderScale")

	p.Step(1, false)
	ev := nextEvent(t, p).(EventChange)
	assert.Equal(t, "renderScale", ev.Field)
	assert.InDelta(t, 0.63, ev.Value.(float64), 1e-9)

	p.Step(1, true)
	ev = nextEvent(t, p).(EventChange)
	assert.InDelta(t, 0.73, ev.Value.(float64), 1e-9)
	assert.InDelta(t, 0.73, p.Value("renderScale").(float64), 1e-9)
}

func TestSliderClampsWithoutEvent(t *testing.T) {
	p := newPane(t)
	p.Refresh(map[string]any{"renderScale": 1.0})
	selectField(t, p, "renderScale")

	p.Step(1, true)
	assertNoEvent(t, p)
	assert.Equal(t, 1.0, p.Value("renderScale"))

	p.Refresh(map[string]any{"renderScale": 0.45})
	p.Step(-1, true)
	ev := nextEvent(t, p).(EventChange)
	assert.InDelta(t, 0.4, ev.Value.(float64), 1e-9)
}

func TestToggle(t *testing.T) {
	p := newPane(t)
	selectField(t, p, "enableBloom")

	p.Toggle()
	assert.Equal(t, EventChange{Field: "enableBloom", Value: false}, nextEvent(t, p))

	p.Activate()
	assert.Equal(t, EventChange{Field: "enableBloom", Value: true}, nextEvent(t, p))
}

func TestToggleIgnoresOtherRows(t *testing.T) {
	p := newPane(t)
	selectField(t, p, "timeScale")
	p.Toggle()
	assertNoEvent(t, p)
}

func TestColorEdit(t *testing.T) {
	p := newPane(t)
	selectField(t, p, "colorDeep")

	p.Activate()
	editing, buf := p.Editing()
	require.True(t, editing)
	assert.Equal(t, "#574a75", buf)

	for range buf {
		p.Backspace()
	}
	for _, r := range "#ABC" {
		p.TypeRune(r)
	}
	p.CommitEdit()

	assert.Equal(t, EventChange{Field: "colorDeep", Value: "#aabbcc"}, nextEvent(t, p))
	editing, _ = p.Editing()
	assert.False(t, editing)
}

func TestInvalidColorIsDiscarded(t *testing.T) {
	p := newPane(t)
	selectField(t, p, "colorPink")
	before := p.Value("colorPink")

	p.Activate()
	p.Backspace()
	p.Backspace()
	p.TypeRune('z')
	p.TypeRune('z')
	p.CommitEdit()

	assertNoEvent(t, p)
	assert.Equal(t, before, p.Value("colorPink"))
}

func TestCancelEdit(t *testing.T) {
	p := newPane(t)
	selectField(t, p, "bloomTint")
	p.Activate()
	p.TypeRune('x')
	p.CancelEdit()
	editing, _ := p.Editing()
	assert.False(t, editing)
	assertNoEvent(t, p)
}

func TestFolderCollapse(t *testing.T) {
	p := newPane(t)
	full := len(p.Visible())

	p.Move(1)
	require.Equal(t, RowFolder, p.Selected().Kind)
	require.Equal(t, FolderPreset, p.Selected().Folder)

	p.Activate()
	assert.Len(t, p.Visible(), full-4)
	p.Activate()
	assert.Len(t, p.Visible(), full)
}

func TestMoveClamps(t *testing.T) {
	p := newPane(t)
	p.Move(-5)
	assert.Equal(t, 0, p.Cursor())
	p.Move(1000)
	assert.Equal(t, len(p.Visible())-1, p.Cursor())
}

func TestRefreshUpdatesDisplay(t *testing.T) {
	p := New(params.Fields)
	p.Refresh(map[string]any{"timeScale": 0.5})
	assert.Equal(t, 0.5, p.Value("timeScale"))
	assertNoEvent(t, p)
}

func TestFormatValue(t *testing.T) {
	f, _ := params.Lookup("timeScale")
	assert.Equal(t, "0.160", FormatValue(f, 0.16))
	f, _ = params.Lookup("renderScale")
	assert.Equal(t, "0.62", FormatValue(f, 0.62))
	f, _ = params.Lookup("enableBloom")
	assert.Equal(t, "[x]", FormatValue(f, true))
	f, _ = params.Lookup("colorDeep")
	assert.Equal(t, "#574a75", FormatValue(f, "#574a75"))
}

func screenLine(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestTerminalDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	defer screen.Fini()

	p := New(params.Fields)
	d := params.Defaults()
	p.Refresh(d.Values())
	term := NewTerminal(p, screen, zerolog.Nop())

	term.Draw()
	assert.Contains(t, screenLine(screen, 0), Title)
	assert.Empty(t, screenLine(screen, 1))

	p.Activate()
	term.Draw()
	assert.Contains(t, screenLine(screen, 1), FolderPreset)
	assert.Contains(t, screenLine(screen, 2), "[capture]")
}

func TestTerminalScrollsToCursor(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 10)
	defer screen.Fini()

	p := newPane(t)
	term := NewTerminal(p, screen, zerolog.Nop())
	selectField(t, p, "timeScale")
	term.Draw()

	found := false
	for y := 0; y < 9; y++ {
		if strings.Contains(screenLine(screen, y), "timeScale") {
			found = true
		}
	}
	assert.True(t, found)
	assert.Contains(t, screenLine(screen, 8), "0.160")
}
