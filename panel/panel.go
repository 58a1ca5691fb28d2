// Package panel is the live control surface for the mist parameters.
//
// A Pane is a flat list of rows built from params.Fields plus preset and
// randomize buttons. It never touches a params.Params itself: every edit or
// button press is published as an Event and the owner decides what to do with
// it. The displayed values only change through local edits or Refresh.
package panel

import (
	"math"
	"strings"
	"sync"

	"github.com/richinsley/gomist/params"
	"github.com/richinsley/gomist/randomize"
)

const Title = "mist controls"

// Folder names for the button groups that precede the parameter folders.
const (
	FolderPreset    = "preset"
	FolderRandomize = "randomize"
)

type Action string

const (
	ActionCapture       Action = "capture"
	ActionLoadCapture   Action = "load capture"
	ActionResetDefaults Action = "reset defaults"
	ActionExportJSON    Action = "export json"
)

const randomizePrefix = "randomize:"

// RandomizeAction is the button action that rerolls group.
func RandomizeAction(group randomize.Group) Action {
	return Action(randomizePrefix + string(group))
}

// RandomizeGroup reports the group a randomize action targets.
func (a Action) RandomizeGroup() (randomize.Group, bool) {
	g, ok := strings.CutPrefix(string(a), randomizePrefix)
	return randomize.Group(g), ok
}

// Event is emitted for every user interaction that should reach the owner.
type Event interface {
	event()
}

// EventChange reports a binding edit. Value is float64, bool or a hex string.
type EventChange struct {
	Field string
	Value any
}

// EventAction reports a button press.
type EventAction struct {
	Action Action
}

func (EventChange) event() {}
func (EventAction) event() {}

type RowKind int

const (
	RowTitle RowKind = iota
	RowFolder
	RowButton
	RowField
)

type Row struct {
	Kind   RowKind
	Label  string
	Folder string
	Action Action
	Field  params.Field
}

type Pane struct {
	mu        sync.Mutex
	rows      []Row
	values    map[string]any
	expanded  bool
	collapsed map[string]bool
	cursor    int
	editing   bool
	editBuf   []rune

	events  chan Event
	changed chan struct{}
}

// New builds the pane for fields. It starts collapsed to its title row.
func New(fields []params.Field) *Pane {
	p := &Pane{
		values:    make(map[string]any),
		collapsed: make(map[string]bool),
		events:    make(chan Event, 64),
		changed:   make(chan struct{}, 1),
	}
	p.rows = append(p.rows, Row{Kind: RowTitle, Label: Title})

	p.rows = append(p.rows, Row{Kind: RowFolder, Label: FolderPreset, Folder: FolderPreset})
	for _, a := range []Action{ActionCapture, ActionLoadCapture, ActionResetDefaults, ActionExportJSON} {
		p.rows = append(p.rows, Row{Kind: RowButton, Label: string(a), Folder: FolderPreset, Action: a})
	}

	p.rows = append(p.rows, Row{Kind: RowFolder, Label: FolderRandomize, Folder: FolderRandomize})
	for _, g := range randomize.Groups {
		p.rows = append(p.rows, Row{Kind: RowButton, Label: string(g), Folder: FolderRandomize, Action: RandomizeAction(g)})
	}

	folder := ""
	for _, f := range fields {
		if f.Folder != folder {
			folder = f.Folder
			p.rows = append(p.rows, Row{Kind: RowFolder, Label: folder, Folder: folder})
		}
		p.rows = append(p.rows, Row{Kind: RowField, Label: f.Label, Folder: f.Folder, Field: f})
	}
	return p
}

// Events delivers edits and button presses in order.
func (p *Pane) Events() <-chan Event { return p.events }

// Changed is signalled whenever the pane needs redrawing.
func (p *Pane) Changed() <-chan struct{} { return p.changed }

// Refresh replaces the displayed values with values. Unknown names are kept
// so the pane can display them if a matching row exists.
func (p *Pane) Refresh(values map[string]any) {
	p.mu.Lock()
	for k, v := range values {
		p.values[k] = v
	}
	p.mu.Unlock()
	p.markChanged()
}

// Value returns what the pane currently displays for name.
func (p *Pane) Value(name string) any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[name]
}

// Rows returns every row, visible or not.
func (p *Pane) Rows() []Row {
	return append([]Row(nil), p.rows...)
}

// Visible returns the rows currently shown, in order.
func (p *Pane) Visible() []Row {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visibleLocked()
}

func (p *Pane) visibleLocked() []Row {
	if !p.expanded {
		return p.rows[:1]
	}
	out := make([]Row, 0, len(p.rows))
	for _, r := range p.rows {
		if (r.Kind == RowButton || r.Kind == RowField) && p.collapsed[r.Folder] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Cursor returns the index into Visible of the selected row.
func (p *Pane) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Selected returns the row under the cursor.
func (p *Pane) Selected() Row {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visibleLocked()[p.cursor]
}

// Editing reports whether a color is being typed, and the text so far.
func (p *Pane) Editing() (bool, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editing, string(p.editBuf)
}

func (p *Pane) Move(delta int) {
	p.mu.Lock()
	n := len(p.visibleLocked())
	p.cursor = min(max(p.cursor+delta, 0), n-1)
	p.mu.Unlock()
	p.markChanged()
}

// Step nudges the selected slider by dir steps, ten at a time when coarse.
func (p *Pane) Step(dir int, coarse bool) {
	p.mu.Lock()
	row := p.visibleLocked()[p.cursor]
	if row.Kind != RowField || row.Field.Kind != params.KindFloat {
		p.mu.Unlock()
		return
	}
	f := row.Field
	cur, _ := p.values[f.Name].(float64)
	n := dir
	if coarse {
		n *= 10
	}
	next := stepValue(cur, f, n)
	if next == cur {
		p.mu.Unlock()
		return
	}
	p.values[f.Name] = next
	p.mu.Unlock()

	p.emit(EventChange{Field: f.Name, Value: next})
}

// Toggle flips the selected boolean.
func (p *Pane) Toggle() {
	p.mu.Lock()
	row := p.visibleLocked()[p.cursor]
	if row.Kind != RowField || row.Field.Kind != params.KindBool {
		p.mu.Unlock()
		return
	}
	next := !truthy(p.values[row.Field.Name])
	p.values[row.Field.Name] = next
	p.mu.Unlock()

	p.emit(EventChange{Field: row.Field.Name, Value: next})
}

// Activate is the primary action on the selected row: expand or collapse a
// folder, press a button, flip a toggle, or start editing a color.
func (p *Pane) Activate() {
	p.mu.Lock()
	row := p.visibleLocked()[p.cursor]
	switch row.Kind {
	case RowTitle:
		p.expanded = !p.expanded
		p.cursor = 0
		p.mu.Unlock()
		p.markChanged()
	case RowFolder:
		p.collapsed[row.Folder] = !p.collapsed[row.Folder]
		p.mu.Unlock()
		p.markChanged()
	case RowButton:
		p.mu.Unlock()
		p.emit(EventAction{Action: row.Action})
	case RowField:
		switch row.Field.Kind {
		case params.KindBool:
			p.mu.Unlock()
			p.Toggle()
		case params.KindColor:
			s, _ := p.values[row.Field.Name].(string)
			p.editing = true
			p.editBuf = []rune(s)
			p.mu.Unlock()
			p.markChanged()
		default:
			p.mu.Unlock()
		}
	default:
		p.mu.Unlock()
	}
}

// TypeRune appends r to the color being edited.
func (p *Pane) TypeRune(r rune) {
	p.mu.Lock()
	if !p.editing || len(p.editBuf) >= 7 {
		p.mu.Unlock()
		return
	}
	p.editBuf = append(p.editBuf, r)
	p.mu.Unlock()
	p.markChanged()
}

func (p *Pane) Backspace() {
	p.mu.Lock()
	if p.editing && len(p.editBuf) > 0 {
		p.editBuf = p.editBuf[:len(p.editBuf)-1]
	}
	p.mu.Unlock()
	p.markChanged()
}

// CommitEdit finishes color editing. Invalid colors are discarded.
func (p *Pane) CommitEdit() {
	p.mu.Lock()
	if !p.editing {
		p.mu.Unlock()
		return
	}
	p.editing = false
	row := p.visibleLocked()[p.cursor]
	hex, ok := params.NormalizeHex(string(p.editBuf))
	p.editBuf = nil
	if !ok || hex == p.values[row.Field.Name] {
		p.mu.Unlock()
		p.markChanged()
		return
	}
	p.values[row.Field.Name] = hex
	p.mu.Unlock()

	p.emit(EventChange{Field: row.Field.Name, Value: hex})
}

func (p *Pane) CancelEdit() {
	p.mu.Lock()
	p.editing = false
	p.editBuf = nil
	p.mu.Unlock()
	p.markChanged()
}

func (p *Pane) emit(ev Event) {
	p.events <- ev
	p.markChanged()
}

func (p *Pane) markChanged() {
	select {
	case p.changed <- struct{}{}:
	default:
	}
}

func stepValue(cur float64, f params.Field, n int) float64 {
	if f.Step <= 0 {
		return cur
	}
	steps := math.Round((cur-f.Min)/f.Step) + float64(n)
	v := f.Min + steps*f.Step
	v = math.Min(math.Max(v, f.Min), f.Max)
	// keep values printable at the step's precision
	scale := math.Pow(10, float64(decimals(f.Step)))
	return math.Round(v*scale) / scale
}

func decimals(step float64) int {
	d := 0
	for d < 6 && math.Abs(step*math.Pow(10, float64(d))-math.Round(step*math.Pow(10, float64(d)))) > 1e-9 {
		d++
	}
	return d
}

func truthy(v any) bool {
	b, _ := v.(bool)
	return b
}
