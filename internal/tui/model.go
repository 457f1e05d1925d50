// Package tui draws the hierarchy panel in a terminal. Model holds the
// terminal-only view state (focus, cursor, scroll) and turns key presses
// into queued session messages; App owns the tcell screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/OpenTraceLab/OpenTraceWave/internal/session"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/filter"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/hierarchy"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/message"
	"github.com/OpenTraceLab/OpenTraceWave/pkg/scope"
)

type pane int

const (
	paneScopes pane = iota
	paneVars
	paneTree
	numPanes
)

// LineKind selects the style a line is drawn with.
type LineKind int

const (
	LineTitle LineKind = iota
	LineFilter
	LineFilterError
	LineRow
	LineActiveRow
	LineSection
	LineStatus
)

// Line is one rendered terminal line.
type Line struct {
	Text   string
	Kind   LineKind
	Cursor bool
}

const helpText = "q quit  / filter  t type  c case  a add all  x clear  tab pane"

// Model is the terminal panel view state.
type Model struct {
	state   *session.State
	style   hierarchy.Style
	opts    scope.Options
	queue   message.Queue
	actions hierarchy.Actions

	focus  pane
	cursor [numPanes]int
	offset [numPanes]int
}

// NewModel creates a model over state.
func NewModel(state *session.State, style hierarchy.Style, opts scope.Options) *Model {
	m := &Model{state: state, style: style, opts: opts, focus: paneScopes}
	if style == hierarchy.Tree {
		m.focus = paneTree
	}
	m.actions = hierarchy.Actions{Queue: &m.queue}
	return m
}

// Apply hands the queued messages to the session. The run loop calls it
// once per redraw.
func (m *Model) Apply() int { return m.state.Drain(&m.queue) }

// Pending is the number of queued messages.
func (m *Model) Pending() int { return m.queue.Len() }

func (m *Model) input() hierarchy.Input { return m.state.Input(m.style, m.opts) }

// Frame builds the current panel content.
func (m *Model) Frame() hierarchy.Frame { return hierarchy.Build(m.input()) }

func (m *Model) rows(fr hierarchy.Frame, p pane) []hierarchy.Row {
	switch p {
	case paneScopes:
		return fr.Scopes
	case paneVars:
		return fr.Variables
	default:
		return fr.Tree
	}
}

func (m *Model) current(fr hierarchy.Frame) (hierarchy.Row, bool) {
	rows := m.rows(fr, m.focus)
	if len(rows) == 0 {
		return hierarchy.Row{}, false
	}
	return rows[m.clampCursor(len(rows))], true
}

func (m *Model) clampCursor(n int) int {
	c := max(0, min(m.cursor[m.focus], n-1))
	m.cursor[m.focus] = c
	return c
}

func (m *Model) move(fr hierarchy.Frame, delta int) {
	n := len(m.rows(fr, m.focus))
	if n == 0 {
		return
	}
	m.cursor[m.focus] += delta
	m.clampCursor(n)
}

// HandleKey processes one key press. It returns false when the user asked
// to quit.
func (m *Model) HandleKey(ev *tcell.EventKey) bool {
	fr := m.Frame()
	if m.state.FilterFocused() {
		m.handleFilterKey(ev, fr.Filter)
		return true
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		m.move(fr, -1)
	case tcell.KeyDown:
		m.move(fr, 1)
	case tcell.KeyPgUp:
		m.move(fr, -10)
	case tcell.KeyPgDn:
		m.move(fr, 10)
	case tcell.KeyTab, tcell.KeyBacktab:
		if m.style == hierarchy.Separate {
			m.focus = paneScopes + paneVars - m.focus
		}
	case tcell.KeyEnter:
		if row, ok := m.current(fr); ok {
			m.actions.Activate(row)
		}
	case tcell.KeyRight:
		if row, ok := m.current(fr); ok && row.Expandable && !row.Expanded {
			m.actions.Toggle(row)
		}
	case tcell.KeyLeft:
		if row, ok := m.current(fr); ok && row.Expanded {
			m.actions.Toggle(row)
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'j':
			m.move(fr, 1)
		case 'k':
			m.move(fr, -1)
		case '/':
			m.actions.FocusFilter(true)
		case 'a':
			m.actions.AddAll(m.input())
		case 'c':
			m.actions.ToggleCaseInsensitive(fr.Filter)
		case 't':
			m.actions.SelectFilterType(nextType(fr.Filter.Type))
		case 'x':
			m.actions.ClearFilter()
		case ' ':
			if row, ok := m.current(fr); ok {
				m.actions.Toggle(row)
			}
		}
	}
	return true
}

func (m *Model) handleFilterKey(ev *tcell.EventKey, f filter.VariableFilter) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter:
		m.actions.FocusFilter(false)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(f.Pattern); len(r) > 0 {
			m.actions.EditFilter(string(r[:len(r)-1]))
		}
	case tcell.KeyCtrlU:
		m.actions.ClearFilter()
	case tcell.KeyRune:
		m.actions.EditFilter(f.Pattern + string(ev.Rune()))
	}
}

func nextType(t filter.NameFilterType) filter.NameFilterType {
	all := filter.AllNameFilterTypes()
	for i, typ := range all {
		if typ == t {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Lines lays the panel out into at most height lines.
func (m *Model) Lines(height int) []Line {
	fr := m.Frame()
	var lines []Line
	if height <= 0 {
		return lines
	}
	filterLine := Line{Text: m.filterText(fr.Filter), Kind: LineFilter}
	if fr.FilterError {
		filterLine.Kind = LineFilterError
	}

	if m.state.Data() == nil {
		lines = append(lines, Line{Text: "No data loaded.", Kind: LineTitle})
	} else if m.style == hierarchy.Tree {
		lines = append(lines, filterLine)
		lines = append(lines, m.paneLines(fr, paneTree, height-2)...)
	} else {
		body := max(2, height-4)
		scopeH := max(1, body*2/5)
		lines = append(lines, Line{Text: "Scopes", Kind: LineTitle})
		lines = append(lines, m.paneLines(fr, paneScopes, scopeH)...)
		lines = append(lines, Line{Text: "Variables", Kind: LineTitle}, filterLine)
		lines = append(lines, m.paneLines(fr, paneVars, body-scopeH)...)
	}
	status := fmt.Sprintf("%s  [%d added]", helpText, len(m.state.Variables())+len(m.state.Items()))
	lines = append(lines, Line{Text: status, Kind: LineStatus})
	if len(lines) > height {
		lines = lines[:height]
	}
	return lines
}

func (m *Model) filterText(f filter.VariableFilter) string {
	caseMark := "Aa"
	if f.CaseInsensitive {
		caseMark = "aa"
	}
	cursor := ""
	if m.state.FilterFocused() {
		cursor = "_"
	}
	return fmt.Sprintf("[%s] %s > %s%s", f.Type, caseMark, f.Pattern, cursor)
}

// paneLines renders the visible window of one pane, keeping the cursor in
// view.
func (m *Model) paneLines(fr hierarchy.Frame, p pane, height int) []Line {
	rows := m.rows(fr, p)
	if len(rows) == 0 || height <= 0 {
		return nil
	}
	cur := max(0, min(m.cursor[p], len(rows)-1))
	m.cursor[p] = cur
	off := m.offset[p]
	if cur < off {
		off = cur
	}
	if cur >= off+height {
		off = cur - height + 1
	}
	off = max(0, min(off, max(0, len(rows)-height)))
	m.offset[p] = off

	visible := hierarchy.Window(rows, off, height)
	lines := make([]Line, len(visible))
	for i, row := range visible {
		lines[i] = Line{
			Text:   rowText(row),
			Kind:   rowKind(row),
			Cursor: p == m.focus && off+i == cur,
		}
	}
	return lines
}

func rowText(row hierarchy.Row) string {
	marker := " "
	if row.Expandable {
		marker = "▸"
		if row.Expanded {
			marker = "▾"
		}
	}
	return strings.Repeat("  ", row.Depth) + marker + " " + row.Label
}

func rowKind(row hierarchy.Row) LineKind {
	switch {
	case row.Active:
		return LineActiveRow
	case row.Kind == hierarchy.RowParameterHeader, row.Kind == hierarchy.RowParameter:
		return LineSection
	}
	return LineRow
}
