package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logsift/internal/api"
	"github.com/five82/logsift/internal/logfilter"
)

type field int

const (
	fieldSource field = iota
	fieldFolder
	fieldFilter
	fieldLevel
	fieldStart
	fieldEnd
	fieldCount
)

// levelChoices is the order the level selector cycles through.
var levelChoices = append([]logfilter.Level{logfilter.LevelAll}, logfilter.Levels...)

const (
	inputSource = iota
	inputFilter
	inputStart
	inputEnd
	inputCount
)

// boundWidth fits an RFC 3339 timestamp with offset.
const boundWidth = len("2006-01-02T15:04:05+08:00")

type formState struct {
	inputs [inputCount]textinput.Model
	folder bool
	level  int
	active field
}

func newFormState(source string, folder bool) formState {
	var f formState
	placeholders := [inputCount]string{
		inputSource: "path to a log file or folder",
		inputFilter: "text to match",
		inputStart:  "2024-01-01T00:00:00+08:00",
		inputEnd:    "2024-01-02T00:00:00+08:00",
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 4096
		f.inputs[i] = ti
	}
	f.inputs[inputSource].SetValue(source)
	f.folder = folder
	return f
}

// inputFor maps a form field to its text input, if it has one.
func inputFor(fl field) (int, bool) {
	switch fl {
	case fieldSource:
		return inputSource, true
	case fieldFilter:
		return inputFilter, true
	case fieldStart:
		return inputStart, true
	case fieldEnd:
		return inputEnd, true
	default:
		return 0, false
	}
}

func (f *formState) focusField(fl field) tea.Cmd {
	f.blur()
	f.active = fl
	if idx, ok := inputFor(fl); ok {
		return f.inputs[idx].Focus()
	}
	return nil
}

func (f *formState) blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *formState) cycleLevel(delta int) {
	n := len(levelChoices)
	f.level = ((f.level+delta)%n + n) % n
}

func (f formState) levelValue() logfilter.Level {
	return levelChoices[f.level]
}

// request builds a query from the current inputs. Values are trimmed; an
// empty bound disables the range filter.
func (f formState) request() api.Request {
	return api.Request{
		Source: strings.TrimSpace(f.inputs[inputSource].Value()),
		Folder: f.folder,
		Filter: f.inputs[inputFilter].Value(),
		Level:  string(f.levelValue()),
		Start:  strings.TrimSpace(f.inputs[inputStart].Value()),
		End:    strings.TrimSpace(f.inputs[inputEnd].Value()),
	}
}

// resize splits the terminal width between the inputs on each form row.
//
//	row 1: Source [.........................]  Folder [x]
//	row 2: Filter [..........]  Level ‹ Warning ›  Start [...]  End [...]
func (f *formState) resize(width int) {
	row1 := width - len(" Source ") - len("  Folder [x] ") - 1
	f.inputs[inputSource].Width = max(row1, 10)

	fixed := len(" Filter ") + len("  Level ‹ Warning › ") + len("  Start ") + len("  End ") + 1
	remaining := width - fixed
	bound := min(boundWidth, max(remaining/3, 8))
	f.inputs[inputStart].Width = bound
	f.inputs[inputEnd].Width = bound
	f.inputs[inputFilter].Width = max(remaining-2*bound, 8)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Run):
		cmd := m.startQuery(m.form.request())
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		m.form.blur()
		m.focus = focusResults
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		cmd := m.form.focusField((m.form.active + 1) % fieldCount)
		return m, cmd

	case key.Matches(msg, m.keys.PrevField):
		cmd := m.form.focusField((m.form.active + fieldCount - 1) % fieldCount)
		return m, cmd
	}

	switch m.form.active {
	case fieldFolder:
		if key.Matches(msg, m.keys.Toggle) || key.Matches(msg, m.keys.ToggleBack) {
			m.form.folder = !m.form.folder
		}
		return m, nil
	case fieldLevel:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			m.form.cycleLevel(1)
		case key.Matches(msg, m.keys.ToggleBack):
			m.form.cycleLevel(-1)
		}
		return m, nil
	}

	idx, ok := inputFor(m.form.active)
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.form.inputs[idx], cmd = m.form.inputs[idx].Update(msg)
	return m, cmd
}

func (m Model) renderForm() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	editing := m.focus == focusForm

	label := func(name string, fl field) string {
		style := styles.MutedText
		if editing && m.form.active == fl {
			style = styles.AccentText.Bold(true)
		}
		return bg.Render(name, style)
	}
	input := func(idx int) string {
		return bg.Render(m.form.inputs[idx].View(), styles.Text)
	}

	checked := "[ ]"
	if m.form.folder {
		checked = "[x]"
	}
	level := "‹ " + string(m.form.levelValue()) + " ›"

	row1 := bg.Space() + label("Source", fieldSource) + bg.Space() + input(inputSource) +
		bg.Spaces(2) + label("Folder", fieldFolder) + bg.Space() + bg.Render(checked, styles.WarningText)
	row2 := bg.Space() + label("Filter", fieldFilter) + bg.Space() + input(inputFilter) +
		bg.Spaces(2) + label("Level", fieldLevel) + bg.Space() + bg.Render(level, styles.LevelStyle(m.form.levelValue())) +
		bg.Spaces(2) + label("Start", fieldStart) + bg.Space() + input(inputStart) +
		bg.Spaces(2) + label("End", fieldEnd) + bg.Space() + input(inputEnd)

	return bg.FillLine(row1, m.width) + "\n" + bg.FillLine(row2, m.width)
}
