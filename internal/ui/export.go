package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logsift/internal/config"
)

type exportState struct {
	active bool
	input  textinput.Model
}

func newExportState() exportState {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 4096
	return exportState{input: ti}
}

type exportDoneMsg struct {
	path  string
	lines int
	err   error
}

// exportLines is what an export writes: the lines selected by the search
// when one is set, otherwise every result line.
func (m Model) exportLines() []string {
	r := m.results
	if r.searchQuery == "" || r.searchErr != nil {
		return r.lines
	}
	out := make([]string, 0, len(r.searchMatches))
	for _, idx := range r.searchMatches {
		out = append(out, r.lines[idx])
	}
	return out
}

func (m Model) defaultExportPath() string {
	name := "logsift-" + time.Now().Format("20060102-150405") + ".txt"
	return filepath.Join(m.exportDir, name)
}

func (m Model) startExport() (tea.Model, tea.Cmd) {
	if len(m.results.lines) == 0 {
		m.notice = "nothing to export"
		return m, nil
	}
	m.export.active = true
	m.export.input.SetValue(m.defaultExportPath())
	m.export.input.CursorEnd()
	cmd := m.export.input.Focus()
	return m, cmd
}

func (m Model) handleExportInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.export.active = false
		m.export.input.Blur()
		path := strings.TrimSpace(m.export.input.Value())
		if path == "" {
			m.notice = "export cancelled"
			return m, nil
		}
		return m, exportCmd(path, m.exportLines())

	case key.Matches(msg, m.keys.Escape):
		m.export.active = false
		m.export.input.Blur()
		m.notice = "export cancelled"
		return m, nil
	}

	var cmd tea.Cmd
	m.export.input, cmd = m.export.input.Update(msg)
	return m, cmd
}

func (m *Model) handleExportDone(msg exportDoneMsg) {
	if msg.err != nil {
		m.notice = ""
		m.req.err = msg.err
		return
	}
	m.notice = fmt.Sprintf("exported %d lines to %s", msg.lines, msg.path)
}

func exportCmd(path string, lines []string) tea.Cmd {
	return func() tea.Msg {
		resolved, err := writeExport(path, lines)
		return exportDoneMsg{path: resolved, lines: len(lines), err: err}
	}
}

// writeExport writes one line per entry to path through a temp file and
// rename, creating directories as needed.
func writeExport(path string, lines []string) (string, error) {
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve export path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	tmp := resolved + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := os.Rename(tmp, resolved); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write export: %w", err)
	}
	return resolved, nil
}
