package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logsift/internal/query"
)

// resultState holds the lines of the last successful query and the
// in-results search.
type resultState struct {
	lines     []string
	file      string
	offset    int64
	truncated bool
	hasRun    bool

	wrap        bool
	lineNumbers bool
	// rowOf[i] is the first viewport row of lines[i].
	rowOf []int

	// current is the highlighted line, or -1.
	current int

	searchActive   bool
	searchInput    textinput.Model
	searchMode     searchMode
	searchQuery    string
	searchMatches  []int
	searchMatchIdx int
	searchErr      error

	// bookmarks holds marked line texts.
	bookmarks   map[string]bool
	bookmarkIdx int
}

func newResultState(lineNumbers bool) resultState {
	ti := textinput.New()
	ti.Placeholder = "Search results..."
	ti.CharLimit = 200
	return resultState{
		lineNumbers: lineNumbers,
		current:     -1,
		searchInput: ti,
		bookmarkIdx: -1,
	}
}

func (r *resultState) set(res query.Result) {
	r.lines = res.Lines
	r.file = res.File
	r.offset = res.Offset
	r.truncated = res.Truncated
	r.hasRun = true
	r.current = -1
	r.bookmarkIdx = -1
	r.findMatches()
	r.searchMatchIdx = 0
}

// findMatches records the lines selected by the search query and mode.
func (r *resultState) findMatches() {
	r.searchMatches, r.searchErr = matchLines(r.lines, r.searchQuery, r.searchMode)
}

func (r *resultState) clearSearch() {
	r.searchQuery = ""
	r.searchMatches = nil
	r.searchMatchIdx = 0
	r.searchErr = nil
	r.current = -1
}

func (r resultState) activeMatch() int {
	if len(r.searchMatches) == 0 || r.searchMatchIdx >= len(r.searchMatches) {
		return -1
	}
	return r.searchMatches[r.searchMatchIdx]
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.results.searchActive = true
		m.results.searchInput.SetValue("")
		cmd := m.results.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextMatch):
		m.stepMatch(1)
	case key.Matches(msg, m.keys.PrevMatch):
		m.stepMatch(-1)

	case key.Matches(msg, m.keys.Escape):
		if m.results.searchQuery != "" {
			m.results.clearSearch()
			m.refreshContent()
		}

	case key.Matches(msg, m.keys.Bookmark):
		m.toggleBookmark()
	case key.Matches(msg, m.keys.NextBookmark):
		m.stepBookmark(1)
	case key.Matches(msg, m.keys.PrevBookmark):
		m.stepBookmark(-1)
	case key.Matches(msg, m.keys.ClearBookmarks):
		m.results.clearBookmarks()
		m.notice = "bookmarks cleared"
		m.refreshContent()

	case key.Matches(msg, m.keys.Export):
		return m.startExport()

	case key.Matches(msg, m.keys.ToggleWrap):
		m.results.wrap = !m.results.wrap
		m.refreshContent()

	case key.Matches(msg, m.keys.ToggleLineNo):
		m.results.lineNumbers = !m.results.lineNumbers
		m.savePrefs()
		m.refreshContent()

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
	}
	return m, nil
}

func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.results.searchActive = false
		m.results.searchInput.Blur()
		m.results.searchQuery = m.results.searchInput.Value()
		m.results.findMatches()
		m.results.searchMatchIdx = 0
		m.results.current = m.results.activeMatch()
		m.refreshContent()
		m.scrollToMatch()
		return m, nil

	case key.Matches(msg, m.keys.SearchMode):
		m.results.searchMode = m.results.searchMode.next()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.results.searchActive = false
		m.results.searchInput.Blur()
		m.results.searchInput.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.results.searchInput, cmd = m.results.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) stepMatch(delta int) {
	n := len(m.results.searchMatches)
	if n == 0 {
		return
	}
	m.results.searchMatchIdx = ((m.results.searchMatchIdx+delta)%n + n) % n
	m.results.current = m.results.activeMatch()
	m.refreshContent()
	m.scrollToMatch()
}

func (m *Model) scrollToMatch() {
	m.scrollToLine(m.results.activeMatch())
}

// scrollToLine centers line in the viewport when possible.
func (m *Model) scrollToLine(line int) {
	if line < 0 || line >= len(m.results.rowOf) {
		return
	}
	m.viewport.SetYOffset(max(m.results.rowOf[line]-m.viewport.Height/2, 0))
}

// refreshContent re-renders every result row into the viewport.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) renderContent() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles()
	width := m.viewport.Width

	if len(m.results.lines) == 0 {
		m.results.rowOf = nil
		msg := "Enter a source and press enter to query"
		if m.results.hasRun {
			msg = "No matching lines"
		}
		return bg.FillLine(bg.Render(msg, styles.MutedText), width)
	}

	gutter := 0
	if m.results.lineNumbers {
		gutter = max(len(strconv.Itoa(len(m.results.lines))), 4)
	}
	textWidth := width
	if gutter > 0 {
		// number, bookmark mark, rule and a space
		textWidth -= gutter + 3
	}

	matchSet := make(map[int]bool, len(m.results.searchMatches))
	for _, idx := range m.results.searchMatches {
		matchSet[idx] = true
	}
	current := m.results.current

	rowOf := make([]int, len(m.results.lines))
	var rows []string
	for i, line := range m.results.lines {
		rowOf[i] = len(rows)
		lineBg := bg
		if i == current {
			lineBg = NewBgStyle(m.theme.SelectionBg)
		}
		numStyle := styles.FaintText
		if matchSet[i] {
			numStyle = styles.AccentText
		}

		laid := layoutSegments(splitLine(line, m.format), textWidth, m.results.wrap)
		for j, segs := range laid {
			var b strings.Builder
			if gutter > 0 {
				num, mark := strings.Repeat(" ", gutter), " "
				if j == 0 {
					num = fmt.Sprintf("%*d", gutter, i+1)
					if m.results.isBookmarked(i) {
						mark = "*"
					}
				}
				b.WriteString(lineBg.Render(num, numStyle))
				b.WriteString(lineBg.Render(mark, styles.WarningText))
				b.WriteString(lineBg.Render("│ ", numStyle))
			}
			for _, seg := range segs {
				b.WriteString(lineBg.Render(seg.text, m.segmentStyle(seg, styles)))
			}
			rows = append(rows, lineBg.FillLine(b.String(), width))
		}
	}
	m.results.rowOf = rowOf
	return strings.Join(rows, "\n")
}

func (m Model) segmentStyle(seg segment, styles Styles) lipgloss.Style {
	switch seg.kind {
	case segTimestamp:
		return styles.FaintText
	case segLevel:
		return styles.LevelStyle(seg.level)
	case segJSON:
		return styles.JSONText
	default:
		return styles.Text
	}
}

func (m Model) renderResults() string {
	title := "Results"
	if m.results.file != "" {
		title = m.results.file
	}
	height := m.viewport.Height + 2
	return m.renderBox(title, m.viewport.View(), m.width, height, m.focus == focusResults)
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	var parts []string

	switch {
	case m.export.active:
		parts = append(parts, bg.Render("export to "+m.export.input.View(), styles.AccentText))
	case m.results.searchActive:
		parts = append(parts, bg.Render(m.results.searchMode.String()+" /"+m.results.searchInput.View(), styles.AccentText))
	case m.req.err != nil:
		parts = append(parts, bg.Render(m.req.err.Error(), styles.DangerText))
	case m.results.searchErr != nil:
		parts = append(parts, bg.Render(m.results.searchErr.Error(), styles.DangerText))
	case m.notice != "":
		parts = append(parts, bg.Render(m.notice, styles.AccentText))
	case m.results.searchQuery != "" && len(m.results.searchMatches) == 0:
		parts = append(parts, bg.Render("Pattern not found: "+m.results.searchQuery, styles.DangerText))
	case m.results.searchQuery != "":
		parts = append(parts,
			bg.Render("/"+m.results.searchQuery, styles.AccentText),
			bg.Render(fmt.Sprintf("%d/%d", m.results.searchMatchIdx+1, len(m.results.searchMatches)), styles.WarningText),
		)
	}

	if m.results.hasRun {
		summary := fmt.Sprintf("%d lines", len(m.results.lines))
		if m.results.truncated {
			summary += " (capped)"
		}
		if marks := len(m.results.bookmarkedLines()); marks > 0 {
			summary += fmt.Sprintf(", %d marked", marks)
		}
		parts = append(parts, bg.Render(summary, styles.FaintText))
		if m.results.offset > 0 {
			parts = append(parts, bg.Render(fmt.Sprintf("from byte %d", m.results.offset), styles.FaintText))
		}
		if m.req.elapsed > 0 {
			parts = append(parts, bg.Render(m.req.elapsed.Round(time.Millisecond).String(), styles.FaintText))
		}
	}
	parts = append(parts, bg.Render("? help", styles.MutedText))

	sep := bg.Space() + bg.Render("•", styles.FaintText) + bg.Space()
	content := bg.Space() + strings.Join(parts, sep)
	return bg.FillLine(truncateStyled(content, m.width), m.width)
}

// truncateStyled cuts rendered content that would wrap the status bar.
func truncateStyled(content string, width int) string {
	if lipgloss.Width(content) <= width {
		return content
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(content)
}
