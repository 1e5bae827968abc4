package ui

import (
	"sort"
	"strconv"
)

// toggleBookmark marks or unmarks lines[line] and reports whether it is now
// marked. Marks follow the line text, so they survive a re-run.
func (r *resultState) toggleBookmark(line int) bool {
	if line < 0 || line >= len(r.lines) {
		return false
	}
	text := r.lines[line]
	if r.bookmarks[text] {
		delete(r.bookmarks, text)
		return false
	}
	if r.bookmarks == nil {
		r.bookmarks = make(map[string]bool)
	}
	r.bookmarks[text] = true
	return true
}

func (r resultState) isBookmarked(line int) bool {
	return len(r.bookmarks) > 0 && r.bookmarks[r.lines[line]]
}

// bookmarkedLines lists the marked lines present in the current results.
func (r resultState) bookmarkedLines() []int {
	if len(r.bookmarks) == 0 {
		return nil
	}
	var out []int
	for i, line := range r.lines {
		if r.bookmarks[line] {
			out = append(out, i)
		}
	}
	return out
}

func (r *resultState) clearBookmarks() {
	r.bookmarks = nil
	r.bookmarkIdx = -1
}

// lineAtRow maps a viewport row back to the result line drawn there.
func (r resultState) lineAtRow(row int) int {
	if len(r.rowOf) == 0 {
		return -1
	}
	i := sort.Search(len(r.rowOf), func(i int) bool { return r.rowOf[i] > row }) - 1
	return max(i, 0)
}

// currentLine is the line bookmark commands act on: the highlighted line
// while it is on screen, otherwise the line at the top of the pane.
func (m Model) currentLine() int {
	cur := m.results.current
	if cur >= 0 && cur < len(m.results.rowOf) {
		row := m.results.rowOf[cur]
		if row >= m.viewport.YOffset && row < m.viewport.YOffset+m.viewport.Height {
			return cur
		}
	}
	return m.results.lineAtRow(m.viewport.YOffset)
}

func (m *Model) toggleBookmark() {
	line := m.currentLine()
	if line < 0 {
		return
	}
	if m.results.toggleBookmark(line) {
		m.notice = "bookmarked line " + strconv.Itoa(line+1)
	} else {
		m.notice = "removed bookmark on line " + strconv.Itoa(line+1)
	}
	m.results.current = line
	m.refreshContent()
}

func (m *Model) stepBookmark(delta int) {
	marks := m.results.bookmarkedLines()
	n := len(marks)
	if n == 0 {
		m.notice = "no bookmarks"
		return
	}
	idx := m.results.bookmarkIdx
	switch {
	case idx < 0 || idx >= n:
		if delta > 0 {
			idx = 0
		} else {
			idx = n - 1
		}
	default:
		idx = ((idx+delta)%n + n) % n
	}
	m.results.bookmarkIdx = idx
	m.results.current = marks[idx]
	m.refreshContent()
	m.scrollToLine(marks[idx])
}
