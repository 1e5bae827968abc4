// Package ui implements the logsift terminal viewer with Bubble Tea.
//
// The screen has three parts:
//
//   - a two-row filter form (source, folder toggle, text, level, start, end)
//   - a results pane showing matched lines with line numbers, colorized
//     timestamps, level tokens and inline {...} JSON fragments
//   - a status bar with the line count, errors and search state
//
// Within results, search highlights lines in one of four modes, bookmarks
// mark lines for quick jumps, and export writes the selection to a file.
//
// Queries run through a Fetcher, which is either the local engine or an
// api.Client pointed at a running logsift server. Each query replaces the
// results wholesale; there is no follow mode. A failed query leaves the
// previous results visible and reports the error in the status bar.
//
// The theme and line-number preference persist through package prefs. The
// query inputs do not.
package ui
