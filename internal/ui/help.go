package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Filters",
			items: []helpItem{
				{"tab/shift+tab", "Next/previous field"},
				{"space/←/→", "Toggle folder, cycle level"},
				{"enter", "Run query"},
				{"esc", "Back to results"},
			},
		},
		{
			title: "Results",
			items: []helpItem{
				{"tab/f", "Edit filters"},
				{"r", "Re-run last query"},
				{"j/k", "Scroll down/up"},
				{"g/G", "Go to top/bottom"},
				{"ctrl+d/u", "Half page down/up"},
				{"w", "Toggle wrap"},
				{"#", "Toggle line numbers"},
			},
		},
		{
			title: "Search",
			items: []helpItem{
				{"/", "Search results"},
				{"tab", "Cycle mode while typing"},
				{"", "loose, strict, regex, range"},
				{"n/N", "Next/prev match"},
				{"esc", "Clear search"},
			},
		},
		{
			title: "Bookmarks",
			items: []helpItem{
				{"m", "Toggle bookmark"},
				{"'/b, B", "Next/prev bookmark"},
				{"M", "Clear bookmarks"},
				{"s", "Export results to a file"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme (" + strings.Join(ThemeNames(), ", ") + ")"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 34)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(15)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(46)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
