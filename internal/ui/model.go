package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logsift/internal/logfilter"
	"github.com/five82/logsift/internal/prefs"
)

const defaultFetchTimeout = 30 * time.Second

// focusArea is the part of the screen that receives keys.
type focusArea int

const (
	focusForm focusArea = iota
	focusResults
)

// Options configures the viewer.
type Options struct {
	Context context.Context
	Fetcher Fetcher
	// Format is used for colorizing; it does not affect filtering.
	Format logfilter.Format
	// SourceLabel names where queries run, e.g. "local" or a server URL.
	SourceLabel string

	Source string
	Folder bool
	// AutoRun runs the initial query on start when Source is set.
	AutoRun bool

	Prefs     prefs.Prefs
	PrefsPath string // empty disables saving

	// ExportDir is where exports are proposed; empty means the working directory.
	ExportDir string

	FetchTimeout time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx          context.Context
	fetcher      Fetcher
	format       logfilter.Format
	sourceLabel  string
	prefsPath    string
	exportDir    string
	fetchTimeout time.Duration
	autoRun      bool
	keys         keyMap

	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	focus    focusArea

	form     formState
	results  resultState
	export   exportState
	viewport viewport.Model
	req      requestState
	notice   string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	format := opts.Format
	if format.Name == "" {
		format = logfilter.FormatStandard
	}
	timeout := opts.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	label := strings.TrimSpace(opts.SourceLabel)
	if label == "" {
		label = "local"
	}

	m := Model{
		ctx:          ctx,
		fetcher:      opts.Fetcher,
		format:       format,
		sourceLabel:  label,
		prefsPath:    opts.PrefsPath,
		exportDir:    opts.ExportDir,
		fetchTimeout: timeout,
		autoRun:      opts.AutoRun && strings.TrimSpace(opts.Source) != "",
		keys:         DefaultKeyMap(),
		theme:        GetTheme(opts.Prefs.Theme),
		form:         newFormState(opts.Source, opts.Folder),
		results:      newResultState(!opts.Prefs.HideLineNumbers),
		export:       newExportState(),
		viewport:     viewport.New(0, 0),
	}
	if m.autoRun {
		m.focus = focusResults
		m.form.blur()
		req := m.form.request()
		m.req.last = &req
		if m.fetcher == nil {
			m.req.err = errNoFetcher
		} else {
			m.req.loading = true
		}
	} else {
		m.form.focusField(fieldSource)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.autoRun && m.req.last != nil {
		return m.fetchCmd(*m.req.last, m.req.seq)
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case fetchResultMsg:
		m.handleResult(msg)
		return m, nil

	case fetchErrorMsg:
		m.handleFetchError(msg)
		return m, nil

	case exportDoneMsg:
		m.handleExportDone(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderForm())
	b.WriteString("\n")
	b.WriteString(m.renderResults())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	m.notice = ""
	if m.focus == focusForm {
		return m.handleFormKey(msg)
	}
	if m.export.active {
		return m.handleExportInput(msg)
	}
	if m.results.searchActive {
		return m.handleSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.EditForm):
		m.focus = focusForm
		cmd := m.form.focusField(m.form.active)
		return m, cmd

	case key.Matches(msg, m.keys.Rerun):
		cmd := m.rerun()
		return m, cmd
	}

	return m.handleResultsKey(msg)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, HideLineNumbers: !m.results.lineNumbers}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.req.err = err
	}
}

// layout sizes the inputs and the results viewport to the terminal.
func (m *Model) layout() {
	m.form.resize(m.width)
	m.viewport.Width = max(m.width-2, 1)
	m.viewport.Height = max(m.height-chromeHeight, 1)
	m.refreshContent()
}

// Rows used by everything except the results viewport: header, two form
// rows, the box borders and the status bar.
const chromeHeight = 6

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("logsift", styles.Logo),
		bg.Render(m.sourceLabel, styles.MutedText),
	}
	if m.req.loading {
		parts = append(parts, bg.Render("querying…", styles.WarningText))
	}
	sep := bg.Space() + bg.Render("•", styles.FaintText) + bg.Space()
	content := bg.Space() + strings.Join(parts, sep)
	return bg.FillLine(content, m.width)
}

// renderBox draws a rounded border with title embedded in the top edge.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	borderColor := m.theme.Border
	if focused {
		borderColor = m.theme.BorderFocus
	}
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	styles := m.theme.Styles()

	inner := max(width-2, 1)
	label := " " + truncate(title, max(inner-4, 1)) + " "
	fill := max(inner-1-lipgloss.Width(label), 0)
	top := edge.Render(border.TopLeft+border.Top) +
		styles.AccentText.Render(label) +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	body := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(inner).
		Height(max(height-2, 1)).
		Render(content)
	return top + "\n" + body
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
