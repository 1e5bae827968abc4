package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logsift/internal/api"
	"github.com/five82/logsift/internal/query"
)

// Fetcher runs one query. *api.Client implements it; the local engine is
// adapted in package app.
type Fetcher interface {
	FetchLogs(ctx context.Context, req api.Request) (query.Result, error)
}

var _ Fetcher = (*api.Client)(nil)

var errNoFetcher = errors.New("no log source configured")

// requestState tracks the in-flight and most recent query.
type requestState struct {
	seq     int
	loading bool
	last    *api.Request
	err     error
	elapsed time.Duration
}

type fetchResultMsg struct {
	seq     int
	res     query.Result
	elapsed time.Duration
}

type fetchErrorMsg struct {
	seq int
	err error
}

// startQuery issues req, superseding any query still in flight.
func (m *Model) startQuery(req api.Request) tea.Cmd {
	if m.fetcher == nil {
		m.req.err = errNoFetcher
		return nil
	}
	m.req.seq++
	m.req.loading = true
	m.req.last = &req
	return m.fetchCmd(req, m.req.seq)
}

func (m *Model) rerun() tea.Cmd {
	if m.req.last == nil {
		return m.startQuery(m.form.request())
	}
	return m.startQuery(*m.req.last)
}

func (m Model) fetchCmd(req api.Request, seq int) tea.Cmd {
	fetcher := m.fetcher
	parent := m.ctx
	timeout := m.fetchTimeout
	if fetcher == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		started := time.Now()
		res, err := fetcher.FetchLogs(ctx, req)
		if err != nil {
			return fetchErrorMsg{seq: seq, err: err}
		}
		return fetchResultMsg{seq: seq, res: res, elapsed: time.Since(started)}
	}
}

func (m *Model) handleResult(msg fetchResultMsg) {
	if msg.seq != m.req.seq {
		return
	}
	m.req.loading = false
	m.req.err = nil
	m.req.elapsed = msg.elapsed
	m.results.set(msg.res)
	m.refreshContent()
	m.viewport.GotoTop()
}

// handleFetchError keeps the previous results on screen.
func (m *Model) handleFetchError(msg fetchErrorMsg) {
	if msg.seq != m.req.seq {
		return
	}
	m.req.loading = false
	m.req.err = msg.err
}
