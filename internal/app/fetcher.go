package app

import (
	"context"

	"github.com/five82/logsift/internal/api"
	"github.com/five82/logsift/internal/query"
	"github.com/five82/logsift/internal/ui"
)

// EngineFetcher runs viewer queries against the local filesystem.
type EngineFetcher struct {
	Engine *query.Engine
}

var _ ui.Fetcher = EngineFetcher{}

// FetchLogs implements ui.Fetcher. The engine is not cancellable mid-read;
// ctx is only checked before the query starts.
func (f EngineFetcher) FetchLogs(ctx context.Context, req api.Request) (query.Result, error) {
	if err := ctx.Err(); err != nil {
		return query.Result{}, err
	}
	return f.Engine.Run(query.Query{
		Source: req.Source,
		Folder: req.Folder,
		Text:   req.Filter,
		Level:  req.Level,
		Start:  req.Start,
		End:    req.End,
	})
}
