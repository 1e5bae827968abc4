package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/logsift/internal/api"
	"github.com/five82/logsift/internal/config"
	"github.com/five82/logsift/internal/logfilter"
	"github.com/five82/logsift/internal/prefs"
	"github.com/five82/logsift/internal/query"
	"github.com/five82/logsift/internal/ui"
)

// Options configure the viewer.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/logsift/prefs.toml
	Source     string // empty uses default_source from the config
	Folder     bool
	Remote     string // host:port of a logsift server; empty queries locally
}

// NewEngine builds a query engine from cfg.
func NewEngine(cfg config.Config, logger zerolog.Logger) (*query.Engine, error) {
	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, fmt.Errorf("engine options: %w", err)
	}
	opts.Logger = &logger
	return query.New(opts), nil
}

// Run boots the viewer until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	format, err := logfilter.FormatByName(cfg.Format)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fetcher, label, err := newFetcher(ctx, cfg, opts.Remote)
	if err != nil {
		return err
	}

	source := strings.TrimSpace(opts.Source)
	if source == "" {
		source = cfg.DefaultSource
	}

	return ui.Run(ui.Options{
		Context:     ctx,
		Fetcher:     fetcher,
		Format:      format,
		SourceLabel: label,
		Source:      source,
		Folder:      opts.Folder,
		AutoRun:     true,
		Prefs:       userPrefs,
		PrefsPath:   prefsPath,
	})
}

// newFetcher picks the local engine or a remote server. The viewer owns the
// terminal, so the local engine logs nowhere.
func newFetcher(ctx context.Context, cfg config.Config, remote string) (ui.Fetcher, string, error) {
	if strings.TrimSpace(remote) == "" {
		engine, err := NewEngine(cfg, zerolog.Nop())
		if err != nil {
			return nil, "", err
		}
		return EngineFetcher{Engine: engine}, "local", nil
	}

	client, err := api.NewClient(remote)
	if err != nil {
		return nil, "", fmt.Errorf("init api client: %w", err)
	}
	if err := waitForServer(ctx, client, defaultServerAttempts, defaultBackoffBase); err != nil {
		return nil, "", err
	}
	return client, client.BaseURL(), nil
}
