package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/logsift/internal/logfilter"
	"github.com/five82/logsift/internal/query"
)

// Config captures engine tuning and the defaults for each entry point.
type Config struct {
	WindowBytes       int64
	MaxResults        int // zero means unlimited
	Format            string
	UTCOffset         string
	RangeEndInclusive bool
	CapPolicy         string
	APIBind           string
	DefaultSource     string
}

const (
	defaultConfigPath = "~/.config/logsift/config.toml"
	defaultWindow     = 1 << 20
	defaultFormat     = "standard"
	defaultUTCOffset  = "+08:00"
	defaultCapPolicy  = "earliest"
	defaultAPIBind    = "127.0.0.1:7488"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		WindowBytes: defaultWindow,
		MaxResults:  query.DefaultMaxResults,
		Format:      defaultFormat,
		UTCOffset:   defaultUTCOffset,
		CapPolicy:   defaultCapPolicy,
		APIBind:     defaultAPIBind,
	}
}

// Load locates and parses the logsift config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		WindowBytes       int64  `toml:"window_bytes"`
		MaxResults        *int   `toml:"max_results"`
		Format            string `toml:"format"`
		UTCOffset         string `toml:"utc_offset"`
		RangeEndInclusive bool   `toml:"range_end_inclusive"`
		CapPolicy         string `toml:"cap_policy"`
		APIBind           string `toml:"api_bind"`
		DefaultSource     string `toml:"default_source"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.WindowBytes > 0 {
		cfg.WindowBytes = raw.WindowBytes
	}
	if raw.MaxResults != nil {
		if *raw.MaxResults < 0 {
			return Config{}, fmt.Errorf("parse config: max_results must not be negative")
		}
		cfg.MaxResults = *raw.MaxResults
	}
	cfg.Format = orDefault(raw.Format, defaultFormat)
	cfg.UTCOffset = orDefault(raw.UTCOffset, defaultUTCOffset)
	cfg.RangeEndInclusive = raw.RangeEndInclusive
	cfg.CapPolicy = orDefault(raw.CapPolicy, defaultCapPolicy)
	cfg.APIBind = orDefault(raw.APIBind, defaultAPIBind)
	if src := strings.TrimSpace(raw.DefaultSource); src != "" {
		cfg.DefaultSource = mustExpand(src)
	}

	if _, err := cfg.EngineOptions(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// EngineOptions converts the config into query engine options.
func (c Config) EngineOptions() (query.Options, error) {
	format, err := logfilter.FormatByName(c.Format)
	if err != nil {
		return query.Options{}, err
	}
	zone, err := logfilter.ParseZone(c.UTCOffset)
	if err != nil {
		return query.Options{}, err
	}
	policy, err := query.ParseCapPolicy(c.CapPolicy)
	if err != nil {
		return query.Options{}, err
	}
	maxResults := c.MaxResults
	if maxResults == 0 {
		maxResults = -1
	}
	return query.Options{
		WindowBytes:  c.WindowBytes,
		MaxResults:   maxResults,
		CapPolicy:    policy,
		Format:       format,
		Zone:         zone,
		EndInclusive: c.RangeEndInclusive,
	}, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
