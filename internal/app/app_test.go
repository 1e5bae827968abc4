package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/logsift/internal/api"
	"github.com/five82/logsift/internal/config"
	"github.com/five82/logsift/internal/query"
)

func TestEngineFetcher_TranslatesRequest(t *testing.T) {
	dir := t.TempDir()
	lines := []string{
		"2024-01-01 10:00:00 [Info] start",
		"2024-01-01 10:05:00 [Error] failure X",
		"2024-01-01 10:10:00 [Info] end",
	}
	if err := os.WriteFile(filepath.Join(dir, "app.log"), []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	engine, err := NewEngine(config.Default(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}
	f := EngineFetcher{Engine: engine}

	res, err := f.FetchLogs(context.Background(), api.Request{
		Source: dir,
		Folder: true,
		Filter: "X",
		Level:  "Error",
		Start:  "2024-01-01T10:00:00+08:00",
		End:    "2024-01-01T11:00:00+08:00",
	})
	if err != nil {
		t.Fatalf("FetchLogs returned error: %v", err)
	}
	if want := []string{lines[1]}; !reflect.DeepEqual(res.Lines, want) {
		t.Fatalf("lines = %q, want %q", res.Lines, want)
	}
	if res.File != filepath.Join(dir, "app.log") {
		t.Fatalf("file = %q", res.File)
	}
}

func TestEngineFetcher_CancelledContext(t *testing.T) {
	engine, err := NewEngine(config.Default(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = EngineFetcher{Engine: engine}.FetchLogs(ctx, api.Request{Source: "/nonexistent.log"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNewEngine_RejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.CapPolicy = "sideways"
	if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("NewEngine returned nil error for unknown cap policy")
	}
}

func TestNewFetcher_LocalByDefault(t *testing.T) {
	f, label, err := newFetcher(context.Background(), config.Default(), "  ")
	if err != nil {
		t.Fatalf("newFetcher returned error: %v", err)
	}
	if label != "local" {
		t.Fatalf("label = %q, want local", label)
	}
	if _, ok := f.(EngineFetcher); !ok {
		t.Fatalf("fetcher = %T, want EngineFetcher", f)
	}
	_, err = f.FetchLogs(context.Background(), api.Request{})
	if query.KindOf(err) != query.KindBadInput {
		t.Fatalf("blank source err = %v, want bad input", err)
	}
}

type flakyChecker struct {
	failUntil int
	calls     int
}

func (c *flakyChecker) Health(context.Context) error {
	c.calls++
	if c.calls <= c.failUntil {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitForServer_RetriesUntilHealthy(t *testing.T) {
	c := &flakyChecker{failUntil: 2}
	if err := waitForServer(context.Background(), c, 3, time.Millisecond); err != nil {
		t.Fatalf("waitForServer returned error: %v", err)
	}
	if c.calls != 3 {
		t.Fatalf("calls = %d, want 3", c.calls)
	}
}

func TestWaitForServer_GivesUp(t *testing.T) {
	c := &flakyChecker{failUntil: 10}
	err := waitForServer(context.Background(), c, 2, time.Millisecond)
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("err = %v, want wrapped connection error", err)
	}
	if c.calls != 2 {
		t.Fatalf("calls = %d, want 2", c.calls)
	}
}

func TestWaitForServer_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &flakyChecker{failUntil: 10}
	if err := waitForServer(ctx, c, 3, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := 500 * time.Millisecond

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 500 * time.Millisecond},
		{"negative failures", -1, 500 * time.Millisecond},
		{"one failure", 1, time.Second},
		{"two failures", 2, 2 * time.Second},
		{"three failures", 3, 4 * time.Second},
		{"four failures capped", 4, maxBackoff},
		{"many failures capped", 40, maxBackoff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calculateBackoff(tt.failures, base); got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, base, got, tt.want)
			}
		})
	}
}
