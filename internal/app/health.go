package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/logsift/internal/api"
)

const (
	defaultServerAttempts = 3
	defaultBackoffBase    = 500 * time.Millisecond
	maxBackoff            = 5 * time.Second
	healthTimeout         = 3 * time.Second
)

type healthChecker interface {
	Health(ctx context.Context) error
}

var _ healthChecker = (*api.Client)(nil)

// waitForServer checks the remote server before the viewer takes over the
// terminal, retrying with exponential backoff.
func waitForServer(ctx context.Context, client healthChecker, attempts int, base time.Duration) error {
	var lastErr error
	for failures := 0; failures < attempts; failures++ {
		if failures > 0 {
			timer := time.NewTimer(calculateBackoff(failures-1, base))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		checkCtx, cancel := context.WithTimeout(ctx, healthTimeout)
		lastErr = client.Health(checkCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("logsift server unreachable after %d attempts: %w", attempts, lastErr)
}

// calculateBackoff doubles base for every prior failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
