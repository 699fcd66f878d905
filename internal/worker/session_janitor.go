package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper removes idle sessions.
type Sweeper interface {
	Sweep(now time.Time) int
}

// StartSessionJanitor sweeps on every tick until ctx is cancelled. The
// returned channel closes once the loop has exited.
func StartSessionJanitor(ctx context.Context, sweeper Sweeper, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Debug("session janitor stopped")
				return
			case now := <-ticker.C:
				sweeper.Sweep(now)
			}
		}
	}()
	return done
}
