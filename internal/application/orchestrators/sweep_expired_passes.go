package orchestrators

import (
	"context"
	"log/slog"
	"time"
)

// PassSweeper flips lapsed active passes to expired.
type PassSweeper interface {
	SweepExpired(ctx context.Context, today time.Time) (int, error)
}

// SweepExpiredPassesDeps holds dependencies for the expiry sweep.
type SweepExpiredPassesDeps struct {
	PassStore PassSweeper
	Now       func() time.Time
}

// SweepExpiredPassesResult reports how many passes changed.
type SweepExpiredPassesResult struct {
	Expired int
}

// ExecuteSweepExpiredPasses persists the expired status of every active pass whose end date has passed.
// Read paths already treat such passes as expired; the sweep only brings stored status in line.
// PRE: none
// POST: No active pass has EndDate < today
// INVARIANT: Idempotent and monotonic; never reactivates a pass
func ExecuteSweepExpiredPasses(ctx context.Context, deps SweepExpiredPassesDeps) (SweepExpiredPassesResult, error) {
	n, err := deps.PassStore.SweepExpired(ctx, deps.Now())
	if err != nil {
		return SweepExpiredPassesResult{}, err
	}
	if n > 0 {
		slog.Info("pass_event", "event", "passes_expired", "count", n)
	}
	return SweepExpiredPassesResult{Expired: n}, nil
}

// StartSweepWorker runs the expiry sweep every interval until stopCh is closed.
// The returned channel is closed once the worker has exited.
// PRE: interval > 0
// POST: Worker goroutine running; a failed sweep is logged and retried on the next tick
func StartSweepWorker(deps SweepExpiredPassesDeps, interval time.Duration, stopCh <-chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), interval)
				if _, err := ExecuteSweepExpiredPasses(ctx, deps); err != nil {
					slog.Error("pass_event", "event", "sweep_failed", "error", err.Error())
				}
				cancel()
			case <-stopCh:
				slog.Info("pass_event", "event", "sweep_worker_stopped")
				return
			}
		}
	}()
	return done
}
