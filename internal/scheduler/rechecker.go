package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Rechecker invokes a global batch on a fixed interval. A cycle is skipped,
// not queued, while the previous one is still running, so batches never
// overlap.
type Rechecker struct {
	Logger   *zap.Logger
	Batch    *Batch
	Interval time.Duration

	running sync.Mutex
}

func NewRechecker(logger *zap.Logger, batch *Batch, interval time.Duration) *Rechecker {
	if interval < 0 {
		interval = 0
	}
	return &Rechecker{Logger: logger, Batch: batch, Interval: interval}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled. Interval 0 disables the loop.
func (r *Rechecker) Run(ctx context.Context) {
	if r.Interval == 0 {
		r.Logger.Info("rechecker_disabled")
		return
	}
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	r.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("rechecker_stopped")
			return
		case <-t.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Rechecker) runOnce(ctx context.Context) {
	if !r.running.TryLock() {
		r.Logger.Warn("rechecker_cycle_skipped")
		return
	}
	defer r.running.Unlock()

	start := time.Now()
	if err := r.Batch.Run(ctx, ""); err != nil {
		r.Logger.Warn("rechecker_batch_error", zap.Error(err))
		return
	}
	r.Logger.Debug("rechecker_batch_done", zap.Duration("took", time.Since(start)))
}
