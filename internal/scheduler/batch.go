package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/shekokarmahesh/Status-App-Backend/internal/domain"
	"github.com/shekokarmahesh/Status-App-Backend/internal/metrics"
	"github.com/shekokarmahesh/Status-App-Backend/internal/probe"
	"github.com/shekokarmahesh/Status-App-Backend/internal/repo"
)

// Batch runs one health-check pass over the enabled monitors: bounded
// concurrent fan-out, exactly one tick appended per monitor, and no target's
// failure ever aborts the rest of the run.
type Batch struct {
	Logger      *zap.Logger
	Monitors    repo.MonitorStore
	Ticks       repo.TickStore
	Prober      probe.Prober
	Concurrency int

	// Diagnose classifies the host of a down target for the log line.
	// Defaults to probe.CheckDNS.
	Diagnose func(host string) probe.DNSStatus
}

func NewBatch(logger *zap.Logger, ms repo.MonitorStore, ts repo.TickStore, p probe.Prober, concurrency int) *Batch {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Batch{
		Logger:      logger,
		Monitors:    ms,
		Ticks:       ts,
		Prober:      p,
		Concurrency: concurrency,
		Diagnose:    probe.CheckDNS,
	}
}

// Run probes every enabled monitor for owner (all owners when owner is "")
// and appends one tick each. It returns once every probe and every append
// attempt has settled. Store-level append faults are aggregated into the
// returned error after all monitors were attempted; a monitor deleted
// mid-batch is logged and skipped.
func (b *Batch) Run(ctx context.Context, owner string) error {
	monitors, err := b.Monitors.ListEnabled(ctx, owner)
	if err != nil {
		return fmt.Errorf("list enabled monitors: %w", err)
	}
	if len(monitors) == 0 {
		return nil
	}

	sem := make(chan struct{}, b.Concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var runErr error

	for _, m := range monitors {
		select {
		case <-ctx.Done():
			// stop dispatching; in-flight probes run to their own timeout
			wg.Wait()
			return multierr.Append(runErr, ctx.Err())
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(m *domain.Monitor) {
			defer func() { <-sem }()
			defer wg.Done()

			metrics.ProbesInflight.Inc()
			start := time.Now()
			out := b.Prober.Probe(ctx, m.URL)
			metrics.ProbeDuration.Observe(time.Since(start).Seconds())
			metrics.ProbesInflight.Dec()
			metrics.ProbesTotal.WithLabelValues(string(out.Status)).Inc()

			reason := out.Reason
			if out.Status == domain.StatusDown && b.Diagnose != nil {
				dns := b.Diagnose(probe.ExtractHost(m.URL))
				reason = strings.TrimSpace(fmt.Sprintf("%s dns=%s", out.Reason, dns.Class))
			}

			tick := &domain.Tick{
				Status:         out.Status,
				ResponseTimeMS: out.ResponseTimeMS,
				Timestamp:      time.Now().UTC(),
			}
			if err := b.Ticks.Append(ctx, m.ID, tick); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					b.Logger.Warn("batch_monitor_vanished",
						zap.String("monitor_id", string(m.ID)),
						zap.String("url", m.URL),
					)
					return
				}
				b.Logger.Warn("batch_append_error",
					zap.String("monitor_id", string(m.ID)),
					zap.String("url", m.URL),
					zap.Error(err),
				)
				mu.Lock()
				runErr = multierr.Append(runErr, fmt.Errorf("append tick %s: %w", m.ID, err))
				mu.Unlock()
				return
			}
			b.Logger.Debug("batch_checked",
				zap.String("monitor_id", string(m.ID)),
				zap.String("url", m.URL),
				zap.String("status", string(out.Status)),
				zap.Int64("response_time_ms", out.ResponseTimeMS),
				zap.Int("http_status", out.HTTPStatus),
				zap.String("reason", reason),
			)
		}(m)
	}

	wg.Wait()
	metrics.BatchesTotal.Inc()
	return runErr
}
