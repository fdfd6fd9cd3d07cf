package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRechecker_PeriodicPassAppendsTicks(t *testing.T) {
	monitors := makeMonitors(2)
	ticks := newFakeTicks()
	b := NewBatch(zap.NewNop(), &fakeMonitors{monitors: monitors}, ticks, &stubProber{}, 2)
	b.Diagnose = noDNS

	rc := NewRechecker(zap.NewNop(), b, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		rc.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return ticks.count(monitors[0].ID) >= 2 && ticks.count(monitors[1].ID) >= 2
	}, time.Second, 2*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("rechecker did not stop on cancel")
	}
}

func TestRechecker_IntervalZeroDisablesLoop(t *testing.T) {
	ticks := newFakeTicks()
	b := NewBatch(zap.NewNop(), &fakeMonitors{monitors: makeMonitors(1)}, ticks, &stubProber{}, 1)
	b.Diagnose = noDNS

	rc := NewRechecker(zap.NewNop(), b, 0)

	done := make(chan struct{})
	go func() {
		rc.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled rechecker should return immediately")
	}
	require.Equal(t, 0, ticks.count("m0"))
}

func TestRechecker_OverlappingCycleIsSkipped(t *testing.T) {
	monitors := makeMonitors(1)
	ticks := newFakeTicks()
	b := NewBatch(zap.NewNop(), &fakeMonitors{monitors: monitors}, ticks, &stubProber{}, 1)
	b.Diagnose = noDNS

	rc := NewRechecker(zap.NewNop(), b, time.Minute)

	// simulate a cycle still in flight
	rc.running.Lock()
	rc.runOnce(context.Background())
	rc.running.Unlock()
	require.Equal(t, 0, ticks.count(monitors[0].ID))

	rc.runOnce(context.Background())
	require.Equal(t, 1, ticks.count(monitors[0].ID))
}
