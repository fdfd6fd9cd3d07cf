package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shekokarmahesh/Status-App-Backend/internal/domain"
	"github.com/shekokarmahesh/Status-App-Backend/internal/repo"
)

func TestMemoryStore_CreateValidation(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.Create(ctx, &domain.Monitor{URL: "", OwnerID: "u1"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation for empty URL, got %v", err)
	}
	if err := s.Create(ctx, &domain.Monitor{URL: "https://example.com", OwnerID: ""}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation for empty owner, got %v", err)
	}

	all, err := s.ListEnabled(ctx, "")
	if err != nil {
		t.Fatalf("ListEnabled: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("no monitor should have been created, got %d", len(all))
	}
}

func TestMemoryStore_CreateAndOwnerScoping(t *testing.T) {
	ctx := context.Background()
	s := New()

	m1 := &domain.Monitor{URL: "https://example.com", OwnerID: "u1"}
	m2 := &domain.Monitor{URL: "https://example.com", OwnerID: "u2"}
	if err := s.Create(ctx, m1); err != nil {
		t.Fatalf("Create m1: %v", err)
	}
	if err := s.Create(ctx, m2); err != nil {
		t.Fatalf("Create m2: %v", err)
	}
	if m1.ID == "" || m1.ID == m2.ID {
		t.Fatalf("expected distinct generated IDs, got %q and %q", m1.ID, m2.ID)
	}

	// each owner only sees their own monitor
	u1, _ := s.ListEnabled(ctx, "u1")
	if len(u1) != 1 || u1[0].ID != m1.ID {
		t.Fatalf("unexpected u1 list: %+v", u1)
	}
	if _, err := s.Get(ctx, m1.ID, "u2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound across owners, got %v", err)
	}

	// global listing (scheduler) sees both
	all, _ := s.ListEnabled(ctx, "")
	if len(all) != 2 {
		t.Fatalf("want 2 monitors globally, got %d", len(all))
	}
}

func TestMemoryStore_DisableIsIdempotentAndKeepsHistory(t *testing.T) {
	ctx := context.Background()
	s := New()

	m := &domain.Monitor{URL: "https://example.com", OwnerID: "u1"}
	if err := s.Create(ctx, m); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Append(ctx, m.ID, &domain.Tick{Status: domain.StatusUp, ResponseTimeMS: 12}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if _, err := s.Disable(ctx, m.ID, "u2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound disabling foreign monitor, got %v", err)
	}

	d1, err := s.Disable(ctx, m.ID, "u1")
	if err != nil {
		t.Fatalf("Disable: %v", err)
	}
	d2, err := s.Disable(ctx, m.ID, "u1") // idempotent
	if err != nil {
		t.Fatalf("second Disable: %v", err)
	}
	if !d1.Disabled || !d2.Disabled || !d1.UpdatedAt.Equal(d2.UpdatedAt) {
		t.Fatalf("idempotent disable changed state: %+v vs %+v", d1, d2)
	}

	// hidden from enabled reads
	if _, err := s.Get(ctx, m.ID, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound from Get after disable, got %v", err)
	}
	enabled, _ := s.ListEnabled(ctx, "u1")
	if len(enabled) != 0 {
		t.Fatalf("disabled monitor still listed: %+v", enabled)
	}

	// owner still reaches the record and its ticks
	if _, err := s.GetAny(ctx, m.ID, "u1"); err != nil {
		t.Fatalf("GetAny after disable: %v", err)
	}
	hist, err := s.History(ctx, m.ID, repo.HistoryQuery{})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 1 {
		t.Fatalf("history lost on disable, got %d ticks", len(hist))
	}
}

func TestMemoryStore_AppendOrderingAndHistoryBounds(t *testing.T) {
	ctx := context.Background()
	s := New()

	m := &domain.Monitor{URL: "https://example.com", OwnerID: "u1"}
	if err := s.Create(ctx, m); err != nil {
		t.Fatalf("Create: %v", err)
	}

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		tick := &domain.Tick{
			Status:         domain.StatusUp,
			ResponseTimeMS: int64(i),
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.Append(ctx, m.ID, tick); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	hist, err := s.History(ctx, m.ID, repo.HistoryQuery{})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 5 {
		t.Fatalf("want 5 ticks, got %d", len(hist))
	}
	for i := 1; i < len(hist); i++ {
		if hist[i].Timestamp.Before(hist[i-1].Timestamp) {
			t.Fatalf("history out of order at %d", i)
		}
	}

	// range bounds
	ranged, _ := s.History(ctx, m.ID, repo.HistoryQuery{
		From: base.Add(1 * time.Minute),
		To:   base.Add(3 * time.Minute),
	})
	if len(ranged) != 3 {
		t.Fatalf("want 3 ticks in range, got %d", len(ranged))
	}

	// limit
	limited, _ := s.History(ctx, m.ID, repo.HistoryQuery{Limit: 2})
	if len(limited) != 2 {
		t.Fatalf("want limit of 2, got %d", len(limited))
	}

	last, err := s.Latest(ctx, m.ID)
	if err != nil || last == nil {
		t.Fatalf("Latest: %v %v", last, err)
	}
	if last.ResponseTimeMS != 4 {
		t.Fatalf("Latest should be the newest tick, got %+v", last)
	}
}

func TestMemoryStore_LatestEmptyAndAppendMissing(t *testing.T) {
	ctx := context.Background()
	s := New()

	m := &domain.Monitor{URL: "https://example.com", OwnerID: "u1"}
	if err := s.Create(ctx, m); err != nil {
		t.Fatalf("Create: %v", err)
	}

	last, err := s.Latest(ctx, m.ID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if last != nil {
		t.Fatalf("want nil tick before first probe, got %+v", last)
	}

	err = s.Append(ctx, domain.MonitorID("missing"), &domain.Tick{Status: domain.StatusDown})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound appending to missing monitor, got %v", err)
	}
}

func TestMemoryStore_AppendRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := New()

	m := &domain.Monitor{URL: "https://example.com", OwnerID: "u1"}
	if err := s.Create(ctx, m); err != nil {
		t.Fatalf("Create: %v", err)
	}
	before, _ := s.GetAny(ctx, m.ID, "u1")

	time.Sleep(2 * time.Millisecond)
	if err := s.Append(ctx, m.ID, &domain.Tick{Status: domain.StatusUp}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	after, _ := s.GetAny(ctx, m.ID, "u1")
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("UpdatedAt not refreshed on append: %v vs %v", before.UpdatedAt, after.UpdatedAt)
	}
}
