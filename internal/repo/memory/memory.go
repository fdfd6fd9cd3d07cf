package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shekokarmahesh/Status-App-Backend/internal/domain"
	"github.com/shekokarmahesh/Status-App-Backend/internal/repo"
)

const defaultHistoryLimit = 500

// Store keeps monitors and their tick history in process memory. The single
// mutex serializes tick appends, which is what the batch runner relies on
// when a manual ping races the periodic loop.
type Store struct {
	mu       sync.RWMutex
	monitors map[domain.MonitorID]*domain.Monitor
	ticks    map[domain.MonitorID][]domain.Tick
}

func New() *Store {
	return &Store{
		monitors: make(map[domain.MonitorID]*domain.Monitor),
		ticks:    make(map[domain.MonitorID][]domain.Tick),
	}
}

func (s *Store) Create(ctx context.Context, m *domain.Monitor) error {
	if strings.TrimSpace(m.URL) == "" || m.OwnerID == "" {
		return domain.ErrValidation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = domain.MonitorID(uuid.NewString())
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	m.Disabled = false
	cp := *m
	s.monitors[m.ID] = &cp
	return nil
}

func (s *Store) ListEnabled(ctx context.Context, owner string) ([]*domain.Monitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Monitor, 0, len(s.monitors))
	for _, m := range s.monitors {
		if m.Disabled {
			continue
		}
		if owner != "" && m.OwnerID != owner {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id domain.MonitorID, owner string) (*domain.Monitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := s.monitors[id]
	if m == nil || m.Disabled || m.OwnerID != owner {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *Store) GetAny(ctx context.Context, id domain.MonitorID, owner string) (*domain.Monitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := s.monitors[id]
	if m == nil || m.OwnerID != owner {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *Store) Disable(ctx context.Context, id domain.MonitorID, owner string) (*domain.Monitor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.monitors[id]
	if m == nil || m.OwnerID != owner {
		return nil, domain.ErrNotFound
	}
	if !m.Disabled {
		m.Disabled = true
		m.UpdatedAt = time.Now().UTC()
	}
	cp := *m
	return &cp, nil
}

// ---- TickStore ----

func (s *Store) Append(ctx context.Context, id domain.MonitorID, tick *domain.Tick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.monitors[id]
	if m == nil {
		return domain.ErrNotFound
	}
	t := *tick
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	s.ticks[id] = append(s.ticks[id], t)
	m.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) Latest(ctx context.Context, id domain.MonitorID) (*domain.Tick, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hist := s.ticks[id]
	if len(hist) == 0 {
		return nil, nil
	}
	cp := hist[len(hist)-1]
	return &cp, nil
}

func (s *Store) History(ctx context.Context, id domain.MonitorID, q repo.HistoryQuery) ([]domain.Tick, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	limit := q.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	out := make([]domain.Tick, 0, 16)
	for _, t := range s.ticks[id] {
		if !q.From.IsZero() && t.Timestamp.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && t.Timestamp.After(q.To) {
			continue
		}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ repo.MonitorStore = (*Store)(nil)
var _ repo.TickStore = (*Store)(nil)
