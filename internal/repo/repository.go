package repo

import (
	"context"
	"time"

	"github.com/shekokarmahesh/Status-App-Backend/internal/domain"
)

// Ports (interfaces) — swap in any DB adapter later.

// MonitorStore holds the registered monitors. All reads are owner-scoped
// except ListEnabled with an empty owner, which the scheduler uses for
// global batch runs.
type MonitorStore interface {
	// Create persists a new enabled monitor. Returns domain.ErrValidation
	// when URL or owner is empty.
	Create(ctx context.Context, m *domain.Monitor) error

	// ListEnabled returns enabled monitors for one owner, or for all owners
	// when owner is "". Disabled monitors are never included.
	ListEnabled(ctx context.Context, owner string) ([]*domain.Monitor, error)

	// Get returns the enabled monitor with the given id belonging to owner,
	// or domain.ErrNotFound.
	Get(ctx context.Context, id domain.MonitorID, owner string) (*domain.Monitor, error)

	// GetAny is Get without the enabled filter. Disabled monitors stay
	// readable by their owner so history survives a disable.
	GetAny(ctx context.Context, id domain.MonitorID, owner string) (*domain.Monitor, error)

	// Disable soft-disables a monitor. Idempotent; domain.ErrNotFound when
	// the monitor does not exist or belongs to someone else. Tick history
	// is kept.
	Disable(ctx context.Context, id domain.MonitorID, owner string) (*domain.Monitor, error)
}

// HistoryQuery bounds a history read. Zero From/To mean unbounded on that
// side; Limit <= 0 falls back to the adapter's default page size.
type HistoryQuery struct {
	From  time.Time
	To    time.Time
	Limit int
}

// TickStore holds the append-only tick history, kept outside the monitor
// record so history growth never bloats the monitor row itself.
type TickStore interface {
	// Append atomically adds one tick to a monitor's history and refreshes
	// the monitor's UpdatedAt. Concurrent appends to the same monitor must
	// serialize. Returns domain.ErrNotFound if the monitor vanished.
	Append(ctx context.Context, id domain.MonitorID, tick *domain.Tick) error

	// Latest returns the most recently appended tick, or nil, nil when no
	// probe has run yet.
	Latest(ctx context.Context, id domain.MonitorID) (*domain.Tick, error)

	// History returns ticks in chronological order within the query bounds.
	History(ctx context.Context, id domain.MonitorID, q HistoryQuery) ([]domain.Tick, error)
}
