// Package query is the read-only status layer. Every read resolves the
// monitor under the caller's owner id first, so one owner can never observe
// another owner's monitors or ticks.
package query

import (
	"context"

	"github.com/shekokarmahesh/Status-App-Backend/internal/domain"
	"github.com/shekokarmahesh/Status-App-Backend/internal/repo"
)

type Service struct {
	Monitors repo.MonitorStore
	Ticks    repo.TickStore
}

func NewService(ms repo.MonitorStore, ts repo.TickStore) *Service {
	return &Service{Monitors: ms, Ticks: ts}
}

// MonitorStatus is a monitor annotated with its most recent tick, LastTick
// nil when no probe has run yet.
type MonitorStatus struct {
	Monitor  *domain.Monitor `json:"monitor"`
	LastTick *domain.Tick    `json:"last_tick"`
}

// Status returns an enabled monitor with its latest tick.
func (s *Service) Status(ctx context.Context, id domain.MonitorID, owner string) (*MonitorStatus, error) {
	m, err := s.Monitors.Get(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	last, err := s.Ticks.Latest(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return &MonitorStatus{Monitor: m, LastTick: last}, nil
}

// Latest returns the most recently appended tick, or nil when no probe has
// ever run. Disabled monitors stay readable by their owner.
func (s *Service) Latest(ctx context.Context, id domain.MonitorID, owner string) (*domain.Tick, error) {
	m, err := s.Monitors.GetAny(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	return s.Ticks.Latest(ctx, m.ID)
}

// History returns ticks in chronological order within the query bounds.
// Like Latest it resolves disabled monitors too: disabling hides a monitor
// from listing and scheduling but never erases its history.
func (s *Service) History(ctx context.Context, id domain.MonitorID, owner string, q repo.HistoryQuery) ([]domain.Tick, error) {
	m, err := s.Monitors.GetAny(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	return s.Ticks.History(ctx, m.ID, q)
}

// List returns the owner's enabled monitors, each annotated with its latest
// tick for display.
func (s *Service) List(ctx context.Context, owner string) ([]MonitorStatus, error) {
	monitors, err := s.Monitors.ListEnabled(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]MonitorStatus, 0, len(monitors))
	for _, m := range monitors {
		last, err := s.Ticks.Latest(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, MonitorStatus{Monitor: m, LastTick: last})
	}
	return out, nil
}
