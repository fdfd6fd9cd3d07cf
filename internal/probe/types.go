package probe

import (
	"context"

	"github.com/shekokarmahesh/Status-App-Backend/internal/domain"
)

// Outcome is the classified result of one probe.
//
// ResponseTimeMS is 0 when no response was receivable (timeout, transport
// failure, bad URL); HTTPStatus is 0 in the same cases.
type Outcome struct {
	Status         domain.TickStatus
	ResponseTimeMS int64
	HTTPStatus     int
	Reason         string
}

// Prober performs a single outbound check of one target URL. It never
// returns an error; every failure mode is folded into a down Outcome.
type Prober interface {
	Probe(ctx context.Context, target string) Outcome
}
