package domain

import "time"

type MonitorID string

// TickStatus is the recorded liveness of one probe: "up" or "down".
type TickStatus string

const (
	StatusUp   TickStatus = "up"
	StatusDown TickStatus = "down"
)

// Monitor is one URL registered for periodic health checks. URL and OwnerID
// are fixed at creation; the only mutations are tick appends and soft-disable.
type Monitor struct {
	ID        MonitorID `json:"id"`
	URL       string    `json:"url"`
	OwnerID   string    `json:"owner_id"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tick is one immutable observation in a monitor's history.
// ResponseTimeMS is 0 when the probe could not complete (timeout, transport
// error) rather than a measured zero-latency response.
type Tick struct {
	Status         TickStatus `json:"status"`
	ResponseTimeMS int64      `json:"response_time_ms"`
	Timestamp      time.Time  `json:"timestamp"`
}
