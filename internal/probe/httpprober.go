package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/shekokarmahesh/Status-App-Backend/internal/domain"
)

// DefaultTimeout is the per-probe budget used when none is configured.
const DefaultTimeout = 5 * time.Second

type HTTPProber struct {
	Client  *http.Client
	Timeout time.Duration
}

func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPProber{
		Client:  &http.Client{Timeout: timeout},
		Timeout: timeout,
	}
}

// Probe issues one GET and classifies the result. Up means a 2xx arrived
// within the budget; a received non-2xx is down with measured latency; a
// timeout or transport failure is down with ResponseTimeMS 0.
func (p *HTTPProber) Probe(ctx context.Context, target string) Outcome {
	cctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, target, nil)
	if err != nil {
		return Outcome{Status: domain.StatusDown, Reason: err.Error()}
	}

	start := time.Now()
	resp, err := p.Client.Do(req)
	elapsed := time.Since(start)
	if elapsed > p.Timeout {
		elapsed = p.Timeout
	}
	if err != nil {
		return Outcome{Status: domain.StatusDown, Reason: err.Error()}
	}
	defer resp.Body.Close()

	status := domain.StatusDown
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		status = domain.StatusUp
	}
	return Outcome{
		Status:         status,
		ResponseTimeMS: elapsed.Milliseconds(),
		HTTPStatus:     resp.StatusCode,
		Reason:         resp.Status,
	}
}

var _ Prober = (*HTTPProber)(nil)
