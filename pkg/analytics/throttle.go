package analytics

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// throttledTransport holds each request until the limiter grants it a slot.
type throttledTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

// RoundTrip waits for the limiter, then forwards the request.
func (t *throttledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}

		return nil, fmt.Errorf("request throttle: %w", err)
	}

	return t.base.RoundTrip(req)
}

// throttle returns a copy of client that sends at most qps requests per second.
func throttle(client *http.Client, qps float64) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	throttled := *client
	throttled.Transport = &throttledTransport{
		base:    base,
		limiter: rate.NewLimiter(rate.Limit(qps), 1),
	}

	return &throttled
}
