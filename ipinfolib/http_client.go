package ipinfolib

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRateLimitInterval is an interval between 2 requests if
	// rate limiter has no burst tokens.
	DefaultRateLimitInterval = 10 * time.Millisecond

	// DefaultRateLimitBurst is a default burst of rate limiter.
	DefaultRateLimitBurst = 50

	// DefaultUserAgent is sent if nothing else is set.
	DefaultUserAgent = "ipinfolib/" + Version
)

type httpClient struct {
	userAgent   string
	client      *http.Client
	rateLimiter *rate.Limiter
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	if err := h.rateLimiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limiter has rejected a request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)

	return h.client.Do(req)
}

// NewHTTPClient prepares a new HTTP client, wraps it with rate limiter,
// sets a user agent etc. It never interprets status codes and never
// retries: this is a responsibility of a caller.
//
// Please see https://pkg.go.dev/golang.org/x/time/rate to get a meaning
// of rate limiter parameters.
func NewHTTPClient(client *http.Client,
	userAgent string,
	rateLimitInterval time.Duration,
	rateLimitBurst int) HTTPClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	if rateLimitInterval <= 0 {
		rateLimitInterval = DefaultRateLimitInterval
	}

	if rateLimitBurst <= 0 {
		rateLimitBurst = DefaultRateLimitBurst
	}

	return httpClient{
		userAgent:   userAgent,
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitInterval), rateLimitBurst),
	}
}
