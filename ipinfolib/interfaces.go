package ipinfolib

import (
	"context"
	"net/http"
	"time"
)

// Cache is a key-value storage with TTL. Values are raw payloads: a
// JSON document for lookups and a plain string for field lookups.
//
// Get returns false if there is no such key or it is expired.
// Delete and DeleteByPrefix return true if something was removed.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
	DeleteByPrefix(ctx context.Context, prefix string) (bool, error)
}

// HTTPClient is a transport to ipinfo.io. *http.Client conforms this
// interface.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Logger collects events which are not returned to the caller: cache
// failures are not fatal for lookups so they are only reported here.
type Logger interface {
	LookupError(target string, err error)
	CacheError(key string, err error)
	CacheHit(target string)
}

type noopLogger struct{}

func (noopLogger) LookupError(string, error) {}
func (noopLogger) CacheError(string, error)  {}
func (noopLogger) CacheHit(string)           {}
