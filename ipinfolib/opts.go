package ipinfolib

import (
	"net/http"
	"strings"
	"time"

	"github.com/9seconds/ipinfo/caches"
)

const (
	// Version is a version of this library. It is a part of default
	// user agent.
	Version = "1.0.0"

	DefaultBaseURL          = "https://ipinfo.io"
	DefaultCacheTTL         = time.Hour
	DefaultLookupTimeout    = 15 * time.Second
	DefaultBatchTimeout     = 5 * time.Second
	DefaultMemoryCacheItems = 4096

	// MaxBatchSize is the largest number of IPs ipinfo.io accepts in a
	// single batch request.
	MaxBatchSize = 1000
)

// Opts is a set of client options. A zero value of each field means
// 'use default' so only Token is mandatory.
type Opts struct {
	// Token is ipinfo.io API token.
	Token string

	// DisableCache switches caching off. Caching is enabled by default.
	DisableCache bool

	// CacheTTL is a time to live of cache entries. Default is 1 hour.
	CacheTTL time.Duration

	// Cache is a cache to use. Default is in-memory cache for
	// DefaultMemoryCacheItems items.
	Cache Cache

	// HTTPClient is a transport to use. Default one is rate-limited
	// http.Client, please see NewHTTPClient.
	HTTPClient HTTPClient

	// Logger collects non-fatal errors. Default one does nothing.
	Logger Logger

	// BaseURL of the API. Default is https://ipinfo.io.
	BaseURL string

	// Enrich adds country name, EU flag, flag, currency and continent
	// to results if ipinfo.io has not returned them.
	Enrich bool
}

func (o Opts) GetCacheTTL() time.Duration {
	if o.CacheTTL <= 0 {
		return DefaultCacheTTL
	}

	return o.CacheTTL
}

func (o Opts) GetCache() Cache {
	if o.Cache == nil {
		return caches.NewMemory(DefaultMemoryCacheItems)
	}

	return o.Cache
}

func (o Opts) GetHTTPClient() HTTPClient {
	if o.HTTPClient == nil {
		return NewHTTPClient(&http.Client{}, DefaultUserAgent, 0, 0)
	}

	return o.HTTPClient
}

func (o Opts) GetLogger() Logger {
	if o.Logger == nil {
		return noopLogger{}
	}

	return o.Logger
}

func (o Opts) GetBaseURL() string {
	if o.BaseURL == "" {
		return DefaultBaseURL
	}

	return strings.TrimRight(o.BaseURL, "/")
}
