package ipinfolib

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a client of ipinfo.io. It is immutable: With* methods
// return new instances which share cache, transport, logger and
// statistics with the original one. It is safe to use it concurrently.
type Client struct {
	token        string
	cacheEnabled bool
	cacheTTL     time.Duration
	baseURL      string
	enrich       bool
	cache        Cache
	http         HTTPClient
	logger       Logger
	stats        *Stats
}

func (c *Client) CacheEnabled() bool {
	return c.cacheEnabled
}

func (c *Client) CacheTTL() time.Duration {
	return c.cacheTTL
}

// Stats returns usage statistics of this client and all its copies.
func (c *Client) Stats() *Stats {
	return c.stats
}

// WithToken returns a copy of the client which uses another token.
// Cache entries are keyed by token so copies never see data of each
// other.
func (c *Client) WithToken(token string) (*Client, error) {
	if token == "" {
		return nil, ErrTokenIsRequired
	}

	rv := *c
	rv.token = token

	return &rv, nil
}

func (c *Client) WithCacheEnabled(enabled bool) *Client {
	rv := *c
	rv.cacheEnabled = enabled

	return &rv
}

// WithCacheTTL returns a copy of the client with another TTL of cache
// entries. Non-positive values mean DefaultCacheTTL.
func (c *Client) WithCacheTTL(ttl time.Duration) *Client {
	rv := *c
	rv.cacheTTL = Opts{CacheTTL: ttl}.GetCacheTTL()

	return &rv
}

// Lookup returns everything ipinfo.io knows about given IP address.
func (c *Client) Lookup(ctx context.Context, ip string) (*LookupResult, error) {
	if err := validateIP(ip); err != nil {
		return nil, err
	}

	key := lookupCacheKey(c.token, ip)

	if result, ok := c.cachedResult(ctx, key, ip); ok {
		return result, nil
	}

	data, err := c.request(ctx, http.MethodGet, "/"+ip, nil, DefaultLookupTimeout)
	if err != nil {
		c.logger.LookupError(ip, err)

		return nil, err
	}

	decoded, err := decodePayload(data)
	if err != nil {
		err = &ParseError{Err: err}
		c.logger.LookupError(ip, err)

		return nil, err
	}

	if message, ok := payloadError(decoded); ok {
		err = &APIError{StatusCode: http.StatusOK, Message: message}
		c.logger.LookupError(ip, err)

		return nil, err
	}

	c.cacheSet(ctx, key, data)

	return c.newResult(decoded), nil
}

// LookupField returns a single field of given IP address, like city or
// org. ipinfo.io returns such fields as plain strings.
func (c *Client) LookupField(ctx context.Context, ip, field string) (string, error) {
	if err := validateIP(ip); err != nil {
		return "", err
	}

	if strings.TrimSpace(field) == "" {
		return "", &InvalidInputError{Input: field, Reason: "empty field name"}
	}

	key := fieldCacheKey(c.token, ip, field)
	target := ip + "/" + field

	if data, ok := c.cacheGet(ctx, key); ok {
		c.stats.CacheHit()
		c.logger.CacheHit(target)

		return string(data), nil
	}

	data, err := c.request(ctx, http.MethodGet, "/"+ip+"/"+url.PathEscape(field), nil, DefaultLookupTimeout)
	if err != nil {
		c.logger.LookupError(target, err)

		return "", err
	}

	value := trimScalar(data)

	c.cacheSet(ctx, key, []byte(value))

	return value, nil
}

// LookupFields is LookupField for a set of fields. Fields are requested
// one by one, the first error stops the whole lookup.
func (c *Client) LookupFields(ctx context.Context, ip string, fields []string) (map[string]string, error) {
	rv := make(map[string]string, len(fields))

	for _, field := range fields {
		value, err := c.LookupField(ctx, ip, field)
		if err != nil {
			return nil, err
		}

		rv[field] = value
	}

	return rv, nil
}

// ClearCache removes a cached lookup of given IP address. Cached field
// lookups of this address are kept.
func (c *Client) ClearCache(ctx context.Context, ip string) (bool, error) {
	removed, err := c.cache.Delete(ctx, lookupCacheKey(c.token, ip))
	if err != nil {
		return false, fmt.Errorf("cannot delete cache entry: %w", err)
	}

	return removed, nil
}

// ClearAllCache removes every entry this library has written into the
// cache, for all tokens.
func (c *Client) ClearAllCache(ctx context.Context) (bool, error) {
	removed, err := c.cache.DeleteByPrefix(ctx, CacheKeyPrefix)
	if err != nil {
		return false, fmt.Errorf("cannot delete cache entries: %w", err)
	}

	return removed, nil
}

func (c *Client) cachedResult(ctx context.Context, key, target string) (*LookupResult, bool) {
	data, ok := c.cacheGet(ctx, key)
	if !ok {
		return nil, false
	}

	decoded, err := decodePayload(data)
	if err != nil {
		c.stats.CacheMiss()
		c.logger.CacheError(key, &ParseError{Err: err})

		return nil, false
	}

	c.stats.CacheHit()
	c.logger.CacheHit(target)

	return c.newResult(decoded), true
}

// cacheGet treats cache failures as misses: cache is an optimization,
// lookups should work without it.
func (c *Client) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if !c.cacheEnabled {
		return nil, false
	}

	data, ok, err := c.cache.Get(ctx, key)

	switch {
	case err != nil:
		c.stats.CacheMiss()
		c.logger.CacheError(key, err)

		return nil, false
	case !ok:
		c.stats.CacheMiss()

		return nil, false
	}

	return data, true
}

func (c *Client) cacheSet(ctx context.Context, key string, value []byte) {
	if !c.cacheEnabled {
		return
	}

	if err := c.cache.Set(ctx, key, value, c.cacheTTL); err != nil {
		c.logger.CacheError(key, err)
	}
}

func (c *Client) newResult(data payload) *LookupResult {
	if c.enrich {
		enrichPayload(data)
	}

	return &LookupResult{data: data}
}

func (c *Client) request(ctx context.Context,
	method, path string,
	body []byte,
	timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var bodyReader io.Reader

	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.stats.Requested(err)

		return nil, &NetworkError{Err: err}
	}

	defer flushResponse(resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = &NetworkError{Err: err}
		c.stats.Requested(err)

		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		err := &APIError{StatusCode: resp.StatusCode}

		if decoded, decodeErr := decodePayload(data); decodeErr == nil {
			err.Message, _ = payloadError(decoded)
		}

		c.stats.Requested(err)

		return nil, err
	}

	c.stats.Requested(nil)

	return data, nil
}

// NewClient builds a new client. Token is mandatory, everything else
// has defaults.
func NewClient(opts Opts) (*Client, error) {
	if opts.Token == "" {
		return nil, ErrTokenIsRequired
	}

	return &Client{
		token:        opts.Token,
		cacheEnabled: !opts.DisableCache,
		cacheTTL:     opts.GetCacheTTL(),
		baseURL:      opts.GetBaseURL(),
		enrich:       opts.Enrich,
		cache:        opts.GetCache(),
		http:         opts.GetHTTPClient(),
		logger:       opts.GetLogger(),
		stats:        &Stats{},
	}, nil
}

func validateIP(ip string) error {
	if net.ParseIP(ip) == nil {
		return &InvalidInputError{Input: ip}
	}

	return nil
}
