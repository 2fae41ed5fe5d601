package ipinfolib

import (
	"context"
	stdjson "encoding/json"
	"net"
	"net/http"
	"time"
)

// LookupBatch resolves a set of IP addresses with a minimal number of
// requests. Cached addresses are taken from the cache, the rest are
// sent to ipinfo.io by chunks of batchSize addresses. batchSize is
// clamped to [1, MaxBatchSize]. timeout is applied to each chunk,
// non-positive value means DefaultBatchTimeout. If filter is set,
// ipinfo.io drops addresses it cannot resolve.
//
// Keys of the result are the addresses exactly as they were given, even
// if ipinfo.io responds with another textual form (2001:DB8::1 and
// 2001:db8::1, for example).
//
// Chunks are sent one by one. If any of them fails, the error is
// returned and results of previous chunks are discarded. They are still
// cached though.
func (c *Client) LookupBatch(ctx context.Context,
	ips []string,
	batchSize int,
	filter bool,
	timeout time.Duration) (map[string]*LookupResult, error) {
	rv := make(map[string]*LookupResult, len(ips))

	if len(ips) == 0 {
		return rv, nil
	}

	for _, v := range ips {
		if err := validateIP(v); err != nil {
			return nil, err
		}
	}

	batchSize = clampBatchSize(batchSize)

	if timeout <= 0 {
		timeout = DefaultBatchTimeout
	}

	pending := make([]string, 0, len(ips))
	seen := make(map[string]struct{}, len(ips))

	for _, v := range ips {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}

		if result, ok := c.cachedResult(ctx, lookupCacheKey(c.token, v), v); ok {
			rv[v] = result
		} else {
			pending = append(pending, v)
		}
	}

	for start := 0; start < len(pending); start += batchSize {
		chunk := pending[start:min(start+batchSize, len(pending))]

		results, err := c.lookupChunk(ctx, chunk, filter, timeout)
		if err != nil {
			return nil, err
		}

		for k, v := range results {
			rv[k] = v
		}
	}

	return rv, nil
}

func (c *Client) lookupChunk(ctx context.Context,
	ips []string,
	filter bool,
	timeout time.Duration) (map[string]*LookupResult, error) {
	body, err := json.Marshal(ips)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	path := "/batch"
	if filter {
		path += "?filter=1"
	}

	data, err := c.request(ctx, http.MethodPost, path, body, timeout)
	if err != nil {
		c.logger.LookupError("batch", err)

		return nil, err
	}

	entries := map[string]stdjson.RawMessage{}

	if err := json.Unmarshal(data, &entries); err != nil {
		err := &ParseError{Err: err}
		c.logger.LookupError("batch", err)

		return nil, err
	}

	if raw, ok := entries["error"]; ok {
		err := &APIError{StatusCode: http.StatusOK, Message: trimScalar(raw)}

		if decoded, decodeErr := decodePayload(data); decodeErr == nil {
			err.Message, _ = payloadError(decoded)
		}

		c.logger.LookupError("batch", err)

		return nil, err
	}

	aliases := make(map[string][]string, len(ips))

	for _, v := range ips {
		canonical := canonicalIP(v)
		aliases[canonical] = append(aliases[canonical], v)
	}

	rv := make(map[string]*LookupResult, len(entries))

	for ip, raw := range entries {
		decoded, err := decodePayload(raw)
		if err != nil {
			c.logger.LookupError(ip, &ParseError{Err: err})

			continue
		}

		if message, ok := payloadError(decoded); ok {
			c.logger.LookupError(ip, &APIError{StatusCode: http.StatusOK, Message: message})

			continue
		}

		inputs, ok := aliases[canonicalIP(ip)]
		if !ok {
			inputs = []string{ip}
		}

		for _, v := range inputs {
			c.cacheSet(ctx, lookupCacheKey(c.token, v), raw)

			rv[v] = c.newResult(decoded)
		}
	}

	return rv, nil
}

func canonicalIP(ip string) string {
	if parsed := net.ParseIP(ip); parsed != nil {
		return parsed.String()
	}

	return ip
}

func clampBatchSize(size int) int {
	switch {
	case size < 1:
		return 1
	case size > MaxBatchSize:
		return MaxBatchSize
	}

	return size
}
