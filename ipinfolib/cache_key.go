package ipinfolib

import (
	"crypto/sha256"
	"encoding/hex"
)

// CacheKeyPrefix is a prefix of every key this library writes into a
// cache. ClearAllCache removes everything under it.
const CacheKeyPrefix = "ipinfo_"

// cacheKey derives a key from a token and a set of parts. Token is a
// part of the key so different tenants sharing the same cache never see
// each other's data. Parts are NUL-separated so ("1.1.1.1", "city")
// and ("1.1.1.1city") never collide.
func cacheKey(token string, parts ...string) string {
	hasher := sha256.New()

	for _, v := range parts {
		hasher.Write([]byte(v)) // nolint: errcheck
		hasher.Write([]byte{0}) // nolint: errcheck
	}

	hasher.Write([]byte(token)) // nolint: errcheck

	return CacheKeyPrefix + hex.EncodeToString(hasher.Sum(nil))
}

func lookupCacheKey(token, ip string) string {
	return cacheKey(token, ip)
}

func fieldCacheKey(token, ip, field string) string {
	return cacheKey(token, ip, field)
}
