package caches

import (
	"encoding/binary"
	"time"
)

const expirationSize = 8

func copyBytes(value []byte) []byte {
	rv := make([]byte, len(value))

	copy(rv, value)

	return rv
}

// expiresAt returns zero time for entries which never expire.
func expiresAt(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}

	return now.Add(ttl)
}

func isExpired(expiration, now time.Time) bool {
	return !expiration.IsZero() && now.After(expiration)
}

// encodeEntry prepends a value with 8-byte big endian expiration time
// in unix nanoseconds. 0 means 'never'.
func encodeEntry(value []byte, expiration time.Time) []byte {
	rv := make([]byte, expirationSize+len(value))

	if !expiration.IsZero() {
		binary.BigEndian.PutUint64(rv, uint64(expiration.UnixNano()))
	}

	copy(rv[expirationSize:], value)

	return rv
}

func decodeEntry(data []byte) ([]byte, time.Time, bool) {
	if len(data) < expirationSize {
		return nil, time.Time{}, false
	}

	expiration := time.Time{}

	if nanos := binary.BigEndian.Uint64(data); nanos != 0 {
		expiration = time.Unix(0, int64(nanos))
	}

	return copyBytes(data[expirationSize:]), expiration, true
}

// prefixUpperBound returns the smallest key which is greater than any
// key with a given prefix. nil means there is no such key.
func prefixUpperBound(prefix []byte) []byte {
	upper := copyBytes(prefix)

	for i := len(upper) - 1; i >= 0; i-- {
		upper[i]++

		if upper[i] != 0 {
			return upper[:i+1]
		}
	}

	return nil
}
