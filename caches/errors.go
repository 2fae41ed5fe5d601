package caches

import "errors"

// ErrRejected is returned if cache has decided not to store a value.
// For example, ristretto may drop new items if it is under contention.
var ErrRejected = errors.New("cache has rejected a value")
