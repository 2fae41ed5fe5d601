package caches

import (
	"context"
	"time"
)

// Null is a cache which stores nothing.
type Null struct{}

func (Null) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (Null) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (Null) Delete(context.Context, string) (bool, error) {
	return false, nil
}

func (Null) DeleteByPrefix(context.Context, string) (bool, error) {
	return false, nil
}
