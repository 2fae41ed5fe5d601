package caches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
)

// Pebble is a persistent cache based on embedded LSM storage. Values
// are prefixed with expiration time, expired entries are removed
// lazily on access.
type Pebble struct {
	db *pebble.DB
}

func (p *Pebble) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, expiration, ok, err := p.get([]byte(key))
	if err != nil || !ok {
		return nil, false, err
	}

	if isExpired(expiration, time.Now()) {
		p.db.Delete([]byte(key), pebble.NoSync) // nolint: errcheck

		return nil, false, nil
	}

	return value, true, nil
}

func (p *Pebble) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := encodeEntry(value, expiresAt(time.Now(), ttl))

	if err := p.db.Set([]byte(key), entry, pebble.Sync); err != nil {
		return fmt.Errorf("cannot store a value: %w", err)
	}

	return nil
}

func (p *Pebble) Delete(_ context.Context, key string) (bool, error) {
	_, expiration, ok, err := p.get([]byte(key))
	if err != nil || !ok {
		return false, err
	}

	if err := p.db.Delete([]byte(key), pebble.Sync); err != nil {
		return false, fmt.Errorf("cannot delete a value: %w", err)
	}

	return !isExpired(expiration, time.Now()), nil
}

func (p *Pebble) DeleteByPrefix(_ context.Context, prefix string) (bool, error) {
	lower := []byte(prefix)
	upper := prefixUpperBound(lower)

	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})
	if err != nil {
		return false, fmt.Errorf("cannot create iterator: %w", err)
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	found := false

	for valid := iter.First(); valid; valid = iter.Next() {
		found = true

		if upper == nil {
			batch.Delete(copyBytes(iter.Key()), nil) // nolint: errcheck
		}
	}

	if err := iter.Close(); err != nil {
		return false, fmt.Errorf("cannot iterate over keys: %w", err)
	}

	if !found {
		return false, nil
	}

	if upper != nil {
		batch.DeleteRange(lower, upper, nil) // nolint: errcheck
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return false, fmt.Errorf("cannot delete keys: %w", err)
	}

	return true, nil
}

func (p *Pebble) get(key []byte) ([]byte, time.Time, bool, error) {
	data, closer, err := p.db.Get(key)

	switch {
	case errors.Is(err, pebble.ErrNotFound):
		return nil, time.Time{}, false, nil
	case err != nil:
		return nil, time.Time{}, false, fmt.Errorf("cannot read a value: %w", err)
	}

	defer closer.Close()

	value, expiration, ok := decodeEntry(data)
	if !ok {
		return nil, time.Time{}, false, fmt.Errorf("corrupted entry %q", key)
	}

	return value, expiration, true, nil
}

func (p *Pebble) Close() error {
	return p.db.Close()
}

// NewPebble opens (or creates) a database in given directory. opts
// can be nil.
func NewPebble(dir string, opts *pebble.Options) (*Pebble, error) {
	if opts == nil {
		opts = &pebble.Options{}
	}

	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot open pebble database: %w", err)
	}

	return &Pebble{db: db}, nil
}
