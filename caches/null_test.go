package caches_test

import (
	"context"
	"testing"
	"time"

	"github.com/9seconds/ipinfo/caches"
	"github.com/stretchr/testify/assert"
)

func TestNull(t *testing.T) {
	ctx := context.Background()
	c := caches.Null{}

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	_, ok, err := c.Get(ctx, "k")

	assert.NoError(t, err)
	assert.False(t, ok)

	removed, err := c.Delete(ctx, "k")

	assert.NoError(t, err)
	assert.False(t, removed)

	removed, err = c.DeleteByPrefix(ctx, "")

	assert.NoError(t, err)
	assert.False(t, removed)
}
