package kv

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_GetMissingKey(t *testing.T) {
	store := NewMemory()

	value, found, err := store.Get(context.Background(), "nope")

	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestMemory_SetOverwrites(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "k", "v1"))
	assert.NoError(t, store.Set(ctx, "k", "v2"))

	value, found, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", value)
}

func TestMemory_Delete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	assert.NoError(t, store.Set(ctx, "k", "v"))
	assert.NoError(t, store.Delete(ctx, "k"))

	_, found, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = store.Set(ctx, "shared", "v")
				_, _, _ = store.Get(ctx, "shared")
			}
		}()
	}
	wg.Wait()

	value, found, err := store.Get(ctx, "shared")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", value)
}
