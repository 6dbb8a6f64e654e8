package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	err := store.Set(ctx, "attempt:1", payload{Name: "A1", Count: 2}, 0)
	require.NoError(t, err)

	var got payload
	err = store.Get(ctx, "attempt:1", &got)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.Name)
	assert.Equal(t, 2, got.Count)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	var dest string
	err := store.Get(ctx, "nope", &dest)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Set(ctx, "short", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var dest string
	assert.ErrorIs(t, store.Get(ctx, "short", &dest), ErrNotFound)

	exists, err := store.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Set(ctx, "k", "v", 0))
	require.NoError(t, store.Delete(ctx, "k"))

	exists, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is a no-op
	assert.NoError(t, store.Delete(ctx, "k"))
}
