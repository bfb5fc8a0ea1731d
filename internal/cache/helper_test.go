package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// withMiniredis swaps the package client for a miniredis-backed one and
// restores the previous client when the test ends.
func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := GetClient()
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(prev) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	t.Run("roundtrip", func(t *testing.T) {
		require.NoError(t, SetJSON(ctx, "k1", payload{Name: "garden", Count: 3}, time.Minute))

		var got payload
		found, err := GetJSON(ctx, "k1", &got)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, payload{Name: "garden", Count: 3}, got)
	})

	t.Run("missing key is a miss", func(t *testing.T) {
		var got payload
		found, err := GetJSON(ctx, "absent", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestInvalidate(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "a", payload{}, time.Minute))
	require.NoError(t, SetJSON(ctx, "b", payload{}, time.Minute))

	Invalidate(ctx, "a", "b", "never-existed")

	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
}

func TestAside(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			*dest = payload{Name: "fetched", Count: calls}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "aside", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fetched", first.Name)

	// Second read is served from the cache without another fetch.
	var second payload
	require.NoError(t, Aside(ctx, "aside", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestHelpersWithoutRedis(t *testing.T) {
	prev := GetClient()
	SetClient(nil)
	t.Cleanup(func() { SetClient(prev) })
	ctx := context.Background()

	// Everything degrades to the uncached path.
	require.NoError(t, SetJSON(ctx, "k", payload{Name: "x"}, time.Minute))

	var got payload
	found, err := GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	calls := 0
	var dest payload
	require.NoError(t, Aside(ctx, "k", &dest, time.Minute, func() error {
		calls++
		dest.Name = "direct"
		return nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "direct", dest.Name)

	Invalidate(ctx, "k")
}
