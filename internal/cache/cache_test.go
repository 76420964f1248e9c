package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCachesWithinTTL(t *testing.T) {
	c := New[int](5 * time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	calls := 0
	fetch := func() (int, error) {
		calls++
		return 42, nil
	}

	v, hit, err := c.Get("k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.False(t, hit)

	v, hit, err = c.Get("k", fetch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, hit)
	assert.Equal(t, 1, calls)

	// Past the TTL the value is refetched.
	now = now.Add(6 * time.Minute)
	_, hit, err = c.Get("k", fetch)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, calls)
}

func TestGetDoesNotCacheErrors(t *testing.T) {
	c := New[int](time.Minute)

	calls := 0
	_, _, err := c.Get("k", func() (int, error) {
		calls++
		return 0, errors.New("upstream down")
	})
	require.Error(t, err)

	v, _, err := c.Get("k", func() (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 2, calls)
}

func TestZeroTTLDisablesCaching(t *testing.T) {
	c := New[string](0)

	calls := 0
	for i := 0; i < 3; i++ {
		_, hit, err := c.Get("k", func() (string, error) {
			calls++
			return "v", nil
		})
		require.NoError(t, err)
		assert.False(t, hit)
	}
	assert.Equal(t, 3, calls)
}

func TestFlush(t *testing.T) {
	c := New[int](time.Hour)

	calls := 0
	fetch := func() (int, error) {
		calls++
		return calls, nil
	}

	_, _, err := c.Get("k", fetch)
	require.NoError(t, err)
	c.Flush()
	v, hit, err := c.Get("k", fetch)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, v)
}
