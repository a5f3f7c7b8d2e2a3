package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestBoundedCache_ReadYourWrite(t *testing.T) {
	c := New[int, string](4)

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Insert(1, "one")
	v, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "one", v)

	c.Insert(1, "uno")
	v, ok = c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "uno", v)
	assert.Equal(t, 1, c.Len())
}

func TestBoundedCache_FlushWhenFull(t *testing.T) {
	c := New[string, int](2)

	c.Insert("A", 1)
	c.Insert("B", 2)
	assert.Equal(t, 2, c.Len())

	c.Insert("C", 3)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("A")
	assert.False(t, ok, "A should be flushed")
	_, ok = c.Get("B")
	assert.False(t, ok, "B should be flushed")

	v, ok := c.Get("C")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestBoundedCache_CapacityPlusOne(t *testing.T) {
	const capacity = 50
	c := New[int, int](capacity)

	for i := 0; i <= capacity; i++ {
		c.Insert(i, i*10)
		assert.LessOrEqual(t, c.Len(), capacity)
	}

	assert.Equal(t, 1, c.Len())
	for i := 0; i < capacity; i++ {
		_, ok := c.Get(i)
		assert.False(t, ok, "key %d should be flushed", i)
	}

	v, ok := c.Get(capacity)
	require.True(t, ok)
	assert.Equal(t, capacity*10, v)
}

func TestBoundedCache_NeverExceedsCapacity(t *testing.T) {
	c := New[int, int](7)

	for i := 0; i < 1000; i++ {
		c.Insert(i%23, i)
		require.LessOrEqual(t, c.Len(), 7)
	}
}

func TestBoundedCache_MinimumCapacity(t *testing.T) {
	assert.Equal(t, 50, New[int, int](50).Capacity())

	c := New[int, int](0)
	assert.Equal(t, 1, c.Capacity())

	c.Insert(1, 1)
	c.Insert(2, 2)
	assert.Equal(t, 1, c.Len())
}

func TestBoundedCache_RemoveAndTake(t *testing.T) {
	c := New[int, string](4)
	c.Insert(1, "one")
	c.Insert(2, "two")

	c.Remove(1)
	_, ok := c.Get(1)
	assert.False(t, ok)

	v, ok := c.Take(2)
	require.True(t, ok)
	assert.Equal(t, "two", v)

	_, ok = c.Take(2)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	c.Remove(99)
}

func TestBoundedCache_GetOrInsertWith(t *testing.T) {
	ctx := context.Background()
	c := New[int, string](4)

	var calls int
	v, err := c.GetOrInsertWith(ctx, 42, func(context.Context) (string, error) {
		calls++
		return "value", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls)

	v, err = c.GetOrInsertWith(ctx, 42, func(context.Context) (string, error) {
		t.Fatal("fetch must not run on a hit")
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "value", v)
}

func TestBoundedCache_GetOrInsertWithErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := New[int, string](4)
	errFetch := errors.New("boom")

	_, err := c.GetOrInsertWith(ctx, 7, func(context.Context) (string, error) {
		return "", errFetch
	})
	require.ErrorIs(t, err, errFetch)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrInsertWith(ctx, 7, func(context.Context) (string, error) {
		return "second", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	cached, ok := c.Get(7)
	require.True(t, ok)
	assert.Equal(t, "second", cached)
}

func TestBoundedCache_GetOrInsertWithCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := New[int, string](4)

	_, err := c.GetOrInsertWith(ctx, 1, func(ctx context.Context) (string, error) {
		cancel()
		<-ctx.Done()
		return "", ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)

	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestBoundedCache_ConcurrentDuplicateFetch(t *testing.T) {
	ctx := context.Background()
	c := New[int, string](4)

	var started sync.WaitGroup
	started.Add(2)
	var calls atomic.Int32

	fetch := func(v string) func(context.Context) (string, error) {
		return func(context.Context) (string, error) {
			calls.Add(1)
			started.Done()
			started.Wait()
			return v, nil
		}
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := c.GetOrInsertWith(ctx, 42, fetch("A"))
		return err
	})
	g.Go(func() error {
		_, err := c.GetOrInsertWith(ctx, 42, fetch("B"))
		return err
	})
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(2), calls.Load())

	v, ok := c.Get(42)
	require.True(t, ok)
	assert.Contains(t, []string{"A", "B"}, v)
	assert.Equal(t, 1, c.Len())
}

func TestBoundedCache_ConcurrentAccess(t *testing.T) {
	c := New[int, int](16)

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i := 0; i < 500; i++ {
				key := (w*500 + i) % 40
				c.Insert(key, i)
				c.Get(key)
				if i%7 == 0 {
					c.Take(key)
				}
				if c.Len() > 16 {
					return errors.New("capacity exceeded")
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.LessOrEqual(t, c.Len(), 16)
}
