package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache[[]string](10)

	_, ok := c.Get("alice")
	assert.False(t, ok)

	c.Set("alice", []string{"alice", "4lice"}, 0)
	got, ok := c.Get("alice")
	require.True(t, ok)
	assert.Equal(t, []string{"alice", "4lice"}, got)

	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestMemoryCache_DefaultCapacity(t *testing.T) {
	assert.Equal(t, 256, NewMemoryCache[int](0).Capacity())
}

func TestMemoryCache_EvictsLRU(t *testing.T) {
	c := NewMemoryCache[int](2)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	// touch a so b becomes the LRU entry
	_, _ = c.Get("a")
	c.Set("c", 3, 0)

	_, okA := c.Get("a")
	_, okB := c.Get("b")
	_, okC := c.Get("c")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.True(t, okC)
	assert.Equal(t, 2, c.Size())
}

func TestMemoryCache_UpdateExisting(t *testing.T) {
	c := NewMemoryCache[int](2)
	c.Set("a", 1, 0)
	c.Set("a", 2, 0)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Size())
}

func TestMemoryCache_TTL(t *testing.T) {
	c := NewMemoryCache[int](4)
	c.Set("short", 1, 10*time.Millisecond)
	c.Set("forever", 2, 0)

	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
	_, ok = c.Get("forever")
	assert.True(t, ok)
}

func TestMemoryCache_CleanExpired(t *testing.T) {
	c := NewMemoryCache[int](4)
	c.Set("a", 1, time.Millisecond)
	c.Set("b", 2, time.Millisecond)
	c.Set("c", 3, 0)

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 2, c.CleanExpired())
	assert.Equal(t, 1, c.Size())
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	c := NewMemoryCache[int](4)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	c.Delete("a")
	c.Delete("missing")
	assert.Equal(t, 1, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c := NewMemoryCache[int](64)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%8)
			c.Set(key, i, 0)
			_, _ = c.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, c.Size())
}
