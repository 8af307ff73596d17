package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigkit/pkg/cache"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	t.Run("get and replace", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)
		assert.False(t, c.Put("a", 1))
		assert.True(t, c.Put("a", 2))

		v, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, c.Len())

		_, ok = c.Get("missing")
		assert.False(t, ok)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](2)
		var evicted []string
		c.OnEvict(func(k string, _ int) { evicted = append(evicted, k) })

		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok)
		_, ok = c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, []string{"b"}, evicted)
	})

	t.Run("remove and clear", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[int, string](3)
		c.Put(1, "one")
		c.Put(2, "two")
		c.Put(3, "three")

		assert.True(t, c.Remove(2))
		assert.False(t, c.Remove(2))
		assert.Equal(t, 2, c.Len())

		c.Clear()
		assert.Equal(t, 0, c.Len())
		c.Put(4, "four")
		assert.Equal(t, 1, c.Len())
	})

	t.Run("size must be positive", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { cache.NewLRU[string, int](0) })
	})

	t.Run("concurrent", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[int, int](8)
		var wg sync.WaitGroup
		for i := range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := range 100 {
					c.Put(i*100+j, j)
					c.Get(j)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 8, c.Len())
	})
}
