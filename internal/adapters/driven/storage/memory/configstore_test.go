package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{"query.workers": 4})

	assert.Equal(t, 4, store.GetInt("query.workers"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("database.path", "/data/db"))

	val, ok := store.Get("database.path")
	assert.True(t, ok)
	assert.Equal(t, "/data/db", val)
	assert.Equal(t, "/data/db", store.GetString("database.path"))
}

func TestConfigStore_GetInt_Shapes(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"a": 3,
		"b": int64(4),
		"c": float64(5),
		"d": "six",
	})

	assert.Equal(t, 3, store.GetInt("a"))
	assert.Equal(t, 4, store.GetInt("b"))
	assert.Equal(t, 5, store.GetInt("c"))
	assert.Equal(t, 0, store.GetInt("d"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore(map[string]any{"on": true, "str": "true"})

	assert.True(t, store.GetBool("on"))
	assert.False(t, store.GetBool("str"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_TypeMismatch(t *testing.T) {
	store := NewConfigStore(map[string]any{"n": 1})

	assert.Equal(t, "", store.GetString("n"))
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore(map[string]any{"b": 1, "a": 2})

	assert.Equal(t, []string{"a", "b"}, store.Keys())
}

func TestConfigStore_NoOps(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("query.workers", i)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("query.workers")
		}()
	}
	wg.Wait()

	_, ok := store.Get("query.workers")
	assert.True(t, ok)
}
