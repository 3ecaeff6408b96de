package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/absa/internal/model"
)

func TestKey(t *testing.T) {
	a := Key([]byte("name,review\n"))
	b := Key([]byte("name,review\n"))
	c := Key([]byte("name,review\nx,y\n"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^absa:v1:[0-9a-f]{64}$`, a)
}

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	ds := &model.Dataset{Source: "reviews.csv"}

	_, found := c.Get("k")
	assert.False(t, found)

	c.Set("k", ds, 0)
	got, found := c.Get("k")
	require.True(t, found)
	assert.Same(t, ds, got)
	assert.Equal(t, 1, c.Len())

	c.Delete("k")
	_, found = c.Get("k")
	assert.False(t, found)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("k", &model.Dataset{}, 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	_, found := c.Get("k")
	assert.False(t, found)
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("a", &model.Dataset{}, 0)
	c.Set("b", &model.Dataset{}, 0)

	c.Clear()
	assert.Zero(t, c.Len())
}
