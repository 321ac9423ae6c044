package enrichment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_PutGet(t *testing.T) {
	c := NewCache(0)

	_, ok := c.Get("https://example.test/a")
	assert.False(t, ok)

	c.Put(Page{URL: "https://example.test/a", Title: "A"})
	p, ok := c.Get("https://example.test/a")
	assert.True(t, ok)
	assert.Equal(t, "A", p.Title)
	assert.False(t, p.FetchedAt.IsZero())
	assert.Len(t, c.entries, 1)
}

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Put(Page{URL: "u", Title: "fresh"})

	now = now.Add(30 * time.Second)
	_, ok := c.Get("u")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = c.Get("u")
	assert.False(t, ok)
	assert.Empty(t, c.entries)
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	c := NewCache(0)
	c.Put(Page{URL: "u", FetchedAt: time.Now().Add(-24 * 365 * time.Hour)})

	_, ok := c.Get("u")
	assert.True(t, ok)
}
