package enrichment

import (
	"sync"
	"time"
)

// Page is a fetched and text-extracted style guide page.
type Page struct {
	URL       string
	Title     string
	Text      string
	FetchedAt time.Time
}

// Cache keeps fetched pages in memory for the lifetime of the process.
// A zero TTL means entries never expire.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]Page
	now     func() time.Time
}

// NewCache creates an empty cache with the given expiry.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]Page),
		now:     time.Now,
	}
}

// Get returns the cached page for url if present and not expired.
func (c *Cache) Get(url string) (Page, bool) {
	c.mu.RLock()
	p, ok := c.entries[url]
	c.mu.RUnlock()
	if !ok {
		return Page{}, false
	}
	if c.ttl > 0 && c.now().Sub(p.FetchedAt) > c.ttl {
		c.mu.Lock()
		// Re-check: another goroutine may have refreshed the entry.
		if cur, still := c.entries[url]; still && cur.FetchedAt.Equal(p.FetchedAt) {
			delete(c.entries, url)
		}
		c.mu.Unlock()
		return Page{}, false
	}
	return p, true
}

// Put stores a page. FetchedAt is set to now when empty.
func (c *Cache) Put(p Page) {
	if p.FetchedAt.IsZero() {
		p.FetchedAt = c.now()
	}
	c.mu.Lock()
	c.entries[p.URL] = p
	c.mu.Unlock()
}
