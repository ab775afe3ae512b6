package geocode

import (
	"context"
	"errors"
	"sync"

	"github.com/acikkaynak/interpreter-search-go/geo"
)

var (
	ErrNotFound    = errors.New("address could not be geocoded")
	ErrRateLimited = errors.New("geocoding provider rate limit reached")
)

// Entry is a cached postal code resolution. City and Region are kept for
// display only.
type Entry struct {
	PostalCode string    `json:"postal_code"`
	Point      geo.Point `json:"point"`
	City       string    `json:"city,omitempty"`
	Region     string    `json:"region,omitempty"`
}

// Cache stores postal code coordinates. Keys are normalized postal codes. A
// miss is reported with ok == false, never as an error. Store is an upsert
// where the last write wins.
type Cache interface {
	Lookup(ctx context.Context, postalCode string) (entry Entry, ok bool, err error)
	Store(ctx context.Context, entry Entry) error
}

type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Entry)}
}

func (c *MemoryCache) Lookup(_ context.Context, postalCode string) (Entry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[NormalizePostalCode(postalCode)]
	return e, ok, nil
}

func (c *MemoryCache) Store(_ context.Context, entry Entry) error {
	entry.PostalCode = NormalizePostalCode(entry.PostalCode)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[entry.PostalCode] = entry
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
