package geocode

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeProvider struct {
	mu      sync.Mutex
	matches map[string]Match
	errs    map[string]error
	calls   []string
	block   func()
}

func (p *fakeProvider) Resolve(_ context.Context, address string) (Match, error) {
	p.mu.Lock()
	p.calls = append(p.calls, address)
	block := p.block
	p.mu.Unlock()

	if block != nil {
		block()
	}

	if err, ok := p.errs[address]; ok {
		return Match{}, err
	}
	if m, ok := p.matches[address]; ok {
		return m, nil
	}
	return Match{}, ErrNotFound
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

type failingCache struct {
	lookupErr error
	storeErr  error
	stored    int
}

func (c *failingCache) Lookup(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, c.lookupErr
}

func (c *failingCache) Store(context.Context, Entry) error {
	c.stored++
	return c.storeErr
}

var penn = geo.Point{Lat: 40.7506, Lng: -73.9971}

func TestResolver_CacheAside(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{matches: map[string]Match{
		"10001": {Point: penn, City: "New York", Region: "NY"},
	}}
	cache := NewMemoryCache()
	r := NewResolver(cache, provider)

	p, err := r.Locate(ctx, " 10001")
	require.NoError(t, err)
	assert.Equal(t, penn, p)
	assert.Equal(t, 1, provider.callCount())

	entry, ok, err := cache.Lookup(ctx, "10001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "New York", entry.City)
	assert.Equal(t, "NY", entry.Region)

	p, err = r.Locate(ctx, "10001")
	require.NoError(t, err)
	assert.Equal(t, penn, p)
	assert.Equal(t, 1, provider.callCount(), "second lookup must be served from cache")
}

func TestResolver_NormalizesBeforeLookup(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	require.NoError(t, cache.Store(ctx, Entry{PostalCode: "02134", Point: geo.Point{Lat: 42.35, Lng: -71.13}}))
	provider := &fakeProvider{}

	p, err := NewResolver(cache, provider).Locate(ctx, "2134")
	require.NoError(t, err)
	assert.Equal(t, 42.35, p.Lat)
	assert.Zero(t, provider.callCount())
}

func TestResolver_Errors(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{errs: map[string]error{"99999": ErrRateLimited}}
	cache := NewMemoryCache()
	r := NewResolver(cache, provider)

	_, err := r.Locate(ctx, "00000")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Locate(ctx, "99999")
	assert.ErrorIs(t, err, ErrRateLimited)

	assert.Zero(t, cache.Len(), "failures are not cached")
}

func TestResolver_AddressesSkipCache(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{matches: map[string]Match{"Newark, NJ": {Point: geo.Point{Lat: 40.73, Lng: -74.17}}}}
	cache := NewMemoryCache()

	p, err := NewResolver(cache, provider).Resolve(ctx, "Newark, NJ")
	require.NoError(t, err)
	assert.Equal(t, 40.73, p.Lat)
	assert.Zero(t, cache.Len())
}

func TestResolver_CacheFailuresFallThrough(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{matches: map[string]Match{"10001": {Point: penn}}}
	cache := &failingCache{lookupErr: errors.New("connection refused"), storeErr: errors.New("connection refused")}

	p, err := NewResolver(cache, provider).Locate(ctx, "10001")
	require.NoError(t, err)
	assert.Equal(t, penn, p)
	assert.Equal(t, 1, cache.stored)
}

func TestResolver_CoalescesConcurrentMisses(t *testing.T) {
	const callers = 8

	var looked sync.WaitGroup
	looked.Add(callers)
	cache := &countingCache{MemoryCache: NewMemoryCache(), onLookup: looked.Done}

	provider := &fakeProvider{
		matches: map[string]Match{"10001": {Point: penn}},
		block: func() {
			looked.Wait()
			time.Sleep(100 * time.Millisecond)
		},
	}
	r := NewResolver(cache, provider)

	var wg sync.WaitGroup
	var failures atomic.Int32
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := r.Locate(context.Background(), "10001")
			if err != nil || p != penn {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, failures.Load())
	assert.Equal(t, 1, provider.callCount())
}

type countingCache struct {
	*MemoryCache
	onLookup func()
}

func (c *countingCache) Lookup(ctx context.Context, postalCode string) (Entry, bool, error) {
	e, ok, err := c.MemoryCache.Lookup(ctx, postalCode)
	c.onLookup()
	return e, ok, err
}

func TestThrottle(t *testing.T) {
	provider := &fakeProvider{matches: map[string]Match{"a": {Point: penn}}}
	throttled := Throttle(provider, rate.NewLimiter(rate.Every(50*time.Millisecond), 1))

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := throttled.Resolve(context.Background(), "a")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := throttled.Resolve(ctx, "a")
	assert.Error(t, err)
	assert.Equal(t, 3, provider.callCount())
}
