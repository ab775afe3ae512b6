package cache

import (
	"errors"
	"io"
	"net/http/httptest"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/acikkaynak/interpreter-search-go/middleware/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (s *memoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memoryStore) SetKey(key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *memoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *memoryStore) DeleteMatching(pattern string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k := range s.values {
		if ok, _ := path.Match(pattern, k); ok {
			delete(s.values, k)
			n++
		}
	}
	return n, nil
}

func newApp(store Store, hits *int) *fiber.App {
	app := fiber.New()
	app.Use(New(store, 0))
	app.Get("/languages", func(c *fiber.Ctx) error {
		*hits++
		return c.JSON(fiber.Map{"languages": []string{"Spanish"}})
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		*hits++
		return c.SendStatus(fiber.StatusNotFound)
	})
	app.Post("/languages", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})
	return app
}

func TestResponseCache_ServesSecondRequestFromCache(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	app := newApp(store, &hits)

	resp, err := app.Test(httptest.NewRequest("GET", "/languages", nil))
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get(CachedHeader))

	resp, err = app.Test(httptest.NewRequest("GET", "/languages", nil))
	require.NoError(t, err)
	assert.Equal(t, "true", resp.Header.Get(CachedHeader))
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"languages":["Spanish"]}`, string(body))

	assert.Equal(t, 1, hits)
	assert.Equal(t, DefaultTTL, store.ttls[Key("/languages", false)])
}

func TestResponseCache_SkipsErrorsAndWrites(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	app := newApp(store, &hits)

	for range 2 {
		_, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, hits)

	_, err := app.Test(httptest.NewRequest("GET", "/languages", nil))
	require.NoError(t, err)
	require.Contains(t, store.values, Key("/languages", false))

	_, err = app.Test(httptest.NewRequest("POST", "/languages", nil))
	require.NoError(t, err)
	assert.NotContains(t, store.values, Key("/languages", false))
}

func TestResponseCache_StoreFailureFallsThrough(t *testing.T) {
	store := newMemoryStore()
	store.getErr = errors.New("redis down")
	hits := 0
	app := newApp(store, &hits)

	resp, err := app.Test(httptest.NewRequest("GET", "/languages", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, hits)
}

func TestKey_DependsOnQuery(t *testing.T) {
	assert.NotEqual(t, Key("/interpreters/search?zip_code=10001", false), Key("/interpreters/search?zip_code=10002", false))
	assert.NotEqual(t, Key("/languages", false), Key("/languages", true))
	assert.Equal(t, Key("/languages", false), Key("/languages", false))
	assert.Contains(t, Key("/languages", false), KeyPrefix)
}

func TestResponseCache_AuthorizedResponsesAreKeptApart(t *testing.T) {
	store := newMemoryStore()
	app := fiber.New()
	app.Use(auth.New("s3cret"))
	app.Use(New(store, 0))
	app.Get("/contact", func(c *fiber.Ctx) error {
		if auth.Authorized(c) {
			return c.JSON(fiber.Map{"email": "ana@example.com"})
		}
		return c.JSON(fiber.Map{"email": "ana****@example.com"})
	})

	req := httptest.NewRequest("GET", "/contact", nil)
	req.Header.Set(auth.ApiKeyHeaderName, "s3cret")
	_, err := app.Test(req)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/contact", nil))
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get(CachedHeader))
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"email":"ana****@example.com"}`, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/contact", nil))
	require.NoError(t, err)
	assert.Equal(t, "true", resp.Header.Get(CachedHeader))
	body, _ = io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "ana@example.com")
}

func TestResponseCache_RespectsNoStore(t *testing.T) {
	store := newMemoryStore()
	hits := 0
	app := fiber.New()
	app.Use(New(store, 0))
	app.Get("/degraded", func(c *fiber.Ctx) error {
		hits++
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.JSON(fiber.Map{"total": 3})
	})

	for range 2 {
		resp, err := app.Test(httptest.NewRequest("GET", "/degraded", nil))
		require.NoError(t, err)
		assert.Empty(t, resp.Header.Get(CachedHeader))
	}
	assert.Equal(t, 2, hits)
	assert.Empty(t, store.values)
}

func TestPruner_DropsResponsesOnly(t *testing.T) {
	store := newMemoryStore()
	require.NoError(t, store.SetKey(Key("/languages", false), []byte(`{}`), DefaultTTL))
	require.NoError(t, store.SetKey(Key("/languages", true), []byte(`{}`), DefaultTTL))
	require.NoError(t, store.SetKey("geocode:zip:10001", []byte(`{"lat":40.75}`), 0))

	require.NoError(t, NewPruner(store).Prune())

	assert.Len(t, store.values, 1)
	assert.Contains(t, store.values, "geocode:zip:10001")
}
