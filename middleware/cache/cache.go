package cache

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/acikkaynak/interpreter-search-go/middleware/auth"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultTTL   = 5 * time.Minute
	CachedHeader = "x-cached-response"
	// KeyPrefix namespaces response entries so a prune leaves other data in
	// the same redis database alone.
	KeyPrefix = "response:"
)

// Store is the subset of cache.RedisRepository used for responses.
type Store interface {
	Get(key string) ([]byte, bool, error)
	SetKey(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
}

var skipped = map[string]bool{
	"/healthcheck":  true,
	"/metrics":      true,
	"/monitor":      true,
	"/caches/prune": true,
}

// Key derives the response cache key of a request URI. Authorized callers
// see unmasked contacts, so their responses are kept apart.
func Key(requestURI string, authorized bool) string {
	name := requestURI + "|" + strconv.FormatBool(authorized)
	return KeyPrefix + uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// Matcher deletes every key matching a glob pattern.
type Matcher interface {
	DeleteMatching(pattern string) (int64, error)
}

// Pruner drops cached responses only.
type Pruner struct {
	store Matcher
}

func NewPruner(store Matcher) *Pruner {
	return &Pruner{store: store}
}

func (p *Pruner) Prune() error {
	n, err := p.store.DeleteMatching(KeyPrefix + "*")
	if err != nil {
		return err
	}
	log.Logger().Info("response cache pruned", zap.Int64("keys", n))
	return nil
}

func noStore(c *fiber.Ctx) bool {
	return strings.Contains(string(c.Response().Header.Peek(fiber.HeaderCacheControl)), "no-store")
}

func New(store Store, ttl time.Duration) fiber.Handler {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return func(c *fiber.Ctx) error {
		if skipped[c.Path()] {
			return c.Next()
		}

		if c.Method() != http.MethodGet {
			// Writes may change what this url returns.
			for _, authorized := range []bool{false, true} {
				if err := store.Delete(Key(c.OriginalURL(), authorized)); err != nil {
					log.Logger().Warn("could not drop cached response", zap.Error(err))
				}
			}
			return c.Next()
		}

		key := Key(c.OriginalURL(), auth.Authorized(c))

		cached, ok, err := store.Get(key)
		if err != nil {
			log.Logger().Warn("response cache unavailable", zap.Error(err))
		}
		if !ok || len(cached) == 0 {
			if err := c.Next(); err != nil {
				return err
			}
			if c.Response().StatusCode() == fiber.StatusOK && len(c.Response().Body()) > 0 && !noStore(c) {
				body := append([]byte(nil), c.Response().Body()...)
				if err := store.SetKey(key, body, ttl); err != nil {
					log.Logger().Warn("could not cache response", zap.Error(err))
				}
			}
			return nil
		}

		c.Set(CachedHeader, "true")
		c.Response().SetBodyRaw(cached)
		c.Response().Header.SetContentType(fiber.MIMEApplicationJSON)
		return nil
	}
}
