package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/acikkaynak/interpreter-search-go/cache"
	"github.com/acikkaynak/interpreter-search-go/config"
	"github.com/acikkaynak/interpreter-search-go/directory"
	"github.com/acikkaynak/interpreter-search-go/geocode"
	"github.com/acikkaynak/interpreter-search-go/handler"
	"github.com/acikkaynak/interpreter-search-go/migrations"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"github.com/acikkaynak/interpreter-search-go/repository"
	"github.com/acikkaynak/interpreter-search-go/search"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Records is the record store every binary works against. With the elastic
// backend it stays the postgres source of truth while searches go to the
// index.
type Records interface {
	directory.Store
	handler.InterpreterGetter
	handler.LanguageLister
	geocode.BackfillStore
}

type Application struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	repo     *repository.Repository
	records  Records
	searcher directory.Store
	index    *search.InterpreterIndex
	redis    *cache.RedisRepository
	zipCache geocode.Cache
	provider geocode.Provider
	resolver *geocode.Resolver
}

type Option func(*Application)

// WithRecords replaces the configured record store.
func WithRecords(records Records) Option {
	return func(a *Application) {
		a.records = records
	}
}

// WithProvider replaces the Google geocoding provider.
func WithProvider(provider geocode.Provider) Option {
	return func(a *Application) {
		a.provider = provider
	}
}

// New connects the backends selected by cfg. Postgres migrations run before
// the pool is handed out.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Application, error) {
	a := &Application{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.connectPostgres(ctx); err != nil {
		return nil, err
	}
	if a.records == nil {
		a.records = repository.NewMemoryStore()
	}

	if cfg.HasElastic() {
		a.index = search.NewInterpreterIndex(cfg.ElasticURL, cfg.ElasticIndex)
		if err := a.index.EnsureIndex(ctx); err != nil {
			if cfg.StoreBackend == config.StoreElastic {
				a.Close()
				return nil, fmt.Errorf("could not create search index: %w", err)
			}
			log.Logger().Warn("search index unavailable, reindexing disabled", zap.Error(err))
			a.index = nil
		}
	}

	a.searcher = a.records
	if cfg.StoreBackend == config.StoreElastic {
		a.searcher = a.index
	}

	if cfg.HasRedis() {
		a.redis = cache.NewRedisRepository(cfg.RedisAddr, cfg.RedisPassword)
		if err := a.redis.Ping(); err != nil {
			if cfg.GeocodeCache == config.CacheRedis {
				a.Close()
				return nil, fmt.Errorf("could not reach redis: %w", err)
			}
			log.Logger().Warn("redis unavailable, response cache disabled", zap.Error(err))
			_ = a.redis.Close()
			a.redis = nil
		}
	}

	switch cfg.GeocodeCache {
	case config.StorePostgres:
		a.zipCache = repository.NewZipCodeCache(a.pool)
	case config.CacheRedis:
		a.zipCache = cache.NewGeocodeCache(a.redis)
	default:
		a.zipCache = geocode.NewMemoryCache()
	}

	if a.provider == nil {
		a.provider = geocode.NewGoogleProvider(cfg.GeocodeBaseURL, cfg.GoogleMapsAPIKey)
	}
	a.resolver = geocode.NewResolver(a.zipCache, a.provider)

	return a, nil
}

func (a *Application) connectPostgres(ctx context.Context) error {
	needsRecords := a.records == nil && a.cfg.StoreBackend != config.StoreMemory
	if !needsRecords && a.cfg.GeocodeCache != config.StorePostgres {
		return nil
	}

	if err := migrations.Up(a.cfg.DatabaseURL); err != nil {
		return fmt.Errorf("could not migrate database: %w", err)
	}

	repo, err := repository.New(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	a.repo = repo
	a.pool = repo.Pool()
	if needsRecords {
		a.records = repo
	}
	return nil
}

func (a *Application) Config() *config.Config {
	return a.cfg
}

func (a *Application) Records() Records {
	return a.records
}

// Index is nil unless an Elasticsearch url is configured.
func (a *Application) Index() *search.InterpreterIndex {
	return a.index
}

// Resolver is the interactive resolver used by searches.
func (a *Application) Resolver() *geocode.Resolver {
	return a.resolver
}

// BulkResolver shares the cache with Resolver but spaces provider calls by
// the configured geocode delay.
func (a *Application) BulkResolver() *geocode.Resolver {
	limiter := rate.NewLimiter(rate.Every(a.cfg.GeocodeDelay), 1)
	return geocode.NewResolver(a.zipCache, geocode.Throttle(a.provider, limiter))
}

func (a *Application) Directory() *directory.Service {
	return directory.New(a.searcher, a.resolver, directory.WithCandidateLimit(a.cfg.CandidateLimit))
}

// ZipCodeCache is the postgres geocode cache, available whenever a database
// is configured.
func (a *Application) ZipCodeCache() (*repository.ZipCodeCache, error) {
	if a.pool == nil {
		return nil, errors.New("DB_CONN_STR must be set to use the zipcode cache")
	}
	return repository.NewZipCodeCache(a.pool), nil
}

func (a *Application) Pingers() []handler.Pinger {
	var deps []handler.Pinger
	if a.repo != nil {
		deps = append(deps, a.repo)
	}
	if a.redis != nil {
		deps = append(deps, pingFunc(func(context.Context) error { return a.redis.Ping() }))
	}
	return deps
}

func (a *Application) Close() {
	if a.repo != nil {
		a.repo.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Logger().Warn("failed to close redis client", zap.Error(err))
		}
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}
