package geocode

import (
	"context"
	"errors"

	"github.com/acikkaynak/interpreter-search-go/geo"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"github.com/acikkaynak/interpreter-search-go/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Resolver resolves locations with a cache-aside policy: postal codes are
// looked up in the cache first and successful provider resolutions are
// written back. Free text addresses always go to the provider.
type Resolver struct {
	cache    Cache
	provider Provider
	group    singleflight.Group
}

func NewResolver(cache Cache, provider Provider) *Resolver {
	return &Resolver{cache: cache, provider: provider}
}

// Locate resolves a postal code or address to a point.
func (r *Resolver) Locate(ctx context.Context, postalCode string) (geo.Point, error) {
	return r.Resolve(ctx, postalCode)
}

func (r *Resolver) Resolve(ctx context.Context, address string) (geo.Point, error) {
	if !IsPostalCode(address) {
		m, err := r.callProvider(ctx, address)
		if err != nil {
			return geo.Point{}, err
		}
		return m.Point, nil
	}

	zip := NormalizePostalCode(address)

	entry, ok, err := r.cache.Lookup(ctx, zip)
	if err != nil {
		log.Logger().Warn("geocode cache lookup failed", zap.String("postal_code", zip), zap.Error(err))
		metrics.GeocodeLookupsTotal.WithLabelValues("cache", "error").Inc()
	} else if ok {
		metrics.GeocodeLookupsTotal.WithLabelValues("cache", "hit").Inc()
		return entry.Point, nil
	} else {
		metrics.GeocodeLookupsTotal.WithLabelValues("cache", "miss").Inc()
	}

	// Concurrent misses for the same ZIP share one provider call.
	v, err, _ := r.group.Do(zip, func() (interface{}, error) {
		m, err := r.callProvider(ctx, zip)
		if err != nil {
			return geo.Point{}, err
		}

		if err := r.cache.Store(ctx, Entry{PostalCode: zip, Point: m.Point, City: m.City, Region: m.Region}); err != nil {
			log.Logger().Warn("geocode cache store failed", zap.String("postal_code", zip), zap.Error(err))
		}
		return m.Point, nil
	})
	if err != nil {
		return geo.Point{}, err
	}

	return v.(geo.Point), nil
}

func (r *Resolver) callProvider(ctx context.Context, address string) (Match, error) {
	m, err := r.provider.Resolve(ctx, address)
	switch {
	case err == nil:
		metrics.GeocodeLookupsTotal.WithLabelValues("provider", "ok").Inc()
	case errors.Is(err, ErrNotFound):
		metrics.GeocodeLookupsTotal.WithLabelValues("provider", "not_found").Inc()
	case errors.Is(err, ErrRateLimited):
		metrics.GeocodeLookupsTotal.WithLabelValues("provider", "rate_limited").Inc()
	default:
		metrics.GeocodeLookupsTotal.WithLabelValues("provider", "error").Inc()
	}
	return m, err
}
