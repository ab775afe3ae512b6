package directory

import (
	"context"
	"errors"
	"time"

	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/acikkaynak/interpreter-search-go/geocode"
	"github.com/acikkaynak/interpreter-search-go/interpreters"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"github.com/acikkaynak/interpreter-search-go/pkg/metrics"
	"github.com/acikkaynak/interpreter-search-go/query"
	"go.uber.org/zap"
)

// DefaultCandidateLimit caps how many rows a location search pulls from the
// store before radius filtering and pagination happen in memory.
const DefaultCandidateLimit = 5000

const (
	modeList     = "list"
	modeNearby   = "nearby"
	modeDegraded = "degraded"
)

type Option func(*Service)

func WithCandidateLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.candidateLimit = n
		}
	}
}

// WithBoundingBox toggles the lat/lng pre-filter pushed to the store for
// location searches.
func WithBoundingBox(enabled bool) Option {
	return func(s *Service) {
		s.boundingBox = enabled
	}
}

// Service runs interpreter searches. It holds no per-request state.
type Service struct {
	store          Store
	locator        Locator
	candidateLimit int
	boundingBox    bool
}

func New(store Store, locator Locator, opts ...Option) *Service {
	s := &Service{
		store:          store,
		locator:        locator,
		candidateLimit: DefaultCandidateLimit,
		boundingBox:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search validates c, queries the store and, for location searches,
// annotates distances, filters by radius, sorts and paginates in memory.
// Geocoding failures degrade to an unfiltered search; store errors are
// returned as is.
func (s *Service) Search(ctx context.Context, c interpreters.Criteria) (*interpreters.SearchResult, error) {
	c, err := c.Normalize()
	if err != nil {
		return nil, err
	}

	filter := query.Build(c)
	sort := query.NewSort(c.SortBy, c.SortOrder)

	if !c.HasLocation() {
		return s.observe(modeList, func() (*interpreters.SearchResult, error) {
			return s.page(ctx, filter, sort, c)
		})
	}

	ref, err := s.locator.Locate(ctx, c.PostalCode)
	if err != nil {
		logGeocodeFailure(c.PostalCode, err)
		return s.observe(modeDegraded, func() (*interpreters.SearchResult, error) {
			res, err := s.page(ctx, filter, sort, c)
			if res != nil {
				res.Degraded = true
			}
			return res, err
		})
	}

	return s.observe(modeNearby, func() (*interpreters.SearchResult, error) {
		return s.nearby(ctx, filter, sort, c, ref)
	})
}

func (s *Service) page(ctx context.Context, filter query.Filter, sort query.Sort, c interpreters.Criteria) (*interpreters.SearchResult, error) {
	records, err := s.store.Query(ctx, filter, sort, c.Limit, c.Offset)
	if err != nil {
		return nil, err
	}

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]interpreters.Result, 0, len(records))
	for _, r := range records {
		results = append(results, interpreters.Result{Interpreter: r})
	}

	return &interpreters.SearchResult{
		Results: results,
		Total:   total,
		HasMore: c.Offset+len(results) < total,
	}, nil
}

func (s *Service) nearby(ctx context.Context, filter query.Filter, sort query.Sort, c interpreters.Criteria, ref geo.Point) (*interpreters.SearchResult, error) {
	radius := c.RadiusMiles()
	if s.boundingBox {
		filter = filter.WithBounds(geo.BoundingBox(ref, radius))
	}

	candidates, err := s.store.Query(ctx, filter, sort, s.candidateLimit, 0)
	if err != nil {
		return nil, err
	}
	if len(candidates) == s.candidateLimit {
		log.Logger().Warn("location search hit the candidate cap",
			zap.String("postal_code", c.PostalCode), zap.Int("cap", s.candidateLimit))
	}

	annotated := geo.Annotate(candidates, ref, interpreters.Interpreter.Location)
	within := geo.FilterByRadius(annotated, radius)
	if c.SortBy == interpreters.SortByDistance {
		geo.SortByDistance(within, c.SortOrder == interpreters.Descending)
	}

	total := len(within)
	start := min(c.Offset, total)
	end := min(c.Offset+c.Limit, total)

	results := make([]interpreters.Result, 0, end-start)
	for _, a := range within[start:end] {
		results = append(results, interpreters.Result{Interpreter: a.Item, Distance: a.Rounded()})
	}

	return &interpreters.SearchResult{
		Results: results,
		Total:   total,
		HasMore: c.Offset+len(results) < total,
	}, nil
}

func (s *Service) observe(mode string, fn func() (*interpreters.SearchResult, error)) (*interpreters.SearchResult, error) {
	start := time.Now()
	res, err := fn()
	metrics.SearchDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.SearchRequestsTotal.WithLabelValues(mode, status).Inc()

	return res, err
}

func logGeocodeFailure(postalCode string, err error) {
	switch {
	case errors.Is(err, geocode.ErrRateLimited):
		log.Logger().Warn("geocoding rate limited, searching without radius", zap.String("postal_code", postalCode))
	case errors.Is(err, geocode.ErrNotFound):
		log.Logger().Info("postal code not found, searching without radius", zap.String("postal_code", postalCode))
	default:
		log.Logger().Warn("geocoding failed, searching without radius", zap.String("postal_code", postalCode), zap.Error(err))
	}
}
