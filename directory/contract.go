package directory

import (
	"context"

	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/acikkaynak/interpreter-search-go/interpreters"
	"github.com/acikkaynak/interpreter-search-go/query"
)

// Store is the record store contract. Implementations wrap connectivity
// failures with interpreters.ErrStoreUnavailable.
type Store interface {
	Query(ctx context.Context, filter query.Filter, sort query.Sort, limit, offset int) ([]interpreters.Interpreter, error)
	Count(ctx context.Context, filter query.Filter) (int, error)
}

// Locator resolves a postal code to coordinates, normally through the
// geocode cache with a provider fallback.
type Locator interface {
	Locate(ctx context.Context, postalCode string) (geo.Point, error)
}
