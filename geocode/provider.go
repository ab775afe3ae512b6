package geocode

import (
	"context"

	"github.com/acikkaynak/interpreter-search-go/geo"
	"golang.org/x/time/rate"
)

// Match is the provider's best candidate for an address.
type Match struct {
	Point            geo.Point
	City             string
	Region           string
	FormattedAddress string
}

// Provider resolves free text addresses to coordinates. Implementations
// return ErrNotFound when the address does not resolve and ErrRateLimited
// when the caller should back off.
type Provider interface {
	Resolve(ctx context.Context, address string) (Match, error)
}

type throttled struct {
	provider Provider
	limiter  *rate.Limiter
}

// Throttle serializes calls to provider through limiter. Bulk callers use it
// to keep an explicit delay between requests.
func Throttle(provider Provider, limiter *rate.Limiter) Provider {
	return &throttled{provider: provider, limiter: limiter}
}

func (t *throttled) Resolve(ctx context.Context, address string) (Match, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return Match{}, err
	}
	return t.provider.Resolve(ctx, address)
}
