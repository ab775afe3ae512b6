package geocode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/acikkaynak/interpreter-search-go/geo"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
)

const (
	DefaultGoogleBaseURL = "https://maps.googleapis.com"
	googleGeocodePath    = "/maps/api/geocode/json"
	defaultTimeout       = 10 * time.Second
)

type googleResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
	Results      []googleResult `json:"results"`
}

type googleResult struct {
	FormattedAddress  string                   `json:"formatted_address"`
	AddressComponents []googleAddressComponent `json:"address_components"`
	Geometry          struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

type googleAddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// GoogleProvider calls the Google Geocoding API.
type GoogleProvider struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
}

func NewGoogleProvider(baseURL, apiKey string) *GoogleProvider {
	if baseURL == "" {
		baseURL = DefaultGoogleBaseURL
	}
	return &GoogleProvider{
		client:  &fasthttp.Client{Name: "interpreter-search-go"},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Resolve geocodes address. Bare ZIP codes are restricted to the US so a
// five digit string cannot resolve to a postal code in another country.
func (p *GoogleProvider) Resolve(ctx context.Context, address string) (Match, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Match{}, ErrNotFound
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	res := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(res)

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(p.baseURL + googleGeocodePath)

	args := req.URI().QueryArgs()
	if IsPostalCode(address) {
		args.Add("address", NormalizePostalCode(address)+", USA")
		args.Add("components", "country:US")
		args.Add("region", "us")
	} else {
		args.Add("address", address)
	}
	if p.apiKey != "" {
		args.Add("key", p.apiKey)
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = p.client.DoDeadline(req, res, deadline)
	} else {
		err = p.client.DoTimeout(req, res, defaultTimeout)
	}
	if err != nil {
		return Match{}, fmt.Errorf("could not call geocoding api: %w", err)
	}

	if res.StatusCode() == fasthttp.StatusTooManyRequests {
		return Match{}, ErrRateLimited
	}
	if res.StatusCode() != fasthttp.StatusOK {
		return Match{}, fmt.Errorf("geocoding api returned status %d", res.StatusCode())
	}

	var body googleResponse
	if err := jsoniter.Unmarshal(res.Body(), &body); err != nil {
		return Match{}, fmt.Errorf("could not decode geocoding response: %w", err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return Match{}, ErrNotFound
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return Match{}, ErrRateLimited
	default:
		return Match{}, fmt.Errorf("geocoding api status %s: %s", body.Status, body.ErrorMessage)
	}

	if len(body.Results) == 0 {
		return Match{}, ErrNotFound
	}

	best := body.Results[0]
	point := geo.Point{Lat: best.Geometry.Location.Lat, Lng: best.Geometry.Location.Lng}
	if err := point.Validate(); err != nil {
		return Match{}, fmt.Errorf("geocoding api returned invalid location: %w", err)
	}

	match := Match{Point: point, FormattedAddress: best.FormattedAddress}
	for _, c := range best.AddressComponents {
		for _, t := range c.Types {
			switch t {
			case "locality":
				match.City = c.LongName
			case "administrative_area_level_1":
				match.Region = c.ShortName
			}
		}
	}

	return match, nil
}
