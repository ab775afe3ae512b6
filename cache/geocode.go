package cache

import (
	"context"
	"fmt"

	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/acikkaynak/interpreter-search-go/geocode"
	jsoniter "github.com/json-iterator/go"
)

const geocodeKeyPrefix = "geocode:zip:"

type geocodeEntry struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	City   string  `json:"city,omitempty"`
	Region string  `json:"region,omitempty"`
}

// GeocodeCache stores postal code coordinates in redis. Keys never expire;
// coordinates of a postal code are treated as fixed.
type GeocodeCache struct {
	repo *RedisRepository
}

func NewGeocodeCache(repo *RedisRepository) *GeocodeCache {
	return &GeocodeCache{repo: repo}
}

func GeocodeKey(postalCode string) string {
	return geocodeKeyPrefix + postalCode
}

func (c *GeocodeCache) Lookup(_ context.Context, postalCode string) (geocode.Entry, bool, error) {
	raw, ok, err := c.repo.Get(GeocodeKey(postalCode))
	if err != nil || !ok {
		return geocode.Entry{}, false, err
	}

	var e geocodeEntry
	if err := jsoniter.Unmarshal(raw, &e); err != nil {
		return geocode.Entry{}, false, fmt.Errorf("corrupt geocode cache entry for %s: %w", postalCode, err)
	}

	return geocode.Entry{
		PostalCode: postalCode,
		Point:      geo.Point{Lat: e.Lat, Lng: e.Lng},
		City:       e.City,
		Region:     e.Region,
	}, true, nil
}

func (c *GeocodeCache) Store(_ context.Context, entry geocode.Entry) error {
	raw, err := jsoniter.Marshal(geocodeEntry{
		Lat:    entry.Point.Lat,
		Lng:    entry.Point.Lng,
		City:   entry.City,
		Region: entry.Region,
	})
	if err != nil {
		return err
	}
	return c.repo.SetKey(GeocodeKey(entry.PostalCode), raw, 0)
}

var _ geocode.Cache = (*GeocodeCache)(nil)
