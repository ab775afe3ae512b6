// Package geo holds the great-circle math used by proximity search.
package geo

import (
	"fmt"
	"math"
	"sort"
)

const (
	EarthRadiusMiles = 3959.0
	EarthRadiusKm    = 6371.0
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", p.Lat)
	}
	if math.IsNaN(p.Lng) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", p.Lng)
	}
	return nil
}

// Distance returns the haversine distance between a and b in miles, unrounded.
func Distance(a, b Point) float64 {
	return DistanceIn(a, b, EarthRadiusMiles)
}

// DistanceIn is Distance on a sphere of the given radius; the result has the radius' unit.
func DistanceIn(a, b Point, radius float64) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*sinLng*sinLng

	return 2 * radius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Round rounds a distance to one decimal place for display.
func Round(d float64) float64 {
	return math.Round(d*10) / 10
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Annotation pairs an item with its raw distance from a reference point.
// Distance is nil when the item has no coordinates.
type Annotation[T any] struct {
	Item     T
	Distance *float64
}

// Rounded returns the display value of the distance.
func (a Annotation[T]) Rounded() *float64 {
	if a.Distance == nil {
		return nil
	}
	d := Round(*a.Distance)
	return &d
}

// Annotate maps every item to an Annotation. Items that locate reports as
// unlocated are kept with a nil distance.
func Annotate[T any](items []T, ref Point, locate func(T) (Point, bool)) []Annotation[T] {
	out := make([]Annotation[T], 0, len(items))
	for _, item := range items {
		a := Annotation[T]{Item: item}
		if p, ok := locate(item); ok {
			d := Distance(ref, p)
			a.Distance = &d
		}
		out = append(out, a)
	}
	return out
}

// FilterByRadius keeps annotations whose distance is known and within radius.
func FilterByRadius[T any](items []Annotation[T], radius float64) []Annotation[T] {
	out := make([]Annotation[T], 0, len(items))
	for _, a := range items {
		if a.Distance != nil && *a.Distance <= radius {
			out = append(out, a)
		}
	}
	return out
}

// SortByDistance orders items by distance in place. Unknown distances sort
// last regardless of direction; equal keys keep their input order.
func SortByDistance[T any](items []Annotation[T], desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Distance, items[j].Distance
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		case desc:
			return *a > *b
		default:
			return *a < *b
		}
	})
}
