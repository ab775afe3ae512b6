package geo

import "math"

// Box is a latitude/longitude rectangle.
type Box struct {
	SouthWest Point `json:"south_west"`
	NorthEast Point `json:"north_east"`
}

// BoundingBox returns a box containing every point within radius miles of
// center. It is a pre-filter only: corners of the box lie outside the radius.
// Near the poles, or for radii wide enough to wrap the antimeridian, the
// longitude span is widened to the whole globe.
func BoundingBox(center Point, radius float64) Box {
	// Pad slightly so points exactly on the circle are never cut by float error.
	angular := radius / EarthRadiusMiles * 1.0001
	dLat := angular * 180 / math.Pi

	minLat := math.Max(center.Lat-dLat, -90)
	maxLat := math.Min(center.Lat+dLat, 90)

	minLng, maxLng := -180.0, 180.0
	if minLat > -90 && maxLat < 90 {
		s := math.Sin(angular) / math.Cos(radians(center.Lat))
		if s < 1 {
			dLng := math.Asin(s) * 180 / math.Pi
			if center.Lng-dLng >= -180 && center.Lng+dLng <= 180 {
				minLng, maxLng = center.Lng-dLng, center.Lng+dLng
			}
		}
	}

	return Box{
		SouthWest: Point{Lat: minLat, Lng: minLng},
		NorthEast: Point{Lat: maxLat, Lng: maxLng},
	}
}

func (b Box) Contains(p Point) bool {
	return p.Lat >= b.SouthWest.Lat && p.Lat <= b.NorthEast.Lat &&
		p.Lng >= b.SouthWest.Lng && p.Lng <= b.NorthEast.Lng
}
