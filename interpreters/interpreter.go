package interpreters

import (
	"time"

	"github.com/acikkaynak/interpreter-search-go/geo"
)

type Interpreter struct {
	ID                int64     `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email,omitempty"`
	Phone             string    `json:"phone,omitempty"`
	City              string    `json:"city,omitempty"`
	State             string    `json:"state,omitempty"`
	Metro             string    `json:"metro,omitempty"`
	ZipCode           string    `json:"zip_code,omitempty"`
	Country           string    `json:"country,omitempty"`
	Lat               *float64  `json:"lat"`
	Lng               *float64  `json:"lng"`
	SourceLanguage    string    `json:"source_language"`
	TargetLanguage    string    `json:"target_language"`
	IsActive          bool      `json:"is_active"`
	IsAvailable       bool      `json:"is_available"`
	YearsOfExperience int       `json:"years_of_experience"`
	HourlyRate        *float64  `json:"hourly_rate,omitempty"`
	ProficiencyLevel  string    `json:"proficiency_level,omitempty"`
	CertificationType string    `json:"certification_type,omitempty"`
	Rating            float64   `json:"rating"`
	CreatedAt         time.Time `json:"created_at"`
}

// Location reports the record's coordinates. Records that were never
// geocoded, or were stored with the 0,0 placeholder, have no location.
func (i Interpreter) Location() (geo.Point, bool) {
	if i.Lat == nil || i.Lng == nil {
		return geo.Point{}, false
	}
	p := geo.Point{Lat: *i.Lat, Lng: *i.Lng}
	if p.Lat == 0 && p.Lng == 0 {
		return geo.Point{}, false
	}
	if p.Validate() != nil {
		return geo.Point{}, false
	}
	return p, true
}

func (i Interpreter) FullName() string {
	if i.LastName == "" {
		return i.FirstName
	}
	return i.FirstName + " " + i.LastName
}

// Result is an interpreter annotated with its distance from the search
// location, rounded for display. Distance is null when either side has no
// coordinates.
type Result struct {
	Interpreter
	Distance *float64 `json:"distance"`
}

type SearchResult struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	HasMore bool     `json:"has_more"`
	// Degraded is set when the search location could not be resolved and
	// the radius filter was skipped.
	Degraded bool `json:"-"`
}

type LanguagesResponse struct {
	Languages []string `json:"languages"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
