package interpreters

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCriteria  = errors.New("invalid search criteria")
	ErrStoreUnavailable = errors.New("interpreter store unavailable")
	ErrNotFound         = errors.New("interpreter not found")
)

const (
	DefaultLimit  = 50
	MaxLimit      = 100
	DefaultRadius = 25.0
	MinRadius     = 1.0
	MaxRadius     = 100.0
)

type SortField string

const (
	SortByName      SortField = "name"
	SortByCity      SortField = "city"
	SortByCreatedAt SortField = "createdAt"
	SortByRating    SortField = "rating"
	SortByDistance  SortField = "distance"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByName, SortByCity, SortByCreatedAt, SortByRating, SortByDistance:
		return true
	}
	return false
}

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Criteria bundles the optional filters of a search together with its
// pagination window and sort. Empty strings and nil pointers mean "no filter".
type Criteria struct {
	Query             string
	SourceLanguage    string
	TargetLanguage    string
	City              string
	State             string
	Metro             string
	PostalCode        string
	Radius            *float64
	Available         *bool
	IsActive          *bool
	CertificationType string
	ProficiencyLevel  string
	MinExperience     *int
	MaxExperience     *int
	MinRate           *float64
	MaxRate           *float64

	Limit     int
	Offset    int
	SortBy    SortField
	SortOrder SortOrder
}

// HasLocation reports whether the search is scoped to a postal code.
func (c Criteria) HasLocation() bool {
	return c.PostalCode != ""
}

// RadiusMiles returns the radius after defaults were applied.
func (c Criteria) RadiusMiles() float64 {
	if c.Radius == nil {
		return DefaultRadius
	}
	return *c.Radius
}

// Normalize applies defaults and rejects out of bound values. It runs
// before any store access.
func (c Criteria) Normalize() (Criteria, error) {
	c.Query = strings.TrimSpace(c.Query)
	c.PostalCode = strings.TrimSpace(c.PostalCode)

	if c.Limit == 0 {
		c.Limit = DefaultLimit
	}
	if c.Limit < 1 || c.Limit > MaxLimit {
		return c, invalid("limit must be between 1 and %d, got %d", MaxLimit, c.Limit)
	}
	if c.Offset < 0 {
		return c, invalid("offset must not be negative, got %d", c.Offset)
	}

	if c.SortBy == "" {
		c.SortBy = SortByName
	}
	if !c.SortBy.Valid() {
		return c, invalid("unknown sort field %q", c.SortBy)
	}
	if c.SortOrder == "" {
		c.SortOrder = Ascending
	}
	if c.SortOrder != Ascending && c.SortOrder != Descending {
		return c, invalid("unknown sort order %q", c.SortOrder)
	}

	if c.Radius == nil {
		r := DefaultRadius
		c.Radius = &r
	}
	if !(*c.Radius >= MinRadius && *c.Radius <= MaxRadius) {
		return c, invalid("radius must be between %v and %v miles, got %v", MinRadius, MaxRadius, *c.Radius)
	}

	if c.MinExperience != nil && *c.MinExperience < 0 {
		return c, invalid("min_experience must not be negative")
	}
	if c.MaxExperience != nil && *c.MaxExperience < 0 {
		return c, invalid("max_experience must not be negative")
	}
	if c.MinExperience != nil && c.MaxExperience != nil && *c.MinExperience > *c.MaxExperience {
		return c, invalid("min_experience %d exceeds max_experience %d", *c.MinExperience, *c.MaxExperience)
	}
	if c.MinRate != nil && *c.MinRate < 0 {
		return c, invalid("min_rate must not be negative")
	}
	if c.MaxRate != nil && *c.MaxRate < 0 {
		return c, invalid("max_rate must not be negative")
	}
	if c.MinRate != nil && c.MaxRate != nil && *c.MinRate > *c.MaxRate {
		return c, invalid("min_rate %v exceeds max_rate %v", *c.MinRate, *c.MaxRate)
	}

	return c, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCriteria, fmt.Sprintf(format, args...))
}
