// Package query turns search criteria into a store-independent set of
// AND-combined predicates, and renders them for Postgres (squirrel), for
// in-memory evaluation, and for the Elasticsearch index.
package query

import (
	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/acikkaynak/interpreter-search-go/interpreters"
)

type Kind int

const (
	// KindText matches a case-insensitive substring in any of TextFields.
	KindText Kind = iota
	// KindEqual is a case-sensitive exact match.
	KindEqual
	// KindContains is a case-insensitive substring match.
	KindContains
	// KindRange is an inclusive numeric range; either bound may be open.
	KindRange
	KindBool
	// KindBounds keeps records whose coordinates fall inside Box.
	KindBounds
)

// Field names double as column names in the interpreters table and field
// names in the search index.
type Field string

const (
	FieldFirstName         Field = "first_name"
	FieldLastName          Field = "last_name"
	FieldEmail             Field = "email"
	FieldPhone             Field = "phone"
	FieldCity              Field = "city"
	FieldState             Field = "state"
	FieldMetro             Field = "metro"
	FieldSourceLanguage    Field = "source_language"
	FieldTargetLanguage    Field = "target_language"
	FieldCertificationType Field = "certification_type"
	FieldProficiencyLevel  Field = "proficiency_level"
	FieldYearsOfExperience Field = "years_of_experience"
	FieldHourlyRate        Field = "hourly_rate"
	FieldIsAvailable       Field = "is_available"
	FieldIsActive          Field = "is_active"
	FieldLat               Field = "lat"
	FieldLng               Field = "lng"
	FieldRating            Field = "rating"
	FieldCreatedAt         Field = "created_at"
	FieldID                Field = "id"
)

// TextFields are searched by the free-text predicate.
var TextFields = []Field{FieldFirstName, FieldLastName, FieldEmail, FieldPhone}

type Predicate struct {
	Kind  Kind
	Field Field
	Value string
	Min   *float64
	Max   *float64
	Bool  bool
	Box   geo.Box
}

type Filter struct {
	Predicates []Predicate
}

func (f Filter) Empty() bool {
	return len(f.Predicates) == 0
}

// WithBounds returns a copy of f that also requires coordinates inside box.
func (f Filter) WithBounds(box geo.Box) Filter {
	predicates := make([]Predicate, 0, len(f.Predicates)+1)
	predicates = append(predicates, f.Predicates...)
	predicates = append(predicates, Predicate{Kind: KindBounds, Box: box})
	return Filter{Predicates: predicates}
}

// Build composes the predicates for c. Fields left unset contribute nothing.
// Values are used as given: no language or casing normalization happens here.
func Build(c interpreters.Criteria) Filter {
	var f Filter

	if c.IsActive != nil {
		f.Predicates = append(f.Predicates, Predicate{Kind: KindBool, Field: FieldIsActive, Bool: *c.IsActive})
	}

	if c.Query != "" {
		f.Predicates = append(f.Predicates, Predicate{Kind: KindText, Value: c.Query})
	}

	f.equal(FieldSourceLanguage, c.SourceLanguage)
	f.equal(FieldTargetLanguage, c.TargetLanguage)
	f.contains(FieldCity, c.City)
	f.equal(FieldState, c.State)
	f.contains(FieldMetro, c.Metro)

	if c.Available != nil {
		f.Predicates = append(f.Predicates, Predicate{Kind: KindBool, Field: FieldIsAvailable, Bool: *c.Available})
	}

	f.equal(FieldCertificationType, c.CertificationType)

	if c.MinExperience != nil || c.MaxExperience != nil {
		f.Predicates = append(f.Predicates, Predicate{
			Kind:  KindRange,
			Field: FieldYearsOfExperience,
			Min:   intToFloat(c.MinExperience),
			Max:   intToFloat(c.MaxExperience),
		})
	}

	if c.MinRate != nil || c.MaxRate != nil {
		f.Predicates = append(f.Predicates, Predicate{
			Kind:  KindRange,
			Field: FieldHourlyRate,
			Min:   c.MinRate,
			Max:   c.MaxRate,
		})
	}

	f.equal(FieldProficiencyLevel, c.ProficiencyLevel)

	return f
}

func (f *Filter) equal(field Field, value string) {
	if value != "" {
		f.Predicates = append(f.Predicates, Predicate{Kind: KindEqual, Field: field, Value: value})
	}
}

func (f *Filter) contains(field Field, value string) {
	if value != "" {
		f.Predicates = append(f.Predicates, Predicate{Kind: KindContains, Field: field, Value: value})
	}
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
