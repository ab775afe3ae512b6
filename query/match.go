package query

import (
	"strings"

	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/acikkaynak/interpreter-search-go/interpreters"
)

// Match evaluates the filter against a single record with the same
// semantics as the SQL rendering. A range predicate never matches a record
// whose value is unknown, as with SQL NULL.
func (f Filter) Match(i interpreters.Interpreter) bool {
	for _, p := range f.Predicates {
		if !p.match(i) {
			return false
		}
	}
	return true
}

func (p Predicate) match(i interpreters.Interpreter) bool {
	switch p.Kind {
	case KindText:
		for _, field := range TextFields {
			if containsFold(stringField(i, field), p.Value) {
				return true
			}
		}
		return false
	case KindEqual:
		return stringField(i, p.Field) == p.Value
	case KindContains:
		return containsFold(stringField(i, p.Field), p.Value)
	case KindRange:
		v, ok := numberField(i, p.Field)
		if !ok {
			return false
		}
		if p.Min != nil && v < *p.Min {
			return false
		}
		if p.Max != nil && v > *p.Max {
			return false
		}
		return true
	case KindBool:
		return boolField(i, p.Field) == p.Bool
	case KindBounds:
		if i.Lat == nil || i.Lng == nil {
			return false
		}
		return p.Box.Contains(geo.Point{Lat: *i.Lat, Lng: *i.Lng})
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func stringField(i interpreters.Interpreter, f Field) string {
	switch f {
	case FieldFirstName:
		return i.FirstName
	case FieldLastName:
		return i.LastName
	case FieldEmail:
		return i.Email
	case FieldPhone:
		return i.Phone
	case FieldCity:
		return i.City
	case FieldState:
		return i.State
	case FieldMetro:
		return i.Metro
	case FieldSourceLanguage:
		return i.SourceLanguage
	case FieldTargetLanguage:
		return i.TargetLanguage
	case FieldCertificationType:
		return i.CertificationType
	case FieldProficiencyLevel:
		return i.ProficiencyLevel
	}
	return ""
}

func numberField(i interpreters.Interpreter, f Field) (float64, bool) {
	switch f {
	case FieldYearsOfExperience:
		return float64(i.YearsOfExperience), true
	case FieldHourlyRate:
		if i.HourlyRate == nil {
			return 0, false
		}
		return *i.HourlyRate, true
	case FieldRating:
		return i.Rating, true
	}
	return 0, false
}

func boolField(i interpreters.Interpreter, f Field) bool {
	switch f {
	case FieldIsActive:
		return i.IsActive
	case FieldIsAvailable:
		return i.IsAvailable
	}
	return false
}
