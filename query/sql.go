package query

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Sqlizer renders the filter as a Postgres WHERE clause.
func (f Filter) Sqlizer() sq.Sqlizer {
	and := sq.And{}
	for _, p := range f.Predicates {
		and = append(and, p.sqlizer())
	}
	return and
}

func (p Predicate) sqlizer() sq.Sqlizer {
	switch p.Kind {
	case KindText:
		or := sq.Or{}
		for _, field := range TextFields {
			or = append(or, sq.ILike{string(field): containsPattern(p.Value)})
		}
		return or
	case KindEqual:
		return sq.Eq{string(p.Field): p.Value}
	case KindContains:
		return sq.ILike{string(p.Field): containsPattern(p.Value)}
	case KindRange:
		and := sq.And{}
		if p.Min != nil {
			and = append(and, sq.GtOrEq{string(p.Field): *p.Min})
		}
		if p.Max != nil {
			and = append(and, sq.LtOrEq{string(p.Field): *p.Max})
		}
		return and
	case KindBool:
		return sq.Eq{string(p.Field): p.Bool}
	case KindBounds:
		return sq.And{
			sq.GtOrEq{string(FieldLat): p.Box.SouthWest.Lat},
			sq.LtOrEq{string(FieldLat): p.Box.NorthEast.Lat},
			sq.GtOrEq{string(FieldLng): p.Box.SouthWest.Lng},
			sq.LtOrEq{string(FieldLng): p.Box.NorthEast.Lng},
		}
	}
	return sq.Expr("FALSE")
}

func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
