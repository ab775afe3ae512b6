package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/acikkaynak/interpreter-search-go/interpreters"
	"github.com/acikkaynak/interpreter-search-go/query"
)

const DefaultIndexName = "interpreters"

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

var keywordFields = []query.Field{
	query.FieldFirstName,
	query.FieldLastName,
	query.FieldEmail,
	query.FieldPhone,
	query.FieldCity,
	query.FieldState,
	query.FieldMetro,
	query.FieldSourceLanguage,
	query.FieldTargetLanguage,
	query.FieldCertificationType,
	query.FieldProficiencyLevel,
}

// InterpreterIndex is an Elasticsearch backed interpreter store. Documents
// use the same field names as the interpreters table.
type InterpreterIndex struct {
	index *index[interpreters.Interpreter]
}

func NewInterpreterIndex(connStr, name string) *InterpreterIndex {
	if name == "" {
		name = DefaultIndexName
	}
	return &InterpreterIndex{index: newIndex[interpreters.Interpreter](connStr, name)}
}

func (x *InterpreterIndex) Query(ctx context.Context, filter query.Filter, sort query.Sort, limit, offset int) ([]interpreters.Interpreter, error) {
	body := map[string]interface{}{
		"from":             offset,
		"size":             limit,
		"track_total_hits": false,
		"query":            boolQuery(filter),
		"sort":             sortClauses(sort),
	}

	res, err := x.index.Search(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("could not search interpreters: %w: %w", interpreters.ErrStoreUnavailable, err)
	}

	results := make([]interpreters.Interpreter, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		i := hit.Source
		if i.ID == 0 {
			i.ID, _ = strconv.ParseInt(hit.Id, 10, 64)
		}
		results = append(results, i)
	}
	return results, nil
}

func (x *InterpreterIndex) Count(ctx context.Context, filter query.Filter) (int, error) {
	n, err := x.index.Count(ctx, map[string]interface{}{"query": boolQuery(filter)})
	if err != nil {
		return 0, fmt.Errorf("could not count interpreters: %w: %w", interpreters.ErrStoreUnavailable, err)
	}
	return n, nil
}

// Index upserts records by id.
func (x *InterpreterIndex) Index(ctx context.Context, records []interpreters.Interpreter) error {
	items := make([]Item[interpreters.Interpreter], 0, len(records))
	for _, r := range records {
		items = append(items, Item[interpreters.Interpreter]{Id: strconv.FormatInt(r.ID, 10), Source: r})
	}
	return x.index.Bulk(ctx, items)
}

// EnsureIndex creates the index with keyword mappings so that term and
// wildcard filters see unanalyzed values.
func (x *InterpreterIndex) EnsureIndex(ctx context.Context) error {
	return x.index.Create(ctx, Mapping())
}

func Mapping() map[string]interface{} {
	types := map[query.Field]string{
		query.FieldID:                "long",
		query.FieldYearsOfExperience: "integer",
		query.FieldHourlyRate:        "double",
		query.FieldRating:            "double",
		query.FieldLat:               "double",
		query.FieldLng:               "double",
		query.FieldIsActive:          "boolean",
		query.FieldIsAvailable:       "boolean",
		query.FieldCreatedAt:         "date",
	}
	for _, f := range keywordFields {
		types[f] = "keyword"
	}

	properties := make(map[string]interface{}, len(types))
	for f, t := range types {
		properties[string(f)] = map[string]interface{}{"type": t}
	}
	return map[string]interface{}{
		"mappings": map[string]interface{}{"properties": properties},
	}
}

func boolQuery(filter query.Filter) map[string]interface{} {
	filters := make([]map[string]interface{}, 0, len(filter.Predicates))
	for _, p := range filter.Predicates {
		filters = append(filters, clauses(p)...)
	}

	return map[string]interface{}{
		"bool": map[string]interface{}{
			"filter": filters,
		},
	}
}

func clauses(p query.Predicate) []map[string]interface{} {
	switch p.Kind {
	case query.KindText:
		should := make([]map[string]interface{}, 0, len(query.TextFields))
		for _, f := range query.TextFields {
			should = append(should, wildcard(f, p.Value))
		}
		return []map[string]interface{}{{
			"bool": map[string]interface{}{
				"should":               should,
				"minimum_should_match": 1,
			},
		}}
	case query.KindEqual:
		return []map[string]interface{}{term(p.Field, p.Value)}
	case query.KindContains:
		return []map[string]interface{}{wildcard(p.Field, p.Value)}
	case query.KindRange:
		bounds := map[string]interface{}{}
		if p.Min != nil {
			bounds["gte"] = *p.Min
		}
		if p.Max != nil {
			bounds["lte"] = *p.Max
		}
		return []map[string]interface{}{rangeClause(p.Field, bounds)}
	case query.KindBool:
		return []map[string]interface{}{term(p.Field, p.Bool)}
	case query.KindBounds:
		return []map[string]interface{}{
			rangeClause(query.FieldLat, map[string]interface{}{"gte": p.Box.SouthWest.Lat, "lte": p.Box.NorthEast.Lat}),
			rangeClause(query.FieldLng, map[string]interface{}{"gte": p.Box.SouthWest.Lng, "lte": p.Box.NorthEast.Lng}),
		}
	}
	return []map[string]interface{}{{"match_none": map[string]interface{}{}}}
}

func term(f query.Field, value interface{}) map[string]interface{} {
	return map[string]interface{}{
		"term": map[string]interface{}{string(f): value},
	}
}

func wildcard(f query.Field, value string) map[string]interface{} {
	return map[string]interface{}{
		"wildcard": map[string]interface{}{
			string(f): map[string]interface{}{
				"value":            "*" + wildcardEscaper.Replace(value) + "*",
				"case_insensitive": true,
			},
		},
	}
}

func rangeClause(f query.Field, bounds map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"range": map[string]interface{}{string(f): bounds},
	}
}

func sortClauses(s query.Sort) []map[string]interface{} {
	order := "asc"
	if s.Desc {
		order = "desc"
	}

	var sorts []map[string]interface{}
	for _, k := range s.Keys() {
		sorts = append(sorts, map[string]interface{}{string(k): map[string]interface{}{"order": order}})
	}
	return append(sorts, map[string]interface{}{string(query.FieldID): map[string]interface{}{"order": "asc"}})
}
