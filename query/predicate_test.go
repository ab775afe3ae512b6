package query

import (
	"slices"
	"testing"
	"time"

	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/acikkaynak/interpreter-search-go/interpreters"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestBuild_UnsetCriteriaHasNoPredicates(t *testing.T) {
	f := Build(interpreters.Criteria{})
	assert.True(t, f.Empty())
}

func TestBuild_PredicateKinds(t *testing.T) {
	f := Build(interpreters.Criteria{
		Query:             "lopez",
		SourceLanguage:    "English",
		TargetLanguage:    "Spanish",
		City:              "york",
		State:             "NY",
		Metro:             "tri-state",
		Available:         ptr(true),
		IsActive:          ptr(true),
		CertificationType: "CCHI",
		ProficiencyLevel:  "native",
		MinExperience:     ptr(2),
		MinRate:           ptr(50.0),
		MaxRate:           ptr(150.0),
	})

	kinds := map[Kind]int{}
	for _, p := range f.Predicates {
		kinds[p.Kind]++
	}

	assert.Equal(t, 1, kinds[KindText])
	assert.Equal(t, 5, kinds[KindEqual])
	assert.Equal(t, 2, kinds[KindContains])
	assert.Equal(t, 2, kinds[KindRange])
	assert.Equal(t, 2, kinds[KindBool])

	for _, p := range f.Predicates {
		if p.Kind == KindRange && p.Field == FieldYearsOfExperience {
			require.NotNil(t, p.Min)
			assert.Equal(t, 2.0, *p.Min)
			assert.Nil(t, p.Max)
		}
	}
}

func TestSqlizer(t *testing.T) {
	f := Build(interpreters.Criteria{
		Query:          "50%_off",
		TargetLanguage: "Spanish",
		MinRate:        ptr(50.0),
		MaxRate:        ptr(150.0),
		IsActive:       ptr(true),
	})

	sql, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id").From("interpreters").Where(f.Sqlizer()).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "is_active = $1")
	assert.Contains(t, sql, "first_name ILIKE $2 OR last_name ILIKE $3 OR email ILIKE $4 OR phone ILIKE $5")
	assert.Contains(t, sql, "target_language = $6")
	assert.Contains(t, sql, "hourly_rate >= $7 AND hourly_rate <= $8")
	assert.Equal(t, []interface{}{true, `%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`, "Spanish", 50.0, 150.0}, args)
}

func TestSqlizer_Bounds(t *testing.T) {
	box := geo.Box{SouthWest: geo.Point{Lat: 40, Lng: -75}, NorthEast: geo.Point{Lat: 41, Lng: -73}}
	sql, args, err := Filter{}.WithBounds(box).Sqlizer().ToSql()
	require.NoError(t, err)

	assert.Equal(t, "((lat >= ? AND lat <= ? AND lng >= ? AND lng <= ?))", sql)
	assert.Equal(t, []interface{}{40.0, 41.0, -75.0, -73.0}, args)
}

func sample() []interpreters.Interpreter {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []interpreters.Interpreter{
		{ID: 1, FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com", City: "New York", State: "NY",
			SourceLanguage: "English", TargetLanguage: "Spanish", IsActive: true, IsAvailable: true,
			HourlyRate: ptr(40.0), YearsOfExperience: 3, Rating: 4.5, CreatedAt: base},
		{ID: 2, FirstName: "Bo", LastName: "Chen", Phone: "212-555-0100", City: "Brooklyn", State: "NY",
			SourceLanguage: "English", TargetLanguage: "Mandarin", IsActive: true,
			HourlyRate: ptr(75.0), YearsOfExperience: 10, Rating: 4.9, CreatedAt: base.Add(time.Hour)},
		{ID: 3, FirstName: "Carla", LastName: "Diaz", City: "Newark", State: "NJ",
			SourceLanguage: "English", TargetLanguage: "Spanish", IsActive: false,
			HourlyRate: ptr(120.0), YearsOfExperience: 7, Rating: 3.2, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, FirstName: "ana", LastName: "Zed", City: "Albany", State: "ny",
			SourceLanguage: "English", TargetLanguage: "spanish", IsActive: true,
			HourlyRate: ptr(200.0), CreatedAt: base.Add(3 * time.Hour)},
		{ID: 5, FirstName: "Eve", LastName: "Ng", City: "Boston", State: "MA",
			SourceLanguage: "English", TargetLanguage: "ASL", IsActive: true, CreatedAt: base.Add(4 * time.Hour)},
	}
}

func matchIDs(f Filter, items []interpreters.Interpreter) []int64 {
	var ids []int64
	for _, i := range items {
		if f.Match(i) {
			ids = append(ids, i.ID)
		}
	}
	return ids
}

func TestMatch(t *testing.T) {
	items := sample()

	cases := []struct {
		name     string
		criteria interpreters.Criteria
		want     []int64
	}{
		{"no filter", interpreters.Criteria{}, []int64{1, 2, 3, 4, 5}},
		{"equality is case sensitive", interpreters.Criteria{TargetLanguage: "Spanish"}, []int64{1, 3}},
		{"state equality", interpreters.Criteria{State: "NY"}, []int64{1, 2}},
		{"city contains ignores case", interpreters.Criteria{City: "NEW"}, []int64{1, 3}},
		{"text over name", interpreters.Criteria{Query: "ana"}, []int64{1, 4}},
		{"text over phone", interpreters.Criteria{Query: "555-01"}, []int64{2}},
		{"text over email", interpreters.Criteria{Query: "EXAMPLE.com"}, []int64{1}},
		{"rate range inclusive", interpreters.Criteria{MinRate: ptr(50.0), MaxRate: ptr(150.0)}, []int64{2, 3}},
		{"rate range drops unknown", interpreters.Criteria{MaxRate: ptr(1000.0)}, []int64{1, 2, 3, 4}},
		{"experience lower bound", interpreters.Criteria{MinExperience: ptr(7)}, []int64{2, 3}},
		{"experience exact bounds", interpreters.Criteria{MinExperience: ptr(3), MaxExperience: ptr(3)}, []int64{1}},
		{"active only", interpreters.Criteria{IsActive: ptr(true)}, []int64{1, 2, 4, 5}},
		{"inactive only", interpreters.Criteria{IsActive: ptr(false)}, []int64{3}},
		{"available", interpreters.Criteria{Available: ptr(true)}, []int64{1}},
		{"and combined", interpreters.Criteria{TargetLanguage: "Spanish", IsActive: ptr(true)}, []int64{1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, matchIDs(Build(tc.criteria), items))
		})
	}
}

func TestMatch_RateScenario(t *testing.T) {
	var items []interpreters.Interpreter
	for i, rate := range []float64{40, 75, 120, 200} {
		items = append(items, interpreters.Interpreter{ID: int64(i + 1), HourlyRate: ptr(rate)})
	}

	ids := matchIDs(Build(interpreters.Criteria{MinRate: ptr(50.0), MaxRate: ptr(150.0)}), items)
	assert.Equal(t, []int64{2, 3}, ids)
}

func TestMatch_Bounds(t *testing.T) {
	items := []interpreters.Interpreter{
		{ID: 1, Lat: ptr(40.75), Lng: ptr(-73.99)},
		{ID: 2},
		{ID: 3, Lat: ptr(41.88), Lng: ptr(-87.61)},
	}
	box := geo.BoundingBox(geo.Point{Lat: 40.7506, Lng: -73.9971}, 10)

	assert.Equal(t, []int64{1}, matchIDs(Filter{}.WithBounds(box), items))
}

func TestMatch_BoundsAgreesWithBox(t *testing.T) {
	box := geo.Box{SouthWest: geo.Point{Lat: 40, Lng: -75}, NorthEast: geo.Point{Lat: 41, Lng: -73}}
	filter := Filter{}.WithBounds(box)

	for _, p := range []geo.Point{
		{Lat: 40, Lng: -75},
		{Lat: 41, Lng: -73},
		{Lat: 40.5, Lng: -74},
		{Lat: 39.99, Lng: -74},
		{Lat: 40.5, Lng: -72.99},
	} {
		i := interpreters.Interpreter{ID: 1, Lat: ptr(p.Lat), Lng: ptr(p.Lng)}
		assert.Equal(t, box.Contains(p), filter.Match(i), "%+v", p)
	}

	assert.False(t, filter.Match(interpreters.Interpreter{ID: 2, Lat: ptr(40.5)}), "half a coordinate is unknown")
}

func TestSortColumns(t *testing.T) {
	assert.Equal(t, []string{"first_name ASC", "last_name ASC", "id ASC"},
		NewSort(interpreters.SortByName, interpreters.Ascending).Columns())
	assert.Equal(t, []string{"rating DESC", "id ASC"},
		NewSort(interpreters.SortByRating, interpreters.Descending).Columns())
	assert.Equal(t, []string{"created_at ASC", "id ASC"},
		NewSort(interpreters.SortByDistance, interpreters.Ascending).Columns())
}

func TestSortCompare(t *testing.T) {
	items := sample()

	byName := slices.Clone(items)
	slices.SortStableFunc(byName, NewSort(interpreters.SortByName, interpreters.Ascending).Compare)
	assert.Equal(t, []int64{1, 2, 3, 5, 4}, ids(byName))

	byRating := slices.Clone(items)
	slices.SortStableFunc(byRating, NewSort(interpreters.SortByRating, interpreters.Descending).Compare)
	assert.Equal(t, []int64{2, 1, 3, 4, 5}, ids(byRating))

	byCreated := slices.Clone(items)
	slices.SortStableFunc(byCreated, NewSort(interpreters.SortByCreatedAt, interpreters.Descending).Compare)
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, ids(byCreated))
}

func ids(items []interpreters.Interpreter) []int64 {
	out := make([]int64, 0, len(items))
	for _, i := range items {
		out = append(out, i.ID)
	}
	return out
}
