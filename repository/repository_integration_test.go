//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/acikkaynak/interpreter-search-go/geocode"
	"github.com/acikkaynak/interpreter-search-go/interpreters"
	"github.com/acikkaynak/interpreter-search-go/query"
	"github.com/acikkaynak/interpreter-search-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pc)
	repo := NewWithPool(pool)

	t.Run("query and count", func(t *testing.T) {
		require.NoError(t, testutil.Truncate(ctx, pool))
		for _, i := range fixtures() {
			_, err := repo.Create(ctx, i)
			require.NoError(t, err)
		}

		active := true
		f := query.Build(interpreters.Criteria{IsActive: &active, City: "new"})
		got, err := repo.Query(ctx, f, query.NewSort(interpreters.SortByName, interpreters.Ascending), 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Carlos", got[0].FirstName)

		n, err := repo.Count(ctx, f)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = repo.Count(ctx, query.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("wildcards in text are literal", func(t *testing.T) {
		require.NoError(t, testutil.Truncate(ctx, pool))
		_, err := repo.Create(ctx, interpreters.Interpreter{FirstName: "Percy", IsActive: true})
		require.NoError(t, err)

		n, err := repo.Count(ctx, query.Build(interpreters.Criteria{Query: "%"}))
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("rate range", func(t *testing.T) {
		require.NoError(t, testutil.Truncate(ctx, pool))
		for _, r := range []float64{40, 75, 120, 200} {
			_, err := repo.Create(ctx, interpreters.Interpreter{FirstName: "R", IsActive: true, HourlyRate: float(r)})
			require.NoError(t, err)
		}

		got, err := repo.Query(ctx, query.Build(interpreters.Criteria{MinRate: float(50), MaxRate: float(150)}),
			query.NewSort(interpreters.SortByName, interpreters.Ascending), 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 75.0, *got[0].HourlyRate)
		assert.Equal(t, 120.0, *got[1].HourlyRate)
	})

	t.Run("get, update and languages", func(t *testing.T) {
		require.NoError(t, testutil.Truncate(ctx, pool))
		for _, i := range fixtures() {
			_, err := repo.Create(ctx, i)
			require.NoError(t, err)
		}

		pending, err := repo.ListUngeocoded(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, pending, 3)

		require.NoError(t, repo.UpdateCoordinates(ctx, pending[0].ID, geo.Point{Lat: 40.85, Lng: -73.97}))
		i, err := repo.GetInterpreter(ctx, pending[0].ID)
		require.NoError(t, err)
		loc, ok := i.Location()
		require.True(t, ok)
		assert.Equal(t, 40.85, loc.Lat)

		_, err = repo.GetInterpreter(ctx, 9999)
		assert.ErrorIs(t, err, interpreters.ErrNotFound)
		assert.ErrorIs(t, repo.UpdateCoordinates(ctx, 9999, geo.Point{}), interpreters.ErrNotFound)

		langs, err := repo.Languages(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"English", "Korean", "Spanish"}, langs)
	})

	t.Run("zipcode cache", func(t *testing.T) {
		require.NoError(t, testutil.Truncate(ctx, pool))
		c := NewZipCodeCache(pool)

		_, ok, err := c.Lookup(ctx, "10001")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, c.Store(ctx, geocode.Entry{PostalCode: "10001", Point: geo.Point{Lat: 1, Lng: 2}}))
		require.NoError(t, c.Store(ctx, geocode.Entry{PostalCode: "10001", Point: geo.Point{Lat: 40.7506, Lng: -73.9971}, City: "New York", Region: "NY"}))

		e, ok, err := c.Lookup(ctx, "10001")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 40.7506, e.Point.Lat)
		assert.Equal(t, "NY", e.Region)

		inserted, err := c.StoreBatch(ctx, []geocode.Entry{
			{PostalCode: "10001", Point: geo.Point{Lat: 9, Lng: 9}},
			{PostalCode: "00501", Point: geo.Point{Lat: 40.8154, Lng: -73.0451}},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), inserted)

		e, _, err = c.Lookup(ctx, "10001")
		require.NoError(t, err)
		assert.Equal(t, 40.7506, e.Point.Lat, "preload keeps existing rows")

		n, err := c.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}
