package interpreters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNormalize_Defaults(t *testing.T) {
	c, err := Criteria{PostalCode: " 10001 "}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, DefaultLimit, c.Limit)
	assert.Equal(t, 0, c.Offset)
	assert.Equal(t, SortByName, c.SortBy)
	assert.Equal(t, Ascending, c.SortOrder)
	assert.Equal(t, DefaultRadius, c.RadiusMiles())
	assert.Equal(t, "10001", c.PostalCode)
	assert.True(t, c.HasLocation())
}

func TestNormalize_Rejects(t *testing.T) {
	cases := map[string]Criteria{
		"limit too large":         {Limit: 101},
		"negative limit":          {Limit: -1},
		"negative offset":         {Offset: -5},
		"unknown sort":            {SortBy: "salary"},
		"unknown order":           {SortOrder: "sideways"},
		"radius too small":        {Radius: ptr(0.5)},
		"radius too large":        {Radius: ptr(250.0)},
		"negative experience":     {MinExperience: ptr(-1)},
		"inverted experience":     {MinExperience: ptr(10), MaxExperience: ptr(2)},
		"negative rate":           {MaxRate: ptr(-10.0)},
		"inverted rate range":     {MinRate: ptr(150.0), MaxRate: ptr(50.0)},
		"negative max experience": {MaxExperience: ptr(-3)},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Normalize()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCriteria)
		})
	}
}

func TestNormalize_AcceptsBounds(t *testing.T) {
	c, err := Criteria{Limit: 100, Offset: 500, Radius: ptr(1.0), SortBy: SortByDistance, SortOrder: Descending}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 100, c.Limit)
	assert.Equal(t, 1.0, c.RadiusMiles())
}

func TestInterpreterLocation(t *testing.T) {
	_, ok := Interpreter{}.Location()
	assert.False(t, ok)

	_, ok = Interpreter{Lat: ptr(0.0), Lng: ptr(0.0)}.Location()
	assert.False(t, ok)

	_, ok = Interpreter{Lat: ptr(95.0), Lng: ptr(10.0)}.Location()
	assert.False(t, ok)

	p, ok := Interpreter{Lat: ptr(40.7506), Lng: ptr(-73.9971)}.Location()
	require.True(t, ok)
	assert.Equal(t, 40.7506, p.Lat)
	assert.Equal(t, -73.9971, p.Lng)
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ana Lopez", Interpreter{FirstName: "Ana", LastName: "Lopez"}.FullName())
	assert.Equal(t, "Ana", Interpreter{FirstName: "Ana"}.FullName())
}
