package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/acikkaynak/interpreter-search-go/geocode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPreload(t *testing.T) {
	dataset := `[
		{"zip_code": 501, "latitude": 40.8154, "longitude": -73.0451, "city": "Holtsville", "state": "NY"},
		{"zip_code": "10001", "latitude": 40.7506, "longitude": -73.9971, "city": "New York", "state": "NY"},
		{"zip_code": 99999999, "latitude": 1, "longitude": 1, "city": "Nowhere", "state": "XX"},
		{"zip_code": 12345, "latitude": 120, "longitude": 1, "city": "Broken", "state": "XX"}
	]`

	entries, rejected, err := readPreload(strings.NewReader(dataset))
	require.NoError(t, err)

	assert.Equal(t, 2, rejected)
	require.Len(t, entries, 2)
	assert.Equal(t, "00501", entries[0].PostalCode)
	assert.Equal(t, "Holtsville", entries[0].City)
	assert.Equal(t, "NY", entries[0].Region)
	assert.Equal(t, "10001", entries[1].PostalCode)
}

func TestReadPreload_Malformed(t *testing.T) {
	_, _, err := readPreload(strings.NewReader(`{"zip_code": 1}`))
	assert.Error(t, err)
}

type scriptedRunner struct {
	reports []geocode.BackfillReport
	err     error
	calls   int
}

func (r *scriptedRunner) Run(context.Context, int) (geocode.BackfillReport, error) {
	report := r.reports[r.calls]
	r.calls++
	if r.calls == len(r.reports) {
		return report, r.err
	}
	return report, nil
}

func TestBackfill_SingleBatch(t *testing.T) {
	runner := &scriptedRunner{reports: []geocode.BackfillReport{{Processed: 2, Updated: 2}, {Updated: 1}}}

	total, err := backfill(context.Background(), runner, 50, false)
	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, 2, total.Updated)
}

func TestBackfill_AllStopsWhenNothingUpdates(t *testing.T) {
	runner := &scriptedRunner{reports: []geocode.BackfillReport{
		{Processed: 2, Updated: 2},
		{Processed: 3, Updated: 1, Failed: 2},
		{Processed: 2, Failed: 2},
	}}

	total, err := backfill(context.Background(), runner, 50, true)
	require.NoError(t, err)
	assert.Equal(t, 3, runner.calls)
	assert.Equal(t, geocode.BackfillReport{Processed: 7, Updated: 3, Failed: 4}, total)
}

func TestBackfill_AllStopsOnRateLimit(t *testing.T) {
	runner := &scriptedRunner{reports: []geocode.BackfillReport{
		{Processed: 1, Updated: 1, RateLimited: true, Skipped: 4},
		{Updated: 5},
	}}

	total, err := backfill(context.Background(), runner, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)
	assert.True(t, total.RateLimited)
	assert.Equal(t, 4, total.Skipped)
}

func TestBackfill_ReturnsStoreErrors(t *testing.T) {
	boom := errors.New("db down")
	runner := &scriptedRunner{reports: []geocode.BackfillReport{{Updated: 1}, {}}, err: boom}

	_, err := backfill(context.Background(), runner, 5, true)
	assert.ErrorIs(t, err, boom)
}

func TestCommands(t *testing.T) {
	backfill := backfillCmd()
	size, err := backfill.Flags().GetInt("batch-size")
	require.NoError(t, err)
	assert.Equal(t, 50, size)

	preload := preloadCmd()
	file, err := preload.Flags().GetString("file")
	require.NoError(t, err)
	assert.Equal(t, "USCities.json", file)
}
