package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/acikkaynak/interpreter-search-go/geocode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PreloadBatchSize is the number of rows sent per pgx batch by StoreBatch.
const PreloadBatchSize = 1000

// ZipCodeCache is the Postgres backed geocode cache.
type ZipCodeCache struct {
	pool *pgxpool.Pool
}

func NewZipCodeCache(pool *pgxpool.Pool) *ZipCodeCache {
	return &ZipCodeCache{pool: pool}
}

func (c *ZipCodeCache) Lookup(ctx context.Context, postalCode string) (geocode.Entry, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	e := geocode.Entry{PostalCode: postalCode}
	err := c.pool.QueryRow(ctx,
		`SELECT latitude, longitude, COALESCE(city, ''), COALESCE(state, '') FROM zipcode_cache WHERE zipcode = $1`,
		postalCode,
	).Scan(&e.Point.Lat, &e.Point.Lng, &e.City, &e.Region)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geocode.Entry{}, false, nil
		}
		return geocode.Entry{}, false, fmt.Errorf("could not read zipcode cache: %w", err)
	}
	return e, true, nil
}

func (c *ZipCodeCache) Store(ctx context.Context, e geocode.Entry) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := c.pool.Exec(ctx,
		`INSERT INTO zipcode_cache (zipcode, latitude, longitude, city, state)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (zipcode) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			updated_at = now()`,
		e.PostalCode, e.Point.Lat, e.Point.Lng, e.City, e.Region)
	if err != nil {
		return fmt.Errorf("could not write zipcode cache: %w", err)
	}
	return nil
}

// StoreBatch inserts entries in chunks of PreloadBatchSize and leaves
// existing postal codes untouched. It returns the number of rows inserted.
func (c *ZipCodeCache) StoreBatch(ctx context.Context, entries []geocode.Entry) (int64, error) {
	var inserted int64
	for start := 0; start < len(entries); start += PreloadBatchSize {
		end := min(start+PreloadBatchSize, len(entries))

		batch := &pgx.Batch{}
		for _, e := range entries[start:end] {
			batch.Queue(
				`INSERT INTO zipcode_cache (zipcode, latitude, longitude, city, state)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (zipcode) DO NOTHING`,
				e.PostalCode, e.Point.Lat, e.Point.Lng, e.City, e.Region)
		}

		n, err := c.sendBatch(ctx, batch)
		inserted += n
		if err != nil {
			return inserted, err
		}
	}
	return inserted, nil
}

func (c *ZipCodeCache) sendBatch(ctx context.Context, batch *pgx.Batch) (int64, error) {
	results := c.pool.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("could not preload zipcode cache: %w", err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

// Len reports the number of cached postal codes.
func (c *ZipCodeCache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.pool.QueryRow(ctx, `SELECT COUNT(*) FROM zipcode_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("could not count zipcode cache: %w", err)
	}
	return n, nil
}

var _ geocode.Cache = (*ZipCodeCache)(nil)

// PreloadEntry converts a row of the bundled US cities dataset.
func PreloadEntry(zip string, lat, lng float64, city, state string) (geocode.Entry, bool) {
	code := geocode.NormalizePostalCode(zip)
	p := geo.Point{Lat: lat, Lng: lng}
	if !geocode.IsPostalCode(code) || p.Validate() != nil {
		return geocode.Entry{}, false
	}
	return geocode.Entry{PostalCode: code, Point: p, City: city, Region: state}, true
}
