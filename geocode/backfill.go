package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/acikkaynak/interpreter-search-go/interpreters"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"go.uber.org/zap"
)

// BackfillStore is the part of the record store the backfill needs.
type BackfillStore interface {
	ListUngeocoded(ctx context.Context, limit int) ([]interpreters.Interpreter, error)
	UpdateCoordinates(ctx context.Context, id int64, p geo.Point) error
}

type BackfillReport struct {
	Processed   int  `json:"processed"`
	Updated     int  `json:"updated"`
	Failed      int  `json:"failed"`
	Skipped     int  `json:"skipped"`
	RateLimited bool `json:"rate_limited"`
}

// Backfiller geocodes records that have no coordinates yet. The resolver
// passed in should sit on a throttled provider: records are processed one at
// a time and the batch stops at the first rate limit signal.
type Backfiller struct {
	store    BackfillStore
	resolver *Resolver
}

func NewBackfiller(store BackfillStore, resolver *Resolver) *Backfiller {
	return &Backfiller{store: store, resolver: resolver}
}

func (b *Backfiller) Run(ctx context.Context, batchSize int) (BackfillReport, error) {
	var report BackfillReport

	records, err := b.store.ListUngeocoded(ctx, batchSize)
	if err != nil {
		return report, fmt.Errorf("could not list records to geocode: %w", err)
	}

	for idx, rec := range records {
		address := Address(rec)
		if address == "" {
			log.Logger().Info("skipping interpreter without address", zap.Int64("id", rec.ID))
			report.Skipped++
			continue
		}

		report.Processed++
		point, err := b.resolver.Resolve(ctx, address)
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				report.RateLimited = true
				report.Skipped += len(records) - idx - 1
				log.Logger().Warn("geocoding rate limited, stopping batch",
					zap.Int64("id", rec.ID), zap.Int("remaining", len(records)-idx-1))
				report.Failed++
				return report, nil
			}
			if ctx.Err() != nil {
				return report, ctx.Err()
			}

			log.Logger().Info("could not geocode interpreter",
				zap.Int64("id", rec.ID), zap.String("address", address), zap.Error(err))
			report.Failed++
			continue
		}

		if err := b.store.UpdateCoordinates(ctx, rec.ID, point); err != nil {
			return report, fmt.Errorf("could not update coordinates of %d: %w", rec.ID, err)
		}
		report.Updated++
	}

	return report, nil
}

// Address is the geocoding input for a record: its ZIP code when present,
// otherwise "city, state".
func Address(i interpreters.Interpreter) string {
	if zip := NormalizePostalCode(i.ZipCode); IsPostalCode(zip) {
		return zip
	}

	var parts []string
	for _, p := range []string{i.City, i.State, i.ZipCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
