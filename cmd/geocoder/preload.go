package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/acikkaynak/interpreter-search-go/app"
	"github.com/acikkaynak/interpreter-search-go/config"
	"github.com/acikkaynak/interpreter-search-go/geocode"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"github.com/acikkaynak/interpreter-search-go/repository"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func preloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preload",
		Short: "Load a ZIP code dataset into the postgres geocode cache",
		Long: `Read a JSON array of {zip_code, latitude, longitude, city, state} objects
and insert them into the zipcode cache. Existing ZIP codes are kept.`,
		RunE: runPreload,
	}

	cmd.Flags().StringP("file", "f", "USCities.json", "Dataset to load")

	return cmd
}

// zipCode accepts both numeric and quoted ZIP codes; datasets store them as
// numbers, which drops leading zeros.
type zipCode string

func (z *zipCode) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*z = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("invalid zip_code %s: %w", b, err)
		}
		*z = zipCode(s)
		return nil
	}
	*z = zipCode(bytes.TrimSpace(b))
	return nil
}

type preloadRecord struct {
	ZipCode   zipCode `json:"zip_code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	State     string  `json:"state"`
}

// readPreload decodes a dataset and returns the valid entries along with the
// number of rejected rows.
func readPreload(r io.Reader) ([]geocode.Entry, int, error) {
	var records []preloadRecord
	if err := jsoniter.NewDecoder(r).Decode(&records); err != nil {
		return nil, 0, fmt.Errorf("could not decode dataset: %w", err)
	}

	entries := make([]geocode.Entry, 0, len(records))
	rejected := 0
	for _, rec := range records {
		e, ok := repository.PreloadEntry(string(rec.ZipCode), rec.Latitude, rec.Longitude, rec.City, rec.State)
		if !ok {
			rejected++
			continue
		}
		entries = append(entries, e)
	}
	return entries, rejected, nil
}

func runPreload(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	logger := log.Component("geocoder")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open dataset: %w", err)
	}
	defer f.Close()

	entries, rejected, err := readPreload(f)
	if err != nil {
		return err
	}
	logger.Info("dataset loaded", zap.String("file", path),
		zap.Int("entries", len(entries)), zap.Int("rejected", rejected))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// The dataset always goes to postgres, whatever cache the API reads.
	cfg.GeocodeCache = config.StorePostgres

	ctx := context.Background()
	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	zipCache, err := application.ZipCodeCache()
	if err != nil {
		return err
	}

	inserted, err := zipCache.StoreBatch(ctx, entries)
	if err != nil {
		return fmt.Errorf("preload stopped after %d inserts: %w", inserted, err)
	}
	cached, err := zipCache.Len(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d, skipped %d existing, rejected %d, %d cached in total\n",
		inserted, int64(len(entries))-inserted, rejected, cached)
	return nil
}
