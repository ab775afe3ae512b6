package main

import (
	"fmt"
	"os"

	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	defer log.Sync()

	rootCmd := &cobra.Command{
		Use:   "geocoder",
		Short: "Bulk geocoding tools for the interpreter directory",
		Long: `geocoder fills in interpreter coordinates and the ZIP code cache.

Configuration is read from the same environment as the API (DB_CONN_STR,
GEOCODE_CACHE, GOOGLE_MAPS_API_KEY, ...).`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(backfillCmd())
	rootCmd.AddCommand(preloadCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
