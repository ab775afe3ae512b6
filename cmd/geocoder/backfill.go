package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acikkaynak/interpreter-search-go/app"
	"github.com/acikkaynak/interpreter-search-go/config"
	"github.com/acikkaynak/interpreter-search-go/geocode"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func backfillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Geocode interpreters that have no coordinates",
		Long: `Resolve coordinates for interpreters stored without them, one provider
call at a time. A batch stops at the first rate limit response.`,
		RunE: runBackfill,
	}

	cmd.Flags().Int("batch-size", 50, "Records per batch")
	cmd.Flags().Duration("delay", 2*time.Second, "Delay between provider calls")
	cmd.Flags().Bool("all", false, "Keep running batches until one updates nothing")

	return cmd
}

func runBackfill(cmd *cobra.Command, _ []string) error {
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	all, _ := cmd.Flags().GetBool("all")
	if batchSize < 1 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("delay") {
		cfg.GeocodeDelay, _ = cmd.Flags().GetDuration("delay")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	backfiller := geocode.NewBackfiller(application.Records(), application.BulkResolver())
	total, err := backfill(ctx, backfiller, batchSize, all)
	if err != nil {
		return err
	}

	out, err := jsoniter.MarshalIndent(total, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

type batchRunner interface {
	Run(ctx context.Context, batchSize int) (geocode.BackfillReport, error)
}

func backfill(ctx context.Context, runner batchRunner, batchSize int, all bool) (geocode.BackfillReport, error) {
	logger := log.Component("geocoder")
	var total geocode.BackfillReport

	for batch := 1; ; batch++ {
		report, err := runner.Run(ctx, batchSize)
		total.Processed += report.Processed
		total.Updated += report.Updated
		total.Failed += report.Failed
		total.Skipped += report.Skipped
		total.RateLimited = total.RateLimited || report.RateLimited
		if err != nil {
			return total, err
		}

		logger.Info("backfill batch done", zap.Int("batch", batch),
			zap.Int("updated", report.Updated), zap.Int("failed", report.Failed))

		if !all || report.RateLimited || report.Updated == 0 {
			return total, nil
		}
	}
}
