package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/acikkaynak/interpreter-search-go/app"
	"github.com/acikkaynak/interpreter-search-go/broker"
	"github.com/acikkaynak/interpreter-search-go/config"
	"github.com/acikkaynak/interpreter-search-go/consumer"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	logger := log.Component("consumer")
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to start application", zap.Error(err))
	}
	defer application.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthcheck", func(writer http.ResponseWriter, request *http.Request) {
		for _, dep := range application.Pingers() {
			if err := dep.Ping(request.Context()); err != nil {
				writer.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		writer.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	side := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
	go func() {
		if err := side.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("side server could not start or stopped", zap.Error(err))
		}
	}()

	client, err := broker.NewConsumerGroup(cfg.KafkaBrokers, consumer.GroupName)
	if err != nil {
		logger.Fatal("failed to init kafka consumer group", zap.Error(err))
	}

	opts := []consumer.Option{consumer.WithCooldown(cfg.RateLimitCooldown)}
	if index := application.Index(); index != nil {
		opts = append(opts, consumer.WithIndex(index))
	}
	geocodeConsumer := consumer.New(application.Records(), application.BulkResolver(), opts...)
	geocodeConsumer.Start(ctx, client)

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-ctx.Done():
		logger.Info("terminating: context cancelled")
	case <-sigterm:
		logger.Info("terminating: via signal")
	}

	cancel()
	if err := client.Close(); err != nil {
		logger.Error("error closing consumer group", zap.Error(err))
	}
	_ = side.Shutdown(context.Background())
}
