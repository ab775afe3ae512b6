package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Shopify/sarama"
	"github.com/acikkaynak/interpreter-search-go/app"
	"github.com/acikkaynak/interpreter-search-go/broker"
	"github.com/acikkaynak/interpreter-search-go/config"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	_ "github.com/acikkaynak/interpreter-search-go/swagger"
	"go.uber.org/zap"
)

// @title						Interpreter Search API
// @version					    1.0
// @description				    Search certified interpreters by language, place and availability
// @BasePath					/
// @schemes					    https http
// @license.name				Apache License, Version 2.0 (the "License")
// @securityDefinitions.apiKey	ApiKeyAuth
// @in							header
// @name						X-Api-Key
func main() {
	logger := log.Component("api")
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to start application", zap.Error(err))
	}
	defer application.Close()

	var producer sarama.SyncProducer
	if cfg.HasKafka() {
		producer, err = broker.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.Error("failed to init kafka producer", zap.Error(err))
			producer = nil
		} else {
			defer producer.Close()
		}
	}

	server := application.Server(producer)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT)
	signal.Notify(c, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("application gracefully shutting down")
		_ = server.Shutdown()
	}()

	if err := server.Listen(cfg.HTTPAddr); err != nil {
		logger.Panic("app error", zap.Error(err))
	}
}
