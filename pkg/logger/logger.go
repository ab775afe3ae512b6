package log

import (
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "interpreter-search-go"

var logger *zap.Logger

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level.SetLevel(zapcore.InfoLevel)
	if os.Getenv("env") == "local" {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339Nano)

	zapLogger, err := cfg.Build()
	if err != nil {
		log.Fatalf("fail to build log. err: %s", err)
	}

	logger = zapLogger.With(zap.String("app", appName))
}

func Logger() *zap.Logger {
	return logger
}

// Component returns the process logger tagged with the binary or subsystem name.
func Component(name string) *zap.Logger {
	return logger.With(zap.String("component", name))
}

func Sync() {
	_ = logger.Sync()
}
