package handler

import (
	"context"
	"time"

	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck godoc
// @Summary            Show the status of server.
// @Description        get the status of server and its record store.
// @Tags               Healthcheck
// @Accept             */*
// @Produce            json
// @Success            200 {string} map[string]interface{}
// @Failure            503
// @Router             /healthcheck [GET]
func HealthCheck(deps ...Pinger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		c, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
		defer cancel()

		for _, d := range deps {
			if err := d.Ping(c); err != nil {
				log.Logger().Warn("healthcheck failed", zap.Error(err))
				return ctx.SendStatus(fiber.StatusServiceUnavailable)
			}
		}
		return ctx.SendStatus(fiber.StatusOK)
	}
}
