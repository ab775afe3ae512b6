package handler

import (
	"github.com/gofiber/fiber/v2"
)

type Pruner interface {
	Prune() error
}

// InvalidateCache godoc
// @Summary            Drop every cached response
// @Tags               Cache
// @Success            200
// @Router             /caches/prune [GET]
func InvalidateCache(cacheRepo Pruner) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := cacheRepo.Prune(); err != nil {
			ctx.Status(fiber.StatusInternalServerError)
			return ctx.SendString(err.Error())
		}

		return ctx.SendStatus(fiber.StatusOK)
	}
}
