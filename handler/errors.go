package handler

import (
	"errors"

	"github.com/acikkaynak/interpreter-search-go/interpreters"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func respondError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, interpreters.ErrInvalidCriteria):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, interpreters.ErrNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, interpreters.ErrStoreUnavailable):
		status, message = fiber.StatusServiceUnavailable, interpreters.ErrStoreUnavailable.Error()
	}

	if status >= fiber.StatusInternalServerError {
		log.Logger().Error("request failed", zap.String("path", ctx.Path()), zap.Error(err))
	}

	return ctx.Status(status).JSON(interpreters.ErrorResponse{Message: message})
}

func badRequest(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(interpreters.ErrorResponse{Message: message})
}
