package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const swaggerIndex = "/swagger/index.html"

func RedirectSwagger(ctx *fiber.Ctx) error {
	return ctx.Redirect(swaggerIndex, http.StatusPermanentRedirect)
}
