package handler

import (
	"context"

	"github.com/acikkaynak/interpreter-search-go/interpreters"
	"github.com/gofiber/fiber/v2"
)

type LanguageLister interface {
	Languages(ctx context.Context) ([]string, error)
}

// getLanguages godoc
// @Summary            List the languages offered by active interpreters
// @Tags               Interpreter
// @Produce            json
// @Success            200 {object} interpreters.LanguagesResponse
// @Router             /languages [GET]
func GetLanguagesHandler(repo LanguageLister) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		languages, err := repo.Languages(ctx.UserContext())
		if err != nil {
			return respondError(ctx, err)
		}
		if languages == nil {
			languages = []string{}
		}
		return ctx.JSON(interpreters.LanguagesResponse{Languages: languages})
	}
}
