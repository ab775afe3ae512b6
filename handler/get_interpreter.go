package handler

import (
	"context"
	"strconv"

	"github.com/acikkaynak/interpreter-search-go/interpreters"
	"github.com/acikkaynak/interpreter-search-go/middleware/auth"
	"github.com/gofiber/fiber/v2"
)

type InterpreterGetter interface {
	GetInterpreter(ctx context.Context, id int64) (*interpreters.Interpreter, error)
}

// GetInterpreter godoc
// @Summary            Get the interpreter with the given id
// @Tags               Interpreter
// @Produce            json
// @Success            200 {object} interpreters.Interpreter
// @Failure            404 {object} interpreters.ErrorResponse
// @Param              id path integer true "Interpreter Id"
// @Router             /interpreters/{id} [GET]
func GetInterpreter(repo InterpreterGetter, maskContacts bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
		if err != nil || id < 1 {
			return badRequest(ctx, "id must be a positive integer")
		}

		i, err := repo.GetInterpreter(ctx.UserContext(), id)
		if err != nil {
			return respondError(ctx, err)
		}

		masking := Masking{Enabled: maskContacts && !auth.Authorized(ctx)}
		return ctx.JSON(masking.interpreter(*i))
	}
}
