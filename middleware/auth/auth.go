package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const ApiKeyHeaderName = "X-Api-Key"

const authorizedKey = "authorized"

// New guards pprof and every POST endpoint with the api key. Other requests
// pass through, marked as authorized when they carry a valid key.
func New(apiKey string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		valid := Valid(apiKey, ctx.Get(ApiKeyHeaderName))
		ctx.Locals(authorizedKey, valid)

		apiKeyNeeded := strings.Contains(ctx.Path(), "pprof") || ctx.Method() == fiber.MethodPost
		if apiKeyNeeded && !valid {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}

		return ctx.Next()
	}
}

// Valid compares keys in constant time. An unset server key never matches.
func Valid(apiKey, given string) bool {
	if apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(apiKey), []byte(given)) == 1
}

// Authorized reports whether the request was sent with a valid api key.
func Authorized(ctx *fiber.Ctx) bool {
	ok, _ := ctx.Locals(authorizedKey).(bool)
	return ok
}
