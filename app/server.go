package app

import (
	"github.com/Shopify/sarama"
	"github.com/acikkaynak/interpreter-search-go/handler"
	"github.com/acikkaynak/interpreter-search-go/middleware/auth"
	"github.com/acikkaynak/interpreter-search-go/middleware/cache"
	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server builds the HTTP API. A nil producer disables the geocode event
// endpoint; without redis responses are not cached.
func (a *Application) Server(producer sarama.SyncProducer) *fiber.App {
	app := fiber.New()
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New())
	app.Use(recover.New())
	app.Use(auth.New(a.cfg.ApiKey))
	app.Use(pprof.New())
	if a.redis != nil {
		app.Use(cache.New(a.redis, a.cfg.ResponseCacheTTL))
	}

	a.register(app, producer)
	return app
}

func (a *Application) register(app *fiber.App, producer sarama.SyncProducer) {
	mask := a.cfg.MaskContacts

	app.Get("/", handler.RedirectSwagger)
	app.Get("/healthcheck", handler.HealthCheck(a.Pingers()...))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/monitor", monitor.New())
	app.Get("/interpreters/search", handler.SearchInterpreters(a.Directory(), mask))
	app.Get("/interpreters/:id", handler.GetInterpreter(a.records, mask))
	app.Post("/interpreters/geocode", handler.CreateGeocodeEventsHandler(producer))
	app.Get("/languages", handler.GetLanguagesHandler(a.records))
	if a.redis != nil {
		app.Get("/caches/prune", handler.InvalidateCache(cache.NewPruner(a.redis)))
	}
	route := app.Group("/swagger")
	route.Get("*", swagger.HandlerDefault)
}
