package handler

import (
	"net/http"

	"github.com/Shopify/sarama"
	"github.com/acikkaynak/interpreter-search-go/broker"
	"github.com/acikkaynak/interpreter-search-go/interpreters"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxGeocodeIDs = 500

type GeocodeEventsRequest struct {
	IDs []int64 `json:"ids"`
}

type GeocodeEventsResponse struct {
	Queued int `json:"queued"`
}

// createGeocodeEvents godoc
// @Summary            Queue interpreters for geocoding
// @Tags               Event
// @Accept             json
// @Produce            json
// @Security           ApiKeyAuth
// @Success            202 {object} GeocodeEventsResponse
// @Failure            400 {object} interpreters.ErrorResponse
// @Param              body body GeocodeEventsRequest true "RequestBody"
// @Router             /interpreters/geocode [POST]
func CreateGeocodeEventsHandler(producer sarama.SyncProducer) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if producer == nil {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(interpreters.ErrorResponse{Message: "event broker is not configured"})
		}

		var req GeocodeEventsRequest
		if err := ctx.BodyParser(&req); err != nil {
			return badRequest(ctx, "failed to decode request")
		}
		if len(req.IDs) == 0 || len(req.IDs) > maxGeocodeIDs {
			return badRequest(ctx, "ids must hold between 1 and 500 interpreter ids")
		}

		queued := 0
		for _, id := range req.IDs {
			msg, err := broker.GeocodeRequest{ID: id, EventID: uuid.New().String()}.Message()
			if err != nil {
				return err
			}

			if _, _, err := producer.SendMessage(msg); err != nil {
				log.Logger().Error("failed to send geocode event", zap.Int64("id", id), zap.Error(err))
				continue
			}
			queued++
		}

		return ctx.Status(http.StatusAccepted).JSON(GeocodeEventsResponse{Queued: queued})
	}
}
