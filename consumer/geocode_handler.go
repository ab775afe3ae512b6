package consumer

import (
	"context"
	"errors"
	"time"

	"github.com/Shopify/sarama"
	"github.com/acikkaynak/interpreter-search-go/broker"
	"github.com/acikkaynak/interpreter-search-go/geocode"
	"github.com/acikkaynak/interpreter-search-go/interpreters"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"github.com/acikkaynak/interpreter-search-go/pkg/metrics"
	"go.uber.org/zap"
)

const (
	OutcomeUpdated     = "updated"
	OutcomeInvalid     = "invalid"
	OutcomeMissing     = "missing"
	OutcomeNoAddress   = "no_address"
	OutcomeNotFound    = "not_found"
	OutcomeRateLimited = "rate_limited"
	OutcomeFailed      = "failed"
	OutcomeIndexFailed = "index_failed"
)

// handle processes one message. Rate limited messages are retried after the
// cooldown until they go through or the session ends; every other outcome
// marks the message.
func (c *Consumer) handle(session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) {
	for {
		outcome := c.Process(session.Context(), message.Value)
		metrics.ConsumerMessagesTotal.WithLabelValues(message.Topic, outcome).Inc()

		if outcome != OutcomeRateLimited {
			session.MarkMessage(message, "")
			session.Commit()
			return
		}

		log.Logger().Warn("geocoding rate limited, pausing consumer",
			zap.Int64("offset", message.Offset), zap.Duration("cooldown", c.cooldown))
		if !sleep(session.Context(), c.cooldown) {
			return
		}
	}
}

// Process geocodes the interpreter named by a geocode request and reports
// the outcome.
func (c *Consumer) Process(ctx context.Context, value []byte) string {
	req, err := broker.DecodeGeocodeRequest(value)
	if err != nil || req.ID <= 0 {
		log.Logger().Error("geocode request deserialization error", zap.String("payload", string(value)), zap.Error(err))
		return OutcomeInvalid
	}

	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	logger := log.Logger().With(zap.Int64("id", req.ID), zap.String("event_id", req.EventID))

	rec, err := c.store.GetInterpreter(ctx, req.ID)
	if errors.Is(err, interpreters.ErrNotFound) {
		logger.Info("interpreter to geocode does not exist")
		return OutcomeMissing
	}
	if err != nil {
		logger.Error("could not load interpreter", zap.Error(err))
		return OutcomeFailed
	}

	address := geocode.Address(*rec)
	if address == "" {
		logger.Info("interpreter has no address to geocode")
		return OutcomeNoAddress
	}

	point, err := c.resolver.Resolve(ctx, address)
	switch {
	case errors.Is(err, geocode.ErrRateLimited):
		return OutcomeRateLimited
	case errors.Is(err, geocode.ErrNotFound):
		logger.Info("address could not be geocoded", zap.String("address", address))
		return OutcomeNotFound
	case err != nil:
		logger.Error("geocoding failed", zap.String("address", address), zap.Error(err))
		return OutcomeFailed
	}

	if err := c.store.UpdateCoordinates(ctx, rec.ID, point); err != nil {
		logger.Error("could not store coordinates", zap.Error(err))
		return OutcomeFailed
	}

	if c.index == nil {
		return OutcomeUpdated
	}

	lat, lng := point.Lat, point.Lng
	rec.Lat, rec.Lng = &lat, &lng
	if err := c.index.Index(ctx, []interpreters.Interpreter{*rec}); err != nil {
		logger.Error("could not reindex interpreter", zap.Error(err))
		return OutcomeIndexFailed
	}
	return OutcomeUpdated
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
