package consumer

import (
	"context"
	"time"

	"github.com/Shopify/sarama"
	"github.com/acikkaynak/interpreter-search-go/broker"
	"github.com/acikkaynak/interpreter-search-go/geo"
	"github.com/acikkaynak/interpreter-search-go/interpreters"
	log "github.com/acikkaynak/interpreter-search-go/pkg/logger"
	"go.uber.org/zap"
)

const (
	GroupName       = "interpreters_geocode_consumer"
	DefaultCooldown = time.Minute
	handleTimeout   = 30 * time.Second
	rejoinDelay     = 5 * time.Second
)

type RecordStore interface {
	GetInterpreter(ctx context.Context, id int64) (*interpreters.Interpreter, error)
	UpdateCoordinates(ctx context.Context, id int64, p geo.Point) error
}

type Resolver interface {
	Resolve(ctx context.Context, address string) (geo.Point, error)
}

// Indexer receives records whose coordinates changed.
type Indexer interface {
	Index(ctx context.Context, records []interpreters.Interpreter) error
}

type Option func(*Consumer)

// WithIndex keeps a search index in sync with stored coordinates.
func WithIndex(index Indexer) Option {
	return func(c *Consumer) {
		c.index = index
	}
}

// WithCooldown sets the pause taken after the provider signals a rate limit.
func WithCooldown(d time.Duration) Option {
	return func(c *Consumer) {
		if d > 0 {
			c.cooldown = d
		}
	}
}

// Consumer is a sarama consumer group handler for geocode requests.
type Consumer struct {
	Ready    chan bool
	store    RecordStore
	resolver Resolver
	index    Indexer
	cooldown time.Duration
}

func New(store RecordStore, resolver Resolver, opts ...Option) *Consumer {
	c := &Consumer{
		Ready:    make(chan bool),
		store:    store,
		resolver: resolver,
		cooldown: DefaultCooldown,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start joins the group and blocks until the first session is set up.
// Consumption goes on in the background until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context, group sarama.ConsumerGroup) {
	go func() {
		for {
			if err := group.Consume(ctx, []string{broker.GeocodeTopicName}, c); err != nil {
				log.Logger().Error("error from consumer group", zap.Error(err))
				if !sleep(ctx, rejoinDelay) {
					return
				}
			}
			if ctx.Err() != nil {
				return
			}
			c.Ready = make(chan bool)
		}
	}()

	select {
	case <-c.Ready:
		log.Logger().Info("sarama consumer up and running")
	case <-ctx.Done():
	}
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	close(c.Ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			c.handle(session, message)
		case <-session.Context().Done():
			return nil
		}
	}
}
