package queue

import (
	"context"

	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/circuit_breaker"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/kafka"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Publisher sends rent events to the rentals topic keyed by book, so events
// of one book keep their order.
type Publisher struct {
	enqueuer kafka.Enqueuer
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
}

func NewPublisher(enqueuer kafka.Enqueuer, cb circuit_breaker.CircuitBreaker, log *zap.Logger) *Publisher {
	return &Publisher{
		enqueuer: enqueuer,
		cb:       cb,
		log:      log.Named("publisher"),
	}
}

func (p *Publisher) Publish(ctx context.Context, event model.RentEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := p.cb.Call(func() error {
		return p.enqueuer.Enqueue(kafka.RentalsTopic, event.BookID.String(), event)
	})
	if err != nil {
		return errors.Wrapf(err, "enqueue %s (breaker %s)", event.Type, p.cb.State())
	}
	p.log.Debug("rent event sent", zap.String("type", string(event.Type)), zap.Stringer("rent", event.RentID))
	return nil
}

// NopPublisher drops events. It is used when kafka is disabled.
type NopPublisher struct {
	log *zap.Logger
}

func NewNopPublisher(log *zap.Logger) NopPublisher {
	return NopPublisher{log: log.Named("publisher")}
}

func (p NopPublisher) Publish(_ context.Context, event model.RentEvent) error {
	p.log.Debug("rent event dropped", zap.String("type", string(event.Type)), zap.Stringer("rent", event.RentID))
	return nil
}
