package service

import (
	"context"
	"time"

	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/repository"
	"go.uber.org/zap"
)

type Repository interface {
	repository.AuthorStore
	repository.BookStore
	repository.RentStore
	repository.UserStore
	repository.Transactor
}

type Service struct {
	log      *zap.Logger
	repo     Repository
	identity IdentityProvider
	events   EventPublisher
	tokens   TokenIssuer
	now      func() time.Time
}

type Option func(s *Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, identity IdentityProvider, events EventPublisher, tokens TokenIssuer, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:      log,
		repo:     repo,
		identity: identity,
		events:   events,
		tokens:   tokens,
		now:      time.Now,
	}
	for _, op := range opts {
		op(s)
	}
	return s
}

func (s *Service) utcNow() time.Time {
	return s.now().UTC()
}

// publish never fails the caller: the rent is already committed.
func (s *Service) publish(ctx context.Context, typ model.RentEventType, rent model.Rent) {
	event := model.RentEvent{
		Type:       typ,
		RentID:     rent.ID,
		BookID:     rent.BookID,
		UserID:     rent.UserID,
		OccurredAt: s.utcNow(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn("publish rent event", zap.String("type", string(typ)), zap.Stringer("rent", rent.ID), zap.Error(err))
	}
}
