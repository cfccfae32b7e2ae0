package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/auth"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	msgUserNotFound      = "User does not exist."
	msgBookNotFound      = "Book does not exist."
	msgCannotRentForUser = "You can not rent book for this user."
	msgBookNotAvailable  = "Book is not available."
	msgAlreadyRented     = "Book is already rented by this user."
	msgRentFailed        = "Failed to create a rent."
	msgRentCreated       = "Rent successfully created!"
	msgNotRented         = "Provided book is not rented for provided user."
	msgReturnBeforeRent  = "Rent date must be before return date."
	msgReturnFailed      = "Failed to return book."
	msgBookReturned      = "Book successfully returned!"
)

// RentBook lends a copy of the book to a member. The book row stays locked
// from the availability count until the rent is stored.
func (s *Service) RentBook(ctx context.Context, req model.RentRequest) (model.Message, error) {
	if _, err := s.identity.FindByID(ctx, req.UserID); err != nil {
		return model.Message{}, notFound(err, msgUserNotFound)
	}
	member, err := s.identity.IsInRole(ctx, req.UserID, auth.RoleUser)
	if err != nil {
		return model.Message{}, errors.Wrap(err, "is in role")
	}
	if !member {
		return model.Message{}, errs.BusinessRule(msgCannotRentForUser)
	}
	user, err := s.repo.GetUser(ctx, req.UserID)
	if err != nil {
		return model.Message{}, notFound(err, msgUserNotFound)
	}

	rent := model.Rent{
		ID:         uuid.New(),
		BookID:     req.BookID,
		UserID:     user.ID,
		DateRented: s.dateOrNow(req.DateRented),
	}
	err = s.repo.WithinTx(ctx, func(ctx context.Context) error {
		book, err := s.repo.GetBookForUpdate(ctx, req.BookID)
		if err != nil {
			return notFound(err, msgBookNotFound)
		}
		_, err = s.repo.GetOpenRent(ctx, book.ID, user.ID)
		switch {
		case err == nil:
			return errs.BusinessRule(msgAlreadyRented)
		case !errors.Is(err, errs.ErrNotFound):
			return errors.Wrap(err, "get open rent")
		}
		open, err := s.repo.CountOpenRents(ctx, book.ID)
		if err != nil {
			return errors.Wrap(err, "count open rents")
		}
		if open >= book.TotalCopies {
			return errs.BusinessRule(msgBookNotAvailable)
		}
		if err = s.repo.AddRent(ctx, rent); err != nil {
			s.log.Error("add rent", zap.Stringer("book", book.ID), zap.String("user", user.ID), zap.Error(err))
			return errs.Persistence(msgRentFailed)
		}
		return nil
	})
	if err != nil {
		return model.Message{}, err
	}

	s.publish(ctx, model.RentEventRented, rent)
	return model.Message{Message: msgRentCreated}, nil
}

// ReturnBook closes the open rent of the (book, user) pair.
func (s *Service) ReturnBook(ctx context.Context, req model.ReturnRequest) (model.Message, error) {
	if _, err := s.repo.GetUser(ctx, req.UserID); err != nil {
		return model.Message{}, notFound(err, msgUserNotFound)
	}
	if _, err := s.repo.GetBook(ctx, req.BookID); err != nil {
		return model.Message{}, notFound(err, msgBookNotFound)
	}

	var rent model.Rent
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		rent, err = s.repo.GetOpenRent(ctx, req.BookID, req.UserID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return errs.BusinessRule(msgNotRented)
			}
			return errors.Wrap(err, "get open rent")
		}
		returned := s.dateOrNow(req.DateReturned)
		if returned.Before(rent.DateRented) {
			return errs.BusinessRule(msgReturnBeforeRent)
		}
		rent.DateReturned = &returned
		if err = s.repo.UpdateRent(ctx, rent); err != nil {
			s.log.Error("update rent", zap.Stringer("rent", rent.ID), zap.Error(err))
			return errs.Persistence(msgReturnFailed)
		}
		return nil
	})
	if err != nil {
		return model.Message{}, err
	}

	s.publish(ctx, model.RentEventReturned, rent)
	return model.Message{Message: msgBookReturned}, nil
}

func (s *Service) dateOrNow(t *time.Time) time.Time {
	if t == nil {
		return s.utcNow()
	}
	return t.UTC()
}

// notFound turns a store miss into a client message and passes any other
// error through.
func notFound(err error, msg string) error {
	if errors.Is(err, errs.ErrNotFound) {
		return errs.NotFound(msg)
	}
	return err
}
