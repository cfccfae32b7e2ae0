package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/auth"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	msgAddUserFailed    = "Failed to add user."
	msgRoleNotFound     = "Role does not exist."
	msgUserCreated      = "User successfully created!"
	msgUserUpdated      = "User successfully updated!"
	msgPasswordUpdated  = "User password successfully updated!"
	msgUpdateUserFailed = "Failed to update user."
)

// RegisterUser creates the identity, its role link and its domain copy.
// When a step after the identity fails the identity is deleted again.
func (s *Service) RegisterUser(ctx context.Context, req model.RegisterRequest, role string) (model.Created, error) {
	identity := model.UserIdentity{
		ID:          uuid.NewString(),
		UserName:    req.UserName,
		Email:       req.Email,
		Name:        req.Name,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		CreatedAt:   s.utcNow(),
	}
	if err := s.identity.Create(ctx, identity, req.Password); err != nil {
		return model.Created{}, err
	}

	// Identity writes take their own pool connections, so none of them run
	// inside a store transaction. Delete cascades the role link.
	err := s.addToRole(ctx, identity.ID, role)
	if err == nil {
		user := model.User{ID: identity.ID, UserName: identity.UserName, Email: identity.Email}
		if err = s.repo.AddUser(ctx, user); err != nil {
			s.log.Error("add user", zap.String("user", identity.ID), zap.Error(err))
			err = errs.Persistence(msgAddUserFailed)
		}
	}
	if err != nil {
		if derr := s.identity.Delete(ctx, identity.ID); derr != nil {
			s.log.Error("orphaned identity", zap.String("user", identity.ID), zap.Error(derr))
		}
		return model.Created{}, err
	}
	return model.Created{ID: identity.ID, Message: msgUserCreated}, nil
}

func (s *Service) addToRole(ctx context.Context, id, role string) error {
	err := s.identity.AddToRole(ctx, id, role)
	if errors.Is(err, errs.ErrNotFound) {
		return errs.BusinessRule(msgRoleNotFound)
	}
	return errors.Wrap(err, "add to role")
}

func (s *Service) UpdateUserDetails(ctx context.Context, id string, req model.UpdateUserRequest) (model.Message, error) {
	identity, err := s.identity.FindByID(ctx, id)
	if err != nil {
		return model.Message{}, notFound(err, msgUserNotFound)
	}
	identity.Name = req.Name
	identity.LastName = req.LastName
	identity.DateOfBirth = req.DateOfBirth

	if err = s.identity.Update(ctx, identity); err != nil {
		if _, ok := errs.AsError(err); ok {
			return model.Message{}, err
		}
		s.log.Error("update user", zap.String("user", id), zap.Error(err))
		return model.Message{}, errs.Persistence(msgUpdateUserFailed)
	}
	return model.Message{Message: msgUserUpdated}, nil
}

func (s *Service) UpdatePassword(ctx context.Context, id string, req model.PasswordUpdateRequest) (model.Message, error) {
	if _, err := s.identity.FindByID(ctx, id); err != nil {
		return model.Message{}, notFound(err, msgUserNotFound)
	}
	if err := s.identity.ChangePassword(ctx, id, req.OldPassword, req.NewPassword); err != nil {
		return model.Message{}, err
	}
	return model.Message{Message: msgPasswordUpdated}, nil
}

func (s *Service) GetProfile(ctx context.Context, id string) (model.UserProfile, error) {
	identity, err := s.identity.FindByID(ctx, id)
	if err != nil {
		return model.UserProfile{}, notFound(err, msgUserNotFound)
	}
	return identity.Profile(), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]model.UserProfile, error) {
	users, err := s.identity.UsersInRole(ctx, auth.RoleUser)
	if err != nil {
		return nil, errors.Wrap(err, "users in role")
	}
	out := make([]model.UserProfile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out, nil
}

// GetUserRentHistory lists the user's rents with book details.
func (s *Service) GetUserRentHistory(ctx context.Context, id string) ([]model.BookRentHistory, error) {
	if _, err := s.repo.GetUser(ctx, id); err != nil {
		return nil, notFound(err, msgUserNotFound)
	}
	rents, err := s.repo.ListRentsByUser(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "list rents")
	}
	out := make([]model.BookRentHistory, 0, len(rents))
	for _, r := range rents {
		h := model.BookRentHistory{
			DateRented:   r.DateRented,
			DateReturned: r.DateReturned,
		}
		if r.Book != nil {
			b := model.NewBookResponse(*r.Book)
			h.Title = b.Title
			h.Genre = b.Genre
			h.ISBN = b.ISBN
			h.NumberOfPages = b.NumberOfPages
			h.PublishingYear = b.PublishingYear
			h.Authors = b.Authors
		}
		out = append(out, h)
	}
	return out, nil
}
