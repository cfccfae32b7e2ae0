package service

import (
	"context"

	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/pkg/errors"
)

const (
	msgInvalidEmail    = "Invalid email address."
	msgInvalidPassword = "Invalid password."
)

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.identity.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.AuthResponse{}, errs.BusinessRule(msgInvalidEmail)
		}
		return model.AuthResponse{}, errors.Wrap(err, "find by email")
	}
	ok, err := s.identity.CheckPassword(ctx, user.ID, req.Password)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "check password")
	}
	if !ok {
		return model.AuthResponse{}, errs.BusinessRule(msgInvalidPassword)
	}
	roles, err := s.identity.Roles(ctx, user.ID)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "roles")
	}
	token, expiresAt, err := s.tokens.Issue(user.ID, user.UserName, user.Email, roles)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{
		UserName:    user.UserName,
		Email:       user.Email,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
