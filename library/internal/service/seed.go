package service

import (
	"context"

	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/auth"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SeedAdmin registers the admin account unless its email is already known.
// It reports whether an account was created.
func (s *Service) SeedAdmin(ctx context.Context, req model.RegisterRequest) (bool, error) {
	_, err := s.identity.FindByEmail(ctx, req.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return false, errors.Wrap(err, "find admin")
	}
	created, err := s.RegisterUser(ctx, req, auth.RoleAdmin)
	if err != nil {
		return false, err
	}
	s.log.Info("admin seeded", zap.String("id", created.ID), zap.String("email", req.Email))
	return true, nil
}
