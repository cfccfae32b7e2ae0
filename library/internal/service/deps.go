package service

import (
	"context"
	"time"

	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=deps.go -destination=mocks/mock.go

// IdentityProvider owns credentials and role membership. Lookups return
// errs.ErrNotFound for unknown users; Create, Update and ChangePassword
// report client problems as *errs.Error.
type IdentityProvider interface {
	FindByEmail(ctx context.Context, email string) (model.UserIdentity, error)
	FindByID(ctx context.Context, id string) (model.UserIdentity, error)
	Create(ctx context.Context, user model.UserIdentity, password string) error
	Update(ctx context.Context, user model.UserIdentity) error
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error
	CheckPassword(ctx context.Context, id, password string) (bool, error)
	AddToRole(ctx context.Context, id, role string) error
	IsInRole(ctx context.Context, id, role string) (bool, error)
	Roles(ctx context.Context, id string) ([]string, error)
	UsersInRole(ctx context.Context, role string) ([]model.UserIdentity, error)
	Delete(ctx context.Context, id string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event model.RentEvent) error
}

type TokenIssuer interface {
	Issue(userID, userName, email string, roles []string) (string, time.Time, error)
}
