package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	CreateAuthor(ctx context.Context, req model.AuthorRequest) (model.Created, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (model.Author, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	UpdateAuthor(ctx context.Context, id uuid.UUID, req model.AuthorRequest) (model.Message, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) (model.Message, error)

	CreateBook(ctx context.Context, req model.BookRequest) (model.Created, error)
	GetBook(ctx context.Context, id uuid.UUID) (model.BookResponse, error)
	ListBooks(ctx context.Context) ([]model.BookResponse, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req model.BookRequest) (model.Message, error)
	DeleteBook(ctx context.Context, id uuid.UUID) (model.Message, error)
	GetRentHistoryForBook(ctx context.Context, id uuid.UUID) ([]model.BookRentEntry, error)

	RentBook(ctx context.Context, req model.RentRequest) (model.Message, error)
	ReturnBook(ctx context.Context, req model.ReturnRequest) (model.Message, error)

	RegisterUser(ctx context.Context, req model.RegisterRequest, role string) (model.Created, error)
	UpdateUserDetails(ctx context.Context, id string, req model.UpdateUserRequest) (model.Message, error)
	UpdatePassword(ctx context.Context, id string, req model.PasswordUpdateRequest) (model.Message, error)
	GetProfile(ctx context.Context, id string) (model.UserProfile, error)
	ListUsers(ctx context.Context) ([]model.UserProfile, error)
	GetUserRentHistory(ctx context.Context, id string) ([]model.BookRentHistory, error)

	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
}

var _ LibraryService = (*service.Service)(nil)
