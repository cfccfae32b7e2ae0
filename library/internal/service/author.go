package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	msgAuthorNotFound     = "Author does not exist."
	msgAddAuthorFailed    = "Failed to add author."
	msgAuthorCreated      = "Author successfully created!"
	msgUpdateAuthorFailed = "Failed to update author."
	msgAuthorUpdated      = "Author successfully updated."
	msgDeleteAuthorFailed = "Failed to delete author."
	msgAuthorDeleted      = "Author successfully deleted."
)

func (s *Service) CreateAuthor(ctx context.Context, req model.AuthorRequest) (model.Created, error) {
	now := s.utcNow()
	author := model.Author{
		ID:          uuid.New(),
		Name:        req.Name,
		LastName:    req.LastName,
		YearOfBirth: req.YearOfBirth,
		Status:      model.StatusActive,
		CreatedAt:   now,
		ModifiedAt:  now,
	}
	if err := s.repo.AddAuthor(ctx, author); err != nil {
		s.log.Error("add author", zap.Error(err))
		return model.Created{}, errs.Persistence(msgAddAuthorFailed)
	}
	return model.Created{ID: author.ID.String(), Message: msgAuthorCreated}, nil
}

func (s *Service) GetAuthor(ctx context.Context, id uuid.UUID) (model.Author, error) {
	author, err := s.repo.GetAuthor(ctx, id)
	if err != nil {
		return model.Author{}, notFound(err, msgAuthorNotFound)
	}
	return author, nil
}

func (s *Service) ListAuthors(ctx context.Context) ([]model.Author, error) {
	authors, err := s.repo.ListAuthors(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list authors")
	}
	if authors == nil {
		authors = []model.Author{}
	}
	return authors, nil
}

func (s *Service) UpdateAuthor(ctx context.Context, id uuid.UUID, req model.AuthorRequest) (model.Message, error) {
	author, err := s.repo.GetAuthor(ctx, id)
	if err != nil {
		return model.Message{}, notFound(err, msgAuthorNotFound)
	}
	author.Name = req.Name
	author.LastName = req.LastName
	author.YearOfBirth = req.YearOfBirth
	author.ModifiedAt = s.utcNow()

	if err = s.repo.UpdateAuthor(ctx, author); err != nil {
		s.log.Error("update author", zap.Stringer("author", id), zap.Error(err))
		return model.Message{}, errs.Persistence(msgUpdateAuthorFailed)
	}
	return model.Message{Message: msgAuthorUpdated}, nil
}

func (s *Service) DeleteAuthor(ctx context.Context, id uuid.UUID) (model.Message, error) {
	if err := s.repo.DeleteAuthor(ctx, id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Message{}, errs.NotFound(msgAuthorNotFound)
		}
		s.log.Error("delete author", zap.Stringer("author", id), zap.Error(err))
		return model.Message{}, errs.Persistence(msgDeleteAuthorFailed)
	}
	return model.Message{Message: msgAuthorDeleted}, nil
}
