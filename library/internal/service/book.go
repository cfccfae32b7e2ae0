package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	msgDuplicateAuthors   = "Duplicate author IDs are not allowed."
	msgAuthorsNotFound    = "Failed to find authors with provided ids."
	msgISBNExists         = "Book with provided ISBN already exists."
	msgAddBookFailed      = "Failed to add book."
	msgBookCreated        = "Book successfully created!"
	msgBookIDNotFound     = "Book with provided ID does not exist."
	msgUpdateBookFailed   = "Failed to update book."
	msgBookUpdated        = "Book successfully updated."
	msgDeleteBookFailed   = "Failed to delete book."
	msgBookDeleted        = "Book successfully deleted."
	historyLookupParallel = 8
)

func (s *Service) CreateBook(ctx context.Context, req model.BookRequest) (model.Created, error) {
	authors, err := s.resolveAuthors(ctx, req.AuthorIDs)
	if err != nil {
		return model.Created{}, err
	}
	genre, err := model.ParseGenre(req.Genre)
	if err != nil {
		return model.Created{}, err
	}
	exists, err := s.repo.ISBNExists(ctx, req.ISBN)
	if err != nil {
		return model.Created{}, errors.Wrap(err, "isbn exists")
	}
	if exists {
		return model.Created{}, errs.Validation(msgISBNExists)
	}

	now := s.utcNow()
	book := model.Book{
		ID:             uuid.New(),
		Title:          req.Title,
		ISBN:           req.ISBN,
		Genre:          genre,
		NumberOfPages:  req.NumberOfPages,
		PublishingYear: req.PublishingYear,
		TotalCopies:    req.TotalCopies,
		Status:         model.StatusActive,
		CreatedAt:      now,
		ModifiedAt:     now,
		Authors:        authors,
	}
	if err = s.repo.AddBook(ctx, book); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return model.Created{}, errs.Validation(msgISBNExists)
		}
		s.log.Error("add book", zap.Error(err))
		return model.Created{}, errs.Persistence(msgAddBookFailed)
	}
	return model.Created{ID: book.ID.String(), Message: msgBookCreated}, nil
}

func (s *Service) UpdateBook(ctx context.Context, id uuid.UUID, req model.BookRequest) (model.Message, error) {
	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.Message{}, notFound(err, msgBookIDNotFound)
	}
	authors, err := s.resolveAuthors(ctx, req.AuthorIDs)
	if err != nil {
		return model.Message{}, err
	}
	// keeping the book's own ISBN is not a collision
	if book.ISBN != req.ISBN {
		exists, err := s.repo.ISBNExists(ctx, req.ISBN)
		if err != nil {
			return model.Message{}, errors.Wrap(err, "isbn exists")
		}
		if exists {
			return model.Message{}, errs.Validation(msgISBNExists)
		}
	}
	genre, err := model.ParseGenre(req.Genre)
	if err != nil {
		return model.Message{}, err
	}

	book.Title = req.Title
	book.ISBN = req.ISBN
	book.Genre = genre
	book.NumberOfPages = req.NumberOfPages
	book.PublishingYear = req.PublishingYear
	book.TotalCopies = req.TotalCopies
	book.Authors = authors
	book.ModifiedAt = s.utcNow()

	if err = s.repo.UpdateBook(ctx, book); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return model.Message{}, errs.Validation(msgISBNExists)
		}
		s.log.Error("update book", zap.Stringer("book", id), zap.Error(err))
		return model.Message{}, errs.Persistence(msgUpdateBookFailed)
	}
	return model.Message{Message: msgBookUpdated}, nil
}

// resolveAuthors checks the requested ids against active authors.
func (s *Service) resolveAuthors(ctx context.Context, ids []uuid.UUID) ([]model.Author, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return nil, errs.Validation(msgDuplicateAuthors)
		}
		seen[id] = struct{}{}
	}
	if len(ids) == 0 {
		return nil, errs.Validation(msgAuthorsNotFound)
	}
	authors, err := s.repo.GetAuthorsByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get authors")
	}
	if len(authors) != len(ids) {
		return nil, errs.Validation(msgAuthorsNotFound)
	}
	return authors, nil
}

func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) (model.Message, error) {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Message{}, errs.NotFound(msgBookNotFound)
		}
		s.log.Error("delete book", zap.Stringer("book", id), zap.Error(err))
		return model.Message{}, errs.Persistence(msgDeleteBookFailed)
	}
	return model.Message{Message: msgBookDeleted}, nil
}

func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (model.BookResponse, error) {
	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return model.BookResponse{}, notFound(err, msgBookNotFound)
	}
	return model.NewBookResponse(book), nil
}

func (s *Service) ListBooks(ctx context.Context) ([]model.BookResponse, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list books")
	}
	out := make([]model.BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, model.NewBookResponse(b))
	}
	return out, nil
}

// GetRentHistoryForBook lists every rent of the book with the renter's
// profile from the identity provider.
func (s *Service) GetRentHistoryForBook(ctx context.Context, id uuid.UUID) ([]model.BookRentEntry, error) {
	if _, err := s.repo.GetBook(ctx, id); err != nil {
		return nil, notFound(err, msgBookNotFound)
	}
	rents, err := s.repo.ListRentsByBook(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "list rents")
	}

	userIDs := make([]string, 0, len(rents))
	index := make(map[string]int, len(rents))
	for _, r := range rents {
		if _, ok := index[r.UserID]; !ok {
			index[r.UserID] = len(userIDs)
			userIDs = append(userIDs, r.UserID)
		}
	}

	profiles := make([]model.UserProfile, len(userIDs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(historyLookupParallel)
	for i, userID := range userIDs {
		i, userID := i, userID
		g.Go(func() error {
			user, err := s.identity.FindByID(gCtx, userID)
			if err != nil {
				if errors.Is(err, errs.ErrNotFound) {
					profiles[i] = model.UserProfile{ID: userID}
					return nil
				}
				return errors.Wrapf(err, "find user %s", userID)
			}
			profiles[i] = user.Profile()
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	out := make([]model.BookRentEntry, 0, len(rents))
	for _, r := range rents {
		out = append(out, model.BookRentEntry{
			ID:           r.ID,
			User:         profiles[index[r.UserID]],
			DateRented:   r.DateRented,
			DateReturned: r.DateReturned,
		})
	}
	return out, nil
}
