package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func bookRequest(authorIDs ...uuid.UUID) model.BookRequest {
	return model.BookRequest{
		AuthorIDs:      authorIDs,
		Title:          "Hamlet",
		ISBN:           "9780141396507",
		Genre:          "Drama",
		NumberOfPages:  342,
		PublishingYear: 1603,
		TotalCopies:    3,
	}
}

func TestService_CreateBook(t *testing.T) {
	t.Parallel()
	a := model.Author{ID: uuid.New(), Name: "William", LastName: "Shakespeare"}
	b := model.Author{ID: uuid.New(), Name: "Thomas", LastName: "Middleton"}

	type mockBehavior func(t *testing.T, m *mocks)

	tests := []struct {
		name         string
		req          model.BookRequest
		mockBehavior mockBehavior
		wantKind     error
		wantMsgs     []string
	}{
		{
			name: "ok",
			req:  bookRequest(a.ID, b.ID),
			mockBehavior: func(t *testing.T, m *mocks) {
				m.authors.EXPECT().GetAuthorsByIDs(gomock.Any(), []uuid.UUID{a.ID, b.ID}).Return([]model.Author{a, b}, nil)
				m.books.EXPECT().ISBNExists(gomock.Any(), "9780141396507").Return(false, nil)
				m.books.EXPECT().AddBook(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, book model.Book) error {
						require.Equal(t, "Hamlet", book.Title)
						require.Equal(t, model.GenreDrama, book.Genre)
						require.Equal(t, model.StatusActive, book.Status)
						require.Equal(t, now, book.CreatedAt)
						require.Equal(t, []uuid.UUID{a.ID, b.ID}, book.AuthorIDs())
						return nil
					})
			},
		},
		{
			name:         "err. duplicate author ids",
			req:          bookRequest(a.ID, a.ID),
			mockBehavior: func(t *testing.T, m *mocks) {},
			wantKind:     errs.ErrValidation,
			wantMsgs:     []string{"Duplicate author IDs are not allowed."},
		},
		{
			name:         "err. no authors",
			req:          bookRequest(),
			mockBehavior: func(t *testing.T, m *mocks) {},
			wantKind:     errs.ErrValidation,
			wantMsgs:     []string{"Failed to find authors with provided ids."},
		},
		{
			name: "err. deleted author",
			req:  bookRequest(a.ID, b.ID),
			mockBehavior: func(t *testing.T, m *mocks) {
				m.authors.EXPECT().GetAuthorsByIDs(gomock.Any(), gomock.Any()).Return([]model.Author{a}, nil)
			},
			wantKind: errs.ErrValidation,
			wantMsgs: []string{"Failed to find authors with provided ids."},
		},
		{
			name: "err. unknown genre",
			req: func() model.BookRequest {
				r := bookRequest(a.ID)
				r.Genre = "drama"
				return r
			}(),
			mockBehavior: func(t *testing.T, m *mocks) {
				m.authors.EXPECT().GetAuthorsByIDs(gomock.Any(), gomock.Any()).Return([]model.Author{a}, nil)
			},
			wantKind: errs.ErrValidation,
			wantMsgs: []string{"Invalid genre specified."},
		},
		{
			name: "err. isbn taken",
			req:  bookRequest(a.ID),
			mockBehavior: func(t *testing.T, m *mocks) {
				m.authors.EXPECT().GetAuthorsByIDs(gomock.Any(), gomock.Any()).Return([]model.Author{a}, nil)
				m.books.EXPECT().ISBNExists(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantKind: errs.ErrValidation,
			wantMsgs: []string{"Book with provided ISBN already exists."},
		},
		{
			name: "err. isbn taken concurrently",
			req:  bookRequest(a.ID),
			mockBehavior: func(t *testing.T, m *mocks) {
				m.authors.EXPECT().GetAuthorsByIDs(gomock.Any(), gomock.Any()).Return([]model.Author{a}, nil)
				m.books.EXPECT().ISBNExists(gomock.Any(), gomock.Any()).Return(false, nil)
				m.books.EXPECT().AddBook(gomock.Any(), gomock.Any()).Return(errors.Wrap(errs.ErrConflict, "books_isbn_active_idx"))
			},
			wantKind: errs.ErrValidation,
			wantMsgs: []string{"Book with provided ISBN already exists."},
		},
		{
			name: "err. save failed",
			req:  bookRequest(a.ID),
			mockBehavior: func(t *testing.T, m *mocks) {
				m.authors.EXPECT().GetAuthorsByIDs(gomock.Any(), gomock.Any()).Return([]model.Author{a}, nil)
				m.books.EXPECT().ISBNExists(gomock.Any(), gomock.Any()).Return(false, nil)
				m.books.EXPECT().AddBook(gomock.Any(), gomock.Any()).Return(errors.New("conn reset"))
			},
			wantKind: errs.ErrPersistence,
			wantMsgs: []string{"Failed to add book."},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, m := newService(t)
			tt.mockBehavior(t, m)

			created, err := svc.CreateBook(context.Background(), tt.req)
			if tt.wantKind != nil {
				requireDomainErr(t, err, tt.wantKind, tt.wantMsgs...)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "Book successfully created!", created.Message)
			_, err = uuid.Parse(created.ID)
			require.NoError(t, err)
		})
	}
}

func TestService_UpdateBook(t *testing.T) {
	t.Parallel()
	a := model.Author{ID: uuid.New()}
	id := uuid.New()
	stored := model.Book{ID: id, Title: "Old", ISBN: "9780141396507", Genre: model.GenreDrama, TotalCopies: 1}

	type mockBehavior func(t *testing.T, m *mocks)

	tests := []struct {
		name         string
		req          model.BookRequest
		mockBehavior mockBehavior
		wantKind     error
		wantMsg      string
	}{
		{
			name: "ok. same isbn is not a collision",
			req:  bookRequest(a.ID),
			mockBehavior: func(t *testing.T, m *mocks) {
				m.books.EXPECT().GetBook(gomock.Any(), id).Return(stored, nil)
				m.authors.EXPECT().GetAuthorsByIDs(gomock.Any(), gomock.Any()).Return([]model.Author{a}, nil)
				m.books.EXPECT().UpdateBook(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, book model.Book) error {
						require.Equal(t, "Hamlet", book.Title)
						require.Equal(t, 3, book.TotalCopies)
						require.Equal(t, now, book.ModifiedAt)
						return nil
					})
			},
		},
		{
			name: "ok. new isbn is free",
			req: func() model.BookRequest {
				r := bookRequest(a.ID)
				r.ISBN = "9780743477123"
				return r
			}(),
			mockBehavior: func(t *testing.T, m *mocks) {
				m.books.EXPECT().GetBook(gomock.Any(), id).Return(stored, nil)
				m.authors.EXPECT().GetAuthorsByIDs(gomock.Any(), gomock.Any()).Return([]model.Author{a}, nil)
				m.books.EXPECT().ISBNExists(gomock.Any(), "9780743477123").Return(false, nil)
				m.books.EXPECT().UpdateBook(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "err. new isbn is taken",
			req: func() model.BookRequest {
				r := bookRequest(a.ID)
				r.ISBN = "9780743477123"
				return r
			}(),
			mockBehavior: func(t *testing.T, m *mocks) {
				m.books.EXPECT().GetBook(gomock.Any(), id).Return(stored, nil)
				m.authors.EXPECT().GetAuthorsByIDs(gomock.Any(), gomock.Any()).Return([]model.Author{a}, nil)
				m.books.EXPECT().ISBNExists(gomock.Any(), "9780743477123").Return(true, nil)
			},
			wantKind: errs.ErrValidation,
			wantMsg:  "Book with provided ISBN already exists.",
		},
		{
			name: "err. not found",
			req:  bookRequest(a.ID),
			mockBehavior: func(t *testing.T, m *mocks) {
				m.books.EXPECT().GetBook(gomock.Any(), id).Return(model.Book{}, errs.ErrNotFound)
			},
			wantKind: errs.ErrNotFound,
			wantMsg:  "Book with provided ID does not exist.",
		},
		{
			name: "err. save failed",
			req:  bookRequest(a.ID),
			mockBehavior: func(t *testing.T, m *mocks) {
				m.books.EXPECT().GetBook(gomock.Any(), id).Return(stored, nil)
				m.authors.EXPECT().GetAuthorsByIDs(gomock.Any(), gomock.Any()).Return([]model.Author{a}, nil)
				m.books.EXPECT().UpdateBook(gomock.Any(), gomock.Any()).Return(errs.ErrNoRowsAffected)
			},
			wantKind: errs.ErrPersistence,
			wantMsg:  "Failed to update book.",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, m := newService(t)
			tt.mockBehavior(t, m)

			msg, err := svc.UpdateBook(context.Background(), id, tt.req)
			if tt.wantKind != nil {
				requireDomainErr(t, err, tt.wantKind, tt.wantMsg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "Book successfully updated.", msg.Message)
		})
	}
}

func TestService_DeleteBook(t *testing.T) {
	t.Parallel()
	svc, m := newService(t)
	id := uuid.New()

	gomock.InOrder(
		m.books.EXPECT().DeleteBook(gomock.Any(), id).Return(nil),
		m.books.EXPECT().DeleteBook(gomock.Any(), id).Return(errs.ErrNotFound),
	)

	msg, err := svc.DeleteBook(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Book successfully deleted.", msg.Message)

	_, err = svc.DeleteBook(context.Background(), id)
	requireDomainErr(t, err, errs.ErrNotFound, "Book does not exist.")
}

func TestService_GetBook(t *testing.T) {
	t.Parallel()
	svc, m := newService(t)
	id := uuid.New()
	author := model.Author{ID: uuid.New(), Name: "William", LastName: "Shakespeare"}

	m.books.EXPECT().GetBook(gomock.Any(), id).
		Return(model.Book{ID: id, Title: "Hamlet", Authors: []model.Author{author}}, nil)
	m.books.EXPECT().GetBook(gomock.Any(), gomock.Not(id)).Return(model.Book{}, errs.ErrNotFound)

	got, err := svc.GetBook(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Hamlet", got.Title)
	require.Equal(t, []model.BookAuthor{{ID: author.ID, Name: "William", LastName: "Shakespeare"}}, got.Authors)

	_, err = svc.GetBook(context.Background(), uuid.New())
	requireDomainErr(t, err, errs.ErrNotFound, "Book does not exist.")
}

func TestService_ListBooks(t *testing.T) {
	t.Parallel()
	svc, m := newService(t)
	m.books.EXPECT().ListBooks(gomock.Any()).Return(nil, nil)

	got, err := svc.ListBooks(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestService_GetRentHistoryForBook(t *testing.T) {
	t.Parallel()
	svc, m := newService(t)
	id := uuid.New()
	returned := now.Add(-time.Hour)
	rents := []model.Rent{
		{ID: uuid.New(), BookID: id, UserID: "u1", DateRented: now.Add(-72 * time.Hour), DateReturned: &returned},
		{ID: uuid.New(), BookID: id, UserID: "gone", DateRented: now.Add(-48 * time.Hour)},
		{ID: uuid.New(), BookID: id, UserID: "u1", DateRented: now.Add(-24 * time.Hour)},
	}

	m.books.EXPECT().GetBook(gomock.Any(), id).Return(model.Book{ID: id}, nil)
	m.rents.EXPECT().ListRentsByBook(gomock.Any(), id).Return(rents, nil)
	m.identity.EXPECT().FindByID(gomock.Any(), "u1").
		Return(model.UserIdentity{ID: "u1", UserName: "jdoe", Name: "John"}, nil).Times(1)
	m.identity.EXPECT().FindByID(gomock.Any(), "gone").Return(model.UserIdentity{}, errs.ErrNotFound)

	got, err := svc.GetRentHistoryForBook(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, rents[0].ID, got[0].ID)
	require.Equal(t, "jdoe", got[0].User.UserName)
	require.Equal(t, &returned, got[0].DateReturned)
	require.Equal(t, model.UserProfile{ID: "gone"}, got[1].User)
	require.Nil(t, got[1].DateReturned)
	require.Equal(t, "John", got[2].User.Name)
}

func TestService_GetRentHistoryForBook_NotFound(t *testing.T) {
	t.Parallel()
	svc, m := newService(t)
	m.books.EXPECT().GetBook(gomock.Any(), gomock.Any()).Return(model.Book{}, errs.ErrNotFound)

	_, err := svc.GetRentHistoryForBook(context.Background(), uuid.New())
	requireDomainErr(t, err, errs.ErrNotFound, "Book does not exist.")
}
