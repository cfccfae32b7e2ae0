package repository

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestActive(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		builder   sq.Sqlizer
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "plain",
			builder:   qb.Select("id").From(authorsTableName).Where(active("")),
			wantQuery: "SELECT id FROM authors WHERE status = $1",
			wantArgs:  []any{model.StatusActive},
		},
		{
			name:      "aliased",
			builder:   qb.Select("a.id").From(authorsTableName + " a").Where(active("a")),
			wantQuery: "SELECT a.id FROM authors a WHERE a.status = $1",
			wantArgs:  []any{model.StatusActive},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			query, args, err := tt.builder.ToSql()
			require.NoError(t, err)
			require.Equal(t, tt.wantQuery, query)
			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestQueries(t *testing.T) {
	t.Parallel()
	bookID := uuid.MustParse("6a6c3d1e-9a3b-4f0e-8d7a-1b2c3d4e5f60")
	authorID := uuid.MustParse("83575e12-7ce0-48ee-9931-51919ff3c9ee")

	tests := []struct {
		name      string
		builder   sq.Sqlizer
		wantQuery string
		wantArgs  []any
	}{
		{
			name:    "open rent of the pair, latest first, locked",
			builder: openRentQuery(bookID, "u1"),
			wantQuery: "SELECT id, book_id, user_id, date_rented, date_returned FROM rents " +
				"WHERE book_id = $1 AND date_returned IS NULL AND user_id = $2 " +
				"ORDER BY date_rented DESC LIMIT 1 FOR UPDATE",
			wantArgs: []any{bookID.String(), "u1"},
		},
		{
			name:      "open rents of a book",
			builder:   countOpenRentsQuery(bookID),
			wantQuery: "SELECT count(*) FROM rents WHERE book_id = $1 AND date_returned IS NULL",
			wantArgs:  []any{bookID.String()},
		},
		{
			name:      "isbn among active books only",
			builder:   isbnExistsQuery("9780141396507"),
			wantQuery: "SELECT EXISTS ( SELECT 1 FROM books WHERE isbn = $1 AND status = $2 )",
			wantArgs:  []any{"9780141396507", model.StatusActive},
		},
		{
			name: "author links",
			builder: linkAuthorsQuery(model.Book{
				ID:      bookID,
				Authors: []model.Author{{ID: authorID}},
			}.AuthorLinks()),
			wantQuery: "INSERT INTO book_authors (book_id,author_id) VALUES ($1,$2)",
			wantArgs:  []any{bookID, authorID},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			query, args, err := tt.builder.ToSql()
			require.NoError(t, err)
			require.Equal(t, tt.wantQuery, query)
			require.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestMapPgError(t *testing.T) {
	t.Parallel()
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "books_isbn_active_uidx"}
	err := mapPgError(unique)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.Contains(t, err.Error(), "books_isbn_active_uidx")

	other := errors.New("conn closed")
	require.Equal(t, other, mapPgError(other))
}
