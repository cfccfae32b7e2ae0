package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/pkg/errors"
)

var rentColumns = []string{"id", "book_id", "user_id", "date_rented", "date_returned"}

func (r *repository) AddRent(ctx context.Context, rent model.Rent) error {
	return r.exec(ctx, qb.Insert(rentsTableName).
		Columns(rentColumns...).
		Values(rent.ID, rent.BookID, rent.UserID, rent.DateRented, rent.DateReturned))
}

// UpdateRent only closes open rents.
func (r *repository) UpdateRent(ctx context.Context, rent model.Rent) error {
	return r.exec(ctx, qb.Update(rentsTableName).
		Set("date_returned", rent.DateReturned).
		Where(sq.Eq{"id": rent.ID}).
		Where(sq.Eq{"date_returned": nil}))
}

// GetOpenRent locks the open rent of the pair when called inside a transaction.
func (r *repository) GetOpenRent(ctx context.Context, bookID uuid.UUID, userID string) (model.Rent, error) {
	return collectOne[model.Rent](ctx, r.conn(ctx), openRentQuery(bookID, userID))
}

func openRentQuery(bookID uuid.UUID, userID string) sq.SelectBuilder {
	return qb.Select(rentColumns...).
		From(rentsTableName).
		Where(sq.Eq{"book_id": bookID, "user_id": userID, "date_returned": nil}).
		OrderBy("date_rented DESC").
		Limit(1).
		Suffix("FOR UPDATE")
}

func (r *repository) CountOpenRents(ctx context.Context, bookID uuid.UUID) (int, error) {
	query, args, err := countOpenRentsQuery(bookID).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err = r.conn(ctx).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count open rents")
	}
	return count, nil
}

func countOpenRentsQuery(bookID uuid.UUID) sq.SelectBuilder {
	return qb.Select("count(*)").
		From(rentsTableName).
		Where(sq.Eq{"book_id": bookID, "date_returned": nil})
}

func (r *repository) ListRentsByBook(ctx context.Context, bookID uuid.UUID) ([]model.Rent, error) {
	return collectRows[model.Rent](ctx, r.conn(ctx), qb.Select(rentColumns...).
		From(rentsTableName).
		Where(sq.Eq{"book_id": bookID}).
		OrderBy("date_rented"))
}

type rentBookRow struct {
	model.Rent
	BookTitle          string      `db:"b_title"`
	BookISBN           string      `db:"b_isbn"`
	BookGenre          model.Genre `db:"b_genre"`
	BookNumberOfPages  int         `db:"b_number_of_pages"`
	BookPublishingYear int         `db:"b_publishing_year"`
}

// ListRentsByUser returns the user's rents with their books, deleted books
// included so history stays complete.
func (r *repository) ListRentsByUser(ctx context.Context, userID string) ([]model.Rent, error) {
	rows, err := collectRows[rentBookRow](ctx, r.conn(ctx), qb.Select(prefixed("r", rentColumns)...).
		Columns(
			"b.title as b_title",
			"b.isbn as b_isbn",
			"b.genre as b_genre",
			"b.number_of_pages as b_number_of_pages",
			"b.publishing_year as b_publishing_year",
		).
		From(rentsTableName+" r").
		Join(fmt.Sprintf("%s b on b.id = r.book_id", booksTableName)).
		Where(sq.Eq{"r.user_id": userID}).
		OrderBy("r.date_rented"))
	if err != nil {
		return nil, err
	}

	bookIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		bookIDs = append(bookIDs, row.BookID)
	}
	authors, err := r.authorsOf(ctx, bookIDs)
	if err != nil {
		return nil, err
	}

	rents := make([]model.Rent, 0, len(rows))
	for _, row := range rows {
		rent := row.Rent
		rent.Book = &model.Book{
			ID:             row.BookID,
			Title:          row.BookTitle,
			ISBN:           row.BookISBN,
			Genre:          row.BookGenre,
			NumberOfPages:  row.BookNumberOfPages,
			PublishingYear: row.BookPublishingYear,
			Authors:        authors[row.BookID],
		}
		rents = append(rents, rent)
	}
	return rents, nil
}
