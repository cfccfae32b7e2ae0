package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/pkg/errors"
)

var bookColumns = []string{
	"id", "title", "isbn", "genre", "number_of_pages", "publishing_year", "total_copies", "status", "created_at", "modified_at",
}

func prefixed(alias string, cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, alias+"."+c)
	}
	return out
}

// AddBook stores the book together with its author links.
func (r *repository) AddBook(ctx context.Context, b model.Book) error {
	return r.WithinTx(ctx, func(ctx context.Context) error {
		err := r.exec(ctx, qb.Insert(booksTableName).
			Columns(bookColumns...).
			Values(b.ID, b.Title, b.ISBN, b.Genre, b.NumberOfPages, b.PublishingYear, b.TotalCopies,
				model.StatusActive, b.CreatedAt, b.ModifiedAt))
		if err != nil {
			return err
		}
		return r.linkAuthors(ctx, b.AuthorLinks())
	})
}

// UpdateBook replaces scalar fields and the whole author set.
func (r *repository) UpdateBook(ctx context.Context, b model.Book) error {
	return r.WithinTx(ctx, func(ctx context.Context) error {
		err := r.exec(ctx, qb.Update(booksTableName).
			SetMap(map[string]any{
				"title":           b.Title,
				"isbn":            b.ISBN,
				"genre":           b.Genre,
				"number_of_pages": b.NumberOfPages,
				"publishing_year": b.PublishingYear,
				"total_copies":    b.TotalCopies,
				"modified_at":     b.ModifiedAt,
			}).
			Where(sq.Eq{"id": b.ID}).
			Where(active("")))
		if err != nil {
			return err
		}
		query, args, err := qb.Delete(bookAuthorsTableName).Where(sq.Eq{"book_id": b.ID}).ToSql()
		if err != nil {
			return err
		}
		if _, err = r.conn(ctx).Exec(ctx, query, args...); err != nil {
			return errors.Wrap(err, "unlink authors")
		}
		return r.linkAuthors(ctx, b.AuthorLinks())
	})
}

func (r *repository) linkAuthors(ctx context.Context, links []model.BookAuthorLink) error {
	if len(links) == 0 {
		return nil
	}
	return r.exec(ctx, linkAuthorsQuery(links))
}

func linkAuthorsQuery(links []model.BookAuthorLink) sq.InsertBuilder {
	ins := qb.Insert(bookAuthorsTableName).Columns("book_id", "author_id")
	for _, l := range links {
		ins = ins.Values(l.BookID, l.AuthorID)
	}
	return ins
}

func (r *repository) GetBook(ctx context.Context, id uuid.UUID) (model.Book, error) {
	return r.getBook(ctx, id, "")
}

// GetBookForUpdate locks the book row until the surrounding transaction ends.
func (r *repository) GetBookForUpdate(ctx context.Context, id uuid.UUID) (model.Book, error) {
	return r.getBook(ctx, id, "FOR UPDATE")
}

func (r *repository) getBook(ctx context.Context, id uuid.UUID, suffix string) (model.Book, error) {
	q := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Where(active("")).
		Limit(1)
	if suffix != "" {
		q = q.Suffix(suffix)
	}
	book, err := collectOne[model.Book](ctx, r.conn(ctx), q)
	if err != nil {
		return model.Book{}, err
	}
	authors, err := r.authorsOf(ctx, []uuid.UUID{book.ID})
	if err != nil {
		return model.Book{}, err
	}
	book.Authors = authors[book.ID]
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	books, err := collectRows[model.Book](ctx, r.conn(ctx), qb.Select(bookColumns...).
		From(booksTableName).
		Where(active("")).
		OrderBy("title"))
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	authors, err := r.authorsOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range books {
		books[i].Authors = authors[books[i].ID]
	}
	return books, nil
}

type bookAuthorRow struct {
	BookID uuid.UUID `db:"book_id"`
	model.Author
}

// authorsOf loads the active authors of the given books keyed by book id.
func (r *repository) authorsOf(ctx context.Context, bookIDs []uuid.UUID) (map[uuid.UUID][]model.Author, error) {
	out := make(map[uuid.UUID][]model.Author, len(bookIDs))
	if len(bookIDs) == 0 {
		return out, nil
	}
	rows, err := collectRows[bookAuthorRow](ctx, r.conn(ctx), qb.Select(append([]string{"ba.book_id"}, prefixed("a", authorColumns)...)...).
		From(bookAuthorsTableName+" ba").
		Join(fmt.Sprintf("%s a on a.id = ba.author_id", authorsTableName)).
		Where(sq.Eq{"ba.book_id": bookIDs}).
		Where(active("a")).
		OrderBy("a.last_name", "a.name"))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.BookID] = append(out[row.BookID], row.Author)
	}
	return out, nil
}

func (r *repository) DeleteBook(ctx context.Context, id uuid.UUID) error {
	err := r.exec(ctx, qb.Update(booksTableName).
		Set("status", model.StatusDeleted).
		Set("modified_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where(active("")))
	if errors.Is(err, errs.ErrNoRowsAffected) {
		return errs.ErrNotFound
	}
	return err
}

// ISBNExists only looks at active books, a deleted book's ISBN is free again.
func (r *repository) ISBNExists(ctx context.Context, isbn string) (bool, error) {
	query, args, err := isbnExistsQuery(isbn).ToSql()
	if err != nil {
		return false, err
	}
	var exists bool
	if err = r.conn(ctx).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "isbn exists")
	}
	return exists, nil
}

func isbnExistsQuery(isbn string) sq.SelectBuilder {
	return qb.Select("1").
		Prefix("SELECT EXISTS (").
		From(booksTableName).
		Where(sq.Eq{"isbn": isbn}).
		Where(active("")).
		Suffix(")")
}
