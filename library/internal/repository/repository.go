package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type AuthorStore interface {
	AddAuthor(ctx context.Context, author model.Author) error
	UpdateAuthor(ctx context.Context, author model.Author) error
	GetAuthor(ctx context.Context, id uuid.UUID) (model.Author, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	GetAuthorsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Author, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) error
}

type BookStore interface {
	AddBook(ctx context.Context, book model.Book) error
	UpdateBook(ctx context.Context, book model.Book) error
	GetBook(ctx context.Context, id uuid.UUID) (model.Book, error)
	GetBookForUpdate(ctx context.Context, id uuid.UUID) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	ISBNExists(ctx context.Context, isbn string) (bool, error)
}

type RentStore interface {
	AddRent(ctx context.Context, rent model.Rent) error
	UpdateRent(ctx context.Context, rent model.Rent) error
	GetOpenRent(ctx context.Context, bookID uuid.UUID, userID string) (model.Rent, error)
	ListRentsByUser(ctx context.Context, userID string) ([]model.Rent, error)
	ListRentsByBook(ctx context.Context, bookID uuid.UUID) ([]model.Rent, error)
	CountOpenRents(ctx context.Context, bookID uuid.UUID) (int, error)
}

type UserStore interface {
	AddUser(ctx context.Context, user model.User) error
	GetUser(ctx context.Context, id string) (model.User, error)
}

// Transactor runs fn in one transaction. Stores called with the ctx passed
// to fn take part in it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	authorsTableName     = `authors`
	booksTableName       = `books`
	bookAuthorsTableName = `book_authors`
	rentsTableName       = `rents`
	usersTableName       = `users`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// active is the soft delete filter shared by every read path.
func active(alias string) sq.Eq {
	col := "status"
	if alias != "" {
		col = alias + ".status"
	}
	return sq.Eq{col: model.StatusActive}
}

func (r *repository) exec(ctx context.Context, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	tag, err := r.conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("exec", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNoRowsAffected
	}
	return nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errors.Wrap(errs.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

func collectOne[T any](ctx context.Context, q querier, b sq.Sqlizer) (T, error) {
	var zero T
	query, args, err := b.ToSql()
	if err != nil {
		return zero, err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	defer rows.Close()

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, errs.ErrNotFound
		}
		return zero, err
	}
	return item, nil
}

func collectRows[T any](ctx context.Context, q querier, b sq.Sqlizer) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return items, nil
}
