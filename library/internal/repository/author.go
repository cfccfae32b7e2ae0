package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/pkg/errors"
)

var authorColumns = []string{"id", "name", "last_name", "year_of_birth", "status", "created_at", "modified_at"}

func (r *repository) AddAuthor(ctx context.Context, a model.Author) error {
	return r.exec(ctx, qb.Insert(authorsTableName).
		Columns(authorColumns...).
		Values(a.ID, a.Name, a.LastName, a.YearOfBirth, model.StatusActive, a.CreatedAt, a.ModifiedAt))
}

func (r *repository) UpdateAuthor(ctx context.Context, a model.Author) error {
	return r.exec(ctx, qb.Update(authorsTableName).
		SetMap(map[string]any{
			"name":          a.Name,
			"last_name":     a.LastName,
			"year_of_birth": a.YearOfBirth,
			"modified_at":   a.ModifiedAt,
		}).
		Where(sq.Eq{"id": a.ID}).
		Where(active("")))
}

func (r *repository) GetAuthor(ctx context.Context, id uuid.UUID) (model.Author, error) {
	return collectOne[model.Author](ctx, r.conn(ctx), qb.Select(authorColumns...).
		From(authorsTableName).
		Where(sq.Eq{"id": id}).
		Where(active("")).
		Limit(1))
}

func (r *repository) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return collectRows[model.Author](ctx, r.conn(ctx), qb.Select(authorColumns...).
		From(authorsTableName).
		Where(active("")).
		OrderBy("last_name", "name"))
}

func (r *repository) GetAuthorsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return collectRows[model.Author](ctx, r.conn(ctx), qb.Select(authorColumns...).
		From(authorsTableName).
		Where(sq.Eq{"id": ids}).
		Where(active("")))
}

// DeleteAuthor flips an active author to DELETED; a second call finds nothing.
func (r *repository) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	err := r.exec(ctx, qb.Update(authorsTableName).
		Set("status", model.StatusDeleted).
		Set("modified_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where(active("")))
	if errors.Is(err, errs.ErrNoRowsAffected) {
		return errs.ErrNotFound
	}
	return err
}
