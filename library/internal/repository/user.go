package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
)

func (r *repository) AddUser(ctx context.Context, u model.User) error {
	return r.exec(ctx, qb.Insert(usersTableName).
		Columns("id", "user_name", "email").
		Values(u.ID, u.UserName, u.Email))
}

func (r *repository) GetUser(ctx context.Context, id string) (model.User, error) {
	return collectOne[model.User](ctx, r.conn(ctx), qb.Select("id", "user_name", "email").
		From(usersTableName).
		Where(sq.Eq{"id": id}).
		Limit(1))
}
