package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	usersTableName     = `identity_users`
	rolesTableName     = `identity_roles`
	userRolesTableName = `identity_user_roles`

	userNameKey = "identity_users_user_name_key"
	emailKey    = "identity_users_email_key"
)

var (
	qb          = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	userColumns = []string{"id", "user_name", "email", "password_hash", "name", "last_name", "date_of_birth", "created_at"}
)

// Provider keeps credentials and role membership apart from the library data.
type Provider struct {
	db     *pgxpool.Pool
	log    *zap.Logger
	policy PasswordPolicy
	cost   int
}

func NewProvider(db *pgxpool.Pool, log *zap.Logger) *Provider {
	return &Provider{
		db:     db,
		log:    log.Named("identity"),
		policy: DefaultPasswordPolicy(),
		cost:   bcrypt.DefaultCost,
	}
}

func (p *Provider) FindByEmail(ctx context.Context, email string) (model.UserIdentity, error) {
	return p.findOne(ctx, sq.Eq{"lower(email)": strings.ToLower(email)})
}

func (p *Provider) FindByID(ctx context.Context, id string) (model.UserIdentity, error) {
	return p.findOne(ctx, sq.Eq{"id": id})
}

func (p *Provider) findOne(ctx context.Context, pred sq.Sqlizer) (model.UserIdentity, error) {
	query, args, err := qb.Select(userColumns...).From(usersTableName).Where(pred).Limit(1).ToSql()
	if err != nil {
		return model.UserIdentity{}, err
	}
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return model.UserIdentity{}, err
	}
	defer rows.Close()
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.UserIdentity])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UserIdentity{}, errs.ErrNotFound
		}
		return model.UserIdentity{}, err
	}
	return user, nil
}

// Create stores a new identity. Policy and uniqueness problems come back
// together as one validation error.
func (p *Provider) Create(ctx context.Context, user model.UserIdentity, password string) error {
	problems := p.policy.Check(password)
	taken, err := p.taken(ctx, user.UserName, user.Email)
	if err != nil {
		return err
	}
	problems = append(problems, taken...)
	if len(problems) > 0 {
		return errs.Validation(problems...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return errors.Wrap(err, "bcrypt")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	query, args, err := qb.Insert(usersTableName).
		Columns(userColumns...).
		Values(user.ID, user.UserName, user.Email, string(hash), user.Name, user.LastName, user.DateOfBirth, user.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err = p.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case userNameKey:
				return errs.Validation(fmt.Sprintf("Username '%s' is already taken.", user.UserName))
			case emailKey:
				return errs.Validation(fmt.Sprintf("Email '%s' is already taken.", user.Email))
			}
		}
		return errors.Wrap(err, "insert identity")
	}
	return nil
}

func (p *Provider) taken(ctx context.Context, userName, email string) ([]string, error) {
	const q = `
select coalesce(bool_or(user_name = $1), false), coalesce(bool_or(lower(email) = lower($2)), false)
from identity_users
where user_name = $1 or lower(email) = lower($2)`
	var nameTaken, emailTaken bool
	if err := p.db.QueryRow(ctx, q, userName, email).Scan(&nameTaken, &emailTaken); err != nil {
		return nil, errors.Wrap(err, "taken")
	}

	var problems []string
	if nameTaken {
		problems = append(problems, fmt.Sprintf("Username '%s' is already taken.", userName))
	}
	if emailTaken {
		problems = append(problems, fmt.Sprintf("Email '%s' is already taken.", email))
	}
	return problems, nil
}

// Update changes the personal details of an identity.
func (p *Provider) Update(ctx context.Context, user model.UserIdentity) error {
	query, args, err := qb.Update(usersTableName).
		SetMap(map[string]any{
			"name":          user.Name,
			"last_name":     user.LastName,
			"date_of_birth": user.DateOfBirth,
		}).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := p.db.Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "update identity")
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (p *Provider) CheckPassword(ctx context.Context, id, password string) (bool, error) {
	user, err := p.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "bcrypt")
	}
	return true, nil
}

func (p *Provider) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	ok, err := p.CheckPassword(ctx, id, oldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return errs.Validation("Incorrect password.")
	}
	if problems := p.policy.Check(newPassword); len(problems) > 0 {
		return errs.Validation(problems...)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), p.cost)
	if err != nil {
		return errors.Wrap(err, "bcrypt")
	}
	_, err = p.db.Exec(ctx, `update identity_users set password_hash = @hash where id = @id`, pgx.NamedArgs{
		"hash": string(hash),
		"id":   id,
	})
	return errors.Wrap(err, "update password")
}

// AddToRole returns errs.ErrNotFound for an unknown role.
func (p *Provider) AddToRole(ctx context.Context, id, role string) error {
	query, args, err := qb.Insert(userRolesTableName).
		Columns("user_id", "role").
		Values(id, role).
		Suffix("on conflict do nothing").
		ToSql()
	if err != nil {
		return err
	}
	if _, err = p.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return errs.ErrNotFound
		}
		return errors.Wrap(err, "add to role")
	}
	return nil
}

func (p *Provider) IsInRole(ctx context.Context, id, role string) (bool, error) {
	var ok bool
	err := p.db.QueryRow(ctx,
		`select exists (select 1 from identity_user_roles where user_id = $1 and role = $2)`, id, role).
		Scan(&ok)
	return ok, errors.Wrap(err, "is in role")
}

func (p *Provider) Roles(ctx context.Context, id string) ([]string, error) {
	query, args, err := qb.Select("role").From(userRolesTableName).Where(sq.Eq{"user_id": id}).OrderBy("role").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	roles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return roles, errors.Wrap(err, "roles")
}

func (p *Provider) UsersInRole(ctx context.Context, role string) ([]model.UserIdentity, error) {
	query, args, err := qb.Select(prefixed("u", userColumns)...).
		From(usersTableName + " u").
		Join(fmt.Sprintf("%s ur on ur.user_id = u.id", userRolesTableName)).
		Where(sq.Eq{"ur.role": role}).
		OrderBy("u.user_name").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.UserIdentity])
	return users, errors.Wrap(err, "users in role")
}

// Delete removes the identity and its role links.
func (p *Provider) Delete(ctx context.Context, id string) error {
	_, err := p.db.Exec(ctx, `delete from identity_users where id = $1`, id)
	return errors.Wrap(err, "delete identity")
}

// EnsureRoles creates missing roles.
func (p *Provider) EnsureRoles(ctx context.Context, roles ...string) error {
	if len(roles) == 0 {
		return nil
	}
	ins := qb.Insert(rolesTableName).Columns("name").Suffix("on conflict do nothing")
	for _, r := range roles {
		ins = ins.Values(r)
	}
	query, args, err := ins.ToSql()
	if err != nil {
		return err
	}
	_, err = p.db.Exec(ctx, query, args...)
	return errors.Wrap(err, "ensure roles")
}

func prefixed(alias string, cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, alias+"."+c)
	}
	return out
}
