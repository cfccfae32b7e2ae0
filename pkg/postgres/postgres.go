package postgres

import (
	"context"
	"database/sql"
	"io/fs"
	"net"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

type DB struct {
	Host     string `yaml:"host" envconfig:"DB_HOST" default:"localhost"`
	Port     string `yaml:"port" envconfig:"DB_PORT" default:"5432"`
	Username string `yaml:"user" envconfig:"DB_USER" default:"postgres"`
	Password string `yaml:"password" json:"-" envconfig:"DB_PASSWORD"`
	NameDB   string `yaml:"dbname" envconfig:"DB_NAME" default:"library"`
	SSLMode  string `yaml:"sslmode" envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `yaml:"maxConns" envconfig:"DB_MAX_CONNS" default:"10"`
}

func (cfg *DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     cfg.NameDB,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// NewPostgresDB opens a pool, pings it and applies the embedded migrations.
func NewPostgresDB(ctx context.Context, cfg *DB, migrations fs.FS) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "pgxpool.ParseConfig")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Wrap(err, "pgxpool.NewWithConfig")
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping")
	}
	if migrations != nil {
		if err = Migrate(ctx, pool, migrations, "up"); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return pool, nil
}

// Migrate runs a goose command (up, down, status, ...) over the embedded files.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS, command string) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "goose.SetDialect")
	}
	db := migrationDB(pool)
	defer db.Close()

	if err := goose.RunContext(ctx, command, db, "."); err != nil {
		return errors.Wrapf(err, "goose %s", command)
	}
	return nil
}

// migrationDB opens a database/sql handle with the pool's connection
// settings. Migrations run on a single connection.
func migrationDB(pool *pgxpool.Pool) *sql.DB {
	db := stdlib.OpenDB(*pool.Config().ConnConfig)
	db.SetMaxOpenConns(1)
	return db
}
