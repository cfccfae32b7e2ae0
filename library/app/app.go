package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/helcv/Valcon-Internship-Library-Project/library/config"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/handler"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/identity"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/queue"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/repository"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/server"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/service"
	"github.com/helcv/Valcon-Internship-Library-Project/library/migrations"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/auth"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/circuit_breaker"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/kafka"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/logger"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var _ service.IdentityProvider = (*identity.Provider)(nil)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	ctx := context.Background()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	svc, closeFn, err := newService(ctx, cfg, db, log)
	if err != nil {
		log.Fatal("service init", zap.Error(err))
	}

	if cfg.Admin.Email != "" {
		if _, err = svc.SeedAdmin(ctx, adminRequest(cfg.Admin.Email, cfg.Admin.UserName, cfg.Admin.Password)); err != nil {
			log.Error("seed admin", zap.Error(err))
		}
	}

	h := handler.New(svc, auth.NewTokenManager(cfg.Auth), log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	closeFn()
	db.Close()
	log.Info("Graceful shutdown finished")
}

// Migrate runs a goose command (up, down, status, ...) against the database.
func Migrate(ctx context.Context, cfg config.Config, command string) error {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return errors.Wrap(err, "pgxpool.New")
	}
	defer pool.Close()
	return postgres.Migrate(ctx, pool, migrations.MigrationFiles, command)
}

// CreateAdmin registers an admin account. It reports false when the email is
// already registered.
func CreateAdmin(ctx context.Context, cfg config.Config, email, userName, password string) (bool, error) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return false, errors.Wrap(err, "db init")
	}
	defer db.Close()

	cfg.Kafka.Enabled = false
	svc, closeFn, err := newService(ctx, cfg, db, log)
	if err != nil {
		return false, err
	}
	defer closeFn()
	return svc.SeedAdmin(ctx, adminRequest(email, userName, password))
}

func newService(ctx context.Context, cfg config.Config, db *pgxpool.Pool, log *zap.Logger) (*service.Service, func(), error) {
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return nil, nil, errors.Wrap(err, "repo")
	}
	idp := identity.NewProvider(db, log)
	if err = idp.EnsureRoles(ctx, auth.RoleAdmin, auth.RoleLibrarian, auth.RoleUser); err != nil {
		return nil, nil, errors.Wrap(err, "ensure roles")
	}
	events, closeFn, err := newPublisher(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return service.NewService(repo, idp, events, auth.NewTokenManager(cfg.Auth), log), closeFn, nil
}

func newPublisher(cfg config.Config, log *zap.Logger) (service.EventPublisher, func(), error) {
	if !cfg.Kafka.Enabled {
		return queue.NewNopPublisher(log), func() {}, nil
	}
	if err := kafka.CreateTopics(cfg.Kafka, kafka.RentalsTopic); err != nil {
		return nil, nil, errors.Wrap(err, "kafka.CreateTopics")
	}
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, nil, errors.Wrap(err, "kafka.NewProducer")
	}
	closeFn := func() { closeProducer(producer, log) }
	cb := circuit_breaker.New(cfg.CircuitBreaker)
	return queue.NewPublisher(kafka.NewEnqueuer(producer), cb, log), closeFn, nil
}

func closeProducer(producer sarama.SyncProducer, log *zap.Logger) {
	if err := producer.Close(); err != nil {
		log.Warn("producer close", zap.Error(err))
	}
}

func adminRequest(email, userName, password string) model.RegisterRequest {
	return model.RegisterRequest{
		UserName: userName,
		Email:    email,
		Password: password,
		Name:     userName,
		LastName: userName,
	}
}
