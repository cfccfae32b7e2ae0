package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	mock_repository "github.com/helcv/Valcon-Internship-Library-Project/library/internal/repository/mocks"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/service"
	mock_service "github.com/helcv/Valcon-Internship-Library-Project/library/internal/service/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var now = time.Date(2024, time.May, 21, 12, 0, 0, 0, time.UTC)

type mocks struct {
	authors  *mock_repository.MockAuthorStore
	books    *mock_repository.MockBookStore
	rents    *mock_repository.MockRentStore
	users    *mock_repository.MockUserStore
	tx       *mock_repository.MockTransactor
	identity *mock_service.MockIdentityProvider
	events   *mock_service.MockEventPublisher
	tokens   *mock_service.MockTokenIssuer
}

// repo glues the store mocks into one service.Repository.
type repo struct {
	*mock_repository.MockAuthorStore
	*mock_repository.MockBookStore
	*mock_repository.MockRentStore
	*mock_repository.MockUserStore
	*mock_repository.MockTransactor
}

func newService(t *testing.T) (*service.Service, *mocks) {
	t.Helper()
	c := gomock.NewController(t)
	m := &mocks{
		authors:  mock_repository.NewMockAuthorStore(c),
		books:    mock_repository.NewMockBookStore(c),
		rents:    mock_repository.NewMockRentStore(c),
		users:    mock_repository.NewMockUserStore(c),
		tx:       mock_repository.NewMockTransactor(c),
		identity: mock_service.NewMockIdentityProvider(c),
		events:   mock_service.NewMockEventPublisher(c),
		tokens:   mock_service.NewMockTokenIssuer(c),
	}
	m.tx.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()

	r := repo{m.authors, m.books, m.rents, m.users, m.tx}
	svc := service.NewService(r, m.identity, m.events, m.tokens, zap.NewNop(), service.WithClock(func() time.Time { return now }))
	return svc, m
}

// requireDomainErr checks the kind and the client messages of err.
func requireDomainErr(t *testing.T, err error, kind error, msgs ...string) {
	t.Helper()
	require.ErrorIs(t, err, kind)
	de, ok := errs.AsError(err)
	require.True(t, ok, "not a domain error: %v", err)
	require.Equal(t, msgs, de.Messages)
}
