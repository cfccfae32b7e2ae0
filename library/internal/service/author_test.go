package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/service"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestService_CreateAndUpdateAuthor(t *testing.T) {
	t.Parallel()
	svc, m := newService(t)

	var stored model.Author
	m.authors.EXPECT().AddAuthor(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a model.Author) error {
			stored = a
			return nil
		})
	m.authors.EXPECT().GetAuthor(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (model.Author, error) {
			require.Equal(t, stored.ID, id)
			return stored, nil
		})
	m.authors.EXPECT().UpdateAuthor(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a model.Author) error {
			stored = a
			return nil
		})

	created, err := svc.CreateAuthor(context.Background(), model.AuthorRequest{
		Name: "William", LastName: "Shakespeare", YearOfBirth: 1564,
	})
	require.NoError(t, err)
	require.Equal(t, "Author successfully created!", created.Message)
	require.Equal(t, stored.ID.String(), created.ID)
	require.Equal(t, model.StatusActive, stored.Status)

	msg, err := svc.UpdateAuthor(context.Background(), stored.ID, model.AuthorRequest{
		Name: "Will", LastName: "Shakespeare", YearOfBirth: 1564,
	})
	require.NoError(t, err)
	require.Equal(t, "Author successfully updated.", msg.Message)
	require.Equal(t, "Will", stored.Name)
	require.Equal(t, now, stored.ModifiedAt)
}

func TestService_CreateAuthor_SaveFailed(t *testing.T) {
	t.Parallel()
	svc, m := newService(t)
	m.authors.EXPECT().AddAuthor(gomock.Any(), gomock.Any()).Return(errs.ErrNoRowsAffected)

	_, err := svc.CreateAuthor(context.Background(), model.AuthorRequest{Name: "a", LastName: "b", YearOfBirth: 1})
	requireDomainErr(t, err, errs.ErrPersistence, "Failed to add author.")
}

func TestService_AuthorNotFound(t *testing.T) {
	t.Parallel()
	id := uuid.New()

	tests := []struct {
		name string
		call func(svc *service.Service, m *mocks) error
	}{
		{
			name: "get",
			call: func(svc *service.Service, m *mocks) error {
				m.authors.EXPECT().GetAuthor(gomock.Any(), id).Return(model.Author{}, errs.ErrNotFound)
				_, err := svc.GetAuthor(context.Background(), id)
				return err
			},
		},
		{
			name: "update",
			call: func(svc *service.Service, m *mocks) error {
				m.authors.EXPECT().GetAuthor(gomock.Any(), id).Return(model.Author{}, errs.ErrNotFound)
				_, err := svc.UpdateAuthor(context.Background(), id, model.AuthorRequest{})
				return err
			},
		},
		{
			name: "delete twice",
			call: func(svc *service.Service, m *mocks) error {
				gomock.InOrder(
					m.authors.EXPECT().DeleteAuthor(gomock.Any(), id).Return(nil),
					m.authors.EXPECT().DeleteAuthor(gomock.Any(), id).Return(errs.ErrNotFound),
				)
				if _, err := svc.DeleteAuthor(context.Background(), id); err != nil {
					return err
				}
				_, err := svc.DeleteAuthor(context.Background(), id)
				return err
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, m := newService(t)
			err := tt.call(svc, m)
			requireDomainErr(t, err, errs.ErrNotFound, "Author does not exist.")
		})
	}
}

func TestService_DeleteAuthor_StoreFailure(t *testing.T) {
	t.Parallel()
	svc, m := newService(t)
	m.authors.EXPECT().DeleteAuthor(gomock.Any(), gomock.Any()).Return(errors.New("conn reset"))

	_, err := svc.DeleteAuthor(context.Background(), uuid.New())
	requireDomainErr(t, err, errs.ErrPersistence, "Failed to delete author.")
}

func TestService_ListAuthors(t *testing.T) {
	t.Parallel()
	svc, m := newService(t)
	m.authors.EXPECT().ListAuthors(gomock.Any()).Return(nil, nil)

	got, err := svc.ListAuthors(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
