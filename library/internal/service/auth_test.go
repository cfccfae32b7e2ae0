package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/auth"
	"github.com/stretchr/testify/require"
)

func TestService_Login(t *testing.T) {
	t.Parallel()
	user := model.UserIdentity{ID: "u1", UserName: "jdoe", Email: "jdoe@example.com"}
	expires := now.Add(7 * 24 * time.Hour)
	req := model.LoginRequest{Email: "jdoe@example.com", Password: "Secret#1"}

	type mockBehavior func(m *mocks)

	tests := []struct {
		name         string
		mockBehavior mockBehavior
		want         model.AuthResponse
		wantMsg      string
	}{
		{
			name: "ok",
			mockBehavior: func(m *mocks) {
				m.identity.EXPECT().FindByEmail(gomock.Any(), req.Email).Return(user, nil)
				m.identity.EXPECT().CheckPassword(gomock.Any(), "u1", req.Password).Return(true, nil)
				m.identity.EXPECT().Roles(gomock.Any(), "u1").Return([]string{auth.RoleUser}, nil)
				m.tokens.EXPECT().Issue("u1", "jdoe", "jdoe@example.com", []string{auth.RoleUser}).
					Return("token", expires, nil)
			},
			want: model.AuthResponse{UserName: "jdoe", Email: "jdoe@example.com", AccessToken: "token", ExpiresAt: expires},
		},
		{
			name: "err. unknown email",
			mockBehavior: func(m *mocks) {
				m.identity.EXPECT().FindByEmail(gomock.Any(), req.Email).Return(model.UserIdentity{}, errs.ErrNotFound)
			},
			wantMsg: "Invalid email address.",
		},
		{
			name: "err. wrong password",
			mockBehavior: func(m *mocks) {
				m.identity.EXPECT().FindByEmail(gomock.Any(), req.Email).Return(user, nil)
				m.identity.EXPECT().CheckPassword(gomock.Any(), "u1", req.Password).Return(false, nil)
			},
			wantMsg: "Invalid password.",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, m := newService(t)
			tt.mockBehavior(m)

			got, err := svc.Login(context.Background(), req)
			if tt.wantMsg != "" {
				requireDomainErr(t, err, errs.ErrBusinessRule, tt.wantMsg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
