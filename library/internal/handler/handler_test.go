package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/handler"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/helcv/Valcon-Internship-Library-Project/library/internal/handler/mocks"
)

const internalBody = `{"status":500,"type":"Server error","detail":"An Internal server error"}`

var tokens = auth.NewTokenManager(auth.Config{Key: "test-signing-key", TTL: time.Hour})

func bearer(t *testing.T, userID string, roles ...string) string {
	t.Helper()
	token, _, err := tokens.Issue(userID, "jdoe", "jdoe@example.com", roles)
	require.NoError(t, err)
	return "Bearer " + token
}

type request struct {
	method, target, body, authorization string
}

func serve(t *testing.T, mockBehavior func(r *service_mocks.MockLibraryService), req request) *httptest.ResponseRecorder {
	t.Helper()
	c := gomock.NewController(t)
	svc := service_mocks.NewMockLibraryService(c)
	mockBehavior(svc)

	h := handler.New(svc, tokens, zap.NewExample().Named("test"))
	e := h.NewRouter()

	var body io.Reader = http.NoBody
	if req.body != "" {
		body = strings.NewReader(req.body)
	}
	r := httptest.NewRequest(req.method, req.target, body)
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if req.authorization != "" {
		r.Header.Set(echo.HeaderAuthorization, req.authorization)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	return w
}

func TestHandler_CreateBook(t *testing.T) {
	t.Parallel()
	authorID := uuid.MustParse("83575e12-7ce0-48ee-9931-51919ff3c9ee")
	bookID := "f7cdc58f-2caf-4b15-9727-f89dcc629b27"
	const valid = `{"authorIds":["83575e12-7ce0-48ee-9931-51919ff3c9ee"],"title":"Hamlet","isbn":"9780141396507","genre":"Drama","numberOfPages":342,"publishingYear":1603,"totalCopies":2}`

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLibraryService)

	tests := []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: valid,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().
					CreateBook(gomock.Any(), model.BookRequest{
						AuthorIDs:      []uuid.UUID{authorID},
						Title:          "Hamlet",
						ISBN:           "9780141396507",
						Genre:          "Drama",
						NumberOfPages:  342,
						PublishingYear: 1603,
						TotalCopies:    2,
					}).
					Return(model.Created{ID: bookID, Message: "Book successfully created!"}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","message":"Book successfully created!"}`,
			},
		},
		{
			name:         "err. request rules",
			body:         `{"authorIds":["83575e12-7ce0-48ee-9931-51919ff3c9ee"],"title":"","isbn":"12345","genre":"Cooking","numberOfPages":0,"publishingYear":1603,"totalCopies":2}`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":["The title field is required.","Invalid ISBN format.","Invalid genre specified.","The field numberOfPages must be at least 1."]}`,
			},
		},
		{
			name:         "err. malformed body",
			body:         `{"title":`,
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Invalid request body."}`,
			},
		},
		{
			name: "err. domain",
			body: valid,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().CreateBook(gomock.Any(), gomock.Any()).
					Return(model.Created{}, errs.Validation("Book with provided ISBN already exists."))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Book with provided ISBN already exists."}`,
			},
		},
		{
			name: "err. internal",
			body: valid,
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().CreateBook(gomock.Any(), gomock.Any()).
					Return(model.Created{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: internalBody,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, tt.mockBehavior, request{
				method:        http.MethodPost,
				target:        "/api/v1/books",
				body:          tt.body,
				authorization: bearer(t, "lib-1", auth.RoleLibrarian),
			})
			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetBook(t *testing.T) {
	t.Parallel()
	id := uuid.MustParse("f7cdc58f-2caf-4b15-9727-f89dcc629b27")

	tests := []struct {
		name         string
		target       string
		mockBehavior func(r *service_mocks.MockLibraryService)
		expectedCode int
		expectedBody string
	}{
		{
			name:   "ok",
			target: "/api/v1/books/" + id.String(),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().GetBook(gomock.Any(), id).Return(model.BookResponse{
					ID:      id,
					Title:   "Hamlet",
					ISBN:    "9780141396507",
					Genre:   model.GenreDrama,
					Authors: []model.BookAuthor{},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","title":"Hamlet","isbn":"9780141396507","genre":"Drama","numberOfPages":0,"publishingYear":0,"totalCopies":0,"authors":[]}`,
		},
		{
			name:   "err. not found",
			target: "/api/v1/books/" + id.String(),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().GetBook(gomock.Any(), id).Return(model.BookResponse{}, errs.NotFound("Book does not exist."))
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Book does not exist."}`,
		},
		{
			name:         "err. malformed id",
			target:       "/api/v1/books/42",
			mockBehavior: func(r *service_mocks.MockLibraryService) {},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Not Found"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, tt.mockBehavior, request{
				method:        http.MethodGet,
				target:        tt.target,
				authorization: bearer(t, "lib-1", auth.RoleLibrarian),
			})
			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	t.Parallel()
	id := uuid.MustParse("f7cdc58f-2caf-4b15-9727-f89dcc629b27")

	type mockBehavior func(r *service_mocks.MockLibraryService)

	tests := []struct {
		name         string
		target       string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name:   "ok. book",
			target: "/api/v1/books/" + id.String(),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().DeleteBook(gomock.Any(), id).Return(model.Message{Message: "Book successfully deleted."}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Book successfully deleted."}`,
		},
		{
			name:   "err. book not found",
			target: "/api/v1/books/" + id.String(),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().DeleteBook(gomock.Any(), id).Return(model.Message{}, errs.NotFound("Book does not exist."))
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Book does not exist."}`,
		},
		{
			name:   "err. book not saved",
			target: "/api/v1/books/" + id.String(),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().DeleteBook(gomock.Any(), id).Return(model.Message{}, errs.Persistence("Failed to delete book."))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Failed to delete book."}`,
		},
		{
			name:   "err. author not found",
			target: "/api/v1/authors/" + id.String(),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().DeleteAuthor(gomock.Any(), id).Return(model.Message{}, errs.NotFound("Author does not exist."))
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"Author does not exist."}`,
		},
		{
			name:   "err. author not saved",
			target: "/api/v1/authors/" + id.String(),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().DeleteAuthor(gomock.Any(), id).Return(model.Message{}, errs.Persistence("Failed to delete author."))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Failed to delete author."}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, tt.mockBehavior, request{
				method:        http.MethodDelete,
				target:        tt.target,
				authorization: bearer(t, "lib-1", auth.RoleLibrarian),
			})
			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_RentBook(t *testing.T) {
	t.Parallel()
	bookID := uuid.MustParse("f7cdc58f-2caf-4b15-9727-f89dcc629b27")
	rented := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)

	w := serve(t, func(r *service_mocks.MockLibraryService) {
		r.EXPECT().
			RentBook(gomock.Any(), model.RentRequest{BookID: bookID, UserID: "u1", DateRented: &rented}).
			Return(model.Message{}, errs.BusinessRule("Book is not available."))
	}, request{
		method:        http.MethodPost,
		target:        "/api/v1/rent-book",
		body:          `{"bookId":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","userId":"u1","dateRented":"2024-05-01T10:00:00Z"}`,
		authorization: bearer(t, "lib-1", auth.RoleLibrarian),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `{"message":"Book is not available."}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_RegisterUser_Messages(t *testing.T) {
	t.Parallel()
	w := serve(t, func(r *service_mocks.MockLibraryService) {
		r.EXPECT().RegisterUser(gomock.Any(), gomock.Any(), auth.RoleUser).
			Return(model.Created{}, errs.Validation("Username 'jdoe' is already taken.", "Email 'jdoe@example.com' is already taken."))
	}, request{
		method:        http.MethodPost,
		target:        "/api/v1/users",
		body:          `{"userName":"jdoe","email":"jdoe@example.com","password":"Secret#1","name":"John","lastName":"Doe","dateOfBirth":"1990-01-02T00:00:00Z"}`,
		authorization: bearer(t, "lib-1", auth.RoleLibrarian),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, `{"message":["Username 'jdoe' is already taken.","Email 'jdoe@example.com' is already taken."]}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_Access(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		target        string
		authorization string
		mockBehavior  func(r *service_mocks.MockLibraryService)
		expectedCode  int
		expectedBody  string
	}{
		{
			name:          "no header",
			method:        http.MethodGet,
			target:        "/api/v1/books",
			mockBehavior:  func(r *service_mocks.MockLibraryService) {},
			expectedCode:  http.StatusUnauthorized,
			expectedBody:  `{"message":"No Authorization Header"}`,
		},
		{
			name:          "garbage token",
			method:        http.MethodGet,
			target:        "/api/v1/books",
			authorization: "Bearer abc.def.ghi",
			mockBehavior:  func(r *service_mocks.MockLibraryService) {},
			expectedCode:  http.StatusUnauthorized,
			expectedBody:  `{"message":"JwtAccessDenied"}`,
		},
		{
			name:          "member cannot list books",
			method:        http.MethodGet,
			target:        "/api/v1/books",
			authorization: bearer(t, "u1", auth.RoleUser),
			mockBehavior:  func(r *service_mocks.MockLibraryService) {},
			expectedCode:  http.StatusForbidden,
			expectedBody:  `{"message":"Forbidden"}`,
		},
		{
			name:          "librarian cannot add librarians",
			method:        http.MethodPost,
			target:        "/api/v1/librarians",
			authorization: bearer(t, "lib-1", auth.RoleLibrarian),
			mockBehavior:  func(r *service_mocks.MockLibraryService) {},
			expectedCode:  http.StatusForbidden,
			expectedBody:  `{"message":"Forbidden"}`,
		},
		{
			name:          "admin reads book history",
			method:        http.MethodGet,
			target:        "/api/v1/books/f7cdc58f-2caf-4b15-9727-f89dcc629b27/history",
			authorization: bearer(t, "admin-1", auth.RoleAdmin),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().GetRentHistoryForBook(gomock.Any(), uuid.MustParse("f7cdc58f-2caf-4b15-9727-f89dcc629b27")).
					Return([]model.BookRentEntry{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:          "profile reads the caller",
			method:        http.MethodGet,
			target:        "/api/v1/profile",
			authorization: bearer(t, "u1", auth.RoleUser),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().GetProfile(gomock.Any(), "u1").Return(model.UserProfile{ID: "u1", UserName: "jdoe"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":"u1","userName":"jdoe","name":"","lastName":"","email":"","dateOfBirth":"0001-01-01T00:00:00Z"}`,
		},
		{
			name:          "profile history reads the caller",
			method:        http.MethodGet,
			target:        "/api/v1/profile/history",
			authorization: bearer(t, "u1", auth.RoleUser),
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().GetUserRentHistory(gomock.Any(), "u1").Return([]model.BookRentHistory{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:          "health is public",
			method:        http.MethodGet,
			target:        "/manage/health",
			mockBehavior:  func(r *service_mocks.MockLibraryService) {},
			expectedCode:  http.StatusOK,
			expectedBody:  `OK`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, tt.mockBehavior, request{
				method:        tt.method,
				target:        tt.target,
				authorization: tt.authorization,
			})
			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()
	expires := time.Date(2024, time.May, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		mockBehavior func(r *service_mocks.MockLibraryService)
		expectedCode int
		expectedBody string
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Login(gomock.Any(), model.LoginRequest{Email: "jdoe@example.com", Password: "Secret#1"}).
					Return(model.AuthResponse{UserName: "jdoe", Email: "jdoe@example.com", AccessToken: "tkn", ExpiresAt: expires}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"userName":"jdoe","email":"jdoe@example.com","accessToken":"tkn","expiresAt":"2024-05-28T12:00:00Z"}`,
		},
		{
			name: "err. wrong password",
			mockBehavior: func(r *service_mocks.MockLibraryService) {
				r.EXPECT().Login(gomock.Any(), gomock.Any()).Return(model.AuthResponse{}, errs.BusinessRule("Invalid password."))
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"Invalid password."}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := serve(t, tt.mockBehavior, request{
				method: http.MethodPost,
				target: "/api/v1/auth/login",
				body:   `{"email":"jdoe@example.com","password":"Secret#1"}`,
			})
			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
