package handler

import (
	"net/http"

	"github.com/google/uuid"
	_ "github.com/helcv/Valcon-Internship-Library-Project/docs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/model"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/auth"
	md "github.com/helcv/Valcon-Internship-Library-Project/pkg/middleware"
	"github.com/helcv/Valcon-Internship-Library-Project/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	librarySvc LibraryService
	tokens     md.TokenParser
	log        *zap.Logger
}

func New(librarySvc LibraryService, tokens md.TokenParser, log *zap.Logger) *Handler {
	return &Handler{
		librarySvc: librarySvc,
		tokens:     tokens,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.HTTPErrorHandler = md.ErrorHandler(e, h.log)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator(validate.WithEnum("genre", model.GenreNames()))
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	api.POST("/auth/login", h.Login)

	api = api.Group("", md.JwtAuthentication(h.tokens))
	librarian := md.RequireRoles(auth.RoleLibrarian)
	staff := md.RequireRoles(auth.RoleLibrarian, auth.RoleAdmin)
	admin := md.RequireRoles(auth.RoleAdmin)

	authors := api.Group("/authors", librarian)
	authors.POST("", h.CreateAuthor)
	authors.GET("", h.ListAuthors)
	authors.GET("/:id", h.GetAuthor)
	authors.PUT("/:id", h.UpdateAuthor)
	authors.DELETE("/:id", h.DeleteAuthor)

	books := api.Group("/books")
	books.POST("", h.CreateBook, librarian)
	books.GET("", h.ListBooks, librarian)
	books.GET("/:id", h.GetBook, librarian)
	books.PUT("/:id", h.UpdateBook, librarian)
	books.DELETE("/:id", h.DeleteBook, librarian)
	books.GET("/:id/history", h.GetBookRentHistory, staff)

	api.POST("/rent-book", h.RentBook, librarian)
	api.POST("/return-book", h.ReturnBook, librarian)

	api.POST("/librarians", h.RegisterLibrarian, admin)

	users := api.Group("/users")
	users.POST("", h.RegisterUser, librarian)
	users.GET("", h.ListUsers, staff)
	users.GET("/:id/history", h.GetUserRentHistory, librarian)

	profile := api.Group("/profile")
	profile.GET("", h.GetProfile)
	profile.PUT("/details", h.UpdateProfile)
	profile.PUT("/password", h.UpdatePassword)
	profile.GET("/history", h.GetProfileHistory)

	return e
}

// Health
// @Summary  Liveness probe
// @Tags     manage
// @Produce  plain
// @Success  200  {string}  string  "OK"
// @Router   /manage/health [get]
func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// ErrorResponse is the body of every 4xx reply: one message or a list.
type ErrorResponse struct {
	Message any `json:"message"`
}

// bind decodes and validates the request body into v.
func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body."})
	}
	if err := c.Validate(v); err != nil {
		var vErrs validate.Errors
		if errors.As(err, &vErrs) {
			return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Message: []string(vErrs)})
		}
		return err
	}
	return nil
}

// fail replies to a domain error with status. Other errors reach the
// error handler as a 500.
func fail(err error, status int) error {
	de, ok := errs.AsError(err)
	if !ok {
		return err
	}
	return echo.NewHTTPError(status, ErrorResponse{Message: de.Payload()})
}

// statusFor answers 404 for a missing resource and 400 for any other
// domain failure.
func statusFor(err error) int {
	if errors.Is(err, errs.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// pathID parses the :id of author and book routes. A malformed id does not
// match the route, hence 404.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.ErrNotFound
	}
	return id, nil
}
