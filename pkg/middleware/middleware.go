package middleware

import (
	"net/http"
	"strings"

	"github.com/helcv/Valcon-Internship-Library-Project/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

const (
	AuthorizationHeader = "Authorization"
	bearer              = "Bearer "
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

func JwtAuthentication(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authorization := c.Request().Header.Get(AuthorizationHeader)
			if authorization == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No Authorization Header")
			}
			if !strings.HasPrefix(authorization, bearer) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization Header")
			}
			claims, err := tokens.Parse(strings.TrimPrefix(authorization, bearer))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "JwtAccessDenied")
			}

			req := c.Request()
			c.SetRequest(req.WithContext(auth.SetAuthContext(req.Context(), claims)))
			return next(c)
		}
	}
}

// RequireRoles lets the request through when the caller holds any of roles.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := auth.FromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "JwtAccessDenied")
			}
			if !claims.HasRole(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}

func NewRateLimiter(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}

func RequestLoggerConfig(log *zap.Logger) middleware.RequestLoggerConfig {
	log = log.Named("echo")
	c := middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
	return c
}

type ServerError struct {
	Status int    `json:"status"`
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

// ErrorHandler renders echo.HTTPError as usual and hides everything else
// behind a generic 500 body.
func ErrorHandler(e *echo.Echo, log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			e.DefaultHTTPErrorHandler(he, c)
			return
		}
		log.Error("unhandled error",
			zap.Error(err),
			zap.String("URI", c.Request().RequestURI),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)))

		if err = c.JSON(http.StatusInternalServerError, ServerError{
			Status: http.StatusInternalServerError,
			Type:   "Server error",
			Detail: "An Internal server error",
		}); err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}
