package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bookmarkapi/internal/auth"
	"bookmarkapi/internal/errors"
	"bookmarkapi/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	logger *slog.Logger,
	guard *auth.Guard,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	bookmarkHandler *handler.BookmarkHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/signUp", authHandler.SignUp)
	e.POST("/auth/signIn", authHandler.SignIn)

	// Secured routes (require bearer token)
	users := e.Group("/users", guard.Middleware())
	users.GET("/me", userHandler.GetMe)
	users.PATCH("", userHandler.EditUser)

	bookmarks := e.Group("/bookmarks", guard.Middleware())
	bookmarks.GET("", bookmarkHandler.ListBookmarks)
	bookmarks.POST("", bookmarkHandler.CreateBookmark)
	bookmarks.GET("/:id", bookmarkHandler.GetBookmark)
	bookmarks.PATCH("/:id", bookmarkHandler.EditBookmark)
	bookmarks.DELETE("/:id", bookmarkHandler.DeleteBookmark)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ErrorHandler renders every error as an errors.ErrorResponse. Internal
// failures are logged and answered without detail.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var status int
		var body errors.ErrorResponse
		if he, ok := err.(*echo.HTTPError); ok {
			// Router-level errors: 404, 405, Recover's 500.
			status = he.Code
			body = errors.ErrorResponse{Error: http.StatusText(he.Code), Code: "HTTP_ERROR"}
			if status >= http.StatusInternalServerError {
				logger.ErrorContext(c.Request().Context(), "request failed", requestAttrs(c, err)...)
				body.Code = "INTERNAL_ERROR"
			}
		} else {
			httpErr := errors.MapErrorToHTTP(err)
			status = httpErr.StatusCode
			body = httpErr.ToErrorResponse()
			if status >= http.StatusInternalServerError {
				logger.ErrorContext(c.Request().Context(), "request failed", requestAttrs(c, err)...)
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", err)
		}
	}
}

func requestAttrs(c echo.Context, err error) []any {
	return []any{
		"method", c.Request().Method,
		"path", c.Path(),
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"error", err,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.LogAttrs(context.Background(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}
