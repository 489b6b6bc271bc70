package auth

import (
	"errors"
	"log/slog"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "bookmarkapi/internal/errors"
)

const (
	claimsContextKey = "auth.claims"
	guardErrorKey    = "auth.guard_error"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

// Guard rejects requests without a valid bearer token and binds the
// principal into the request context of those it lets through.
type Guard struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

// NewGuard creates a guard backed by verifier.
func NewGuard(verifier TokenVerifier, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{verifier: verifier, logger: logger}
}

// Middleware returns the echo middleware enforcing the guard.
func (g *Guard) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup:    "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:     claimsContextKey,
		ParseTokenFunc: g.parseToken,
		SuccessHandler: g.bindPrincipal,
		ErrorHandler:   g.reject,
	})
}

func (g *Guard) parseToken(c echo.Context, token string) (interface{}, error) {
	claims, err := g.verifier.Verify(token)
	if err != nil {
		c.Set(guardErrorKey, err)
		return nil, err
	}
	return claims, nil
}

func (g *Guard) bindPrincipal(c echo.Context) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	if !ok {
		return
	}
	p, err := PrincipalFromClaims(claims)
	if err != nil {
		return
	}
	req := c.Request()
	c.SetRequest(req.WithContext(WithPrincipal(req.Context(), p)))
}

func (g *Guard) reject(c echo.Context, err error) error {
	rejection := apperrors.ErrMissingCredentials
	if stored, ok := c.Get(guardErrorKey).(error); ok {
		err = stored
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind == apperrors.KindAuthentication {
		rejection = appErr
	}

	g.logger.DebugContext(c.Request().Context(), "guard rejected request",
		"path", c.Path(),
		"reason", rejection.Message,
	)
	return rejection
}
