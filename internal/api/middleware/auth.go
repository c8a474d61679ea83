package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/secondbrain/bookmarks/internal/core/domain"
)

// IdentityKey is the echo context key holding the authenticated domain.Identity.
const IdentityKey = "identity"

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	Parse(raw string) (domain.Identity, error)
}

// Auth validates the bearer token and injects the caller into the context.
// A missing or malformed header fails with domain.ErrMissingToken, a token
// that does not verify with domain.ErrInvalidToken.
func Auth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrMissingToken
			}

			scheme, raw, ok := strings.Cut(authHeader, " ")
			raw = strings.TrimSpace(raw)
			if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
				return domain.ErrMissingToken
			}

			ident, err := tokens.Parse(raw)
			if err != nil {
				return domain.ErrInvalidToken
			}

			c.Set(IdentityKey, ident)
			return next(c)
		}
	}
}
