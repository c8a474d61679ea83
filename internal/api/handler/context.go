package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/secondbrain/bookmarks/internal/api/middleware"
	"github.com/secondbrain/bookmarks/internal/core/domain"
)

// ctxIdentity returns the caller injected by the Auth middleware. A missing
// identity means the route was wired without Auth; reject like a missing token.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	ident, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok || ident.ID.IsZero() {
		return domain.Identity{}, domain.ErrMissingToken
	}
	return ident, nil
}
