package middleware

import (
	"bytes"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/secondbrain/bookmarks/internal/core/domain"
)

// ValidateBody binds the request body into a fresh T and runs the echo
// validator on it. On failure the downstream handler is not invoked; on
// success the body is restored so the handler reads it unchanged.
func ValidateBody[T any]() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			var body []byte
			if req.Body != nil {
				b, err := io.ReadAll(req.Body)
				_ = req.Body.Close()
				if err != nil {
					return &domain.ValidationError{Fields: []string{"request body could not be read"}}
				}
				body = b
			}
			restore := func() { req.Body = io.NopCloser(bytes.NewReader(body)) }

			restore()
			var payload T
			if err := c.Bind(&payload); err != nil {
				return &domain.ValidationError{Fields: []string{"request body must be a JSON object"}}
			}
			if err := c.Validate(&payload); err != nil {
				return err
			}

			restore()
			return next(c)
		}
	}
}
