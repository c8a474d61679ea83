package ports

import (
	"context"

	"github.com/secondbrain/bookmarks/internal/core/domain"
)

// AuthResult is returned by a successful signup or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
