package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secondbrain/bookmarks/internal/core/domain"
)

// UserRepository defines persistence for accounts.
type UserRepository interface {
	// FindByEmail expects an already normalized email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// Create returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
