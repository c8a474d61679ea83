package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secondbrain/bookmarks/internal/core/domain"
)

// ContentRepository defines persistence for saved content.
// List methods return newest first.
type ContentRepository interface {
	Create(ctx context.Context, c *domain.Content) (*domain.Content, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Content, error)
	// Update overwrites title, link, type and updated_at of an existing record.
	Update(ctx context.Context, c *domain.Content) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Content, error)
	ListByType(ctx context.Context, t domain.ContentType) ([]*domain.Content, error)
}

// IdempotencyStore guards create requests that carry an Idempotency-Key.
type IdempotencyStore interface {
	// Reserve claims key for ownerID before anything is written. When the key
	// is already held, reserved is false and existing is the recorded content
	// id, or primitive.NilObjectID while the holder has not completed yet.
	Reserve(ctx context.Context, ownerID primitive.ObjectID, key string) (existing primitive.ObjectID, reserved bool, err error)
	// Complete records the content created under a reservation.
	Complete(ctx context.Context, ownerID primitive.ObjectID, key string, contentID primitive.ObjectID) error
	// Release drops a reservation whose create failed.
	Release(ctx context.Context, ownerID primitive.ObjectID, key string) error
}
