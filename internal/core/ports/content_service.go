package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secondbrain/bookmarks/internal/core/domain"
)

// ContentInput carries the mutable fields of a content record.
type ContentInput struct {
	Title string
	Link  string
	Type  domain.ContentType
}

// CreateContentInput adds the optional Idempotency-Key header value.
type CreateContentInput struct {
	ContentInput
	IdempotencyKey string
}

// ContentService defines owner-scoped operations on saved content.
type ContentService interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, input CreateContentInput) (*domain.Content, error)
	Edit(ctx context.Context, ownerID, contentID primitive.ObjectID, input ContentInput) (*domain.Content, error)
	Remove(ctx context.Context, ownerID, contentID primitive.ObjectID) error
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Content, error)
	ListByType(ctx context.Context, t domain.ContentType) ([]*domain.Content, error)
}
