package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/secondbrain/bookmarks/internal/core/domain"
)

const collectionContents = "contents"

// ContentRepository implements ports.ContentRepository using MongoDB.
type ContentRepository struct {
	col *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{col: db.Collection(collectionContents)}
}

// Create inserts a new content document and returns it with its ID.
func (r *ContentRepository) Create(ctx context.Context, c *domain.Content) (*domain.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *c
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert content: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return &doc, nil
}

func (r *ContentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Content
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("find content: %w", err)
	}
	return &c, nil
}

// Update overwrites the mutable fields. The owner is part of the filter so a
// record can never be rewritten under another user's ID.
func (r *ContentRepository) Update(ctx context.Context, c *domain.Content) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": c.ID, "owner_id": c.OwnerID}
	update := bson.M{"$set": bson.M{
		"title":      c.Title,
		"link":       c.Link,
		"type":       c.Type,
		"updated_at": c.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

func (r *ContentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

func (r *ContentRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Content, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}

func (r *ContentRepository) ListByType(ctx context.Context, t domain.ContentType) ([]*domain.Content, error) {
	return r.list(ctx, bson.M{"type": t})
}

// list returns matches newest first. _id breaks ties between documents
// created within the same millisecond.
func (r *ContentRepository) list(ctx context.Context, filter bson.M) ([]*domain.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*domain.Content, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the indexes backing both list queries.
func (r *ContentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("contents indexes: %w", err)
	}
	return nil
}
