package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentType classifies a saved link.
type ContentType string

const (
	ContentYouTube  ContentType = "youtube"
	ContentTwitter  ContentType = "twitter"
	ContentDocument ContentType = "document"
	ContentOther    ContentType = "other"
)

// ContentTypes lists every accepted type, in the order they are documented.
var ContentTypes = []ContentType{ContentYouTube, ContentTwitter, ContentDocument, ContentOther}

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	for _, known := range ContentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Content is a saved link owned by exactly one user.
type Content struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Link      string             `json:"link" bson:"link"`
	Type      ContentType        `json:"type" bson:"type"`
	OwnerID   primitive.ObjectID `json:"ownerId" bson:"owner_id"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// OwnedBy reports whether id owns c.
func (c *Content) OwnedBy(id primitive.ObjectID) bool {
	return c.OwnerID == id
}
