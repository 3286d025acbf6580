package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostDocument is the MongoDB read model of a published post. The in-process
// ledger registry stays authoritative; documents are written behind it so
// posts survive restarts and can be inspected without touching the registry.
type PostDocument struct {
	ID           primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	OwnerAddress string             `json:"owner" bson:"owner_address"`
	PostID       uint64             `json:"post_id" bson:"post_id"`
	LikesCount   uint64             `json:"likes_count" bson:"likes_count"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

// CreatePostRequest defines the request body for publishing a post. The id is
// caller-chosen and purely informational; no uniqueness is enforced across
// accounts.
type CreatePostRequest struct {
	PostID uint64 `json:"post_id" validate:"required"`
}
