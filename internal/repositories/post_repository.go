package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/okanv/likeledger/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PostRepository defines the interface for post document operations. Posts
// are keyed by owner address: one document per publishing account.
type PostRepository interface {
	CreatePost(ctx context.Context, doc *models.PostDocument) error
	GetPostByOwner(ctx context.Context, ownerAddress string) (*models.PostDocument, error)
	IncrementLikesCount(ctx context.Context, ownerAddress string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost inserts the document for a freshly published post
func (r *MongoPostRepository) CreatePost(ctx context.Context, doc *models.PostDocument) error {
	doc.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// GetPostByOwner retrieves the post document of an owner address
func (r *MongoPostRepository) GetPostByOwner(ctx context.Context, ownerAddress string) (*models.PostDocument, error) {
	var doc models.PostDocument
	err := r.collection.FindOne(ctx, bson.M{"owner_address": ownerAddress}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post not found")
		}
		return nil, err
	}
	return &doc, nil
}

// IncrementLikesCount increments the likes count of an owner's post document
func (r *MongoPostRepository) IncrementLikesCount(ctx context.Context, ownerAddress string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"owner_address": ownerAddress},
		bson.M{"$inc": bson.M{"likes_count": 1}})
	return err
}
