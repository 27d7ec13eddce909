package mongorepo

import (
	"context"

	"github.com/BloggingApp/engagement-service/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Post returns mongo.ErrNoDocuments whenever the addressed post does not exist.
type Post interface {
	Create(ctx context.Context, post model.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	UpdateEngagement(ctx context.Context, post model.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type MongoRepository struct {
	Post
}

func New(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		Post: newPostRepo(db.Collection(POSTS_COLLECTION)),
	}
}
