package mongorepo

import (
	"context"
	"fmt"
	"time"

	"github.com/BloggingApp/engagement-service/internal/model"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostDocument is the stored shape of a post. Likes and comments live inside
// the post document; they have no collection of their own.
type PostDocument struct {
	ID                primitive.ObjectID `bson:"_id"`
	AuthorID          string             `bson:"author_id"`
	AuthorDisplayName string             `bson:"author_display_name"`
	AuthorAvatarURL   string             `bson:"author_avatar_url"`
	Text              string             `bson:"text"`
	Likes             []LikeDocument     `bson:"likes"`
	Comments          []CommentDocument  `bson:"comments"`
	CreatedAt         time.Time          `bson:"created_at"`
}

type LikeDocument struct {
	UserID string `bson:"user_id"`
}

type CommentDocument struct {
	ID                primitive.ObjectID `bson:"_id"`
	AuthorID          string             `bson:"author_id"`
	AuthorDisplayName string             `bson:"author_display_name"`
	AuthorAvatarURL   string             `bson:"author_avatar_url"`
	Text              string             `bson:"text"`
	CreatedAt         time.Time          `bson:"created_at"`
}

type postRepo struct {
	coll *mongo.Collection
}

func newPostRepo(coll *mongo.Collection) Post {
	return &postRepo{
		coll: coll,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) error {
	_, err := r.coll.InsertOne(ctx, ModelToDocument(post))
	return err
}

func (r *postRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var doc PostDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, err
	}

	return DocumentToModel(doc)
}

func (r *postRepo) FindAll(ctx context.Context) ([]*model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []*model.Post{}
	for cursor.Next(ctx) {
		var doc PostDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}

		post, err := DocumentToModel(doc)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// UpdateEngagement overwrites the likes and comments of an existing post.
func (r *postRepo) UpdateEngagement(ctx context.Context, post model.Post) error {
	doc := ModelToDocument(post)
	update := bson.M{
		"$set": bson.M{
			"likes":    doc.Likes,
			"comments": doc.Comments,
		},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": post.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *postRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *postRepo) EnsureIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	}

	if _, err := r.coll.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}

	return nil
}

func ModelToDocument(post model.Post) PostDocument {
	likes := make([]LikeDocument, 0, len(post.Likes))
	for _, like := range post.Likes {
		likes = append(likes, LikeDocument{UserID: like.UserID.String()})
	}

	comments := make([]CommentDocument, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, CommentDocument{
			ID:                comment.ID,
			AuthorID:          comment.AuthorID.String(),
			AuthorDisplayName: comment.AuthorDisplayName,
			AuthorAvatarURL:   comment.AuthorAvatarURL,
			Text:              comment.Text,
			CreatedAt:         comment.CreatedAt,
		})
	}

	return PostDocument{
		ID:                post.ID,
		AuthorID:          post.AuthorID.String(),
		AuthorDisplayName: post.AuthorDisplayName,
		AuthorAvatarURL:   post.AuthorAvatarURL,
		Text:              post.Text,
		Likes:             likes,
		Comments:          comments,
		CreatedAt:         post.CreatedAt,
	}
}

func DocumentToModel(doc PostDocument) (*model.Post, error) {
	authorID, err := uuid.Parse(doc.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author ID in post(%s): %w", doc.ID.Hex(), err)
	}

	likes := make([]model.Like, 0, len(doc.Likes))
	for _, like := range doc.Likes {
		userID, err := uuid.Parse(like.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid like user ID in post(%s): %w", doc.ID.Hex(), err)
		}
		likes = append(likes, model.Like{UserID: userID})
	}

	comments := make([]model.Comment, 0, len(doc.Comments))
	for _, c := range doc.Comments {
		commentAuthorID, err := uuid.Parse(c.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("invalid author ID in comment(%s): %w", c.ID.Hex(), err)
		}
		comments = append(comments, model.Comment{
			ID:                c.ID,
			AuthorID:          commentAuthorID,
			AuthorDisplayName: c.AuthorDisplayName,
			AuthorAvatarURL:   c.AuthorAvatarURL,
			Text:              c.Text,
			CreatedAt:         c.CreatedAt,
		})
	}

	return &model.Post{
		ID:                doc.ID,
		AuthorID:          authorID,
		AuthorDisplayName: doc.AuthorDisplayName,
		AuthorAvatarURL:   doc.AuthorAvatarURL,
		Text:              doc.Text,
		Likes:             likes,
		Comments:          comments,
		CreatedAt:         doc.CreatedAt,
	}, nil
}
