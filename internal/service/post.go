package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/BloggingApp/engagement-service/internal/dto"
	"github.com/BloggingApp/engagement-service/internal/model"
	"github.com/BloggingApp/engagement-service/internal/rabbitmq"
	"github.com/BloggingApp/engagement-service/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
	broker MessageBroker
	lock   *postLock
}

func newPostService(logger *zap.Logger, repo *repository.Repository, broker MessageBroker, lock *postLock) Post {
	return &postService{
		logger: logger,
		repo:   repo,
		broker: broker,
		lock:   lock,
	}
}

func (s *postService) Create(ctx context.Context, author model.UserProfile, input dto.CreatePostRequest) (*model.Post, error) {
	post, err := model.NewPost(author, input.Text, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Mongo.Post.Create(ctx, *post); err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", author.ID.String(), err.Error())
		return nil, ErrInternal
	}

	s.publishPostCreated(ctx, post)

	return post, nil
}

func (s *postService) publishPostCreated(ctx context.Context, post *model.Post) {
	if s.broker == nil {
		return
	}

	body, err := json.Marshal(dto.MQPostCreatedMsg{
		PostID:    post.ID.Hex(),
		UserID:    post.AuthorID,
		CreatedAt: post.CreatedAt,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal post(%s) created message: %s", post.ID.Hex(), err.Error())
		return
	}

	if err := s.broker.Publish(ctx, rabbitmq.POST_CREATED_QUEUE, body); err != nil {
		s.logger.Sugar().Errorf("failed to publish post(%s) created message: %s", post.ID.Hex(), err.Error())
	}
}

func (s *postService) FindAll(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.repo.Mongo.Post.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts from mongodb: %s", err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *postService) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	return findPost(ctx, s.logger, s.repo, id)
}

// Delete removes the post together with its likes and comments. Only the
// post author may do that.
func (s *postService) Delete(ctx context.Context, id primitive.ObjectID, callerID uuid.UUID) error {
	return s.lock.withLock(ctx, id, func() error {
		post, err := findPost(ctx, s.logger, s.repo, id)
		if err != nil {
			return err
		}

		if !post.OwnedBy(callerID) {
			return ErrNotPostAuthor
		}

		if err := s.repo.Mongo.Post.Delete(ctx, id); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrPostNotFound
			}
			s.logger.Sugar().Errorf("failed to delete post(%s): %s", id.Hex(), err.Error())
			return ErrInternal
		}

		return nil
	})
}

func findPost(ctx context.Context, logger *zap.Logger, repo *repository.Repository, id primitive.ObjectID) (*model.Post, error) {
	post, err := repo.Mongo.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		logger.Sugar().Errorf("failed to find post(%s) from mongodb: %s", id.Hex(), err.Error())
		return nil, ErrInternal
	}

	return post, nil
}
