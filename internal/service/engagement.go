package service

import (
	"context"
	"errors"
	"time"

	"github.com/BloggingApp/engagement-service/internal/dto"
	"github.com/BloggingApp/engagement-service/internal/model"
	"github.com/BloggingApp/engagement-service/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type engagementService struct {
	logger *zap.Logger
	repo   *repository.Repository
	lock   *postLock
}

func newEngagementService(logger *zap.Logger, repo *repository.Repository, lock *postLock) Engagement {
	return &engagementService{
		logger: logger,
		repo:   repo,
		lock:   lock,
	}
}

func (s *engagementService) Like(ctx context.Context, postID primitive.ObjectID, userID uuid.UUID) ([]model.Like, error) {
	post, err := s.mutate(ctx, postID, func(p *model.Post) error {
		return p.Like(userID)
	})
	if err != nil {
		return nil, err
	}

	return post.Likes, nil
}

func (s *engagementService) Unlike(ctx context.Context, postID primitive.ObjectID, userID uuid.UUID) ([]model.Like, error) {
	post, err := s.mutate(ctx, postID, func(p *model.Post) error {
		return p.Unlike(userID)
	})
	if err != nil {
		return nil, err
	}

	return post.Likes, nil
}

func (s *engagementService) AddComment(ctx context.Context, postID primitive.ObjectID, author model.UserProfile, input dto.CreateCommentRequest) ([]model.Comment, error) {
	// reject bad input before taking the lock
	if err := model.ValidateText(input.Text); err != nil {
		return nil, err
	}

	post, err := s.mutate(ctx, postID, func(p *model.Post) error {
		_, err := p.AddComment(author, input.Text, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	return post.Comments, nil
}

func (s *engagementService) DeleteComment(ctx context.Context, postID primitive.ObjectID, commentID primitive.ObjectID, callerID uuid.UUID) ([]model.Comment, error) {
	post, err := s.mutate(ctx, postID, func(p *model.Post) error {
		return p.RemoveComment(commentID, callerID)
	})
	if err != nil {
		return nil, err
	}

	return post.Comments, nil
}

// mutate loads the post, applies fn and writes the result back while holding
// the post lock. The post is only returned once the write has succeeded.
func (s *engagementService) mutate(ctx context.Context, postID primitive.ObjectID, fn func(p *model.Post) error) (*model.Post, error) {
	var updated *model.Post

	err := s.lock.withLock(ctx, postID, func() error {
		post, err := findPost(ctx, s.logger, s.repo, postID)
		if err != nil {
			return err
		}

		if err := fn(post); err != nil {
			return err
		}

		if err := s.repo.Mongo.Post.UpdateEngagement(ctx, *post); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrPostNotFound
			}
			s.logger.Sugar().Errorf("failed to save engagement of post(%s): %s", postID.Hex(), err.Error())
			return ErrInternal
		}

		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
