package service

import (
	"context"

	"github.com/BloggingApp/engagement-service/internal/config"
	"github.com/BloggingApp/engagement-service/internal/dto"
	"github.com/BloggingApp/engagement-service/internal/model"
	"github.com/BloggingApp/engagement-service/internal/repository"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Post interface {
	Create(ctx context.Context, author model.UserProfile, input dto.CreatePostRequest) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID, callerID uuid.UUID) error
}

type Engagement interface {
	Like(ctx context.Context, postID primitive.ObjectID, userID uuid.UUID) ([]model.Like, error)
	Unlike(ctx context.Context, postID primitive.ObjectID, userID uuid.UUID) ([]model.Like, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, author model.UserProfile, input dto.CreateCommentRequest) ([]model.Comment, error)
	DeleteComment(ctx context.Context, postID primitive.ObjectID, commentID primitive.ObjectID, callerID uuid.UUID) ([]model.Comment, error)
}

type UserProfile interface {
	CreateOrGet(ctx context.Context, id uuid.UUID, accessToken string) (*model.UserProfile, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	StartConsumeUpdates(ctx context.Context)
}

type MessageBroker interface {
	Publish(ctx context.Context, queue string, body []byte) error
	Consume(queue string) (<-chan amqp.Delivery, error)
}

type Service struct {
	Post
	Engagement
	UserProfile
}

func New(logger *zap.Logger, repo *repository.Repository, broker MessageBroker, cfg config.ServiceConfig) *Service {
	lock := newPostLock(logger, repo.Redis.Locker, cfg.Locks)

	return &Service{
		Post:        newPostService(logger, repo, broker, lock),
		Engagement:  newEngagementService(logger, repo, lock),
		UserProfile: newUserProfileService(logger, repo, broker, cfg.UserServiceAPI),
	}
}

func (s *Service) StartConsumeAll(ctx context.Context) {
	go s.UserProfile.StartConsumeUpdates(ctx)
}
