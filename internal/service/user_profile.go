package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/BloggingApp/engagement-service/internal/model"
	"github.com/BloggingApp/engagement-service/internal/rabbitmq"
	"github.com/BloggingApp/engagement-service/internal/repository"
	"github.com/BloggingApp/engagement-service/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const USER_SERVICE_TIMEOUT = 5 * time.Second

type userProfileService struct {
	logger         *zap.Logger
	repo           *repository.Repository
	broker         MessageBroker
	userServiceAPI string
	httpClient     *http.Client
}

func newUserProfileService(logger *zap.Logger, repo *repository.Repository, broker MessageBroker, userServiceAPI string) UserProfile {
	return &userProfileService{
		logger:         logger,
		repo:           repo,
		broker:         broker,
		userServiceAPI: userServiceAPI,
		httpClient:     &http.Client{Timeout: USER_SERVICE_TIMEOUT},
	}
}

// CreateOrGet returns the stored profile of id, fetching it from the user
// service on first sight. accessToken is forwarded as is.
func (s *userProfileService) CreateOrGet(ctx context.Context, id uuid.UUID, accessToken string) (*model.UserProfile, error) {
	profile, err := s.repo.Postgres.UserProfile.FindByID(ctx, id)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Sugar().Errorf("failed to get user profile(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	fetched, err := s.fetchUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if fetched.ID != id {
		s.logger.Sugar().Errorf("user-service returned user(%s) for token of user(%s)", fetched.ID.String(), id.String())
		return nil, ErrUserNotFound
	}

	if err := s.repo.Postgres.UserProfile.Create(ctx, *fetched); err != nil {
		s.logger.Sugar().Errorf("failed to create user profile(%s): %s", fetched.ID.String(), err.Error())
		return nil, ErrInternal
	}

	return fetched, nil
}

func (s *userProfileService) fetchUser(ctx context.Context, accessToken string) (*model.UserProfile, error) {
	if s.userServiceAPI == "" {
		s.logger.Error("user-service api is not configured")
		return nil, ErrUserNotFound
	}

	endpoint := "/users/@me"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userServiceAPI+endpoint, nil)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create request to user-service: %s", err.Error())
		return nil, ErrInternal
	}

	req.Header.Add("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Sugar().Errorf("failed to send request to user-service: %s", err.Error())
		return nil, ErrInternal
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Sugar().Errorf("failed to read response body from user-service: %s", err.Error())
		return nil, ErrInternal
	}

	if resp.StatusCode != http.StatusOK {
		var bodyJSON map[string]interface{}
		if err := json.Unmarshal(body, &bodyJSON); err != nil {
			s.logger.Sugar().Errorf("user-service endpoint(%s) answered %d", endpoint, resp.StatusCode)
		} else {
			s.logger.Sugar().Errorf("ERROR from user-service endpoint(%s), details: %v", endpoint, bodyJSON["details"])
		}
		return nil, ErrUserNotFound
	}

	var user model.UserProfile
	if err := json.Unmarshal(body, &user); err != nil {
		s.logger.Sugar().Errorf("failed to decode user response body from user-service: %s", err.Error())
		return nil, ErrInternal
	}

	return &user, nil
}

func (s *userProfileService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if err := s.repo.Postgres.UserProfile.Update(ctx, id, updates); err != nil {
		if errors.Is(err, postgres.ErrFieldsNotAllowedToUpdate) || errors.Is(err, postgres.ErrInvalidFieldValue) {
			return ErrInvalidProfileUpdate
		}
		s.logger.Sugar().Errorf("failed to update user profile(%s): %s", id.String(), err.Error())
		return ErrInternal
	}

	return nil
}

// StartConsumeUpdates applies profile changes published by the user service
// until ctx is done or the delivery channel closes.
func (s *userProfileService) StartConsumeUpdates(ctx context.Context) {
	if s.broker == nil {
		return
	}

	queue := rabbitmq.USER_INFO_UPDATED_QUEUE
	msgs, err := s.broker.Consume(queue)
	if err != nil {
		s.logger.Sugar().Errorf("failed to start consume updates from queue(%s): %s", queue, err.Error())
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				s.logger.Sugar().Warnf("queue(%s) delivery channel closed", queue)
				return
			}
			s.handleUserUpdate(ctx, msg)
		}
	}
}

func (s *userProfileService) handleUserUpdate(ctx context.Context, msg amqp.Delivery) {
	queue := rabbitmq.USER_INFO_UPDATED_QUEUE

	var data map[string]interface{}
	if err := json.Unmarshal(msg.Body, &data); err != nil {
		s.logger.Sugar().Errorf("failed to unmarshal json in queue(%s): %s", queue, err.Error())
		msg.Nack(false, false)
		return
	}

	userIDString, exists := data["user_id"].(string)
	if !exists {
		s.logger.Sugar().Errorf("'user_id' field is not provided in queue(%s)", queue)
		msg.Nack(false, false)
		return
	}
	userID, err := uuid.Parse(userIDString)
	if err != nil {
		s.logger.Sugar().Errorf("provided an invalid user_id(%s) in queue(%s)", userIDString, queue)
		msg.Nack(false, false)
		return
	}

	delete(data, "user_id")

	if err := s.Update(ctx, userID, data); err != nil {
		if errors.Is(err, ErrInvalidProfileUpdate) {
			s.logger.Sugar().Errorf("rejected update of user profile(%s): %s", userID.String(), err.Error())
			msg.Nack(false, false)
			return
		}
		msg.Nack(false, true)
		return
	}

	msg.Ack(false)
}
