package postgres

import (
	"context"

	"github.com/BloggingApp/engagement-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserProfile returns pgx.ErrNoRows from FindByID for unknown users.
type UserProfile interface {
	Create(ctx context.Context, profile model.UserProfile) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserProfile, error)
}

type PostgresRepository struct {
	UserProfile
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		UserProfile: newUserProfileRepo(db),
	}
}
