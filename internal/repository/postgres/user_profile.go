package postgres

import (
	"context"
	"strconv"

	"github.com/BloggingApp/engagement-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var allowedProfileFields = map[string]struct{}{
	"username":     {},
	"display_name": {},
	"avatar_url":   {},
}

type userProfileRepo struct {
	db *pgxpool.Pool
}

func newUserProfileRepo(db *pgxpool.Pool) UserProfile {
	return &userProfileRepo{
		db: db,
	}
}

func (r *userProfileRepo) Create(ctx context.Context, profile model.UserProfile) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO user_profiles(id, username, display_name, avatar_url) VALUES($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET username = $2, display_name = $3, avatar_url = $4`,
		profile.ID,
		profile.Username,
		profile.DisplayName,
		profile.AvatarURL,
	)
	return err
}

func (r *userProfileRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	updates, err := NormalizeProfileUpdates(updates)
	if err != nil {
		return err
	}

	query := "UPDATE user_profiles SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query = query[:len(query)-2] + " WHERE id = $" + strconv.Itoa(i)
	args = append(args, id)

	_, err = r.db.Exec(ctx, query, args...)
	return err
}

// NormalizeProfileUpdates checks an update against the profile columns. All
// columns are NOT NULL text, so null becomes "" and any other non-string value
// is rejected.
func NormalizeProfileUpdates(updates map[string]interface{}) (map[string]interface{}, error) {
	normalized := make(map[string]interface{}, len(updates))

	for field, value := range updates {
		if _, ok := allowedProfileFields[field]; !ok {
			return nil, ErrFieldsNotAllowedToUpdate
		}

		switch v := value.(type) {
		case nil:
			normalized[field] = ""
		case string:
			normalized[field] = v
		default:
			return nil, ErrInvalidFieldValue
		}
	}

	return normalized, nil
}

func (r *userProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.db.QueryRow(
		ctx,
		"SELECT p.id, p.username, p.display_name, p.avatar_url FROM user_profiles p WHERE p.id = $1",
		id,
	).Scan(
		&profile.ID,
		&profile.Username,
		&profile.DisplayName,
		&profile.AvatarURL,
	); err != nil {
		return nil, err
	}

	return &profile, nil
}
