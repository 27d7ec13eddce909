package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID                primitive.ObjectID `json:"id"`
	AuthorID          uuid.UUID          `json:"author_id"`
	AuthorDisplayName string             `json:"author_display_name"`
	AuthorAvatarURL   string             `json:"author_avatar_url"`
	Text              string             `json:"text"`
	Likes             []Like             `json:"likes"`
	Comments          []Comment          `json:"comments"`
	CreatedAt         time.Time          `json:"created_at"`
}

type Like struct {
	UserID uuid.UUID `json:"user_id"`
}

// NewPost builds a post owned by author. The author's name and avatar are
// copied as they are now and never refreshed.
func NewPost(author UserProfile, text string, now time.Time) (*Post, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	return &Post{
		ID:                primitive.NewObjectID(),
		AuthorID:          author.ID,
		AuthorDisplayName: author.Name(),
		AuthorAvatarURL:   author.AvatarURL,
		Text:              text,
		Likes:             []Like{},
		Comments:          []Comment{},
		CreatedAt:         now,
	}, nil
}

// ValidateText rejects empty and whitespace-only post or comment text.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	return nil
}

func (p *Post) OwnedBy(userID uuid.UUID) bool {
	return p.AuthorID == userID
}
