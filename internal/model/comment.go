package model

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID                primitive.ObjectID `json:"id"`
	AuthorID          uuid.UUID          `json:"author_id"`
	AuthorDisplayName string             `json:"author_display_name"`
	AuthorAvatarURL   string             `json:"author_avatar_url"`
	Text              string             `json:"text"`
	CreatedAt         time.Time          `json:"created_at"`
}

func NewComment(author UserProfile, text string, now time.Time) (*Comment, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	return &Comment{
		ID:                primitive.NewObjectID(),
		AuthorID:          author.ID,
		AuthorDisplayName: author.Name(),
		AuthorAvatarURL:   author.AvatarURL,
		Text:              text,
		CreatedAt:         now,
	}, nil
}
