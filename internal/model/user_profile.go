package model

import "github.com/google/uuid"

type UserProfile struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
}

// Name is the label copied onto posts and comments. Users without a display
// name are shown by username.
func (u UserProfile) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
