package service

import "errors"

var (
	ErrInternal             = errors.New("internal server error")
	ErrPostNotFound         = errors.New("post not found")
	ErrNotPostAuthor        = errors.New("user is not the post author")
	ErrUserNotFound         = errors.New("user not found")
	ErrPostBusy             = errors.New("post is being modified, try again")
	ErrInvalidProfileUpdate = errors.New("invalid profile update")
)
