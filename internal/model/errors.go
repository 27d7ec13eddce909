package model

import "errors"

var (
	ErrEmptyText        = errors.New("text is required")
	ErrAlreadyLiked     = errors.New("post already liked")
	ErrNotLiked         = errors.New("post has not yet been liked")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("user is not the comment author")
)
