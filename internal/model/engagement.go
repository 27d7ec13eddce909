package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Likes and comments are kept newest first. A user appears at most once in
// Likes. None of these methods persist anything; on error the post is left
// untouched.

func (p *Post) likeIndex(userID uuid.UUID) int {
	return slices.IndexFunc(p.Likes, func(l Like) bool {
		return l.UserID == userID
	})
}

func (p *Post) IsLikedBy(userID uuid.UUID) bool {
	return p.likeIndex(userID) != -1
}

func (p *Post) Like(userID uuid.UUID) error {
	if p.IsLikedBy(userID) {
		return ErrAlreadyLiked
	}

	p.Likes = append([]Like{{UserID: userID}}, p.Likes...)
	return nil
}

func (p *Post) Unlike(userID uuid.UUID) error {
	i := p.likeIndex(userID)
	if i == -1 {
		return ErrNotLiked
	}

	p.Likes = slices.Delete(p.Likes, i, i+1)
	return nil
}

func (p *Post) AddComment(author UserProfile, text string, now time.Time) (*Comment, error) {
	comment, err := NewComment(author, text, now)
	if err != nil {
		return nil, err
	}

	p.Comments = append([]Comment{*comment}, p.Comments...)
	return comment, nil
}

func (p *Post) FindComment(commentID primitive.ObjectID) (*Comment, bool) {
	i := slices.IndexFunc(p.Comments, func(c Comment) bool {
		return c.ID == commentID
	})
	if i == -1 {
		return nil, false
	}
	return &p.Comments[i], true
}

// RemoveComment deletes the comment with the given id. Only the comment's
// author may remove it; owning the post is not enough.
func (p *Post) RemoveComment(commentID primitive.ObjectID, callerID uuid.UUID) error {
	i := slices.IndexFunc(p.Comments, func(c Comment) bool {
		return c.ID == commentID
	})
	if i == -1 {
		return ErrCommentNotFound
	}
	if p.Comments[i].AuthorID != callerID {
		return ErrNotCommentAuthor
	}

	p.Comments = slices.Delete(p.Comments, i, i+1)
	return nil
}
