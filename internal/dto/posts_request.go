package dto

type CreatePostRequest struct {
	Text string `json:"text" binding:"required"`
}
