package handler

import (
	"net/http"

	"github.com/BloggingApp/engagement-service/internal/dto"
	"github.com/BloggingApp/engagement-service/internal/model"
	"github.com/gin-gonic/gin"
)

func (h *Handler) commentsCreate(c *gin.Context) {
	postID, ok := parseObjectID(c, "id", errInvalidPostID)
	if !ok {
		return
	}

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}
	if err := model.ValidateText(input.Text); err != nil {
		h.writeError(c, err)
		return
	}

	author, err := h.services.UserProfile.CreateOrGet(c.Request.Context(), getUserID(c), getAccessToken(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	comments, err := h.services.Engagement.AddComment(c.Request.Context(), postID, *author, input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) commentsDelete(c *gin.Context) {
	postID, ok := parseObjectID(c, "id", errInvalidPostID)
	if !ok {
		return
	}
	commentID, ok := parseObjectID(c, "comment_id", errInvalidCommentID)
	if !ok {
		return
	}

	comments, err := h.services.Engagement.DeleteComment(c.Request.Context(), postID, commentID, getUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
