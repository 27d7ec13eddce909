package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/engagement-service/internal/dto"
	"github.com/BloggingApp/engagement-service/internal/model"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Malformed ids can never name a stored post, so they are reported as not found.
func parseObjectID(c *gin.Context, param string, errInvalid error) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param(param)))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errInvalid.Error()))
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) postsCreate(c *gin.Context) {
	var input dto.CreatePostRequest
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

	createdPost, err := h.services.Post.Create(c.Request.Context(), *author, input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, createdPost)
}

func (h *Handler) postsGetAll(c *gin.Context) {
	posts, err := h.services.Post.FindAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	postID, ok := parseObjectID(c, "id", errInvalidPostID)
	if !ok {
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsDelete(c *gin.Context) {
	postID, ok := parseObjectID(c, "id", errInvalidPostID)
	if !ok {
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), postID, getUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Msg: "Post removed"})
}

func (h *Handler) postsLike(c *gin.Context) {
	postID, ok := parseObjectID(c, "id", errInvalidPostID)
	if !ok {
		return
	}

	likes, err := h.services.Engagement.Like(c.Request.Context(), postID, getUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, likes)
}

func (h *Handler) postsUnlike(c *gin.Context) {
	postID, ok := parseObjectID(c, "id", errInvalidPostID)
	if !ok {
		return
	}

	likes, err := h.services.Engagement.Unlike(c.Request.Context(), postID, getUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, likes)
}
