package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/engagement-service/internal/dto"
	"github.com/BloggingApp/engagement-service/internal/model"
	"github.com/BloggingApp/engagement-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized    = errors.New("user is not authorized")
	errInvalidPostID    = errors.New("invalid post ID")
	errInvalidCommentID = errors.New("invalid comment ID")
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrEmptyText),
		errors.Is(err, model.ErrAlreadyLiked),
		errors.Is(err, model.ErrNotLiked):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, model.ErrCommentNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotPostAuthor),
		errors.Is(err, model.ErrNotCommentAuthor),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPostBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		if !errors.Is(err, service.ErrInternal) {
			h.logger.Sugar().Errorf("unhandled error on %s %s: %s", c.Request.Method, c.FullPath(), err.Error())
		}
		err = service.ErrInternal
	}

	c.JSON(status, dto.NewBasicResponse(false, err.Error()))
}
