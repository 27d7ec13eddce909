package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/engagement-service/internal/dto"
	"github.com/BloggingApp/engagement-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userIDKey      = "user-id"
	accessTokenKey = "access-token"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	accessToken, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(accessToken) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	claims, err := utils.DecodeJWT(accessToken, h.cfg.AccessSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	idString, ok := claims["id"].(string)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}
	userID, err := uuid.Parse(idString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	c.Set(userIDKey, userID)
	c.Set(accessTokenKey, accessToken)

	c.Next()
}

func getUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(userIDKey).(uuid.UUID)
}

func getAccessToken(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}
