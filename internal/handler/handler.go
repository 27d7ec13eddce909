package handler

import (
	"net/http"

	"github.com/BloggingApp/engagement-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Config struct {
	AccessSecret []byte
	ClientOrigin string
}

type Handler struct {
	services *service.Service
	logger   *zap.Logger
	cfg      Config
}

func New(services *service.Service, logger *zap.Logger, cfg Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		cfg:      cfg,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if h.cfg.ClientOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{h.cfg.ClientOrigin},
			AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.GET("/health", h.health)

	api := r.Group("/api")
	{
		posts := api.Group("/posts", h.authMiddleware)
		{
			posts.POST("", h.postsCreate)
			posts.GET("", h.postsGetAll)
			posts.GET("/:id", h.postsGetByID)
			posts.DELETE("/:id", h.postsDelete)

			posts.PUT("/like/:id", h.postsLike)
			posts.PUT("/unlike/:id", h.postsUnlike)

			posts.POST("/comment/:id", h.commentsCreate)
			posts.DELETE("/comment/:id/:comment_id", h.commentsDelete)
		}
	}

	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
