package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/safezone/internal/config"
)

func RegisterRoutes(router *gin.RouterGroup, repo *Repository, cfg *config.Config) {
	handler := NewHandler(repo, cfg)
	authMiddleware := NewAuthMiddleware(repo, cfg)

	group := router.Group("/auth")
	{
		group.POST("/register", handler.Register)
		group.POST("/login", handler.Login)
		group.GET("/me", authMiddleware, handler.Me)
	}
}
