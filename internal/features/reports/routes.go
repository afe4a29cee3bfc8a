package reports

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	group := router.Group("/reports")
	group.Use(authMiddleware)
	{
		group.POST("", handler.Create)
		group.GET("/check", handler.Check)
		group.POST("/:id/photo", handler.UploadPhoto)
	}
}
