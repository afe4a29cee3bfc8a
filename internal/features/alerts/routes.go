package alerts

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	group := router.Group("/alerts")
	group.Use(authMiddleware)
	{
		group.POST("/sos", handler.TriggerSOS)
		group.GET("", handler.ListMine)
	}
}
