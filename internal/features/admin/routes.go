package admin

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *Handler, authMiddleware gin.HandlerFunc) {
	group := router.Group("/admin")
	group.Use(authMiddleware)
	{
		group.GET("/reports", handler.ListReports)
		group.PATCH("/reports/:id/verify", handler.VerifyReport)
		group.GET("/zones", handler.ListZones)
		group.DELETE("/zones/:id", handler.DeactivateZone)
	}
}
