package routes

import (
	"readian-backend/handlers/moderation"
	"readian-backend/middleware"

	"github.com/gin-gonic/gin"
)

func ModerationRoutes(r *gin.Engine) {
	moderationRoutes := r.Group("/moderation")
	moderationRoutes.Use(middleware.AdminAuth())
	{
		moderationRoutes.GET("/reports", moderation.GetAllReports)
		moderationRoutes.PATCH("/reports/:id", moderation.UpdateReportStatus)
		moderationRoutes.PATCH("/books/:id/toggle-enable", moderation.ToggleBookEnable)
	}
}
