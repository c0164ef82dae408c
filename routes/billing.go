package routes

import (
	"readian-backend/handlers/billing"
	"readian-backend/middleware"

	"github.com/gin-gonic/gin"
)

func BillingRoutes(r *gin.Engine) {
	billingRoutes := r.Group("/billing")
	billingRoutes.Use(middleware.JWTAuth())
	{
		billingRoutes.POST("/checkout/:plan", billing.CreateCheckoutSession)
		billingRoutes.DELETE("/subscription", billing.CancelSubscription)
		billingRoutes.GET("/payments", billing.GetMyPayments)
		billingRoutes.GET("/revenue", middleware.AdminAuth(), billing.GetTotalRevenue)
	}
	r.POST("/stripe/webhook", billing.StripeWebhookHandler)
}
