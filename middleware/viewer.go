package middleware

import (
	"time"

	"readian-backend/db"
	"readian-backend/entitlement"
	"readian-backend/models"

	"github.com/gin-gonic/gin"
)

// ViewerFromUser maps a user row to the entitlement snapshot. Age is derived
// from the birth date at now; the subscription fields are copied verbatim so
// the evaluator can re-derive effective entitlement itself.
func ViewerFromUser(user models.User, now time.Time) entitlement.Viewer {
	return entitlement.Viewer{
		IsAuthenticated:       true,
		Role:                  entitlement.Role(user.Role),
		Age:                   user.Age(now),
		Plan:                  entitlement.Plan(user.Plan),
		SubscriptionStatus:    entitlement.SubscriptionStatus(user.SubscriptionStatus),
		SubscriptionExpiresAt: user.SubscriptionExpiresAt,
	}
}

// AnonymousViewer is the snapshot for a request without a valid token.
func AnonymousViewer() entitlement.Viewer {
	return entitlement.Viewer{IsAuthenticated: false, Plan: entitlement.PlanFree}
}

// CurrentViewer builds a fresh viewer snapshot for this request, re-reading
// the user row so plan and subscription changes take effect immediately.
// Returns the user ID alongside, empty for anonymous visitors.
func CurrentViewer(c *gin.Context, now time.Time) (entitlement.Viewer, string) {
	userID, exists := c.Get("user_id")
	if !exists {
		return AnonymousViewer(), ""
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return AnonymousViewer(), ""
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		return AnonymousViewer(), ""
	}

	if !user.Enable {
		return AnonymousViewer(), ""
	}

	return ViewerFromUser(user, now), user.ID
}
