package utils

import (
	"net/http"

	"readian-backend/entitlement"

	"github.com/gin-gonic/gin"
)

// SendAccessDenied renders a DENY decision. NOT_AUTHENTICATED gets a 401 and
// carries the original path so the frontend can return here after sign-in;
// every other denial is a 403 paywall payload. The route field is the fixed
// contract with the presentation layer.
func SendAccessDenied(c *gin.Context, decision entitlement.AccessDecision) {
	status := http.StatusForbidden
	payload := gin.H{
		"error":           "Access denied",
		"reason":          decision.Reason,
		"suggestedAction": decision.SuggestedAction,
		"route":           decision.SuggestedAction.Route(),
	}

	if decision.Reason == entitlement.ReasonNotAuthenticated {
		status = http.StatusUnauthorized
		payload["from"] = c.Request.URL.Path
	}

	c.JSON(status, payload)
}
