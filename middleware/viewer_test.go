package middleware

import (
	"testing"
	"time"

	"readian-backend/entitlement"
	"readian-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestViewerFromUser(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	birth := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	expires := now.AddDate(0, 1, 0)

	user := models.User{
		ID:                    "user123",
		Role:                  models.ReaderRole,
		BirthDate:             &birth,
		Plan:                  models.PremiumPlan,
		SubscriptionStatus:    models.SubscriptionActive,
		SubscriptionExpiresAt: &expires,
	}

	viewer := ViewerFromUser(user, now)

	assert.True(t, viewer.IsAuthenticated)
	assert.Equal(t, entitlement.RoleReader, viewer.Role)
	assert.Equal(t, 35, viewer.Age)
	assert.Equal(t, entitlement.PlanPremium, viewer.Plan)
	assert.Equal(t, entitlement.SubscriptionActive, viewer.SubscriptionStatus)
	assert.Equal(t, &expires, viewer.SubscriptionExpiresAt)
	assert.True(t, entitlement.IsEffectivelyPremiumEntitled(viewer, now))
}

func TestViewerFromUser_NoBirthDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	viewer := ViewerFromUser(models.User{ID: "user123"}, now)

	assert.True(t, viewer.IsAuthenticated)
	assert.Equal(t, 0, viewer.Age)
}

func TestAnonymousViewer(t *testing.T) {
	viewer := AnonymousViewer()

	assert.False(t, viewer.IsAuthenticated)
	assert.Equal(t, entitlement.PlanFree, viewer.Plan)
	assert.False(t, entitlement.IsEffectivelyPremiumEntitled(viewer, time.Now()))
}
