package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func future() *time.Time {
	t := testNow.Add(30 * 24 * time.Hour)
	return &t
}

func past() *time.Time {
	t := testNow.Add(-24 * time.Hour)
	return &t
}

func premiumViewer() Viewer {
	return Viewer{
		IsAuthenticated:       true,
		Role:                  RoleReader,
		Age:                   25,
		Plan:                  PlanPremium,
		SubscriptionStatus:    SubscriptionActive,
		SubscriptionExpiresAt: future(),
	}
}

func freeViewer() Viewer {
	return Viewer{
		IsAuthenticated:    true,
		Role:               RoleReader,
		Age:                25,
		Plan:               PlanFree,
		SubscriptionStatus: SubscriptionInactive,
	}
}

func anonymousViewer() Viewer {
	return Viewer{IsAuthenticated: false, Plan: PlanFree}
}

func finishedBook() *Content {
	return &Content{
		ID:                  "book-1",
		PublicationStatus:   PublicationPublished,
		SerializationStatus: SerializationFinished,
		ContentRating:       RatingGeneral,
		DownloadAllowed:     true,
	}
}

func TestViewAccess_AdultContentRequiresAuthentication(t *testing.T) {
	content := finishedBook()
	content.ContentRating = RatingAdult

	decision, err := EvaluateViewAccess(anonymousViewer(), content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonNotAuthenticated, decision.Reason)
	assert.Equal(t, ActionSignIn, decision.SuggestedAction)
}

func TestViewAccess_AdultContentRequiresVerifiedAge(t *testing.T) {
	content := finishedBook()
	content.ContentRating = RatingAdult

	viewer := freeViewer()
	viewer.Age = 0

	decision, err := EvaluateViewAccess(viewer, content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonAgeUnverified, decision.Reason)
	assert.Equal(t, ActionVerifyAge, decision.SuggestedAction)
}

func TestViewAccess_AdultContentBlocksMinorsRegardlessOfPlan(t *testing.T) {
	content := finishedBook()
	content.ContentRating = RatingAdult

	for _, plan := range []Plan{PlanFree, PlanBasic, PlanPremium} {
		viewer := premiumViewer()
		viewer.Plan = plan
		viewer.Age = 17

		decision, err := EvaluateViewAccess(viewer, content, testNow)

		assert.NoError(t, err)
		assert.Equal(t, Deny, decision.Outcome, "plan %s", plan)
		assert.Equal(t, ReasonAgeTooYoung, decision.Reason, "plan %s", plan)
		assert.Equal(t, ActionNone, decision.SuggestedAction, "plan %s", plan)
	}
}

func TestViewAccess_AgeRestrictionAppliesToUnknownAge(t *testing.T) {
	content := finishedBook()
	content.AgeRestriction = 13

	viewer := freeViewer()
	viewer.Age = 0

	decision, err := EvaluateViewAccess(viewer, content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonAgeTooYoung, decision.Reason)
}

func TestViewAccess_AgeRestrictionBlocksAnonymousViewer(t *testing.T) {
	content := finishedBook()
	content.AgeRestriction = 16

	decision, err := EvaluateViewAccess(anonymousViewer(), content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonAgeTooYoung, decision.Reason)
	assert.Equal(t, ActionNone, decision.SuggestedAction)
}

func TestViewAccess_PremiumBookBlocksFreeTier(t *testing.T) {
	content := finishedBook()
	content.IsPremium = true

	decision, err := EvaluateViewAccess(freeViewer(), content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonPlanInsufficientPremium, decision.Reason)
	assert.Equal(t, ActionUpgradeToPremium, decision.SuggestedAction)
}

func TestViewAccess_PremiumBookSuggestsSignInWhenAnonymous(t *testing.T) {
	content := finishedBook()
	content.IsPremium = true

	decision, err := EvaluateViewAccess(anonymousViewer(), content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonPlanInsufficientPremium, decision.Reason)
	assert.Equal(t, ActionSignIn, decision.SuggestedAction)
}

func TestViewAccess_FreeBookOpenToAnonymous(t *testing.T) {
	decision, err := EvaluateViewAccess(anonymousViewer(), finishedBook(), testNow)

	assert.NoError(t, err)
	assert.Equal(t, Allow, decision.Outcome)
	assert.Equal(t, ReasonOK, decision.Reason)
	assert.Equal(t, ActionNone, decision.SuggestedAction)
}

// Scenario: free reader, finished premium book. The premium flag blocks
// every non-entitled viewer regardless of serialization status.
func TestReadAccess_FreeTierDeniedOnFinishedPremiumBook(t *testing.T) {
	content := finishedBook()
	content.IsPremium = true

	decision, err := EvaluateReadAccess(freeViewer(), content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonPlanInsufficientPremium, decision.Reason)
	assert.Equal(t, ActionUpgradeToPremium, decision.SuggestedAction)
}

func TestReadAccess_OngoingBookRequiresPremium(t *testing.T) {
	content := finishedBook()
	content.SerializationStatus = SerializationOngoing

	for _, plan := range []Plan{PlanFree, PlanBasic} {
		viewer := freeViewer()
		viewer.Plan = plan
		if plan == PlanBasic {
			viewer.SubscriptionStatus = SubscriptionActive
			viewer.SubscriptionExpiresAt = future()
		}

		decision, err := EvaluateReadAccess(viewer, content, testNow)

		assert.NoError(t, err)
		assert.Equal(t, Deny, decision.Outcome, "plan %s", plan)
		assert.Equal(t, ReasonPlanInsufficientOngoing, decision.Reason, "plan %s", plan)
		assert.Equal(t, ActionUpgradeToPremium, decision.SuggestedAction, "plan %s", plan)
	}
}

// Scenario: live premium subscription, ongoing premium book.
func TestReadAccess_ActivePremiumReadsOngoingPremiumBook(t *testing.T) {
	content := finishedBook()
	content.IsPremium = true
	content.SerializationStatus = SerializationOngoing

	decision, err := EvaluateReadAccess(premiumViewer(), content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Allow, decision.Outcome)
	assert.Equal(t, ReasonOK, decision.Reason)
}

// Scenario: the stored status still says ACTIVE but the expiry is in the
// past. The evaluator must treat the viewer as non-premium.
func TestReadAccess_ExpiredPremiumTreatedAsNonPremium(t *testing.T) {
	content := finishedBook()
	content.IsPremium = true
	content.SerializationStatus = SerializationOngoing

	viewer := premiumViewer()
	viewer.SubscriptionExpiresAt = past()

	decision, err := EvaluateReadAccess(viewer, content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonPlanInsufficientOngoing, decision.Reason)
}

func TestReadAccess_HiatusBookReadableOnFreeTier(t *testing.T) {
	content := finishedBook()
	content.SerializationStatus = SerializationHiatus

	decision, err := EvaluateReadAccess(freeViewer(), content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Allow, decision.Outcome)
}

// Scenario: anonymous viewer downloading a free downloadable book.
func TestDownloadAccess_RequiresAuthentication(t *testing.T) {
	decision, err := EvaluateDownloadAccess(anonymousViewer(), finishedBook(), testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonNotAuthenticated, decision.Reason)
	assert.Equal(t, ActionSignIn, decision.SuggestedAction)
}

// Scenario: basic subscriber, free downloadable book.
func TestDownloadAccess_BasicPlanDownloadsFreeBook(t *testing.T) {
	viewer := freeViewer()
	viewer.Plan = PlanBasic
	viewer.SubscriptionStatus = SubscriptionActive

	decision, err := EvaluateDownloadAccess(viewer, finishedBook(), testNow)

	assert.NoError(t, err)
	assert.Equal(t, Allow, decision.Outcome)
	assert.Equal(t, ReasonOK, decision.Reason)
}

func TestDownloadAccess_FreeTierMustUpgradeToBasic(t *testing.T) {
	decision, err := EvaluateDownloadAccess(freeViewer(), finishedBook(), testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonDownloadRequiresPaidPlan, decision.Reason)
	assert.Equal(t, ActionUpgradeToBasic, decision.SuggestedAction)
}

func TestDownloadAccess_ContentMayForbidDownloads(t *testing.T) {
	content := finishedBook()
	content.DownloadAllowed = false

	decision, err := EvaluateDownloadAccess(premiumViewer(), content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonDownloadNotAllowed, decision.Reason)
	assert.Equal(t, ActionNone, decision.SuggestedAction)
}

func TestDownloadAccess_ReadDenialPropagatesUnchanged(t *testing.T) {
	content := finishedBook()
	content.ContentRating = RatingAdult

	viewer := premiumViewer()
	viewer.Age = 17

	decision, err := EvaluateDownloadAccess(viewer, content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonAgeTooYoung, decision.Reason)
}

func TestDownloadAccess_BasicPlanDeniedOnPremiumBook(t *testing.T) {
	content := finishedBook()
	content.IsPremium = true

	viewer := freeViewer()
	viewer.Plan = PlanBasic
	viewer.SubscriptionStatus = SubscriptionActive

	decision, err := EvaluateDownloadAccess(viewer, content, testNow)

	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)
	assert.Equal(t, ReasonPlanInsufficientPremium, decision.Reason)
}

// Admins never hit a plan or subscription denial, whatever the content.
func TestAdminBypassesPlanAndSubscriptionChecks(t *testing.T) {
	admin := Viewer{
		IsAuthenticated:    true,
		Role:               RoleAdmin,
		Age:                40,
		Plan:               PlanFree,
		SubscriptionStatus: SubscriptionInactive,
	}

	contents := []*Content{
		{ID: "a", IsPremium: true, SerializationStatus: SerializationFinished, ContentRating: RatingGeneral, DownloadAllowed: true},
		{ID: "b", IsPremium: true, SerializationStatus: SerializationOngoing, ContentRating: RatingGeneral, DownloadAllowed: true},
		{ID: "c", IsPremium: false, SerializationStatus: SerializationOngoing, ContentRating: RatingAdult, DownloadAllowed: true},
	}

	planReasons := []Reason{
		ReasonPlanInsufficientPremium,
		ReasonPlanInsufficientOngoing,
		ReasonDownloadRequiresPaidPlan,
	}

	for _, content := range contents {
		view, err := EvaluateViewAccess(admin, content, testNow)
		assert.NoError(t, err)
		read, err := EvaluateReadAccess(admin, content, testNow)
		assert.NoError(t, err)
		download, err := EvaluateDownloadAccess(admin, content, testNow)
		assert.NoError(t, err)

		for _, decision := range []AccessDecision{view, read, download} {
			assert.NotContains(t, planReasons, decision.Reason, "content %s", content.ID)
		}
	}
}

func TestEvaluationIsIdempotent(t *testing.T) {
	content := finishedBook()
	content.IsPremium = true
	viewer := premiumViewer()

	first, err := EvaluateReadAccess(viewer, content, testNow)
	assert.NoError(t, err)
	second, err := EvaluateReadAccess(viewer, content, testNow)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

// Upgrading the plan must never turn an ALLOW into a DENY for a fixed
// finished, non-adult, non-age-restricted premium book.
func TestPlanUpgradeNeverRegressesAccess(t *testing.T) {
	content := finishedBook()
	content.IsPremium = true

	allowed := false
	for _, plan := range []Plan{PlanFree, PlanBasic, PlanPremium} {
		viewer := premiumViewer()
		viewer.Plan = plan

		decision, err := EvaluateReadAccess(viewer, content, testNow)
		assert.NoError(t, err)

		if allowed {
			assert.Equal(t, Allow, decision.Outcome, "access regressed at plan %s", plan)
		}
		if decision.Allowed() {
			allowed = true
		}
	}
	assert.True(t, allowed)
}

func TestExpiryBoundary(t *testing.T) {
	content := finishedBook()
	content.IsPremium = true

	viewer := premiumViewer()
	expiry := testNow
	viewer.SubscriptionExpiresAt = &expiry

	// Expiring exactly now is no longer active.
	decision, err := EvaluateViewAccess(viewer, content, testNow)
	assert.NoError(t, err)
	assert.Equal(t, Deny, decision.Outcome)

	// One second earlier it still is.
	decision, err = EvaluateViewAccess(viewer, content, testNow.Add(-time.Second))
	assert.NoError(t, err)
	assert.Equal(t, Allow, decision.Outcome)
}

func TestNonExpiringSubscriptionStaysEntitled(t *testing.T) {
	viewer := premiumViewer()
	viewer.SubscriptionExpiresAt = nil

	assert.True(t, IsEffectivelyPremiumEntitled(viewer, testNow))
}

func TestCancelledSubscriptionNotEntitled(t *testing.T) {
	viewer := premiumViewer()
	viewer.SubscriptionStatus = SubscriptionCancelled

	assert.False(t, IsEffectivelyPremiumEntitled(viewer, testNow))
}

func TestNilContentIsAnErrorNotADenial(t *testing.T) {
	_, err := EvaluateViewAccess(premiumViewer(), nil, testNow)
	assert.ErrorIs(t, err, ErrNilContent)

	_, err = EvaluateReadAccess(premiumViewer(), nil, testNow)
	assert.ErrorIs(t, err, ErrNilContent)

	_, err = EvaluateDownloadAccess(premiumViewer(), nil, testNow)
	assert.ErrorIs(t, err, ErrNilContent)
}

func TestSuggestedActionRoutes(t *testing.T) {
	assert.Equal(t, "/signin", ActionSignIn.Route())
	assert.Equal(t, "/subscribe", ActionUpgradeToBasic.Route())
	assert.Equal(t, "/subscribe", ActionUpgradeToPremium.Route())
	assert.Equal(t, "/subscribe", ActionRenewSubscription.Route())
	assert.Equal(t, "/settings", ActionVerifyAge.Route())
	assert.Equal(t, "", ActionNone.Route())
}
