package entitlement

import "time"

// adultAge is the minimum age for ADULT-rated content.
const adultAge = 18

// IsEffectivelyPremiumEntitled reports whether the viewer has live premium
// access. Admins bypass every plan and subscription check. For everyone else
// the expiry timestamp is compared against now instead of trusting the stored
// status flag, which may be stale.
func IsEffectivelyPremiumEntitled(viewer Viewer, now time.Time) bool {
	if viewer.IsAuthenticated && viewer.Role == RoleAdmin {
		return true
	}
	if viewer.Plan != PlanPremium || viewer.SubscriptionStatus != SubscriptionActive {
		return false
	}
	return viewer.SubscriptionExpiresAt == nil || viewer.SubscriptionExpiresAt.After(now)
}

// EvaluateViewAccess decides whether the viewer may see the content's detail
// page. Rules run in a fixed order, first match wins.
func EvaluateViewAccess(viewer Viewer, content *Content, now time.Time) (AccessDecision, error) {
	if content == nil {
		return AccessDecision{}, ErrNilContent
	}
	return evaluateView(viewer, content, now), nil
}

func evaluateView(viewer Viewer, content *Content, now time.Time) AccessDecision {
	if content.ContentRating == RatingAdult {
		if !viewer.IsAuthenticated {
			return deny(ReasonNotAuthenticated, ActionSignIn)
		}
		if viewer.Age == 0 {
			return deny(ReasonAgeUnverified, ActionVerifyAge)
		}
		if viewer.Age < adultAge {
			return deny(ReasonAgeTooYoung, ActionNone)
		}
	}

	if content.AgeRestriction > 0 && viewer.Age < content.AgeRestriction {
		return deny(ReasonAgeTooYoung, ActionNone)
	}

	if content.IsPremium && !IsEffectivelyPremiumEntitled(viewer, now) {
		if !viewer.IsAuthenticated {
			return deny(ReasonPlanInsufficientPremium, ActionSignIn)
		}
		return deny(ReasonPlanInsufficientPremium, ActionUpgradeToPremium)
	}

	return allow()
}

// EvaluateReadAccess decides whether the viewer may read the content's
// chapters. Everything view access checks, plus the ongoing-work gate:
// works still being serialized are premium-subscriber only.
func EvaluateReadAccess(viewer Viewer, content *Content, now time.Time) (AccessDecision, error) {
	if content == nil {
		return AccessDecision{}, ErrNilContent
	}
	return evaluateRead(viewer, content, now), nil
}

func evaluateRead(viewer Viewer, content *Content, now time.Time) AccessDecision {
	if decision := evaluateView(viewer, content, now); !decision.Allowed() {
		return decision
	}

	if content.SerializationStatus == SerializationOngoing && !IsEffectivelyPremiumEntitled(viewer, now) {
		return deny(ReasonPlanInsufficientOngoing, ActionUpgradeToPremium)
	}

	return allow()
}

// EvaluateDownloadAccess decides whether the viewer may download the content.
// A read denial propagates unchanged; on top of that the content must allow
// downloads at all, and downloading requires at least a paid plan.
func EvaluateDownloadAccess(viewer Viewer, content *Content, now time.Time) (AccessDecision, error) {
	if content == nil {
		return AccessDecision{}, ErrNilContent
	}

	if decision := evaluateRead(viewer, content, now); !decision.Allowed() {
		return decision, nil
	}

	if !content.DownloadAllowed {
		return deny(ReasonDownloadNotAllowed, ActionNone), nil
	}

	// Downloading is an account feature: anonymous viewers sign in first,
	// free-tier accounts upgrade.
	if !viewer.IsAuthenticated {
		return deny(ReasonNotAuthenticated, ActionSignIn), nil
	}
	if viewer.Role != RoleAdmin && viewer.Plan == PlanFree {
		return deny(ReasonDownloadRequiresPaidPlan, ActionUpgradeToBasic), nil
	}

	if content.IsPremium && !IsEffectivelyPremiumEntitled(viewer, now) {
		return deny(ReasonPlanInsufficientPremium, ActionUpgradeToPremium), nil
	}

	return allow(), nil
}
