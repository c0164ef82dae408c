// Package entitlement decides whether a viewer may see, read or download a
// piece of content. It is pure: no database, no clock of its own, no state
// between calls. Every surface that gates content goes through this package
// instead of re-checking plan/age/premium flags on its own.
package entitlement

import (
	"errors"
	"time"
)

var ErrNilContent = errors.New("entitlement: content is nil")

type Role string

const (
	RoleReader Role = "READER"
	RoleAuthor Role = "AUTHOR"
	RoleAdmin  Role = "ADMIN"
)

type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanBasic   Plan = "BASIC"
	PlanPremium Plan = "PREMIUM"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionInactive  SubscriptionStatus = "INACTIVE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
)

type PublicationStatus string

const (
	PublicationDraft     PublicationStatus = "DRAFT"
	PublicationPublished PublicationStatus = "PUBLISHED"
)

type SerializationStatus string

const (
	SerializationOngoing  SerializationStatus = "ONGOING"
	SerializationFinished SerializationStatus = "FINISHED"
	SerializationHiatus   SerializationStatus = "HIATUS"
)

type ContentRating string

const (
	RatingGeneral ContentRating = "GENERAL"
	RatingAdult   ContentRating = "ADULT"
)

// Viewer is a read-only snapshot of whoever is looking at the content.
// Callers must refresh it after anything that can change entitlement
// (login, subscribing, cancelling) before evaluating again.
type Viewer struct {
	IsAuthenticated       bool
	Role                  Role
	Age                   int // 0 means unknown / not verified
	Plan                  Plan
	SubscriptionStatus    SubscriptionStatus
	SubscriptionExpiresAt *time.Time
}

// Content is a read-only snapshot of a book's access-relevant attributes.
type Content struct {
	ID                  string
	PublicationStatus   PublicationStatus
	SerializationStatus SerializationStatus
	IsPremium           bool
	ContentRating       ContentRating
	AgeRestriction      int // minimum age, 0 means none
	DownloadAllowed     bool
	OwnerID             string
}

type Outcome string

const (
	Allow Outcome = "ALLOW"
	Deny  Outcome = "DENY"
)

type Reason string

const (
	ReasonOK                       Reason = "OK"
	ReasonNotAuthenticated         Reason = "NOT_AUTHENTICATED"
	ReasonAgeUnverified            Reason = "AGE_UNVERIFIED"
	ReasonAgeTooYoung              Reason = "AGE_TOO_YOUNG"
	ReasonSubscriptionExpired      Reason = "SUBSCRIPTION_EXPIRED"
	ReasonPlanInsufficientPremium  Reason = "PLAN_INSUFFICIENT_FOR_PREMIUM"
	ReasonPlanInsufficientOngoing  Reason = "PLAN_INSUFFICIENT_FOR_ONGOING"
	ReasonDownloadNotAllowed       Reason = "DOWNLOAD_NOT_ALLOWED"
	ReasonDownloadRequiresPaidPlan Reason = "DOWNLOAD_REQUIRES_PAID_PLAN"
)

type SuggestedAction string

const (
	ActionNone              SuggestedAction = "NONE"
	ActionSignIn            SuggestedAction = "SIGN_IN"
	ActionVerifyAge         SuggestedAction = "VERIFY_AGE"
	ActionUpgradeToBasic    SuggestedAction = "UPGRADE_TO_BASIC"
	ActionUpgradeToPremium  SuggestedAction = "UPGRADE_TO_PREMIUM"
	ActionRenewSubscription SuggestedAction = "RENEW_SUBSCRIPTION"
)

// Route returns the frontend route a suggested action points at. This is a
// fixed contract with the presentation layer; it never changes per content.
func (a SuggestedAction) Route() string {
	switch a {
	case ActionSignIn:
		return "/signin"
	case ActionUpgradeToBasic, ActionUpgradeToPremium, ActionRenewSubscription:
		return "/subscribe"
	case ActionVerifyAge:
		return "/settings"
	default:
		return ""
	}
}

// AccessDecision is the evaluator's only output. A DENY always carries a
// reason and a suggested action so the caller can render an actionable
// message without further lookups.
type AccessDecision struct {
	Outcome         Outcome         `json:"outcome"`
	Reason          Reason          `json:"reason"`
	SuggestedAction SuggestedAction `json:"suggestedAction"`
}

func (d AccessDecision) Allowed() bool {
	return d.Outcome == Allow
}

func allow() AccessDecision {
	return AccessDecision{Outcome: Allow, Reason: ReasonOK, SuggestedAction: ActionNone}
}

func deny(reason Reason, action SuggestedAction) AccessDecision {
	return AccessDecision{Outcome: Deny, Reason: reason, SuggestedAction: action}
}
