package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "SUCCEEDED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// PlanPayment records one Stripe invoice for a plan subscription.
type PlanPayment struct {
	ID              string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID          string        `json:"userId" gorm:"type:uuid;not null"`
	Plan            Plan          `json:"plan" gorm:"type:varchar(20)"`
	Amount          int           `json:"amount"` // cents
	Currency        string        `json:"currency"`
	Status          PaymentStatus `json:"status" gorm:"type:varchar(20)"`
	StripeInvoiceId string        `json:"stripeInvoiceId"`
	CreatedAt       time.Time     `json:"createdAt"`
}

func (PlanPayment) TableName() string {
	return "plan_payments"
}
