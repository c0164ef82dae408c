package models

import (
	"database/sql"
	"time"
)

type Role string

const (
	ReaderRole Role = "READER"
	AuthorRole Role = "AUTHOR"
	AdminRole  Role = "ADMIN"
)

type Plan string

const (
	FreePlan    Plan = "FREE"
	BasicPlan   Plan = "BASIC"
	PremiumPlan Plan = "PREMIUM"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionInactive  SubscriptionStatus = "INACTIVE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
)

type User struct {
	ID                    string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email                 string             `json:"email" binding:"required,email" gorm:"uniqueIndex"`
	Password              string             `json:"-"`
	UserName              string             `json:"username"`
	Role                  Role               `json:"role" gorm:"type:varchar(20);default:'READER'"`
	Bio                   string             `json:"bio"`
	ProfilePicture        string             `json:"profilePicture"`
	BirthDate             *time.Time         `json:"birthDate"`
	Plan                  Plan               `json:"plan" gorm:"type:varchar(20);default:'FREE'"`
	SubscriptionStatus    SubscriptionStatus `json:"subscriptionStatus" gorm:"type:varchar(20);default:'INACTIVE'"`
	SubscriptionExpiresAt *time.Time         `json:"subscriptionExpiresAt"`
	StripeCustomerId      string             `json:"stripeCustomerId"`
	Enable                bool               `json:"enable" gorm:"default:true"`
	EmailVerifiedAt       sql.NullTime       `json:"emailVerifiedAt"`
	VerificationCode      string             `json:"-"`
	CreatedAt             time.Time          `json:"createdAt"`
	UpdatedAt             time.Time          `json:"updatedAt"`
}

type UserCreate struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UserUpdate struct {
	UserName  string     `json:"username"`
	Bio       string     `json:"bio"`
	BirthDate *time.Time `json:"birthDate"`
}

func (User) TableName() string {
	return "users"
}

// Age returns the user's age in full years at now, 0 when the birth date
// was never provided.
func (u User) Age(now time.Time) int {
	if u.BirthDate == nil {
		return 0
	}
	age := now.Year() - u.BirthDate.Year()
	anniversary := u.BirthDate.AddDate(age, 0, 0)
	if anniversary.After(now) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
