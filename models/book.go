package models

import (
	"time"

	"readian-backend/entitlement"

	"gorm.io/gorm"
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

type Book struct {
	ID                  string              `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	AuthorID            string              `json:"authorId" gorm:"column:author_id;type:uuid;not null"`
	Title               string              `json:"title" binding:"required"`
	Synopsis            string              `json:"synopsis"`
	CoverURL            string              `json:"coverUrl" gorm:"column:cover_url"`
	PublicationStatus   PublicationStatus   `json:"publicationStatus" gorm:"type:varchar(20);default:'DRAFT'"`
	SerializationStatus SerializationStatus `json:"serializationStatus" gorm:"type:varchar(20);default:'ONGOING'"`
	IsPremium           bool                `json:"isPremium" gorm:"default:false"`
	ContentRating       ContentRating       `json:"contentRating" gorm:"type:varchar(20);default:'GENERAL'"`
	AgeRestriction      int                 `json:"ageRestriction" gorm:"default:0"`
	DownloadAllowed     bool                `json:"downloadAllowed" gorm:"default:true"`
	Enable              bool                `json:"enable" gorm:"default:true"`
	Genres              []Genre             `json:"genres" gorm:"many2many:book_genres;"`
	Chapters            []Chapter           `json:"chapters,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt      `json:"deletedAt,omitempty" gorm:"index"`
}

type BookUpdate struct {
	Title               string   `json:"title"`
	Synopsis            string   `json:"synopsis"`
	PublicationStatus   string   `json:"publicationStatus"`
	SerializationStatus string   `json:"serializationStatus"`
	IsPremium           *bool    `json:"isPremium"`
	ContentRating       string   `json:"contentRating"`
	AgeRestriction      *int     `json:"ageRestriction"`
	DownloadAllowed     *bool    `json:"downloadAllowed"`
	Genres              []string `json:"genres"`
}

func (Book) TableName() string {
	return "books"
}

// ToContent extracts the access-relevant snapshot the entitlement evaluator
// works on.
func (b Book) ToContent() *entitlement.Content {
	return &entitlement.Content{
		ID:                  b.ID,
		PublicationStatus:   entitlement.PublicationStatus(b.PublicationStatus),
		SerializationStatus: entitlement.SerializationStatus(b.SerializationStatus),
		IsPremium:           b.IsPremium,
		ContentRating:       entitlement.ContentRating(b.ContentRating),
		AgeRestriction:      b.AgeRestriction,
		DownloadAllowed:     b.DownloadAllowed,
		OwnerID:             b.AuthorID,
	}
}
