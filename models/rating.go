package models

import (
	"time"
)

type Rating struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BookID    string    `json:"bookId" gorm:"column:book_id;uniqueIndex:idx_ratings_book_user"`
	UserID    string    `json:"userId" gorm:"column:user_id;uniqueIndex:idx_ratings_book_user"`
	Score     int       `json:"score" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RatingCreate struct {
	Score int `json:"score" binding:"required,min=1,max=5"`
}

func (Rating) TableName() string {
	return "ratings"
}
