package models

import (
	"time"
)

type Chapter struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BookID    string    `json:"bookId" gorm:"column:book_id;type:uuid;not null;index"`
	Number    int       `json:"number" gorm:"not null"`
	Title     string    `json:"title" binding:"required"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ChapterCreate struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

type ChapterUpdate struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (Chapter) TableName() string {
	return "chapters"
}
