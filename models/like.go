package models

import (
	"time"
)

type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BookID    string    `json:"bookId" gorm:"column:book_id"`
	UserID    string    `json:"userId" gorm:"column:user_id"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
