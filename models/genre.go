package models

import (
	"time"
)

type Genre struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string    `json:"name" binding:"required" gorm:"uniqueIndex"`
	Books     []Book    `json:"books,omitempty" gorm:"many2many:book_genres;"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GenreCreate struct {
	Name string `json:"name" binding:"required"`
}

func (Genre) TableName() string {
	return "genres"
}
