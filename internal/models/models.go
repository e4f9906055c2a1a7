package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"uniqueIndex;not null"     json:"username"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false"   json:"is_admin"`
}

type Book struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string `gorm:"not null;index"           json:"title"`
	Author        string `gorm:"not null;index"           json:"author"`
	ISBN          string `gorm:"uniqueIndex;not null"     json:"isbn"`
	PublishedYear *int   `json:"published_year"`
	Introduction  string `json:"introduction"`
	FilePath      string `json:"file_path"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BookID    uint      `gorm:"index;not null"           json:"book_id"`
	UserID    uint      `gorm:"not null"                 json:"user_id"`
	Text      string    `gorm:"not null"                 json:"comment_text"`
	CreatedAt time.Time `json:"created_at"`
}
