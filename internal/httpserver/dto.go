package httpserver

import "github.com/mlazarev/book-library/internal/models"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type BookRequest struct {
	Title         string `json:"title" form:"title"`
	Author        string `json:"author" form:"author"`
	ISBN          string `json:"isbn" form:"isbn"`
	PublishedYear *int   `json:"published_year" form:"published_year"`
	Introduction  string `json:"introduction" form:"introduction"`
}

type BookPageResponse struct {
	Books       []models.Book `json:"books"`
	TotalBooks  int64         `json:"totalBooks"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
}

type CommentRequest struct {
	CommentText string `json:"comment_text" form:"comment_text"`
}
