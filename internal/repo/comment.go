package repo

import (
	"context"
	"time"

	"github.com/mlazarev/book-library/internal/models"
)

// CommentView is one comment joined with its author's username, the shape the
// API returns.
type CommentView struct {
	ID          uint      `json:"id"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
	Username    string    `json:"username"`
}

func (r *GormRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *GormRepo) ListComments(ctx context.Context, bookID uint) ([]CommentView, error) {
	views := make([]CommentView, 0)
	err := r.DB.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.text AS comment_text, comments.created_at, users.username").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.book_id = ?", bookID).
		Order("comments.created_at DESC, comments.id DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (r *GormRepo) BookExists(ctx context.Context, bookID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", bookID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
