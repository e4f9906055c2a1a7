package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mlazarev/book-library/internal/events"
	"github.com/mlazarev/book-library/internal/logging"
	"github.com/mlazarev/book-library/internal/models"
	"github.com/mlazarev/book-library/internal/repo"
)

type CommentService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

func (s *CommentService) CreateComment(ctx context.Context, bookID, userID uint, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}

	if exists, err := s.Repo.BookExists(ctx, bookID); err != nil {
		return nil, err
	} else if !exists {
		return nil, gorm.ErrRecordNotFound
	}

	comment := models.Comment{
		BookID: bookID,
		UserID: userID,
		Text:   text,
	}
	if err := s.Repo.CreateComment(ctx, &comment); err != nil {
		return nil, err
	}

	l := logging.FromContext(ctx).With("svc", "comment.create")
	if err := s.Events.Publish(ctx, events.TopicCommentEvents, fmt.Sprint(bookID), map[string]any{
		"type":      "comment_created",
		"commentID": comment.ID,
		"bookID":    bookID,
		"userID":    userID,
	}); err != nil {
		l.Warn("comment_event_publish_failed", "error", err)
	}

	return &comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, bookID uint) ([]repo.CommentView, error) {
	if exists, err := s.Repo.BookExists(ctx, bookID); err != nil {
		return nil, err
	} else if !exists {
		return nil, gorm.ErrRecordNotFound
	}

	return s.Repo.ListComments(ctx, bookID)
}
