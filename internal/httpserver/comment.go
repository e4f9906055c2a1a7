package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mlazarev/book-library/internal/logging"
	"github.com/mlazarev/book-library/internal/repo"
	"github.com/mlazarev/book-library/internal/service"
)

type CommentHTTP struct {
	Svc *service.CommentService
}

func (h *CommentHTTP) ListComments(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comment.list")

	bookID, err := parseID(c)
	if err != nil {
		return err
	}

	comments, err := h.Svc.ListComments(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		}
		l.Error("list_comments_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list comments")
	}

	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHTTP) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "comment.create")

	bookID, err := parseID(c)
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_comment_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	userID, _ := c.Get("user_id").(uint)
	username, _ := c.Get("username").(string)

	comment, err := h.Svc.CreateComment(ctx, bookID, userID, req.CommentText)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		default:
			l.Error("create_comment_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create comment")
		}
	}

	l.Info("create_comment_success", "commentID", comment.ID)
	return c.JSON(http.StatusCreated, repo.CommentView{
		ID:          comment.ID,
		CommentText: comment.Text,
		CreatedAt:   comment.CreatedAt,
		Username:    username,
	})
}
