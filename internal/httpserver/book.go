package httpserver

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mlazarev/book-library/internal/logging"
	"github.com/mlazarev/book-library/internal/models"
	"github.com/mlazarev/book-library/internal/repo"
	"github.com/mlazarev/book-library/internal/service"
	"github.com/mlazarev/book-library/internal/util"
)

type BookHTTP struct {
	Svc       *service.CatalogService
	UploadDir string
}

func (h *BookHTTP) ListBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.list")

	filter := repo.BookFilter{
		Search: c.QueryParam("search"),
		Author: c.QueryParam("author"),
		ISBN:   c.QueryParam("isbn"),
		Page:   util.ParseIntDefault(c.QueryParam("page"), 1),
		Limit:  util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
	}
	if v := c.QueryParam("published_year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			filter.PublishedYear = &year
		}
	}

	page, err := h.Svc.ListBooks(ctx, filter)
	if err != nil {
		l.Error("list_books_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list books")
	}

	return c.JSON(http.StatusOK, BookPageResponse{
		Books:       page.Books,
		TotalBooks:  page.TotalBooks,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	})
}

func (h *BookHTTP) GetBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.get")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	book, err := h.Svc.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		}
		l.Error("get_book_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get book")
	}

	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) SuggestBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.suggest")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	size := util.ParseIntDefault(c.QueryParam("size"), 5)

	books, err := h.Svc.Suggest(ctx, q, size)
	if err != nil {
		l.Error("suggest_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch suggestions")
	}

	return c.JSON(http.StatusOK, echo.Map{"suggestions": books})
}

func (h *BookHTTP) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.create")

	book, err := h.bindBook(c)
	if err != nil {
		l.Warn("create_book_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.CreateBook(ctx, book); err != nil {
		return bookErrToHTTP(l, "create_book_error", err)
	}

	l.Info("create_book_success", "bookID", book.ID)
	return c.JSON(http.StatusCreated, book)
}

func (h *BookHTTP) UpdateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.update")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	changes, err := h.bindBook(c)
	if err != nil {
		l.Warn("update_book_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	book, err := h.Svc.UpdateBook(ctx, id, changes)
	if err != nil {
		return bookErrToHTTP(l, "update_book_error", err)
	}

	l.Info("update_book_success", "bookID", book.ID)
	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.delete")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteBook(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		}
		l.Error("delete_book_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete book")
	}

	l.Info("delete_book_success", "bookID", id)
	return c.NoContent(http.StatusNoContent)
}

// bindBook accepts both JSON bodies and multipart forms; multipart may carry an
// optional "file" field that is stored under UploadDir and referenced by path.
func (h *BookHTTP) bindBook(c echo.Context) (*models.Book, error) {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear,
		Introduction:  req.Introduction,
	}

	if file, err := c.FormFile("file"); err == nil && file != nil {
		name, err := h.saveUpload(file)
		if err != nil {
			return nil, err
		}
		book.FilePath = "/uploads/" + name
	}

	return book, nil
}

func (h *BookHTTP) saveUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return uint(id), nil
}
