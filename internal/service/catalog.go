package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/mlazarev/book-library/internal/events"
	"github.com/mlazarev/book-library/internal/logging"
	"github.com/mlazarev/book-library/internal/models"
	"github.com/mlazarev/book-library/internal/repo"
	"github.com/mlazarev/book-library/internal/search"
)

var isbnPattern = regexp.MustCompile(`^\d{13}$`)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
	Index  *search.BookIndex
}

func validateBook(book *models.Book) error {
	if book.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if book.Author == "" {
		return fmt.Errorf("%w: author is required", ErrValidation)
	}
	if !isbnPattern.MatchString(book.ISBN) {
		return fmt.Errorf("%w: isbn must be exactly 13 digits", ErrValidation)
	}
	return nil
}

func (s *CatalogService) CreateBook(ctx context.Context, book *models.Book) error {
	if err := validateBook(book); err != nil {
		return err
	}

	if err := s.Repo.CreateBook(ctx, book); err != nil {
		return err
	}

	s.afterMutation(ctx, "book_created", book)
	return nil
}

func (s *CatalogService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	return s.Repo.GetBook(ctx, id)
}

func (s *CatalogService) ListBooks(ctx context.Context, f repo.BookFilter) (*repo.BookPage, error) {
	return s.Repo.ListBooks(ctx, f)
}

func (s *CatalogService) UpdateBook(ctx context.Context, id uint, changes *models.Book) (*models.Book, error) {
	if err := validateBook(changes); err != nil {
		return nil, err
	}

	book, err := s.Repo.UpdateBook(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "book_updated", book)
	return book, nil
}

func (s *CatalogService) DeleteBook(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteBook(ctx, id); err != nil {
		return err
	}

	l := logging.FromContext(ctx).With("svc", "catalog.delete_book")
	if err := s.Events.Publish(ctx, events.TopicBookEvents, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":   "book_deleted",
		"bookID": id,
	}); err != nil {
		l.Warn("book_event_publish_failed", "error", err)
	}
	if err := s.Index.DeleteBook(ctx, id); err != nil {
		l.Warn("book_index_delete_failed", "error", err)
	}
	return nil
}

func (s *CatalogService) Suggest(ctx context.Context, query string, size int) ([]models.Book, error) {
	return s.Index.Suggest(ctx, query, size)
}

// afterMutation fans a successful catalog change out to the event stream and
// the suggestion index. Both are best-effort: the SQL write already succeeded.
func (s *CatalogService) afterMutation(ctx context.Context, eventType string, book *models.Book) {
	l := logging.FromContext(ctx).With("svc", "catalog."+eventType)

	if err := s.Events.Publish(ctx, events.TopicBookEvents, book.ISBN, map[string]any{
		"type":   eventType,
		"bookID": book.ID,
		"title":  book.Title,
	}); err != nil {
		l.Warn("book_event_publish_failed", "error", err)
	}

	if err := s.Index.IndexBook(ctx, book); err != nil {
		l.Warn("book_index_failed", "error", err)
	}
}
