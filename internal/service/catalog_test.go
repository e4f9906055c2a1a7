package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mlazarev/book-library/internal/models"
)

func newTestCatalogService(t *testing.T) *CatalogService {
	return &CatalogService{Repo: newTestRepo(t)}
}

func TestCatalogService_CreateBook_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		book models.Book
	}{
		{name: "missing title", book: models.Book{Author: "A", ISBN: "9780000000001"}},
		{name: "missing author", book: models.Book{Title: "T", ISBN: "9780000000001"}},
		{name: "short isbn", book: models.Book{Title: "T", Author: "A", ISBN: "12345"}},
		{name: "non-digit isbn", book: models.Book{Title: "T", Author: "A", ISBN: "97800000000ab"}},
		{name: "14-digit isbn", book: models.Book{Title: "T", Author: "A", ISBN: "97800000000012"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			book := tc.book
			assert.ErrorIs(t, svc.CreateBook(ctx, &book), ErrValidation)
		})
	}
}

func TestCatalogService_CreateThenGetRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	year := 1937
	book := models.Book{
		Title:         "The Hobbit",
		Author:        "J.R.R. Tolkien",
		ISBN:          "9780000000001",
		PublishedYear: &year,
		Introduction:  "There and back again.",
		FilePath:      "/uploads/hobbit.pdf",
	}
	require.NoError(t, svc.CreateBook(ctx, &book))
	require.NotZero(t, book.ID)

	got, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)

	assert.Equal(t, book.Title, got.Title)
	assert.Equal(t, book.Author, got.Author)
	assert.Equal(t, book.ISBN, got.ISBN)
	require.NotNil(t, got.PublishedYear)
	assert.Equal(t, 1937, *got.PublishedYear)
	assert.Equal(t, book.Introduction, got.Introduction)
	assert.Equal(t, book.FilePath, got.FilePath)
}

func TestCatalogService_UpdateBook_ValidatesISBN(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	book := models.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "9780000000002"}
	require.NoError(t, svc.CreateBook(ctx, &book))

	changes := book
	changes.ISBN = "bad"
	_, err := svc.UpdateBook(ctx, book.ID, &changes)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCommentService_Validation(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CommentService{Repo: r}
	ctx := context.Background()

	book := models.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "9780000000002"}
	require.NoError(t, r.CreateBook(ctx, &book))

	_, err := svc.CreateComment(ctx, book.ID, 1, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateComment(ctx, 9999, 1, "great read")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	comment, err := svc.CreateComment(ctx, book.ID, 1, "great read")
	require.NoError(t, err)
	assert.Equal(t, "great read", comment.Text)
	assert.Equal(t, book.ID, comment.BookID)
}

func TestCommentService_ListOnMissingBook(t *testing.T) {
	t.Parallel()

	svc := &CommentService{Repo: newTestRepo(t)}

	_, err := svc.ListComments(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
