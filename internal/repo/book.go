package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mlazarev/book-library/internal/models"
	"github.com/mlazarev/book-library/internal/util"
)

// BookFilter describes one catalog listing request. A zero-value field means
// "no constraint"; present filters combine with AND, the free-text search is an
// OR across title, author and ISBN.
type BookFilter struct {
	Search        string
	Author        string
	ISBN          string
	PublishedYear *int
	Page          int
	Limit         int
}

type BookPage struct {
	Books       []models.Book
	TotalBooks  int64
	CurrentPage int
	TotalPages  int
}

func (r *GormRepo) CreateBook(ctx context.Context, book *models.Book) error {
	if err := r.DB.WithContext(ctx).Create(book).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrISBNTaken
		}
		return err
	}
	return nil
}

func (r *GormRepo) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) UpdateBook(ctx context.Context, id uint, changes *models.Book) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}

	book.Title = changes.Title
	book.Author = changes.Author
	book.ISBN = changes.ISBN
	book.PublishedYear = changes.PublishedYear
	book.Introduction = changes.Introduction
	if changes.FilePath != "" {
		book.FilePath = changes.FilePath
	}

	if err := r.DB.WithContext(ctx).Save(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrISBNTaken
		}
		return nil, err
	}

	return &book, nil
}

func (r *GormRepo) DeleteBook(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Book{}, id)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ListBooks counts the full match set, then fetches one page window, both from
// the same parameter-bound predicate. The secondary id sort keeps pagination
// stable across equal titles.
func (r *GormRepo) ListBooks(ctx context.Context, f BookFilter) (*BookPage, error) {
	var total int64
	if err := r.applyBookFilter(r.DB.WithContext(ctx).Model(&models.Book{}), f).
		Count(&total).Error; err != nil {
		return nil, err
	}

	offset, limit := util.Calculate(f.Page, f.Limit)

	books := make([]models.Book, 0, limit)
	if err := r.applyBookFilter(r.DB.WithContext(ctx).Model(&models.Book{}), f).
		Order("title ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&books).Error; err != nil {
		return nil, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}

	return &BookPage{
		Books:       books,
		TotalBooks:  total,
		CurrentPage: page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (r *GormRepo) applyBookFilter(tx *gorm.DB, f BookFilter) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("lower(title) LIKE ? OR lower(author) LIKE ? OR lower(isbn) LIKE ?",
			pattern, pattern, pattern)
	}
	if f.Author != "" {
		tx = tx.Where("author = ?", f.Author)
	}
	if f.ISBN != "" {
		tx = tx.Where("isbn = ?", f.ISBN)
	}
	if f.PublishedYear != nil {
		tx = tx.Where("published_year = ?", *f.PublishedYear)
	}
	return tx
}
