package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/mlazarev/book-library/internal/models"
)

const DefaultIndex = "books"

// BookIndex mirrors catalog mutations into Elasticsearch and answers typeahead
// suggestions. It is a side index only: the SQL catalog stays the source of
// truth for listings. A nil *BookIndex is a valid no-op.
type BookIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewBookIndex(es *elasticsearch.Client, index string) *BookIndex {
	if es == nil {
		return nil
	}
	if index == "" {
		index = DefaultIndex
	}
	return &BookIndex{ES: es, Index: index}
}

func (ix *BookIndex) IndexBook(ctx context.Context, book *models.Book) error {
	if ix == nil {
		return nil
	}

	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("index book: %w", err)
	}

	res, err := ix.ES.Index(
		ix.Index,
		bytes.NewReader(data),
		ix.ES.Index.WithDocumentID(strconv.FormatUint(uint64(book.ID), 10)),
		ix.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index book: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index book: %s", res.Status())
	}
	return nil
}

func (ix *BookIndex) DeleteBook(ctx context.Context, id uint) error {
	if ix == nil {
		return nil
	}

	res, err := ix.ES.Delete(
		ix.Index,
		strconv.FormatUint(uint64(id), 10),
		ix.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete book: %s", res.Status())
	}
	return nil
}

func (ix *BookIndex) Suggest(ctx context.Context, query string, size int) ([]models.Book, error) {
	if ix == nil {
		return []models.Book{}, nil
	}
	if size < 1 {
		size = 5
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "author"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Index),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("suggest: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Book `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	books := make([]models.Book, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		books[i] = hit.Source
	}
	return books, nil
}
