package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Query selects a filtered slice of either the active list or the trash.
type Query struct {
	Trash  bool
	Q      string
	From   string // YYYY-MM-DD, inclusive
	To     string // YYYY-MM-DD, inclusive
	Limit  int
	Offset int
}

func (q Query) path(count bool) string {
	p := "/api/books"
	if q.Trash {
		p += "/trash"
	}
	if count {
		p += "/count"
	}
	return p
}

// values shapes the query string. The trash endpoints filter on deletion
// date, the active ones on creation date.
func (q Query) values(paged bool) url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(q.Q); s != "" {
		v.Set("q", s)
	}
	fromKey, toKey := "created_from", "created_to"
	if q.Trash {
		fromKey, toKey = "deleted_from", "deleted_to"
	}
	if q.From != "" {
		v.Set(fromKey, q.From)
	}
	if q.To != "" {
		v.Set(toKey, q.To)
	}
	if paged {
		v.Set("limit", strconv.Itoa(q.Limit))
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

type countResponse struct {
	Total int `json:"total"`
}

// Count returns the number of records matching q. Limit and Offset are ignored.
func (c *Client) Count(ctx context.Context, q Query) (int, error) {
	var out countResponse
	if err := c.doJSON(ctx, http.MethodGet, q.path(true), q.values(false), nil, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}

// List returns one page of records matching q. A Limit above the server cap
// is fetched in consecutive chunks and concatenated.
func (c *Client) List(ctx context.Context, q Query) ([]Book, error) {
	if q.Limit <= c.maxLimit {
		return c.list(ctx, q)
	}

	want := q.Limit
	var all []Book
	for len(all) < want {
		chunk := q
		chunk.Offset = q.Offset + len(all)
		chunk.Limit = min(c.maxLimit, want-len(all))
		books, err := c.list(ctx, chunk)
		if err != nil {
			return nil, err
		}
		all = append(all, books...)
		if len(books) < chunk.Limit {
			break
		}
	}
	return all, nil
}

func (c *Client) list(ctx context.Context, q Query) ([]Book, error) {
	var books []Book
	if err := c.doJSON(ctx, http.MethodGet, q.path(false), q.values(true), nil, &books); err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get fetches a single record; includeDeleted also finds trashed ones.
func (c *Client) Get(ctx context.Context, id int64, includeDeleted bool) (*Book, error) {
	var query url.Values
	if includeDeleted {
		query = url.Values{"include_deleted": {"true"}}
	}
	var b Book
	if err := c.doJSON(ctx, http.MethodGet, bookPath(id), query, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create adds a new record.
func (c *Client) Create(ctx context.Context, nb NewBook) (*Book, error) {
	var b Book
	if err := c.doJSON(ctx, http.MethodPost, "/api/books", nil, nb, &b); err != nil {
		return nil, fmt.Errorf("create %q: %w", nb.Title, err)
	}
	return &b, nil
}

// Update applies a partial update to an active record.
func (c *Client) Update(ctx context.Context, id int64, p BookPatch) (*Book, error) {
	var b Book
	if err := c.doJSON(ctx, http.MethodPut, bookPath(id), nil, p, &b); err != nil {
		return nil, fmt.Errorf("update book %d: %w", id, err)
	}
	return &b, nil
}

// Delete moves a record to the trash. deletedBy may be empty.
func (c *Client) Delete(ctx context.Context, id int64, deletedBy string) error {
	var query url.Values
	if deletedBy != "" {
		query = url.Values{"deleted_by": {deletedBy}}
	}
	if err := c.doJSON(ctx, http.MethodDelete, bookPath(id), query, nil, nil); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}

// Restore moves a record from the trash back to the active list.
func (c *Client) Restore(ctx context.Context, id int64) (*Book, error) {
	var b Book
	if err := c.doJSON(ctx, http.MethodPut, bookPath(id)+"/restore", nil, nil, &b); err != nil {
		return nil, fmt.Errorf("restore book %d: %w", id, err)
	}
	return &b, nil
}

// HardDelete permanently removes a trashed record.
// This is a destructive operation that cannot be undone.
func (c *Client) HardDelete(ctx context.Context, id int64) error {
	if err := c.doJSON(ctx, http.MethodDelete, bookPath(id)+"/hard_delete", nil, nil, nil); err != nil {
		return fmt.Errorf("hard delete book %d: %w", id, err)
	}
	return nil
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health returns the status string reported by /health ("ok" if absent).
func (c *Client) Health(ctx context.Context) (string, error) {
	var out healthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return "", err
	}
	if out.Status == "" {
		return "ok", nil
	}
	return out.Status, nil
}

func bookPath(id int64) string {
	return "/api/books/" + strconv.FormatInt(id, 10)
}
