package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// Book is one record as returned by the Books API.
type Book struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	CreatedBy string     `json:"created_by"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy string     `json:"deleted_by,omitempty"`
}

// UnmarshalJSON decodes ISO-8601 timestamps with or without a zone
// designator. Zone-less values are taken as UTC; null stays nil.
func (b *Book) UnmarshalJSON(data []byte) error {
	type plain Book
	var w struct {
		plain
		CreatedAt *string `json:"created_at"`
		DeletedAt *string `json:"deleted_at"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*b = Book(w.plain)

	var err error
	if b.CreatedAt, err = parseTimestamp(w.CreatedAt); err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	if b.DeletedAt, err = parseTimestamp(w.DeletedAt); err != nil {
		return fmt.Errorf("deleted_at: %w", err)
	}
	return nil
}

// Fractional seconds are accepted by time.Parse even when the layout omits them.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized timestamp %q", *s)
}

// NewBook is the body of a create request.
type NewBook struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	CreatedBy string `json:"created_by,omitempty"`
}

// BookPatch is a partial update; nil fields are not sent.
type BookPatch struct {
	Title     *string `json:"title,omitempty"`
	Author    *string `json:"author,omitempty"`
	CreatedBy *string `json:"created_by,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p BookPatch) Empty() bool {
	return p.Title == nil && p.Author == nil && p.CreatedBy == nil
}
