package desk

import (
	"strings"
	"time"

	"github.com/sternenweber/bookdesk/internal/api"
)

// DateLayout is the format of the date filters.
const DateLayout = "2006-01-02"

// Filter is the search text and date range of one tab, read fresh from the
// input widgets on every refresh.
type Filter struct {
	Query string
	From  string
	To    string
}

// FilterSource reads the current filter inputs of a tab.
type FilterSource interface {
	Filter(tab Tab) Filter
	ClearDates(tab Tab)
}

// Validate checks that present dates are YYYY-MM-DD and ordered.
func (f Filter) Validate() error {
	f.From, f.To = strings.TrimSpace(f.From), strings.TrimSpace(f.To)
	var from, to time.Time
	var err error
	if f.From != "" {
		if from, err = time.Parse(DateLayout, f.From); err != nil {
			return &ValidationError{Field: "from", Value: f.From}
		}
	}
	if f.To != "" {
		if to, err = time.Parse(DateLayout, f.To); err != nil {
			return &ValidationError{Field: "to", Value: f.To}
		}
	}
	if f.From != "" && f.To != "" && to.Before(from) {
		return &ValidationError{Field: "range", Value: f.From + ".." + f.To}
	}
	return nil
}

// APIQuery shapes an API query for tab. Blank search text is dropped by the client.
func (f Filter) APIQuery(tab Tab, limit, offset int) api.Query {
	return api.Query{
		Trash:  tab == TabTrash,
		Q:      strings.TrimSpace(f.Query),
		From:   strings.TrimSpace(f.From),
		To:     strings.TrimSpace(f.To),
		Limit:  limit,
		Offset: offset,
	}
}
