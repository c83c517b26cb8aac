// Package desk coordinates the two paginated book views (active and trash)
// against the Books API. All state is owned by a Controller and mutated only
// from the bubbletea update loop.
package desk

import (
	"fmt"
	"strings"
)

// Tab identifies one of the two list views.
type Tab int

const (
	TabActive Tab = iota
	TabTrash
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabActive, TabTrash}

func (t Tab) String() string {
	switch t {
	case TabActive:
		return "active"
	case TabTrash:
		return "trash"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// PageSizeKey is the page-size selection of a tab.
type PageSizeKey int

const (
	PageSize10  PageSizeKey = 10
	PageSize25  PageSizeKey = 25
	PageSize50  PageSizeKey = 50
	PageSizeAll PageSizeKey = -1 // every matching record on one page
)

// PageSizeKeys lists the selectable sizes in cycling order.
var PageSizeKeys = []PageSizeKey{PageSize10, PageSize25, PageSize50, PageSizeAll}

// ParsePageSizeKey accepts "10", "25", "50" and "all" (any case).
func ParsePageSizeKey(s string) (PageSizeKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "10":
		return PageSize10, nil
	case "25":
		return PageSize25, nil
	case "50":
		return PageSize50, nil
	case "all":
		return PageSizeAll, nil
	}
	return 0, fmt.Errorf("invalid page size %q (want 10, 25, 50 or all)", s)
}

func (k PageSizeKey) String() string {
	if k == PageSizeAll {
		return "all"
	}
	return fmt.Sprintf("%d", int(k))
}

// Next returns the following key in PageSizeKeys, wrapping around.
func (k PageSizeKey) Next() PageSizeKey {
	for i, key := range PageSizeKeys {
		if key == k {
			return PageSizeKeys[(i+1)%len(PageSizeKeys)]
		}
	}
	return PageSize10
}

// TabState is the pagination state of one tab.
//
// Invariants after Recompute: SizeKey == PageSizeAll implies
// PageSize == max(1, Total) and Page == 1; otherwise PageSize is the numeric
// key. 1 <= Page <= TotalPages().
type TabState struct {
	Page     int
	SizeKey  PageSizeKey
	PageSize int
	Total    int
}

// NewTabState returns page 1 of an empty result with the given size.
func NewTabState(key PageSizeKey) TabState {
	s := TabState{Page: 1, SizeKey: key}
	s.Recompute(0)
	return s
}

// Recompute stores a fresh server total, derives the effective page size
// and clamps the page into range.
func (s *TabState) Recompute(total int) {
	if total < 0 {
		total = 0
	}
	s.Total = total
	if s.SizeKey == PageSizeAll {
		s.PageSize = max(1, total)
		s.Page = 1
	} else {
		s.PageSize = int(s.SizeKey)
	}
	if s.Page < 1 {
		s.Page = 1
	}
	s.Page = min(s.Page, s.TotalPages())
}

// TotalPages is ceil(Total/PageSize), at least 1.
func (s TabState) TotalPages() int {
	if s.Total == 0 || s.PageSize < 1 {
		return 1
	}
	return (s.Total + s.PageSize - 1) / s.PageSize
}

// Window returns the limit and offset of the current page.
func (s TabState) Window() (limit, offset int) {
	if s.SizeKey == PageSizeAll {
		return max(1, s.Total), 0
	}
	return s.PageSize, (s.Page - 1) * s.PageSize
}

// Range returns the 1-based positions of the first and last visible record.
// Start is 0 for an empty result.
func (s TabState) Range() (start, end int) {
	if s.Total > 0 {
		start = (s.Page-1)*s.PageSize + 1
	}
	if s.SizeKey == PageSizeAll {
		return start, s.Total
	}
	return start, min(s.Page*s.PageSize, s.Total)
}

// HasPrev reports whether the previous-page control is enabled.
func (s TabState) HasPrev() bool {
	return s.SizeKey != PageSizeAll && s.Page > 1
}

// HasNext reports whether the next-page control is enabled.
func (s TabState) HasNext() bool {
	_, end := s.Range()
	return s.SizeKey != PageSizeAll && end < s.Total
}

// Pager is the display state of a tab's pagination controls.
type Pager struct {
	Text        string
	Page        int
	Pages       int
	SizeKey     PageSizeKey
	PrevEnabled bool
	NextEnabled bool
}

// Pager renders "{label} {start}–{end} {of} {total}" plus control state.
func (s TabState) Pager(label, of string) Pager {
	start, end := s.Range()
	return Pager{
		Text:        fmt.Sprintf("%s %d–%d %s %d", label, start, end, of, s.Total),
		Page:        s.Page,
		Pages:       s.TotalPages(),
		SizeKey:     s.SizeKey,
		PrevEnabled: s.HasPrev(),
		NextEnabled: s.HasNext(),
	}
}
