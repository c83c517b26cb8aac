package desk

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sternenweber/bookdesk/internal/api"
)

// fakeBooks is an in-memory Books API.
type fakeBooks struct {
	active []api.Book
	trash  []api.Book
	nextID int64

	counts  []api.Query
	lists   []api.Query
	creates []api.NewBook
	updates []api.BookPatch
	deletes []int64
	purges  []int64

	failCount  error
	failList   error
	failCreate error
	failHealth error
}

func newFakeBooks(n int) *fakeBooks {
	f := &fakeBooks{}
	for i := 1; i <= n; i++ {
		f.nextID++
		f.active = append(f.active, api.Book{ID: f.nextID, Title: fmt.Sprintf("Book %02d", i), Author: "A"})
	}
	return f
}

func (f *fakeBooks) match(q api.Query) []api.Book {
	src := f.active
	if q.Trash {
		src = f.trash
	}
	var out []api.Book
	for _, b := range src {
		if q.Q == "" || strings.Contains(strings.ToLower(b.Title), strings.ToLower(q.Q)) {
			out = append(out, b)
		}
	}
	return out
}

func (f *fakeBooks) Count(_ context.Context, q api.Query) (int, error) {
	f.counts = append(f.counts, q)
	if f.failCount != nil {
		return 0, f.failCount
	}
	return len(f.match(q)), nil
}

func (f *fakeBooks) List(_ context.Context, q api.Query) ([]api.Book, error) {
	f.lists = append(f.lists, q)
	if f.failList != nil {
		return nil, f.failList
	}
	all := f.match(q)
	if q.Offset >= len(all) {
		return []api.Book{}, nil
	}
	end := min(q.Offset+q.Limit, len(all))
	return all[q.Offset:end], nil
}

func (f *fakeBooks) Create(_ context.Context, nb api.NewBook) (*api.Book, error) {
	f.creates = append(f.creates, nb)
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.nextID++
	b := api.Book{ID: f.nextID, Title: nb.Title, Author: nb.Author, CreatedBy: nb.CreatedBy}
	f.active = append([]api.Book{b}, f.active...)
	return &b, nil
}

func (f *fakeBooks) Update(_ context.Context, id int64, p api.BookPatch) (*api.Book, error) {
	f.updates = append(f.updates, p)
	for i := range f.active {
		if f.active[i].ID == id {
			if p.Title != nil {
				f.active[i].Title = *p.Title
			}
			return &f.active[i], nil
		}
	}
	return nil, &api.RequestError{Method: http.MethodPut, Status: http.StatusNotFound}
}

func (f *fakeBooks) Delete(_ context.Context, id int64, _ string) error {
	f.deletes = append(f.deletes, id)
	for i, b := range f.active {
		if b.ID == id {
			f.active = append(f.active[:i], f.active[i+1:]...)
			f.trash = append([]api.Book{b}, f.trash...)
			return nil
		}
	}
	return &api.RequestError{Method: http.MethodDelete, Status: http.StatusNotFound}
}

func (f *fakeBooks) Restore(_ context.Context, id int64) (*api.Book, error) {
	for i, b := range f.trash {
		if b.ID == id {
			f.trash = append(f.trash[:i], f.trash[i+1:]...)
			f.active = append([]api.Book{b}, f.active...)
			return &b, nil
		}
	}
	return nil, &api.RequestError{Method: http.MethodPut, Status: http.StatusNotFound}
}

func (f *fakeBooks) HardDelete(_ context.Context, id int64) error {
	f.purges = append(f.purges, id)
	for i, b := range f.trash {
		if b.ID == id {
			f.trash = append(f.trash[:i], f.trash[i+1:]...)
			return nil
		}
	}
	return &api.RequestError{Method: http.MethodDelete, Status: http.StatusConflict}
}

func (f *fakeBooks) Health(context.Context) (string, error) {
	if f.failHealth != nil {
		return "", f.failHealth
	}
	return "ok", nil
}

// fakeSink records what the Controller displays.
type fakeSink struct {
	rows    map[Tab][]api.Book
	pagers  map[Tab]Pager
	shown   int
	notices []Notice
	health  Health
	prompts []string
	closed  int
	cleared []Tab
	filters map[Tab]Filter
}

func newFakeSink() *fakeSink {
	return &fakeSink{
		rows:    map[Tab][]api.Book{},
		pagers:  map[Tab]Pager{},
		filters: map[Tab]Filter{},
	}
}

func (s *fakeSink) ShowRows(tab Tab, books []api.Book) { s.rows[tab] = books; s.shown++ }
func (s *fakeSink) ShowPager(tab Tab, p Pager) { s.pagers[tab] = p }
func (s *fakeSink) ShowHealth(h Health) { s.health = h }
func (s *fakeSink) Notify(n Notice) { s.notices = append(s.notices, n) }
func (s *fakeSink) AskConfirm(prompt string) { s.prompts = append(s.prompts, prompt) }
func (s *fakeSink) CloseForm() { s.closed++ }
func (s *fakeSink) ClearSelection(tab Tab) { s.cleared = append(s.cleared, tab) }
func (s *fakeSink) Filter(tab Tab) Filter { return s.filters[tab] }
func (s *fakeSink) ClearDates(tab Tab) {
	f := s.filters[tab]
	f.From, f.To = "", ""
	s.filters[tab] = f
}

func (s *fakeSink) lastNotice(t *testing.T) Notice {
	t.Helper()
	if len(s.notices) == 0 {
		t.Fatal("no notice shown")
	}
	return s.notices[len(s.notices)-1]
}

func newTestController(books *fakeBooks) (*Controller, *fakeSink) {
	sink := newFakeSink()
	c := New(books, sink, sink, Options{
		PageSize: PageSize10,
		Debounce: 10 * time.Millisecond,
		Labels:   LabelsFor("de"),
	})
	return c, sink
}

// run executes cmd and feeds every resulting message back into c until no
// work is left, the way the bubbletea runtime would.
func run(c *Controller, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		queue = append(queue, c.Update(msg))
	}
}

func ids(books []api.Book) []int64 {
	out := make([]int64, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func contains(books []api.Book, id int64) bool {
	for _, b := range books {
		if b.ID == id {
			return true
		}
	}
	return false
}

func TestRefresh_PagingScenario(t *testing.T) {
	books := newFakeBooks(25)
	c, sink := newTestController(books)

	run(c, c.Init())

	rows := sink.rows[TabActive]
	if len(rows) != 10 || rows[0].ID != 1 || rows[9].ID != 10 {
		t.Fatalf("page 1 rows = %v, want 1..10", ids(rows))
	}
	p := sink.pagers[TabActive]
	if p.Text != "Bücher 1–10 von 25" {
		t.Errorf("pager = %q", p.Text)
	}
	if !p.NextEnabled || p.PrevEnabled {
		t.Errorf("page 1: next=%v prev=%v", p.NextEnabled, p.PrevEnabled)
	}
	if !sink.health.OK || sink.health.Text != "Backend: ok" {
		t.Errorf("health = %+v", sink.health)
	}

	run(c, c.NextPage(TabActive))
	run(c, c.NextPage(TabActive))

	rows = sink.rows[TabActive]
	if len(rows) != 5 || rows[0].ID != 21 || rows[4].ID != 25 {
		t.Fatalf("page 3 rows = %v, want 21..25", ids(rows))
	}
	p = sink.pagers[TabActive]
	if p.Text != "Bücher 21–25 von 25" {
		t.Errorf("pager = %q", p.Text)
	}
	if p.NextEnabled {
		t.Error("next should be disabled on the last page")
	}
	if cmd := c.NextPage(TabActive); cmd != nil {
		t.Error("NextPage on the last page should be a no-op")
	}
}

func TestRefresh_CountPrecedesPage(t *testing.T) {
	books := newFakeBooks(3)
	c, _ := newTestController(books)

	msg := c.Refresh(TabActive)()
	if len(books.counts) != 1 || len(books.lists) != 0 {
		t.Fatalf("after count cmd: counts=%d lists=%d", len(books.counts), len(books.lists))
	}
	if books.counts[0].Limit != 0 || books.counts[0].Offset != 0 {
		t.Errorf("count query carries paging: %+v", books.counts[0])
	}
	run(c, c.Update(msg))
	if len(books.lists) != 1 {
		t.Fatalf("lists = %d, want 1", len(books.lists))
	}
}

func TestRefresh_AllUsesTotalAsLimit(t *testing.T) {
	books := newFakeBooks(37)
	c, sink := newTestController(books)
	run(c, c.NextPage(TabActive)) // disabled: no total yet
	run(c, c.Refresh(TabActive))
	run(c, c.NextPage(TabActive))

	run(c, c.SetPageSize(TabActive, PageSizeAll))

	last := books.lists[len(books.lists)-1]
	if last.Limit != 37 || last.Offset != 0 {
		t.Errorf("list query = limit %d offset %d, want 37/0", last.Limit, last.Offset)
	}
	if st := c.State(TabActive); st.Page != 1 || st.PageSize != 37 {
		t.Errorf("state = %+v", st)
	}
	if got := len(sink.rows[TabActive]); got != 37 {
		t.Errorf("rows = %d, want 37", got)
	}
	p := sink.pagers[TabActive]
	if p.PrevEnabled || p.NextEnabled {
		t.Error("controls must be disabled for all")
	}
}

func TestRefresh_StaleResultDiscarded(t *testing.T) {
	books := newFakeBooks(0)
	for _, title := range []string{"alpha", "beta", "alphabet"} {
		books.nextID++
		books.active = append(books.active, api.Book{ID: books.nextID, Title: title})
	}
	c, sink := newTestController(books)

	sink.filters[TabActive] = Filter{Query: "alpha"}
	older := c.Refresh(TabActive)
	sink.filters[TabActive] = Filter{Query: "beta"}
	newer := c.Refresh(TabActive)

	run(c, newer)
	shown := sink.shown

	// The older refresh resolves late and must not clobber the display.
	run(c, older)
	if sink.shown != shown {
		t.Errorf("stale refresh rendered rows: %v", ids(sink.rows[TabActive]))
	}
	if rows := sink.rows[TabActive]; len(rows) != 1 || rows[0].Title != "beta" {
		t.Errorf("rows = %v, want only beta", rows)
	}
	if st := c.State(TabActive); st.Total != 1 {
		t.Errorf("Total = %d, want 1 from the newer refresh", st.Total)
	}
}

func TestRefresh_FailureKeepsRows(t *testing.T) {
	books := newFakeBooks(5)
	c, sink := newTestController(books)
	run(c, c.Refresh(TabActive))
	before := ids(sink.rows[TabActive])

	books.failCount = &api.TransportError{Method: http.MethodGet, Path: "/api/books/count", Err: fmt.Errorf("connection refused")}
	run(c, c.Refresh(TabActive))

	if got := ids(sink.rows[TabActive]); len(got) != len(before) {
		t.Errorf("rows changed after failure: %v -> %v", before, got)
	}
	n := sink.lastNotice(t)
	if n.Level != LevelError || n.Text != "Bücher konnten nicht geladen werden." {
		t.Errorf("notice = %+v", n)
	}
	if sink.health.OK || sink.health.Text != "Backend: nicht erreichbar" {
		t.Errorf("health = %+v, want degraded", sink.health)
	}
}

func TestNextPage_FailedLoadKeepsPage(t *testing.T) {
	books := newFakeBooks(30)
	c, sink := newTestController(books)
	run(c, c.Refresh(TabActive))

	books.failCount = &api.RequestError{Method: http.MethodGet, Path: "/api/books/count", Status: http.StatusBadGateway}
	run(c, c.NextPage(TabActive))
	if st := c.State(TabActive); st.Page != 1 {
		t.Errorf("Page = %d after failed count, want 1", st.Page)
	}
	books.failCount = nil

	books.failList = &api.RequestError{Method: http.MethodGet, Path: "/api/books", Status: http.StatusBadGateway}
	run(c, c.NextPage(TabActive))
	if st := c.State(TabActive); st.Page != 1 {
		t.Errorf("Page = %d after failed page fetch, want 1", st.Page)
	}
	if p := sink.pagers[TabActive]; p.Text != "Bücher 1–10 von 30" {
		t.Errorf("pager = %q, want unchanged", p.Text)
	}
	books.failList = nil

	run(c, c.NextPage(TabActive))
	if p := sink.pagers[TabActive]; p.Text != "Bücher 11–20 von 30" {
		t.Errorf("pager = %q, want page 2 after recovery", p.Text)
	}
	if rows := sink.rows[TabActive]; len(rows) != 10 || rows[0].ID != 11 {
		t.Errorf("rows = %v, want 11..20", ids(rows))
	}
}

func TestSetPageSize_FailedLoadKeepsSize(t *testing.T) {
	books := newFakeBooks(30)
	c, _ := newTestController(books)
	run(c, c.Refresh(TabActive))

	books.failCount = &api.TransportError{Method: http.MethodGet, Path: "/api/books/count", Err: fmt.Errorf("timeout")}
	run(c, c.SetPageSize(TabActive, PageSize25))
	if st := c.State(TabActive); st.SizeKey != PageSize10 || st.PageSize != 10 {
		t.Errorf("state = %+v, want size 10 kept", st)
	}
}

func TestRefresh_InvalidDatesNeverSent(t *testing.T) {
	books := newFakeBooks(30)
	c, sink := newTestController(books)
	run(c, c.Refresh(TabActive))
	calls := len(books.counts)

	sink.filters[TabActive] = Filter{Query: "B", From: "gestern"}
	run(c, c.QueryTyped(TabActive))
	run(c, c.NextPage(TabActive))
	run(c, c.SwitchTab(TabTrash))
	run(c, c.SwitchTab(TabActive))
	if len(books.counts) != calls+1 {
		t.Fatalf("count calls = %d, want only the trash refresh", len(books.counts)-calls)
	}
	if !books.counts[len(books.counts)-1].Trash {
		t.Error("the one request sent should be for the trash tab")
	}
	if n := sink.lastNotice(t); !IsValidation(n.Err) {
		t.Errorf("notice = %+v, want validation warning", n)
	}
	if st := c.State(TabActive); st.Page != 1 {
		t.Errorf("Page = %d, want 1", st.Page)
	}
}

func TestQueryTyped_Debounces(t *testing.T) {
	books := newFakeBooks(12)
	c, sink := newTestController(books)

	var ticks []tea.Cmd
	for _, text := range []string{"B", "Bo", "Book 1"} {
		sink.filters[TabActive] = Filter{Query: text}
		ticks = append(ticks, c.QueryTyped(TabActive))
	}
	for _, tick := range ticks {
		run(c, tick)
	}

	if len(books.counts) != 1 {
		t.Fatalf("count calls = %d, want exactly 1", len(books.counts))
	}
	if books.counts[0].Q != "Book 1" {
		t.Errorf("q = %q, want last keystroke %q", books.counts[0].Q, "Book 1")
	}
	if got := len(sink.rows[TabActive]); got != 3 {
		t.Errorf("rows = %d, want 3 (Book 10, 11, 12)", got)
	}
}

func TestSubmitSearch_CancelsPendingAndResetsPage(t *testing.T) {
	books := newFakeBooks(30)
	c, sink := newTestController(books)
	run(c, c.Refresh(TabActive))
	run(c, c.NextPage(TabActive))

	tick := c.QueryTyped(TabActive)
	sink.filters[TabActive] = Filter{Query: "Book"}
	run(c, c.SubmitSearch(TabActive))
	calls := len(books.counts)
	run(c, tick)

	if len(books.counts) != calls {
		t.Error("pending debounce fired after an explicit search")
	}
	if st := c.State(TabActive); st.Page != 1 {
		t.Errorf("Page = %d, want 1", st.Page)
	}
}

func TestDatesChanged(t *testing.T) {
	books := newFakeBooks(30)
	c, sink := newTestController(books)
	run(c, c.Refresh(TabActive))
	run(c, c.NextPage(TabActive))
	calls := len(books.counts)

	sink.filters[TabActive] = Filter{From: "gestern"}
	run(c, c.DatesChanged(TabActive))
	if len(books.counts) != calls {
		t.Error("invalid date reached the network")
	}
	if n := sink.lastNotice(t); n.Level != LevelWarning || !IsValidation(n.Err) {
		t.Errorf("notice = %+v, want validation warning", n)
	}

	sink.filters[TabActive] = Filter{From: "2024-01-01", To: "2024-12-31"}
	run(c, c.DatesChanged(TabActive))
	last := books.counts[len(books.counts)-1]
	if last.From != "2024-01-01" || last.To != "2024-12-31" {
		t.Errorf("count query = %+v", last)
	}
	if st := c.State(TabActive); st.Page != 1 {
		t.Errorf("Page = %d, want 1 after date change", st.Page)
	}

	run(c, c.NextPage(TabActive))
	sink.filters[TabActive] = Filter{Query: "Book", From: "2024-01-01"}
	run(c, c.ClearDates(TabActive))
	last = books.counts[len(books.counts)-1]
	if last.From != "" || last.To != "" || last.Q != "Book" {
		t.Errorf("count query after ClearDates = %+v", last)
	}
	if st := c.State(TabActive); st.Page != 1 {
		t.Errorf("Page = %d, want 1 after clearing dates", st.Page)
	}
}

func TestSwitchTab_KeepsOtherState(t *testing.T) {
	books := newFakeBooks(30)
	c, sink := newTestController(books)
	run(c, c.Refresh(TabActive))
	run(c, c.NextPage(TabActive))

	run(c, c.SwitchTab(TabTrash))
	if c.Active() != TabTrash {
		t.Fatalf("Active = %v, want trash", c.Active())
	}
	if !books.counts[len(books.counts)-1].Trash {
		t.Error("switching to trash should query the trash endpoints")
	}
	if p := sink.pagers[TabTrash]; p.Text != "Papierkorb 0–0 von 0" {
		t.Errorf("trash pager = %q", p.Text)
	}
	if st := c.State(TabActive); st.Page != 2 {
		t.Errorf("active Page = %d, want 2 preserved", st.Page)
	}
	if cmd := c.SwitchTab(TabTrash); cmd != nil {
		t.Error("switching to the displayed tab should do nothing")
	}
}

func TestCreate_EmptyTitleNeverSent(t *testing.T) {
	books := newFakeBooks(0)
	c, sink := newTestController(books)

	if cmd := c.Create(api.NewBook{Title: "   ", Author: "Herbert"}); cmd != nil {
		t.Error("Create returned a command for invalid input")
	}
	if len(books.creates) != 0 {
		t.Errorf("POST sent %d times, want 0", len(books.creates))
	}
	n := sink.lastNotice(t)
	if n.Level != LevelWarning || n.Text != "Bitte Titel und Autor ausfüllen." || !IsValidation(n.Err) {
		t.Errorf("notice = %+v", n)
	}
}

func TestCreate_SuccessResetsPageAndCloses(t *testing.T) {
	books := newFakeBooks(30)
	c, sink := newTestController(books)
	run(c, c.Refresh(TabActive))
	run(c, c.NextPage(TabActive))

	run(c, c.Create(api.NewBook{Title: " Dune ", Author: " Herbert "}))

	if len(books.creates) != 1 {
		t.Fatalf("creates = %d", len(books.creates))
	}
	if nb := books.creates[0]; nb.Title != "Dune" || nb.Author != "Herbert" || nb.CreatedBy != "system" {
		t.Errorf("sent %+v, want trimmed with default created_by", nb)
	}
	if sink.closed != 1 {
		t.Errorf("form closed %d times, want 1", sink.closed)
	}
	if st := c.State(TabActive); st.Page != 1 || st.Total != 31 {
		t.Errorf("state = %+v, want page 1 of 31", st)
	}
	if rows := sink.rows[TabActive]; len(rows) == 0 || rows[0].Title != "Dune" {
		t.Errorf("new book not on page 1: %v", rows)
	}
	if n := sink.lastNotice(t); n.Level != LevelSuccess {
		t.Errorf("notice = %+v", n)
	}
}

func TestCreate_FailureKeepsFormOpen(t *testing.T) {
	books := newFakeBooks(1)
	books.failCreate = &api.RequestError{Method: http.MethodPost, Path: "/api/books", Status: http.StatusConflict}
	c, sink := newTestController(books)

	run(c, c.Create(api.NewBook{Title: "Dune", Author: "Herbert"}))

	if sink.closed != 0 {
		t.Error("form closed after a failed create")
	}
	n := sink.lastNotice(t)
	if n.Level != LevelError || n.Text != "Buch konnte nicht angelegt werden." {
		t.Errorf("notice = %+v", n)
	}
	if !api.IsStatus(n.Err, http.StatusConflict) {
		t.Errorf("notice error = %v, want 409", n.Err)
	}
}

func TestEdit(t *testing.T) {
	books := newFakeBooks(3)
	c, sink := newTestController(books)
	title := "  Neu  "

	if cmd := c.Edit(nil, api.BookPatch{Title: &title}); cmd != nil {
		t.Error("Edit without selection returned a command")
	}
	if n := sink.lastNotice(t); n.Text != "Bitte eine Zeile auswählen." {
		t.Errorf("notice = %q", n.Text)
	}

	blank := " "
	if cmd := c.Edit(&books.active[0], api.BookPatch{Author: &blank}); cmd != nil {
		t.Error("Edit with a blank field returned a command")
	}

	sel := books.active[1]
	run(c, c.Edit(&sel, api.BookPatch{Title: &title}))
	if len(books.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(books.updates))
	}
	p := books.updates[0]
	if p.Title == nil || *p.Title != "Neu" || p.Author != nil || p.CreatedBy != nil {
		t.Errorf("patch = %+v, want only trimmed title", p)
	}
	if title != "  Neu  " {
		t.Error("Edit modified the caller's string")
	}
	if sink.closed != 1 {
		t.Errorf("form closed %d times, want 1", sink.closed)
	}
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	books := newFakeBooks(3)
	c, sink := newTestController(books)
	run(c, c.Refresh(TabActive))

	c.RequestDelete(nil)
	if c.Pending() {
		t.Fatal("confirmation pending without selection")
	}

	sel := books.active[0]
	c.RequestDelete(&sel)
	if !c.Pending() || len(sink.prompts) != 1 {
		t.Fatal("RequestDelete did not ask for confirmation")
	}
	if cmd := c.Confirm(false); cmd != nil {
		t.Error("declining returned a command")
	}
	if len(books.deletes) != 0 {
		t.Fatal("declined delete reached the network")
	}

	c.RequestDelete(&sel)
	run(c, c.Confirm(true))
	if len(books.deletes) != 1 || books.deletes[0] != sel.ID {
		t.Fatalf("deletes = %v, want [%d]", books.deletes, sel.ID)
	}
	if contains(sink.rows[TabActive], sel.ID) {
		t.Error("deleted book still displayed in active tab")
	}
	if c.Pending() {
		t.Error("confirmation still pending after Confirm")
	}
}

func TestRestore_RefreshesBothTabs(t *testing.T) {
	books := newFakeBooks(4)
	c, sink := newTestController(books)
	run(c, c.Refresh(TabActive))

	sel := books.active[2]
	c.RequestDelete(&sel)
	run(c, c.Confirm(true))
	run(c, c.SwitchTab(TabTrash))
	if !contains(sink.rows[TabTrash], sel.ID) {
		t.Fatal("deleted book not in trash")
	}

	// Restore while the active tab is displayed again.
	run(c, c.SwitchTab(TabActive))
	run(c, c.Restore(&sel))

	if contains(sink.rows[TabTrash], sel.ID) {
		t.Error("restored book still shown in trash")
	}
	if !contains(sink.rows[TabActive], sel.ID) {
		t.Error("restored book missing from active list")
	}
	if p := sink.pagers[TabTrash]; p.Text != "Papierkorb 0–0 von 0" {
		t.Errorf("trash pager = %q", p.Text)
	}
}

func TestHardDelete_ClearsTrashSelection(t *testing.T) {
	books := newFakeBooks(2)
	c, sink := newTestController(books)
	run(c, c.Refresh(TabActive))

	sel := books.active[0]
	c.RequestDelete(&sel)
	run(c, c.Confirm(true))
	if c.Active() != TabActive {
		t.Fatal("test expects the active tab to be displayed")
	}

	c.RequestHardDelete(&sel)
	if len(sink.prompts) != 2 {
		t.Fatalf("prompts = %d, want 2", len(sink.prompts))
	}
	listsBefore := len(books.lists)
	run(c, c.Confirm(true))

	if len(books.purges) != 1 || books.purges[0] != sel.ID {
		t.Fatalf("purges = %v", books.purges)
	}
	if len(sink.cleared) != 1 || sink.cleared[0] != TabTrash {
		t.Errorf("cleared = %v, want [trash]", sink.cleared)
	}
	for _, q := range books.lists[listsBefore:] {
		if !q.Trash {
			t.Error("hard delete refreshed the active tab")
		}
	}
	if len(books.trash) != 0 || len(sink.rows[TabTrash]) != 0 {
		t.Errorf("trash not empty: %v", sink.rows[TabTrash])
	}
}

func TestRestore_WithoutSelection(t *testing.T) {
	books := newFakeBooks(0)
	c, sink := newTestController(books)
	if cmd := c.Restore(nil); cmd != nil {
		t.Error("Restore without selection returned a command")
	}
	c.RequestHardDelete(nil)
	if c.Pending() {
		t.Error("hard delete pending without selection")
	}
	if len(sink.notices) != 2 {
		t.Errorf("notices = %d, want 2", len(sink.notices))
	}
}

func TestHealth_Unreachable(t *testing.T) {
	books := newFakeBooks(0)
	books.failHealth = &api.TransportError{Err: fmt.Errorf("dial tcp: refused")}
	c, sink := newTestController(books)
	run(c, c.CheckHealth())
	if sink.health.OK || sink.health.Text != "Backend: nicht erreichbar" {
		t.Errorf("health = %+v", sink.health)
	}
}
