package desk

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sternenweber/bookdesk/internal/api"
)

// Books is the subset of the API client the Controller needs.
type Books interface {
	Count(ctx context.Context, q api.Query) (int, error)
	List(ctx context.Context, q api.Query) ([]api.Book, error)
	Create(ctx context.Context, nb api.NewBook) (*api.Book, error)
	Update(ctx context.Context, id int64, p api.BookPatch) (*api.Book, error)
	Delete(ctx context.Context, id int64, deletedBy string) error
	Restore(ctx context.Context, id int64) (*api.Book, error)
	HardDelete(ctx context.Context, id int64) error
	Health(ctx context.Context) (string, error)
}

// Sink receives everything the Controller wants displayed. Each tab has its
// own rows and pager so switching tabs never needs a re-fetch to redraw.
type Sink interface {
	ShowRows(tab Tab, books []api.Book)
	ShowPager(tab Tab, p Pager)
	ShowHealth(h Health)
	Notify(n Notice)
	AskConfirm(prompt string)
	CloseForm()
	ClearSelection(tab Tab)
}

// Options configures a Controller.
type Options struct {
	PageSize  PageSizeKey
	Debounce  time.Duration
	Timeout   time.Duration
	CreatedBy string
	Labels    Labels
	Logger    *slog.Logger
}

// Controller owns the per-tab pagination state and sequences every refresh
// and mutation. It must only be used from the bubbletea update loop.
type Controller struct {
	books   Books
	filters FilterSource
	sink    Sink
	labels  Labels
	log     *slog.Logger

	debounce  time.Duration
	timeout   time.Duration
	createdBy string

	active Tab
	tabs   map[Tab]*TabState
	seq    map[Tab]uint64 // latest refresh started per tab

	debounceGen uint64
	pending     *pendingAction
}

// New creates a Controller with both tabs on page 1.
func New(books Books, filters FilterSource, sink Sink, opts Options) *Controller {
	if opts.PageSize == 0 {
		opts.PageSize = PageSize10
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.CreatedBy == "" {
		opts.CreatedBy = "system"
	}
	if opts.Labels.Tab == nil {
		opts.Labels = LabelsFor("")
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Controller{
		books:     books,
		filters:   filters,
		sink:      sink,
		labels:    opts.Labels,
		log:       opts.Logger,
		debounce:  opts.Debounce,
		timeout:   opts.Timeout,
		createdBy: opts.CreatedBy,
		active:    TabActive,
		tabs:      make(map[Tab]*TabState, len(Tabs)),
		seq:       make(map[Tab]uint64, len(Tabs)),
	}
	for _, t := range Tabs {
		st := NewTabState(opts.PageSize)
		c.tabs[t] = &st
	}
	return c
}

// Init checks backend health and loads the active tab.
func (c *Controller) Init() tea.Cmd {
	return tea.Batch(c.CheckHealth(), c.Refresh(c.active))
}

// Active returns the tab currently displayed.
func (c *Controller) Active() Tab { return c.active }

// State returns a copy of tab's pagination state.
func (c *Controller) State(tab Tab) TabState { return *c.tabs[tab] }

// Labels returns the strings the Controller was configured with.
func (c *Controller) Labels() Labels { return c.labels }

// Messages produced by the Controller's commands.
type (
	countMsg struct {
		tab    Tab
		seq    uint64
		filter Filter
		want   TabState
		total  int
		err    error
	}
	pageMsg struct {
		tab   Tab
		seq   uint64
		state TabState
		books []api.Book
		err   error
	}
	debounceMsg struct {
		tab Tab
		gen uint64
	}
	healthMsg struct {
		status string
		err    error
	}
)

// Update consumes the Controller's own messages and ignores everything else.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case countMsg:
		return c.handleCount(msg)
	case pageMsg:
		c.handlePage(msg)
	case debounceMsg:
		if msg.gen != c.debounceGen {
			return nil
		}
		return c.Refresh(msg.tab)
	case mutationMsg:
		return c.handleMutation(msg)
	case healthMsg:
		c.handleHealth(msg)
	}
	return nil
}

// Refresh runs count, recompute, page fetch and publish for tab at its
// current page. Results of an older refresh of the same tab are discarded
// once a newer one started.
func (c *Controller) Refresh(tab Tab) tea.Cmd {
	return c.load(tab, *c.tabs[tab])
}

// load refreshes tab towards want. The tab's state is only replaced once the
// page arrived, so a failed load leaves it matching what is displayed.
// Invalid date inputs never reach the network.
func (c *Controller) load(tab Tab, want TabState) tea.Cmd {
	f := c.filters.Filter(tab)
	if err := f.Validate(); err != nil {
		c.invalid(c.labels.InvalidDate, err)
		return nil
	}

	c.seq[tab]++
	seq := c.seq[tab]
	c.log.Debug("refresh", "tab", tab, "seq", seq, "page", want.Page, "size", want.SizeKey,
		"q", f.Query, "from", f.From, "to", f.To)

	books, timeout := c.books, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		total, err := books.Count(ctx, f.APIQuery(tab, 0, 0))
		return countMsg{tab: tab, seq: seq, filter: f, want: want, total: total, err: err}
	}
}

func (c *Controller) handleCount(msg countMsg) tea.Cmd {
	if msg.seq != c.seq[msg.tab] {
		c.log.Debug("discard stale count", "tab", msg.tab, "seq", msg.seq, "latest", c.seq[msg.tab])
		return nil
	}
	if msg.err != nil {
		c.fail(c.labels.LoadFailed, msg.err)
		return nil
	}

	next := msg.want
	next.Recompute(msg.total)
	limit, offset := next.Window()

	tab, seq, f := msg.tab, msg.seq, msg.filter
	books, timeout := c.books, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		items, err := books.List(ctx, f.APIQuery(tab, limit, offset))
		return pageMsg{tab: tab, seq: seq, state: next, books: items, err: err}
	}
}

func (c *Controller) handlePage(msg pageMsg) {
	if msg.seq != c.seq[msg.tab] {
		c.log.Debug("discard stale page", "tab", msg.tab, "seq", msg.seq, "latest", c.seq[msg.tab])
		return
	}
	if msg.err != nil {
		c.fail(c.labels.LoadFailed, msg.err)
		return
	}

	st := c.tabs[msg.tab]
	*st = msg.state
	c.log.Debug("page loaded", "tab", msg.tab, "page", st.Page, "rows", len(msg.books), "total", st.Total)
	c.sink.ShowRows(msg.tab, msg.books)
	c.sink.ShowPager(msg.tab, st.Pager(c.labels.Tab[msg.tab], c.labels.Of))
}

// SwitchTab makes tab the displayed one and refreshes it. The other tab's
// state is kept.
func (c *Controller) SwitchTab(tab Tab) tea.Cmd {
	if tab == c.active {
		return nil
	}
	c.active = tab
	return c.Refresh(tab)
}

// NextPage advances tab by one page if the next control is enabled.
func (c *Controller) NextPage(tab Tab) tea.Cmd {
	want := *c.tabs[tab]
	if !want.HasNext() {
		return nil
	}
	want.Page++
	return c.load(tab, want)
}

// PrevPage goes back one page if the previous control is enabled.
func (c *Controller) PrevPage(tab Tab) tea.Cmd {
	want := *c.tabs[tab]
	if !want.HasPrev() {
		return nil
	}
	want.Page--
	return c.load(tab, want)
}

// SetPageSize changes tab's page-size selection and refreshes it.
func (c *Controller) SetPageSize(tab Tab, key PageSizeKey) tea.Cmd {
	want := *c.tabs[tab]
	want.SizeKey = key
	return c.load(tab, want)
}

// QueryTyped schedules a debounced refresh of tab. Each call supersedes the
// previous pending one, so only the last keystroke in the quiet interval
// reaches the network.
func (c *Controller) QueryTyped(tab Tab) tea.Cmd {
	c.debounceGen++
	gen := c.debounceGen
	return tea.Tick(c.debounce, func(time.Time) tea.Msg {
		return debounceMsg{tab: tab, gen: gen}
	})
}

// SubmitSearch refreshes tab immediately from page 1.
func (c *Controller) SubmitSearch(tab Tab) tea.Cmd {
	c.debounceGen++
	return c.firstPage(tab)
}

// DatesChanged validates tab's date range and, if valid, refreshes it
// immediately from page 1.
func (c *Controller) DatesChanged(tab Tab) tea.Cmd {
	return c.SubmitSearch(tab)
}

func (c *Controller) firstPage(tab Tab) tea.Cmd {
	want := *c.tabs[tab]
	want.Page = 1
	return c.load(tab, want)
}

// ClearDates empties tab's date inputs and refreshes it from page 1.
func (c *Controller) ClearDates(tab Tab) tea.Cmd {
	c.filters.ClearDates(tab)
	return c.SubmitSearch(tab)
}

// CheckHealth queries /health and updates the indicator.
func (c *Controller) CheckHealth() tea.Cmd {
	books, timeout := c.books, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		status, err := books.Health(ctx)
		return healthMsg{status: status, err: err}
	}
}

func (c *Controller) handleHealth(msg healthMsg) {
	if msg.err != nil {
		c.log.Warn("health check failed", "err", msg.err)
		c.sink.ShowHealth(Health{OK: false, Text: c.labels.HealthDown})
		return
	}
	c.sink.ShowHealth(Health{OK: true, Text: fmt.Sprintf(c.labels.HealthOK, msg.status)})
}

// fail reports an API failure. Unreachable backends also degrade the
// health indicator; the screen stays usable.
func (c *Controller) fail(text string, err error) {
	c.log.Warn(text, "err", err)
	if api.IsUnreachable(err) {
		c.sink.ShowHealth(Health{OK: false, Text: c.labels.HealthDown})
	}
	c.sink.Notify(Notice{Level: classify(err), Text: text, Err: err})
}

// invalid reports a client-side precondition failure.
func (c *Controller) invalid(text string, err error) {
	c.log.Debug("validation", "err", err)
	c.sink.Notify(Notice{Level: LevelWarning, Text: text, Err: err})
}
