package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sternenweber/bookdesk/internal/api"
	"github.com/sternenweber/bookdesk/internal/desk"
)

const (
	filterSearch = iota
	filterFrom
	filterTo
)

// tabView is everything the screen keeps for one tab. Rows stay in place
// while the tab is hidden so switching back redraws instantly.
type tabView struct {
	table   table.Model
	books   []api.Book
	pager   desk.Pager
	loaded  bool
	filters []textinput.Model

	// selected is the ID of the explicitly selected row, 0 for none.
	selected int64
}

// Board is the two-tab book screen. It renders what the Controller pushes
// through desk.Sink and hands filter input back through desk.FilterSource.
type Board struct {
	ctl    *desk.Controller
	labels desk.Labels
	ch     chrome
	keys   boardKeys
	help   help.Model

	views map[desk.Tab]*tabView

	createdBy string
	health    desk.Health
	notice    *desk.Notice
	confirm   string
	form      *bookForm

	filtering bool
	focused   int
	width     int
	height    int
}

var (
	_ desk.Sink         = (*Board)(nil)
	_ desk.FilterSource = (*Board)(nil)
	_ tea.Model         = (*Board)(nil)
)

// NewBoard builds the screen and its Controller. Labels are picked from
// locale unless opts already carries them.
func NewBoard(books desk.Books, locale string, opts desk.Options) *Board {
	if opts.Labels.Tab == nil {
		opts.Labels = desk.LabelsFor(locale)
	}
	if opts.CreatedBy == "" {
		opts.CreatedBy = "system"
	}

	b := &Board{
		labels:    opts.Labels,
		ch:        chromeFor(locale),
		keys:      newBoardKeys(),
		help:      help.New(),
		views:     make(map[desk.Tab]*tabView, len(desk.Tabs)),
		createdBy: opts.CreatedBy,
		width:     100,
		height:    30,
	}
	for _, t := range desk.Tabs {
		b.views[t] = b.newTabView(t)
	}
	b.keys.forTab(false, false)
	b.ctl = desk.New(books, b, b, opts)
	b.resize()
	return b
}

func (b *Board) newTabView(t desk.Tab) *tabView {
	v := &tabView{
		filters: []textinput.Model{
			newInput(b.ch.Search, "", 120),
			newInput(b.ch.DateHint, "", 10),
			newInput(b.ch.DateHint, "", 10),
		},
	}
	for i := range v.filters {
		v.filters[i].Width = 24
	}
	v.filters[filterFrom].Width = 10
	v.filters[filterTo].Width = 10

	v.table = table.New(
		table.WithColumns(b.columns(t, b.width)),
		table.WithHeight(10),
	)
	v.applyStyles()
	return v
}

// Controller exposes the coordinator driving this screen.
func (b *Board) Controller() *desk.Controller { return b.ctl }

func (b *Board) active() *tabView { return b.views[b.ctl.Active()] }

// Selected returns the explicitly selected book of the displayed tab.
func (b *Board) Selected() *api.Book {
	return b.views[b.ctl.Active()].selectedBook()
}

func (v *tabView) selectedBook() *api.Book {
	if v.selected == 0 {
		return nil
	}
	for i := range v.books {
		if v.books[i].ID == v.selected {
			book := v.books[i]
			return &book
		}
	}
	return nil
}

func (v *tabView) selectCursor() {
	c := v.table.Cursor()
	if c < 0 || c >= len(v.books) {
		v.selected = 0
	} else {
		v.selected = v.books[c].ID
	}
	v.applyStyles()
}

// applyStyles only highlights the cursor row once a row is selected, so an
// unselected table never looks like it has a target for edit or delete.
func (v *tabView) applyStyles() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(StyleBorder.GetBorderStyle()).
		BorderForeground(ColorGray).
		BorderBottom(true).
		Bold(true)
	if v.selected != 0 {
		s.Selected = StyleHighlight
	} else {
		s.Selected = StyleNormal
	}
	v.table.SetStyles(s)
}

// Filter implements desk.FilterSource.
func (b *Board) Filter(tab desk.Tab) desk.Filter {
	v := b.views[tab]
	return desk.Filter{
		Query: v.filters[filterSearch].Value(),
		From:  v.filters[filterFrom].Value(),
		To:    v.filters[filterTo].Value(),
	}
}

// ClearDates implements desk.FilterSource.
func (b *Board) ClearDates(tab desk.Tab) {
	v := b.views[tab]
	v.filters[filterFrom].SetValue("")
	v.filters[filterTo].SetValue("")
}

// ShowRows implements desk.Sink. A selection whose row is gone is dropped.
func (b *Board) ShowRows(tab desk.Tab, books []api.Book) {
	v := b.views[tab]
	v.books = books
	v.loaded = true
	v.table.SetRows(b.rows(tab, books))

	idx := -1
	for i, book := range books {
		if book.ID == v.selected {
			idx = i
			break
		}
	}
	switch {
	case idx >= 0:
		v.table.SetCursor(idx)
	case len(books) > 0:
		v.selected = 0
		switch c := v.table.Cursor(); {
		case c < 0:
			v.table.SetCursor(0)
		case c >= len(books):
			v.table.SetCursor(len(books) - 1)
		}
	default:
		v.selected = 0
		v.table.SetCursor(0)
	}
	v.applyStyles()
}

// ShowPager implements desk.Sink.
func (b *Board) ShowPager(tab desk.Tab, p desk.Pager) { b.views[tab].pager = p }

// ShowHealth implements desk.Sink.
func (b *Board) ShowHealth(h desk.Health) { b.health = h }

// Notify implements desk.Sink.
func (b *Board) Notify(n desk.Notice) { b.notice = &n }

// AskConfirm implements desk.Sink.
func (b *Board) AskConfirm(prompt string) { b.confirm = prompt }

// CloseForm implements desk.Sink.
func (b *Board) CloseForm() { b.form = nil }

// ClearSelection implements desk.Sink.
func (b *Board) ClearSelection(tab desk.Tab) {
	v := b.views[tab]
	v.selected = 0
	v.applyStyles()
}

// Init loads the books tab and checks the backend.
func (b *Board) Init() tea.Cmd {
	return b.ctl.Init()
}

// Update routes keys to the topmost surface (confirmation, form, filter
// inputs, table) and everything else to the Controller.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := b.update(msg)
	b.syncKeys()
	return m, cmd
}

// syncKeys enables the bindings for the displayed tab and its selection.
func (b *Board) syncKeys() {
	b.keys.forTab(b.ctl.Active() == desk.TabTrash, b.active().selected != 0)
}

func (b *Board) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.help.Width = msg.Width
		b.resize()
		return b, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return b, tea.Quit
		}
		switch {
		case b.confirm != "":
			return b, b.updateConfirm(msg)
		case b.form != nil:
			return b, b.updateForm(msg)
		case b.filtering:
			return b, b.updateFilters(msg)
		}
		return b.updateBrowse(msg)
	}

	return b, b.ctl.Update(msg)
}

func (b *Board) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	var accept bool
	switch msg.String() {
	case "y", "Y", "j", "J":
		accept = true
	case "n", "N", "esc", "enter":
	default:
		return nil
	}
	b.confirm = ""
	return b.ctl.Confirm(accept)
}

func (b *Board) updateForm(msg tea.KeyMsg) tea.Cmd {
	submit, cancel, cmd := b.form.update(msg)
	switch {
	case cancel:
		b.form = nil
		b.notice = nil
		return nil
	case submit:
		if b.form.edit == nil {
			return b.ctl.Create(b.form.newBook())
		}
		return b.ctl.Edit(b.form.edit, b.form.patch())
	}
	return cmd
}

func (b *Board) updateFilters(msg tea.KeyMsg) tea.Cmd {
	tab := b.ctl.Active()
	v := b.views[tab]

	switch msg.String() {
	case "esc":
		b.blurFilters()
		return nil
	case "tab", "shift+tab":
		if msg.String() == "tab" {
			b.focused = (b.focused + 1) % len(v.filters)
		} else {
			b.focused = (b.focused + len(v.filters) - 1) % len(v.filters)
		}
		b.focusFilter()
		return nil
	case "enter":
		if b.focused == filterSearch {
			return b.ctl.SubmitSearch(tab)
		}
		return b.ctl.DatesChanged(tab)
	case "ctrl+x":
		return b.ctl.ClearDates(tab)
	}

	before := v.filters[b.focused].Value()
	var cmd tea.Cmd
	v.filters[b.focused], cmd = v.filters[b.focused].Update(msg)
	if b.focused == filterSearch && v.filters[filterSearch].Value() != before {
		return tea.Batch(cmd, b.ctl.QueryTyped(tab))
	}
	return cmd
}

func (b *Board) focusFilter() {
	v := b.active()
	for i := range v.filters {
		if i == b.focused {
			v.filters[i].Focus()
		} else {
			v.filters[i].Blur()
		}
	}
}

func (b *Board) blurFilters() {
	b.filtering = false
	for _, v := range b.views {
		for i := range v.filters {
			v.filters[i].Blur()
		}
	}
}

func (b *Board) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tab := b.ctl.Active()
	v := b.views[tab]
	k := b.keys

	switch {
	case v.selected == 0 && k.rowAction(msg, tab == desk.TabTrash):
		b.ctl.RequireSelection(nil)

	case key.Matches(msg, k.Quit):
		return b, tea.Quit

	case key.Matches(msg, k.Help):
		b.help.ShowAll = !b.help.ShowAll

	case key.Matches(msg, k.SwitchTo):
		next := desk.TabTrash
		if tab == desk.TabTrash {
			next = desk.TabActive
		}
		return b, b.ctl.SwitchTab(next)

	case key.Matches(msg, k.Up):
		v.table.MoveUp(1)
		v.selectCursor()

	case key.Matches(msg, k.Down):
		v.table.MoveDown(1)
		v.selectCursor()

	case key.Matches(msg, k.Select):
		if v.selected != 0 {
			v.selected = 0
			v.applyStyles()
		} else {
			v.selectCursor()
		}

	case key.Matches(msg, k.Prev):
		return b, b.ctl.PrevPage(tab)

	case key.Matches(msg, k.Next):
		return b, b.ctl.NextPage(tab)

	case key.Matches(msg, k.PageSize):
		return b, b.ctl.SetPageSize(tab, b.ctl.State(tab).SizeKey.Next())

	case key.Matches(msg, k.Search):
		b.filtering = true
		b.focused = filterSearch
		b.focusFilter()

	case key.Matches(msg, k.Refresh):
		return b, tea.Batch(b.ctl.CheckHealth(), b.ctl.Refresh(tab))

	case key.Matches(msg, k.New):
		b.notice = nil
		b.form = newCreateForm(b.createdBy, b.ch)

	case key.Matches(msg, k.Edit):
		if sel := v.selectedBook(); b.ctl.RequireSelection(sel) {
			b.notice = nil
			b.form = newEditForm(*sel, b.ch)
		}

	case key.Matches(msg, k.Delete):
		b.ctl.RequestDelete(v.selectedBook())

	case key.Matches(msg, k.Restore):
		return b, b.ctl.Restore(v.selectedBook())

	case key.Matches(msg, k.Purge):
		b.ctl.RequestHardDelete(v.selectedBook())
	}
	return b, nil
}

// resize fits both tables into the window.
func (b *Board) resize() {
	// tab bar, filters, pager, notice, footer, help and table header
	const chromeLines = 12
	h := max(3, b.height-chromeLines)
	for t, v := range b.views {
		v.table.SetColumns(b.columns(t, b.width))
		v.table.SetRows(b.rows(t, v.books))
		v.table.SetHeight(h)
		v.table.SetWidth(max(20, b.width-2))
	}
}

// Run starts the interactive screen and blocks until the user quits.
func Run(books desk.Books, locale string, opts desk.Options) error {
	p := tea.NewProgram(NewBoard(books, locale, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}
