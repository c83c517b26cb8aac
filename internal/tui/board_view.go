package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/sternenweber/bookdesk/internal/api"
	"github.com/sternenweber/bookdesk/internal/desk"
)

const stampLayout = "2006-01-02 15:04"

// columns splits width between the fixed ID/by/date columns and the
// title/author columns. The trash shows who deleted a book and when.
func (b *Board) columns(tab desk.Tab, width int) []table.Column {
	const idW, byW, atW = 6, 14, 16
	rest := max(20, width-idW-byW-atW-10)
	titleW := rest * 6 / 10
	authorW := rest - titleW

	by, at := b.ch.CreatedBy, b.ch.CreatedAt
	if tab == desk.TabTrash {
		by, at = b.ch.DeletedBy, b.ch.DeletedAt
	}
	return []table.Column{
		{Title: b.ch.ID, Width: idW},
		{Title: b.ch.Title, Width: titleW},
		{Title: b.ch.Author, Width: authorW},
		{Title: by, Width: byW},
		{Title: at, Width: atW},
	}
}

func (b *Board) rows(tab desk.Tab, books []api.Book) []table.Row {
	cols := b.views[tab].table.Columns()
	if len(cols) == 0 {
		cols = b.columns(tab, b.width)
	}
	cell := func(i int, s string) string {
		return xansi.Truncate(s, cols[i].Width, "…")
	}

	rows := make([]table.Row, len(books))
	for i, book := range books {
		by, at := book.CreatedBy, book.CreatedAt
		if tab == desk.TabTrash {
			by, at = book.DeletedBy, book.DeletedAt
		}
		rows[i] = table.Row{
			strconv.FormatInt(book.ID, 10),
			cell(1, book.Title),
			cell(2, book.Author),
			cell(3, by),
			stamp(at),
		}
	}
	return rows
}

func stamp(t *time.Time) string {
	if t == nil {
		return "–"
	}
	return t.Local().Format(stampLayout)
}

func noticeStyle(l desk.Level) lipgloss.Style {
	switch l {
	case desk.LevelSuccess:
		return StyleSuccess
	case desk.LevelWarning:
		return StyleWarning
	case desk.LevelError:
		return StyleError
	default:
		return StyleHelp
	}
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(b.form.view(b.notice))
	}

	tab := b.ctl.Active()
	v := b.views[tab]

	var s strings.Builder
	s.WriteString(b.renderTabBar(tab))
	s.WriteString("\n\n")
	s.WriteString(b.renderFilters(v))
	s.WriteString("\n\n")

	switch {
	case !v.loaded:
		s.WriteString(StyleHelp.Render(b.ch.Loading))
	case len(v.books) == 0:
		s.WriteString(StyleHelp.Render(b.ch.Empty))
	default:
		s.WriteString(v.table.View())
	}
	s.WriteString("\n")
	s.WriteString(b.renderPager(tab, v))
	s.WriteString("\n")

	if b.confirm != "" {
		s.WriteString(StyleBorder.Padding(0, 1).Render(
			StyleHighlight.Render(b.confirm) + " " + StyleHelp.Render(b.ch.ConfirmKeys)))
		s.WriteString("\n")
	} else if b.notice != nil {
		s.WriteString(noticeStyle(b.notice.Level).Render(b.notice.Text))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(b.renderFooter())
	s.WriteString("\n")
	s.WriteString(b.help.View(b.keys))

	return lipgloss.NewStyle().Padding(0, 1).Render(s.String())
}

func (b *Board) renderTabBar(active desk.Tab) string {
	parts := make([]string, 0, len(desk.Tabs)+1)
	for _, t := range desk.Tabs {
		style := StyleTab
		if t == active {
			style = StyleTabActive
		}
		parts = append(parts, style.Render(b.labels.Tab[t]))
	}

	health := StyleHelp.Render("●")
	if b.health.Text != "" {
		if b.health.OK {
			health = StyleSuccess.Render("● " + b.health.Text)
		} else {
			health = StyleError.Render("● " + b.health.Text)
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	gap := max(1, b.width-lipgloss.Width(bar)-lipgloss.Width(health)-2)
	return bar + strings.Repeat(" ", gap) + health
}

func (b *Board) renderFilters(v *tabView) string {
	label := func(i int, text string) string {
		if b.filtering && b.focused == i {
			return StyleHighlight.Render(text)
		}
		return StyleHelp.Render(text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		label(filterSearch, b.ch.Search+" "), v.filters[filterSearch].View(), "  ",
		label(filterFrom, b.ch.From+" "), v.filters[filterFrom].View(), "  ",
		label(filterTo, b.ch.To+" "), v.filters[filterTo].View(),
	)
}

func (b *Board) renderPager(tab desk.Tab, v *tabView) string {
	p := v.pager
	if p.Text == "" {
		p = b.ctl.State(tab).Pager(b.labels.Tab[tab], b.labels.Of)
	}

	arrow := func(sym string, on bool) string {
		if on {
			return StyleHighlight.Render(sym)
		}
		return StyleHelp.Render(sym)
	}
	size := p.SizeKey.String()
	if p.SizeKey == desk.PageSizeAll {
		size = b.ch.All
	}
	return fmt.Sprintf("%s %s %s   %s   %s",
		arrow("‹", p.PrevEnabled),
		StylePager.Render(p.Text),
		arrow("›", p.NextEnabled),
		StyleHelp.Render(fmt.Sprintf("%d/%d", p.Page, p.Pages)),
		StyleHelp.Render(size+" "+b.ch.PerPage),
	)
}

func (b *Board) renderFooter() string {
	mode := "browse"
	if b.filtering {
		mode = "filter"
	}
	return RenderFooterBar([]ShortcutEntry{
		{Key: "filter", Label: b.ch.FooterFilter},
		{Key: "filter", Label: b.ch.FooterDates},
		{Key: "filter", Label: b.ch.FooterCancel},
		{Key: "browse", Label: b.ch.FooterBrowse},
	}, mode)
}
