package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sternenweber/bookdesk/internal/api"
	"github.com/sternenweber/bookdesk/internal/desk"
)

const (
	formFieldTitle = iota
	formFieldAuthor
	formFieldCreatedBy
)

// bookForm is the create/edit modal. It never closes itself after a submit;
// the Controller closes it once the server accepted the change.
type bookForm struct {
	edit    *api.Book // nil when creating
	inputs  []textinput.Model
	focused int
	ch      chrome
}

func newInput(placeholder, value string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = limit
	ti.Width = 42
	ti.Prompt = "│ "
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newCreateForm(createdBy string, ch chrome) *bookForm {
	f := &bookForm{ch: ch}
	f.inputs = []textinput.Model{
		newInput(ch.Title, "", 200),
		newInput(ch.Author, "", 120),
		newInput(ch.CreatedBy, createdBy, 60),
	}
	f.inputs[formFieldTitle].Focus()
	return f
}

func newEditForm(b api.Book, ch chrome) *bookForm {
	f := &bookForm{edit: &b, ch: ch}
	f.inputs = []textinput.Model{
		newInput(ch.Title, b.Title, 200),
		newInput(ch.Author, b.Author, 120),
		newInput(ch.CreatedBy, b.CreatedBy, 60),
	}
	f.inputs[formFieldTitle].Focus()
	return f
}

// update handles a key while the form is open and reports whether the user
// submitted or canceled.
func (f *bookForm) update(msg tea.KeyMsg) (submit, cancel bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return false, true, nil
	case "enter":
		return true, false, nil
	case "tab", "shift+tab", "up", "down":
		if msg.String() == "up" || msg.String() == "shift+tab" {
			f.focused--
		} else {
			f.focused++
		}
		if f.focused < 0 {
			f.focused = len(f.inputs) - 1
		} else if f.focused >= len(f.inputs) {
			f.focused = 0
		}
		for i := range f.inputs {
			if i == f.focused {
				f.inputs[i].Focus()
			} else {
				f.inputs[i].Blur()
			}
		}
		return false, false, nil
	}

	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return false, false, cmd
}

func (f *bookForm) value(i int) string { return f.inputs[i].Value() }

func (f *bookForm) newBook() api.NewBook {
	return api.NewBook{
		Title:     f.value(formFieldTitle),
		Author:    f.value(formFieldAuthor),
		CreatedBy: f.value(formFieldCreatedBy),
	}
}

// patch returns only the fields that differ from the book being edited.
func (f *bookForm) patch() api.BookPatch {
	var p api.BookPatch
	changed := func(i int, old string) *string {
		v := f.value(i)
		if strings.TrimSpace(v) == old {
			return nil
		}
		return &v
	}
	p.Title = changed(formFieldTitle, f.edit.Title)
	p.Author = changed(formFieldAuthor, f.edit.Author)
	p.CreatedBy = changed(formFieldCreatedBy, f.edit.CreatedBy)
	return p
}

func (f *bookForm) view(notice *desk.Notice) string {
	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"})
	formLabel := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(14).
		Align(lipgloss.Right).
		PaddingRight(1)
	formLabelActive := formLabel.
		Foreground(ColorYellow).
		Bold(true)

	const w = 60
	sep := sepStyle.Render(strings.Repeat("─", w))

	var b strings.Builder

	if f.edit == nil {
		b.WriteString(StyleHeader.Render(f.ch.NewBook))
	} else {
		b.WriteString(StyleHeader.Render(f.ch.EditBook))
		b.WriteString("\n")
		b.WriteString(StyleHelp.Render(fmt.Sprintf("%s %d", f.ch.ID, f.edit.ID)))
	}
	b.WriteString("\n\n")
	b.WriteString(sep)
	b.WriteString("\n\n")

	if notice != nil && notice.Level != desk.LevelSuccess {
		b.WriteString(noticeStyle(notice.Level).Render(notice.Text))
		b.WriteString("\n\n")
	}

	for i, label := range []string{f.ch.Title, f.ch.Author, f.ch.CreatedBy} {
		if i == f.focused {
			b.WriteString(formLabelActive.Render("› " + label))
		} else {
			b.WriteString(formLabel.Render(label))
		}
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(sep)
	b.WriteString("\n")
	b.WriteString(RenderFooterBar([]ShortcutEntry{
		{Label: f.ch.FooterForm},
		{Label: f.ch.FooterConfirm},
		{Label: f.ch.FooterCancel},
	}, ""))
	b.WriteString("\n")

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return StyleBorder.Render(innerPadding.Render(b.String()))
}
