package desk

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sternenweber/bookdesk/internal/api"
)

// op names a mutation.
type op int

const (
	opCreate op = iota
	opEdit
	opDelete
	opRestore
	opHardDelete
)

func (o op) String() string {
	return [...]string{"create", "edit", "delete", "restore", "hard-delete"}[o]
}

// mutationMsg reports the server's answer to one mutation.
type mutationMsg struct {
	op  op
	id  int64
	err error
}

// pendingAction is a destructive mutation awaiting confirmation.
type pendingAction struct {
	op   op
	book api.Book
}

// Create validates and sends a new book. On success the form closes and the
// active tab reloads from page 1; on failure the form stays open.
func (c *Controller) Create(nb api.NewBook) tea.Cmd {
	nb.Title = strings.TrimSpace(nb.Title)
	nb.Author = strings.TrimSpace(nb.Author)
	nb.CreatedBy = strings.TrimSpace(nb.CreatedBy)
	if nb.Title == "" {
		c.invalid(c.labels.TitleAuthor, &ValidationError{Field: "title"})
		return nil
	}
	if nb.Author == "" {
		c.invalid(c.labels.TitleAuthor, &ValidationError{Field: "author"})
		return nil
	}
	if nb.CreatedBy == "" {
		nb.CreatedBy = c.createdBy
	}

	return c.mutate(opCreate, 0, func(ctx context.Context, b Books) error {
		_, err := b.Create(ctx, nb)
		return err
	})
}

// Edit sends the fields present in p for the selected book. On success the
// form closes and the active tab reloads; on failure the form stays open.
func (c *Controller) Edit(sel *api.Book, p api.BookPatch) tea.Cmd {
	if !c.requireSelection(sel) {
		return nil
	}
	p, err := trimPatch(p)
	if err != nil {
		c.invalid(c.labels.EmptyField, err)
		return nil
	}
	if p.Empty() {
		c.invalid(c.labels.NothingChanged, &ValidationError{Field: "patch", Reason: "no fields to update"})
		return nil
	}

	id := sel.ID
	return c.mutate(opEdit, id, func(ctx context.Context, b Books) error {
		_, err := b.Update(ctx, id, p)
		return err
	})
}

// trimPatch returns a copy of p with present fields trimmed. A present field
// that trims to empty is invalid; the server rejects it anyway.
func trimPatch(p api.BookPatch) (api.BookPatch, error) {
	trim := func(name string, f *string) (*string, error) {
		if f == nil {
			return nil, nil
		}
		v := strings.TrimSpace(*f)
		if v == "" {
			return nil, &ValidationError{Field: name}
		}
		return &v, nil
	}
	var out api.BookPatch
	var err error
	if out.Title, err = trim("title", p.Title); err != nil {
		return out, err
	}
	if out.Author, err = trim("author", p.Author); err != nil {
		return out, err
	}
	if out.CreatedBy, err = trim("created_by", p.CreatedBy); err != nil {
		return out, err
	}
	return out, nil
}

// RequestDelete asks for confirmation before moving the selected book to
// the trash. Nothing is sent until Confirm(true).
func (c *Controller) RequestDelete(sel *api.Book) {
	if !c.requireSelection(sel) {
		return
	}
	c.pending = &pendingAction{op: opDelete, book: *sel}
	c.sink.AskConfirm(fmt.Sprintf(c.labels.ConfirmDelete, sel.Title))
}

// RequestHardDelete asks for confirmation before permanently deleting the
// selected trashed book.
func (c *Controller) RequestHardDelete(sel *api.Book) {
	if !c.requireSelection(sel) {
		return
	}
	c.pending = &pendingAction{op: opHardDelete, book: *sel}
	c.sink.AskConfirm(fmt.Sprintf(c.labels.ConfirmPurge, sel.Title))
}

// Pending reports whether a confirmation is outstanding.
func (c *Controller) Pending() bool { return c.pending != nil }

// Confirm resolves the outstanding confirmation. Declining sends nothing.
func (c *Controller) Confirm(accept bool) tea.Cmd {
	p := c.pending
	c.pending = nil
	if p == nil {
		return nil
	}
	if !accept {
		c.log.Debug("confirmation declined", "op", p.op, "id", p.book.ID)
		return nil
	}

	id := p.book.ID
	switch p.op {
	case opDelete:
		deletedBy := c.createdBy
		return c.mutate(opDelete, id, func(ctx context.Context, b Books) error {
			return b.Delete(ctx, id, deletedBy)
		})
	case opHardDelete:
		return c.mutate(opHardDelete, id, func(ctx context.Context, b Books) error {
			return b.HardDelete(ctx, id)
		})
	}
	return nil
}

// Restore moves the selected trashed book back to the active list.
func (c *Controller) Restore(sel *api.Book) tea.Cmd {
	if !c.requireSelection(sel) {
		return nil
	}
	id := sel.ID
	return c.mutate(opRestore, id, func(ctx context.Context, b Books) error {
		_, err := b.Restore(ctx, id)
		return err
	})
}

// RequireSelection reports a "select a row" notice when sel is nil.
func (c *Controller) RequireSelection(sel *api.Book) bool {
	return c.requireSelection(sel)
}

func (c *Controller) requireSelection(sel *api.Book) bool {
	if sel == nil {
		c.invalid(c.labels.SelectRow, errNoSelection)
		return false
	}
	return true
}

func (c *Controller) mutate(o op, id int64, call func(context.Context, Books) error) tea.Cmd {
	c.log.Info("mutation", "op", o, "id", id)
	books, timeout := c.books, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return mutationMsg{op: o, id: id, err: call(ctx, books)}
	}
}

// handleMutation applies the post-mutation refresh policy. Nothing local is
// changed before the server confirmed.
func (c *Controller) handleMutation(msg mutationMsg) tea.Cmd {
	if msg.err != nil {
		c.fail(c.failText(msg.op), msg.err)
		return nil
	}
	c.log.Info("mutation done", "op", msg.op, "id", msg.id)

	switch msg.op {
	case opCreate:
		c.sink.CloseForm()
		c.notify(c.labels.Created)
		return c.firstPage(TabActive)
	case opEdit:
		c.sink.CloseForm()
		c.notify(c.labels.Updated)
		return c.Refresh(TabActive)
	case opDelete:
		c.notify(c.labels.Deleted)
		return c.Refresh(TabActive)
	case opRestore:
		// The trash list must drop the row even when it is not displayed.
		c.notify(c.labels.Restored)
		return tea.Batch(c.Refresh(TabActive), c.Refresh(TabTrash))
	case opHardDelete:
		c.sink.ClearSelection(TabTrash)
		c.notify(c.labels.Purged)
		return c.Refresh(TabTrash)
	}
	return nil
}

func (c *Controller) failText(o op) string {
	switch o {
	case opCreate:
		return c.labels.CreateFailed
	case opEdit:
		return c.labels.UpdateFailed
	case opDelete:
		return c.labels.DeleteFailed
	case opRestore:
		return c.labels.RestoreFail
	default:
		return c.labels.PurgeFailed
	}
}

func (c *Controller) notify(text string) {
	c.sink.Notify(Notice{Level: LevelSuccess, Text: text})
}
