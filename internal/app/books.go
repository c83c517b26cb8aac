package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/sternenweber/bookdesk/internal/api"
	"github.com/sternenweber/bookdesk/internal/desk"
	"github.com/sternenweber/bookdesk/internal/util"
)

// filterFlags are the search and date flags shared by list and count.
type filterFlags struct {
	trash bool
	query string
	from  string
	to    string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.trash, "trash", false, "Query the trash instead of the active books")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Search titles")
	cmd.Flags().StringVar(&f.from, "from", "", "Earliest created (or deleted, with --trash) date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "Latest created (or deleted, with --trash) date, YYYY-MM-DD")
}

func (f filterFlags) tab() desk.Tab {
	if f.trash {
		return desk.TabTrash
	}
	return desk.TabActive
}

func (f filterFlags) filter() (desk.Filter, error) {
	flt := desk.Filter{Query: f.query, From: f.from, To: f.to}
	if err := flt.Validate(); err != nil {
		return desk.Filter{}, err
	}
	return flt, nil
}

// requestContext bounds one CLI command's API calls.
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout := cfg.API.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid book id %q", s)
	}
	return id, nil
}

type listResult struct {
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Pages int        `json:"pages"`
	Books []api.Book `json:"books"`
}

func newListCmd() *cobra.Command {
	var (
		ff      filterFlags
		page    int
		size    string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of books or trashed books",
		Long: `List one page of the active books or the trash.

The total is fetched first and the page is clamped into range, exactly as
the interactive screen does. --size all prints every match on one page.

Examples:
  bookdesk list
  bookdesk list -q tolkien --size 25 --page 2
  bookdesk list --trash --from 2024-01-01 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ff.filter()
			if err != nil {
				return err
			}
			if size == "" {
				size = cfg.UI.PageSize
			}
			key, err := desk.ParsePageSizeKey(size)
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()

			tab := ff.tab()
			total, err := client.Count(ctx, f.APIQuery(tab, 0, 0))
			if err != nil {
				return err
			}

			st := desk.TabState{Page: max(1, page), SizeKey: key}
			st.Recompute(total)
			if page > st.Page {
				warn("Page %d is out of range, showing page %d", page, st.Page)
			}
			limit, offset := st.Window()
			books, err := client.List(ctx, f.APIQuery(tab, limit, offset))
			if err != nil {
				return err
			}
			logger.Debug("list", "tab", tab, "total", total, "page", st.Page, "rows", len(books))

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(listResult{Total: total, Page: st.Page, Pages: st.TotalPages(), Books: books})
			}

			labels := desk.LabelsFor(cfg.UI.Locale)
			printBooks(out, tab, books)
			fmt.Fprintln(out, color.CyanString(st.Pager(labels.Tab[tab], labels.Of).Text))
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().StringVar(&size, "size", "", "Page size: 10, 25, 50 or all (default ui.page_size)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func printBooks(w io.Writer, tab desk.Tab, books []api.Book) {
	for _, b := range books {
		by, at := b.CreatedBy, b.CreatedAt
		if tab == desk.TabTrash {
			by, at = b.DeletedBy, b.DeletedAt
		}
		when := ""
		if at != nil {
			when = at.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %6s  %-40s  %-24s  %-12s  %s\n",
			color.WhiteString(strconv.FormatInt(b.ID, 10)),
			xansi.Truncate(b.Title, 40, "…"),
			xansi.Truncate(b.Author, 24, "…"),
			xansi.Truncate(by, 12, "…"),
			when,
		)
	}
}

func newCountCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the number of matching books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ff.filter()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()

			total, err := client.Count(ctx, f.APIQuery(ff.tab(), 0, 0))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), total)
			return nil
		},
	}

	ff.register(cmd)
	return cmd
}

func newGetCmd() *cobra.Command {
	var (
		includeDeleted bool
		jsonOut        bool
	)

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()

			b, err := client.Get(ctx, id, includeDeleted)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(b)
			}
			printBook(out, b)
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeDeleted, "include-deleted", false, "Also find books in the trash")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func printBook(w io.Writer, b *api.Book) {
	stamp := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Local().Format(time.RFC3339)
	}
	fmt.Fprintf(w, "%s %d\n", color.CyanString("Book"), b.ID)
	fmt.Fprintf(w, "  Title:      %s\n", b.Title)
	fmt.Fprintf(w, "  Author:     %s\n", b.Author)
	fmt.Fprintf(w, "  Created by: %s\n", b.CreatedBy)
	fmt.Fprintf(w, "  Created at: %s\n", stamp(b.CreatedAt))
	if b.DeletedAt != nil {
		fmt.Fprintf(w, "  Deleted by: %s\n", b.DeletedBy)
		fmt.Fprintf(w, "  Deleted at: %s\n", stamp(b.DeletedAt))
	}
}

func newAddCmd() *cobra.Command {
	var title, author, createdBy string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new book",
		Long: `Create a new book.

Examples:
  bookdesk add --title "Der Hobbit" --author "J. R. R. Tolkien"
  bookdesk add --title Dune --author "Frank Herbert" --by alice`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nb := api.NewBook{
				Title:     strings.TrimSpace(title),
				Author:    strings.TrimSpace(author),
				CreatedBy: strings.TrimSpace(createdBy),
			}
			if nb.Title == "" || nb.Author == "" {
				return &desk.ValidationError{Field: "title/author", Reason: "--title and --author are required"}
			}
			if nb.CreatedBy == "" {
				nb.CreatedBy = cfg.UI.EffectiveCreatedBy()
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()

			b, err := client.Create(ctx, nb)
			if err != nil {
				return err
			}
			ok("Created book %d: %s", b.ID, b.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Book title")
	cmd.Flags().StringVar(&author, "author", "", "Book author")
	cmd.Flags().StringVar(&createdBy, "by", "", "Creator (default ui.created_by)")
	return cmd
}

func newEditCmd() *cobra.Command {
	var title, author, createdBy string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of a book",
		Long: `Update fields of an active book. Only the flags you pass are sent.

Examples:
  bookdesk edit 12 --title "Der kleine Hobbit"
  bookdesk edit 12 --author "Tolkien" --by bob`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := patchFromFlags(cmd, title, author, createdBy)
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()

			b, err := client.Update(ctx, id, p)
			if err != nil {
				return err
			}
			ok("Updated book %d: %s", b.ID, b.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&author, "author", "", "New author")
	cmd.Flags().StringVar(&createdBy, "by", "", "New creator")
	return cmd
}

// patchFromFlags builds a partial update from the flags set on cmd.
func patchFromFlags(cmd *cobra.Command, title, author, createdBy string) (api.BookPatch, error) {
	var p api.BookPatch
	field := func(flag, v string) (*string, error) {
		if !cmd.Flags().Changed(flag) {
			return nil, nil
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, &desk.ValidationError{Field: flag, Reason: "must not be empty"}
		}
		return &v, nil
	}

	var err error
	if p.Title, err = field("title", title); err != nil {
		return p, err
	}
	if p.Author, err = field("author", author); err != nil {
		return p, err
	}
	if p.CreatedBy, err = field("by", createdBy); err != nil {
		return p, err
	}
	if p.Empty() {
		return p, fmt.Errorf("nothing to update: pass --title, --author or --by")
	}
	return p, nil
}

func newDeleteCmd() *cobra.Command {
	var (
		deletedBy   string
		skipConfirm bool
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Move a book to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !skipConfirm && !confirm(fmt.Sprintf("Move book %d to the trash?", id)) {
				return fmt.Errorf("aborted")
			}
			if deletedBy == "" {
				deletedBy = cfg.UI.EffectiveCreatedBy()
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()

			if err := client.Delete(ctx, id, deletedBy); err != nil {
				return err
			}
			ok("Moved book %d to the trash", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&deletedBy, "by", "", "Who deletes the book (default ui.created_by)")
	cmd.Flags().BoolVar(&skipConfirm, "yes", false, "Skip confirmation prompt")
	return cmd
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Move a book from the trash back to the active list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()

			b, err := client.Restore(ctx, id)
			if err != nil {
				return err
			}
			ok("Restored book %d: %s", b.ID, b.Title)
			return nil
		},
	}
}

func newPurgeCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "purge <id>",
		Short: "Permanently delete a trashed book",
		Long: `Permanently delete a book that is in the trash.

THIS CANNOT BE UNDONE. Books must be moved to the trash first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !skipConfirm {
				fmt.Println(color.RedString("Book %d will be PERMANENTLY DELETED", id))
				if !confirm("Continue?") {
					return fmt.Errorf("aborted")
				}
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()

			if err := client.HardDelete(ctx, id); err != nil {
				return err
			}
			ok("Permanently deleted book %d", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipConfirm, "yes", false, "Skip confirmation prompt")
	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the Books API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := requestContext(cmd)
			defer cancel()

			status, err := client.Health(ctx)
			if err != nil {
				if api.IsUnreachable(err) {
					return fmt.Errorf("backend unreachable at %s: %w", client.BaseURL(), err)
				}
				return err
			}
			ok("%s: %s", client.BaseURL(), status)
			return nil
		},
	}
}

// confirm asks a y/N question on stdin. Without a terminal the answer is no;
// scripts pass --yes.
func confirm(prompt string) bool {
	if !util.CanPrompt() {
		warn("%s: stdin is not a terminal, use --yes", prompt)
		return false
	}
	fmt.Printf("%s (y/N): ", prompt)
	var response string
	_, _ = fmt.Scanln(&response)
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes", "j", "ja":
		return true
	}
	return false
}
