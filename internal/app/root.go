package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/sternenweber/bookdesk/internal/api"
	"github.com/sternenweber/bookdesk/internal/config"
	"github.com/sternenweber/bookdesk/internal/desk"
	"github.com/sternenweber/bookdesk/internal/tui"
	"github.com/sternenweber/bookdesk/internal/util"
)

var (
	cfg      *config.Config
	client   *api.Client
	logger   *slog.Logger
	closeLog func() error

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
	flagBaseURL       string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bookdesk",
		Short: "Browse and manage the book catalog of a Books API server",
		Long: `bookdesk is a terminal client for the Books REST API.

It shows the active books and the trash side by side, with search, date
filters and paging, and lets you create, edit, delete, restore and purge
books.

Run 'bookdesk' with no arguments to launch the interactive screen.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return runBoard()
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			util.InitColor(flagNoColor)

			if flagConfig != "" {
				if err := os.Setenv("BOOKDESK_CONFIG", flagConfig); err != nil {
					return err
				}
			}

			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if flagBaseURL != "" {
				cfg.API.BaseURL = strings.TrimRight(flagBaseURL, "/")
			}

			logger, closeLog = setupLogger(cfg.Log)
			logger.Debug("config loaded", "path", config.Path(), "base_url", cfg.API.BaseURL)

			client = api.New(cfg.API.BaseURL,
				api.WithTimeout(cfg.API.Timeout),
				api.WithMaxLimit(cfg.API.EffectiveMaxLimit()),
			)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closeLog != nil {
				return closeLog()
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable the interactive screen")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/bookdesk/config.yml)")
	root.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Books API base URL (overrides api.base_url)")

	root.AddCommand(
		newListCmd(),
		newCountCmd(),
		newGetCmd(),
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newRestoreCmd(),
		newPurgeCmd(),
		newHealthCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// deskOptions maps the configuration onto the Controller's options.
func deskOptions() (desk.Options, error) {
	size, err := desk.ParsePageSizeKey(cfg.UI.PageSize)
	if err != nil {
		return desk.Options{}, fmt.Errorf("ui.page_size: %w", err)
	}
	return desk.Options{
		PageSize:  size,
		Debounce:  cfg.UI.EffectiveDebounce(),
		Timeout:   cfg.API.Timeout,
		CreatedBy: cfg.UI.EffectiveCreatedBy(),
		Labels:    desk.LabelsFor(cfg.UI.Locale),
		Logger:    logger,
	}, nil
}

// runBoard launches the interactive screen.
func runBoard() error {
	opts, err := deskOptions()
	if err != nil {
		return err
	}
	logger.Info("starting board", "base_url", client.BaseURL(), "page_size", opts.PageSize, "locale", cfg.UI.Locale)
	return tui.Run(client, cfg.UI.Locale, opts)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
