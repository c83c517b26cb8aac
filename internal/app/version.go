package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion records the build version reported by `bookdesk version`.
func SetVersion(v string) {
	if v != "" {
		appVersion = v
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bookdesk version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bookdesk %s (%s/%s)\n", appVersion, runtime.GOOS, runtime.GOARCH)
		},
	}
}
