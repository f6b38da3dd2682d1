package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tejashwikalptaru/termtune/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		info := app.GetVersionInfo()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, info.FullString())
		if Verbose() {
			fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
