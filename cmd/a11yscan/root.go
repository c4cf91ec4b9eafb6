// Package main provides the entry point for the a11yscan CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for a11yscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "a11yscan",
		Short: "Accessibility-scan test harness for web sites",
		Long: `a11yscan visits a configured list of pages in a headless browser,
runs the axe-core accessibility engine on each, and writes one
spreadsheet of violations per page. The merge command consolidates all
per-page results into a master list and a de-duplicated work list.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewMergeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command. A run that found violations exits
// nonzero without printing the sentinel as an error; the scan output
// already reported the findings.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errViolationsFound) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
