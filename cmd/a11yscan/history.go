package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent page visits from the history database",
		Long: `History lists recently recorded page visits with their violation
counts, newest first. Visits are recorded by the scan command unless
--no-history was given.`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 50, "Maximum number of visits to list")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory holding the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("no scan history available: %w", err)
	}
	defer db.Close() //nolint:errcheck // Read-only access

	visits, err := db.ListVisits(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(visits) == 0 {
		fmt.Println("No recorded visits.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCANNED\tSITE\tPAGE\tDEVICE\tVIOLATIONS\tSTATUS")
	for _, v := range visits {
		status := "pass"
		switch {
		case v.Error != "":
			status = "error"
		case v.Violations > 0:
			status = "fail"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			v.ScannedAt.Format("2006-01-02 15:04"),
			v.Site, v.Page, v.Device, v.Violations, status)
	}
	return w.Flush()
}
