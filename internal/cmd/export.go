package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eduguard/eg/internal/export"
	"github.com/eduguard/eg/internal/output"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full report set (admin)",
	Long: `Export every report as CSV (the spreadsheet layout the admin console
used) or as a raw JSON array. Writes to stdout unless --output is given.
Requires an admin session.

Examples:
  eg export --as csv -o reports.csv
  eg export --as json > reports.json`,
	RunE: runExport,
}

var (
	exportAs     string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportAs, "as", "csv", "Export format (csv|json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportAs != "csv" && exportAs != "json" {
		return fmt.Errorf("invalid export format %q (expected csv or json)", exportAs)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := requireAdmin(store); err != nil {
		return err
	}

	client := newClient(cfg)
	reports, err := client.List(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, output.MsgFailedToLoad)
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch exportAs {
	case "csv":
		err = export.WriteCSV(w, reports)
	case "json":
		err = export.WriteJSON(w, reports)
	}
	if err != nil {
		return err
	}

	if exportOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d reports to %s\n", len(reports), exportOutput)
	}
	return nil
}
