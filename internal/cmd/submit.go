package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eduguard/eg/internal/api"
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a new malpractice report",
	Long: `Submit a new report to the service. Exam name, center name and a
description are required; a media file (photo, video or any document) is
optional and uploaded alongside the form.

The submission lands unverified and appears in the public feed only after
an administrator verifies it.

Examples:
  eg submit --exam NEET --center "City Hall" --desc "Phones in the hall"
  eg submit --exam JEE --center "Town School" --desc "..." --media proof.jpg`,
	RunE: runSubmit,
}

var (
	submitExam   string
	submitCenter string
	submitDesc   string
	submitMedia  string
)

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(&submitExam, "exam", "", "Exam name (e.g. NEET, JEE, CUET)")
	submitCmd.Flags().StringVar(&submitCenter, "center", "", "Exam center name")
	submitCmd.Flags().StringVar(&submitDesc, "desc", "", "What happened")
	submitCmd.Flags().StringVar(&submitMedia, "media", "", "Path to an optional media file")

	submitCmd.MarkFlagRequired("exam")
	submitCmd.MarkFlagRequired("center")
	submitCmd.MarkFlagRequired("desc")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sub := api.Submission{
		ExamName:    submitExam,
		CenterName:  submitCenter,
		Description: submitDesc,
	}

	if submitMedia != "" {
		f, err := os.Open(submitMedia)
		if err != nil {
			return fmt.Errorf("open media file: %w", err)
		}
		defer f.Close()
		sub.MediaName = filepath.Base(submitMedia)
		sub.Media = f
	}

	client := newClient(cfg)
	if err := client.Submit(context.Background(), sub); err != nil {
		return fmt.Errorf("submit report: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Report submitted. It will appear in the feed once verified.")
	return nil
}
