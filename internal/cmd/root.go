// Package cmd contains all CLI commands for eg.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is the current version of eg.
var Version = "0.1.0"

// Global flags
var (
	verbose      bool
	configPath   string
	outputFormat string
	apiOverride  string
	forAgents    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "eg",
	Short: "Command-line client for the exam malpractice report service",
	Long: `eg is a terminal client for the exam malpractice reporting service.

It fetches reports from the remote report API and presents the same three
surfaces the website has: the public feed of verified recent reports, the
raw dashboard listing, and the admin console for verifying, deleting and
exporting reports. Search, tag filters, pagination and the reports-per-center
chart are computed locally; preferences (last search, tag, page, dark mode)
persist between runs.

Output Format:
  All commands print a human-readable table layout by default.
  Use --format yaml or --format json for scripted use.

Main capabilities:
  - Browse the verified public feed with search, tags and pages
  - List every report straight from the API
  - Submit a new report with an optional media attachment
  - Verify or delete reports (admin session required)
  - Summarize totals and top centers
  - Export the full report set as CSV or JSON
  - Serve feed queries over MCP for AI agents

Examples:
  eg feed                            # Browse the public feed
  eg feed --search neet --page 2     # Search and page through it
  eg dashboard                       # Raw listing
  eg submit --exam NEET --center "City Hall" --desc "..."
  eg login && eg verify 6650be...    # Admin actions
  eg stats                           # Totals and top centers
  eg export --as csv -o reports.csv  # Spreadsheet export

See 'eg <command> --help' for command-specific options.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.eduguard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format (table|yaml|json)")
	rootCmd.PersistentFlags().StringVar(&apiOverride, "api", "", "Report service base URL (overrides config)")
	rootCmd.Flags().BoolVar(&forAgents, "for-agents", false, "Output machine-readable capability discovery JSON")

	// Set custom help function to intercept --for-agents flag
	originalHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if forAgents {
			outputAgentHelp(cmd)
			return
		}
		originalHelp(cmd, args)
	})
}

// CommandInfo represents a command for agent discovery
type CommandInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Usage       string        `json:"usage"`
	Flags       []FlagInfo    `json:"flags,omitempty"`
	Subcommands []CommandInfo `json:"subcommands,omitempty"`
	Examples    []string      `json:"examples,omitempty"`
}

// FlagInfo represents a command flag for agent discovery
type FlagInfo struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
}

// outputAgentHelp outputs machine-readable JSON describing all commands
func outputAgentHelp(cmd *cobra.Command) {
	root := buildCommandInfo(cmd.Root())

	payload := map[string]interface{}{
		"version":      Version,
		"commands":     root.Subcommands,
		"global_flags": root.Flags,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(payload)
}

// buildCommandInfo recursively builds command information for agent discovery
func buildCommandInfo(cmd *cobra.Command) CommandInfo {
	info := CommandInfo{
		Name:        cmd.Name(),
		Description: cmd.Short,
		Usage:       cmd.UseLine(),
	}

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		info.Flags = append(info.Flags, FlagInfo{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Description: f.Usage,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
		})
	})

	for _, sub := range cmd.Commands() {
		if !sub.Hidden {
			info.Subcommands = append(info.Subcommands, buildCommandInfo(sub))
		}
	}

	if cmd.Example != "" {
		lines := strings.Split(cmd.Example, "\n")
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" {
				info.Examples = append(info.Examples, trimmed)
			}
		}
	}

	return info
}
