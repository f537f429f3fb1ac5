package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eduguard/eg/internal/config"
	"github.com/eduguard/eg/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agent integration",
	Long: `Start an MCP (Model Context Protocol) server over stdio.

This lets AI agents browse the report feed through MCP tools instead of
spawning CLI commands. All tools are read-only; verification and deletion
stay behind the CLI's admin session.

Available Tools:
  eg_feed     Browse the public feed with search, tag and page filters
  eg_stats    Summary statistics and most-reported centers
  eg_show     One report in full, including its media URL

Examples:
  eg mcp --serve                     # Start with all tools
  eg mcp --serve --tools feed,show   # Start with specific tools only
  eg mcp --serve --timeout 30m       # Auto-stop after 30 minutes idle
  eg mcp --status                    # Check if a server is running
  eg mcp --stop                      # Stop a running server
  eg mcp --list-tools                # Show available tools`,
	RunE: runMCP,
}

var (
	mcpServe     bool
	mcpTools     string
	mcpTimeout   string
	mcpStatus    bool
	mcpStop      bool
	mcpListTools bool
)

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().BoolVar(&mcpServe, "serve", false, "Start MCP server (stdio transport)")
	mcpCmd.Flags().StringVar(&mcpTools, "tools", "", "Comma-separated list of tools to expose (default: all)")
	mcpCmd.Flags().StringVar(&mcpTimeout, "timeout", "30m", "Inactivity timeout (0 for no timeout)")
	mcpCmd.Flags().BoolVar(&mcpStatus, "status", false, "Check if server is running")
	mcpCmd.Flags().BoolVar(&mcpStop, "stop", false, "Stop running server")
	mcpCmd.Flags().BoolVar(&mcpListTools, "list-tools", false, "List available tools")
}

func runMCP(cmd *cobra.Command, args []string) error {
	if mcpListTools {
		fmt.Println("Available MCP tools:")
		fmt.Println()
		fmt.Println("  eg_feed     Browse the public feed with search, tag and page filters")
		fmt.Println("  eg_stats    Summary statistics and most-reported centers")
		fmt.Println("  eg_show     One report in full, including its media URL")
		return nil
	}

	if mcpStatus {
		return checkServerStatus()
	}

	if mcpStop {
		return stopServer()
	}

	if !mcpServe {
		return fmt.Errorf("use --serve to start the MCP server, or --help for usage")
	}

	timeout, err := parseTimeout(mcpTimeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	var tools []string
	if mcpTools != "" {
		for _, t := range strings.Split(mcpTools, ",") {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			// Allow shorthand (feed -> eg_feed)
			if !strings.HasPrefix(t, "eg_") {
				t = "eg_" + t
			}
			tools = append(tools, t)
		}
	}

	srv, err := mcp.New(mcp.Config{
		Tools:   tools,
		Timeout: timeout,
		BaseURL: apiOverride,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if err := writePIDFile(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write PID file: %v\n", err)
	}
	defer removePIDFile()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintf(os.Stderr, "\neg mcp: shutting down\n")
		removePIDFile()
		os.Exit(0)
	}()

	// Log startup info to stderr (stdout is for MCP protocol)
	fmt.Fprintf(os.Stderr, "eg mcp: starting MCP server\n")
	fmt.Fprintf(os.Stderr, "eg mcp: tools: %v\n", srv.ListTools())
	if timeout > 0 {
		fmt.Fprintf(os.Stderr, "eg mcp: timeout: %v\n", timeout)
	}

	return srv.ServeStdio()
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "0" || s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func getPIDFilePath() (string, error) {
	dir, err := config.EnsureDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mcp.pid"), nil
}

func writePIDFile() error {
	pidPath, err := getPIDFilePath()
	if err != nil {
		return err
	}
	return os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func removePIDFile() {
	pidPath, err := getPIDFilePath()
	if err != nil {
		return
	}
	os.Remove(pidPath)
}

func checkServerStatus() error {
	pidPath, err := getPIDFilePath()
	if err != nil {
		fmt.Println("Status: not running")
		return nil
	}

	data, err := os.ReadFile(pidPath)
	if err != nil {
		fmt.Println("Status: not running")
		return nil
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		fmt.Println("Status: not running (invalid PID file)")
		return nil
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		fmt.Println("Status: not running")
		removePIDFile()
		return nil
	}

	// On Unix, FindProcess always succeeds, so signal 0 checks liveness
	if err := process.Signal(syscall.Signal(0)); err != nil {
		fmt.Println("Status: not running (stale PID file)")
		removePIDFile()
		return nil
	}

	fmt.Printf("Status: running (PID %d)\n", pid)
	return nil
}

func stopServer() error {
	pidPath, err := getPIDFilePath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(pidPath)
	if err != nil {
		fmt.Println("No server running")
		return nil
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		removePIDFile()
		return fmt.Errorf("invalid PID file")
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		removePIDFile()
		fmt.Println("No server running")
		return nil
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		removePIDFile()
		fmt.Println("Server already stopped")
		return nil
	}

	fmt.Printf("Stopped server (PID %d)\n", pid)
	return nil
}
