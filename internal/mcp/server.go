// Package mcp provides an MCP (Model Context Protocol) server for eg.
// This allows AI agents to browse the report feed through MCP tools
// instead of spawning CLI commands.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/eduguard/eg/internal/api"
	"github.com/eduguard/eg/internal/config"
	"github.com/eduguard/eg/internal/feed"
)

// Server wraps the MCP server with eg-specific functionality. All tools
// are read-only; verification and deletion stay CLI-only.
type Server struct {
	mcpServer    *server.MCPServer
	client       *api.Client
	cfg          *config.Config
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration
type Config struct {
	Tools   []string      // Which tools to expose (empty = all)
	Timeout time.Duration // Inactivity timeout (0 = no timeout)
	BaseURL string        // API base URL override (empty = config value)
}

// DefaultTools is the default set of tools to expose
var DefaultTools = []string{"eg_feed", "eg_stats", "eg_show"}

// AllTools lists all available tools
var AllTools = []string{"eg_feed", "eg_stats", "eg_show"}

// New creates a new MCP server for eg
func New(cfg Config) (*Server, error) {
	appCfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.BaseURL != "" {
		appCfg.API.BaseURL = cfg.BaseURL
	}

	mcpServer := server.NewMCPServer(
		"eg",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		client:       api.NewClient(appCfg.API.BaseURL),
		cfg:          appCfg,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = DefaultTools
	}

	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}

	return s, nil
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(name string) error {
	switch name {
	case "eg_feed":
		return s.registerFeedTool()
	case "eg_stats":
		return s.registerStatsTool()
	case "eg_show":
		return s.registerShowTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	if s.timeout > 0 {
		go s.timeoutChecker()
	}

	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			fmt.Fprintf(os.Stderr, "eg mcp: timeout after %v of inactivity\n", s.timeout)
			os.Exit(0)
		}
	}
}

// updateActivity updates the last activity timestamp
func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// ListTools returns the list of registered tools
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// Tool registration

func (s *Server) registerFeedTool() error {
	tool := mcp.NewTool("eg_feed",
		mcp.WithDescription("Browse the public feed of verified recent exam-malpractice reports. Supports search, tag filtering, and pagination."),
		mcp.WithString("query",
			mcp.Description("Free-text search, matched case-insensitively against exam and center names"),
		),
		mcp.WithString("tag",
			mcp.Description("Exam tag filter (e.g. NEET, JEE)"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number, 1-based (default: 1)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleFeed)
	return nil
}

func (s *Server) registerStatsTool() error {
	tool := mcp.NewTool("eg_stats",
		mcp.WithDescription("Summary statistics over all reports: totals, verification counts, and the most-reported centers."),
		mcp.WithNumber("top",
			mcp.Description("How many top centers to include (default: 5)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleStats)
	return nil
}

func (s *Server) registerShowTool() error {
	tool := mcp.NewTool("eg_show",
		mcp.WithDescription("Show one report in full, including its media URL."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Report ID to look up"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleShow)
	return nil
}

// Tool handlers

// feedResult is the eg_feed response shape.
type feedResult struct {
	Reports    []feed.ReportView  `json:"reports"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	Total      int                `json:"total"`
	Query      string             `json:"query,omitempty"`
	Tag        string             `json:"tag,omitempty"`
	TopCenters []feed.CenterCount `json:"topCenters"`
}

func (s *Server) handleFeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	query, _ := args["query"].(string)
	tag, _ := args["tag"].(string)
	page := 1
	if p, ok := args["page"].(float64); ok {
		page = int(p)
	}

	reports, err := s.client.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching reports: %v", err)), nil
	}

	store := feed.NewStore(feed.Filter{
		VerifiedOnly: true,
		Window:       time.Duration(s.cfg.Feed.WindowDays) * 24 * time.Hour,
		MatchFields:  s.cfg.MatchFields(),
	}, s.cfg.Feed.PageSize)

	gen := store.Begin()
	store.Complete(gen, reports)
	store.Restore(feed.ViewState{Query: query, Tag: tag, Page: page})

	snap := store.Snapshot()

	result := feedResult{
		Reports: feed.Project(snap.PageReports, feed.ProjectOptions{
			Media:    s.cfg.MediaRules(),
			MediaURL: s.client.MediaURL,
		}),
		Page:       snap.State.Page,
		TotalPages: snap.TotalPages,
		Total:      snap.Total,
		Query:      snap.State.Query,
		Tag:        snap.State.Tag,
		TopCenters: feed.TopCenters(snap.All, s.cfg.Feed.TopCenters),
	}

	return jsonResult(result)
}

// statsResult is the eg_stats response shape.
type statsResult struct {
	Total      int                `json:"total"`
	Verified   int                `json:"verified"`
	Pending    int                `json:"pending"`
	TopCenters []feed.CenterCount `json:"topCenters"`
}

func (s *Server) handleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	top := s.cfg.Feed.TopCenters
	if t, ok := args["top"].(float64); ok && int(t) > 0 {
		top = int(t)
	}

	reports, err := s.client.ListReports(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching reports: %v", err)), nil
	}

	result := statsResult{Total: len(reports)}
	for _, r := range reports {
		if r.IsVerified {
			result.Verified++
		} else {
			result.Pending++
		}
	}
	result.TopCenters = feed.TopCenters(reports, top)

	return jsonResult(result)
}

func (s *Server) handleShow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	id, _ := args["id"].(string)
	if id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	reports, err := s.client.ListReports(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching reports: %v", err)), nil
	}

	for _, r := range reports {
		if r.ID != id {
			continue
		}
		views := feed.Project([]feed.Report{r}, feed.ProjectOptions{
			Media:    s.cfg.MediaRules(),
			MediaURL: s.client.MediaURL,
		})
		return jsonResult(views[0])
	}

	return mcp.NewToolResultError(fmt.Sprintf("report not found: %s", id)), nil
}

// jsonResult marshals v as the tool's text payload.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
