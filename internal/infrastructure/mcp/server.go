// Package mcp exposes the quickcap pipeline as MCP tools so agent clients
// can analyze notes and create tracker tasks.
package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/mkessler/quickcap/internal/application"
	"github.com/mkessler/quickcap/internal/domain/capture"
	"github.com/mkessler/quickcap/internal/domain/settings"
	"github.com/mkessler/quickcap/internal/domain/tracker"
)

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// Server wires the application services into an MCP tool surface.
type Server struct {
	mcpServer  *mcp.Server
	analyze    *application.AnalyzeService
	captures   *application.CaptureService
	categories *application.CategoryService
	settings   settings.Store
	tracker    tracker.Tracker
}

// Deps carries the server's collaborators. Tracker may be nil when no
// tracker connection is configured.
type Deps struct {
	Analyze    *application.AnalyzeService
	Captures   *application.CaptureService
	Categories *application.CategoryService
	Settings   settings.Store
	Tracker    tracker.Tracker
}

// mcpErr returns a user-friendly error for MCP clients. Internal details are
// omitted; only the friendly message is returned.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

func NewServer(deps Deps) *Server {
	info := mcp.ServerInfo{
		Name:    "quickcap",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("Quickcap MCP Server"),
			mcp.WithDescription("Quickcap turns free-form notes into structured tracker tasks via a local or cloud AI model."),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Use quickcap_analyze to turn a note into a task preview, then quickcap_create_task to commit it to the tracker."),
		),
		analyze:    deps.Analyze,
		captures:   deps.Captures,
		categories: deps.Categories,
		settings:   deps.Settings,
		tracker:    deps.Tracker,
	}

	s.registerTools()
	return s
}

type AnalyzeArgs struct {
	Text string `json:"text" jsonschema:"description=The free-form note to analyze"`
}

type CreateTaskArgs struct {
	Task      capture.Preview `json:"task" jsonschema:"description=The task preview to commit, as returned by quickcap_analyze"`
	ProjectID int             `json:"project_id" jsonschema:"description=The target project id"`
	UserID    int             `json:"user_id,omitempty" jsonschema:"description=The acting user id, defaults to the configured user"`
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("quickcap_analyze").
		Description("Analyze a free-form note and return a structured task preview with category, priority, deadline and subtasks").
		Handler(s.handleAnalyze)

	s.mcpServer.Tool("quickcap_create_task").
		Description("Create a task (and its subtasks) in the configured tracker from an analyzed preview").
		Handler(s.handleCreateTask)

	s.mcpServer.Tool("quickcap_list_categories").
		Description("List the configured task categories with their keywords").
		Handler(s.handleListCategories)

	s.mcpServer.Tool("quickcap_list_models").
		Description("List the models available on the configured AI provider").
		Handler(s.handleListModels)

	s.mcpServer.Tool("quickcap_status").
		Description("Report the connectivity status of the AI provider and the tracker").
		Handler(s.handleStatus)
}

func (s *Server) handleAnalyze(ctx context.Context, args AnalyzeArgs) (any, error) {
	draft, _, err := s.analyze.Analyze(ctx, args.Text)
	if err != nil {
		return nil, mcpErr("Analysis failed. Check the AI provider configuration with quickcap_status.")
	}
	return s.analyze.Preview(draft), nil
}

func (s *Server) handleCreateTask(ctx context.Context, args CreateTaskArgs) (any, error) {
	userID := args.UserID
	if userID == 0 {
		values, err := s.settings.All()
		if err != nil {
			return nil, mcpErr("Failed to load settings.")
		}
		userID = values.DefaultUser()
	}

	result, err := s.captures.Materialize(ctx, args.Task.Draft(args.ProjectID), userID)
	if err != nil {
		return nil, mcpErr("Task creation failed. Verify the tracker connection and the project id.")
	}
	return result, nil
}

func (s *Server) handleListCategories(ctx context.Context, args struct{}) (any, error) {
	cats, err := s.categories.All()
	if err != nil {
		return nil, mcpErr("Failed to load categories.")
	}
	return cats, nil
}

func (s *Server) handleListModels(ctx context.Context, args struct{}) (any, error) {
	models, err := s.analyze.ListModels(ctx)
	if err != nil {
		return nil, mcpErr("Failed to list models. Check the AI provider configuration.")
	}
	return models, nil
}

type statusReport struct {
	Provider string `json:"provider"`
	Tracker  string `json:"tracker"`
}

func (s *Server) handleStatus(ctx context.Context, args struct{}) (any, error) {
	report := statusReport{Provider: "ok", Tracker: "ok"}
	if err := s.analyze.TestProvider(ctx); err != nil {
		report.Provider = err.Error()
	}
	if s.tracker == nil {
		report.Tracker = "not configured"
	} else if err := s.tracker.TestConnection(ctx); err != nil {
		report.Tracker = err.Error()
	}
	return report, nil
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}
