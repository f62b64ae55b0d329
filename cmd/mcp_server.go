package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/webrun/webrun/internal/browser"
	"github.com/webrun/webrun/internal/engine"
	"github.com/webrun/webrun/internal/logger"
)

// mcpServer wraps the MCP server. Runs are serialized through runMu because
// the engine owns a single browser session at a time.
type mcpServer struct {
	runMu sync.Mutex
	log   logger.Logger
	mcp   *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
	LogLevel  string
}

func newMCPServer(cfg MCPConfig) *mcpServer {
	s := &mcpServer{
		log: logger.NewLogrusLogger(cfg.LogLevel),
	}

	s.mcp = mcpserver.NewMCPServer(
		"webrun",
		"1.0.0",
	)

	s.registerTools()
	return s
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("validate_script",
			mcp.WithDescription("Validate a YAML browser test script without launching a browser. Returns structural errors such as unknown actions or missing required parameters."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the YAML test script")),
		),
		s.handleValidateScript,
	)

	s.mcp.AddTool(
		mcp.NewTool("run_script",
			mcp.WithDescription("Run a YAML browser test script and return its result, including step counts and failure screenshots."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the YAML test script")),
			mcp.WithString("browser", mcp.Description("Browser to use: chromium, firefox, webkit (default chromium)")),
			mcp.WithBoolean("headless", mcp.Description("Run in headless mode (default true; the script's own setting still wins)")),
			mcp.WithString("artifact-dir", mcp.Description("Directory for failure screenshots (default working dir)")),
		),
		s.handleRunScript,
	)
}

func (s *mcpServer) handleValidateScript(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	report := validateScript(path)
	text, err := yaml.Marshal(report)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !report.Valid {
		return mcp.NewToolResultError(string(text)), nil
	}
	return mcp.NewToolResultText(string(text)), nil
}

func (s *mcpServer) handleRunScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	browserName := "chromium"
	if v, ok := args["browser"].(string); ok && v != "" {
		browserName = v
	}
	headless := true
	if v, ok := args["headless"].(bool); ok {
		headless = v
	}
	artifactDir := "."
	if v, ok := args["artifact-dir"].(string); ok && v != "" {
		artifactDir = v
	}

	browserType, err := browser.ParseBrowserType(browserName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	eng := engine.New(engine.Config{
		Headless:    headless,
		Browser:     browserType,
		ArtifactDir: artifactDir,
		Annotate:    true,
		Logger:      s.log,
	})
	if err := eng.Start(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer eng.Stop()

	result, err := eng.RunScriptFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := yaml.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !result.Passed {
		return mcp.NewToolResultError(string(text)), nil
	}
	return mcp.NewToolResultText(string(text)), nil
}
