package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/bpmnpath"
	"github.com/aretw0/bpmnpath/internal/presentation/graph"
	"github.com/aretw0/bpmnpath/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PathResponse is the structured result of the find_path tool.
type PathResponse struct {
	Key   string   `json:"key" jsonschema_description:"Process definition key that was searched"`
	From  string   `json:"from" jsonschema_description:"Start node id"`
	To    string   `json:"to" jsonschema_description:"End node id"`
	Found bool     `json:"found" jsonschema_description:"Whether a path exists"`
	Hops  int      `json:"hops" jsonschema_description:"Number of flows on the path, -1 when not found"`
	Path  []string `json:"path" jsonschema_description:"Node ids from start to end"`
}

// FindPathArgs are the arguments of the find_path tool.
type FindPathArgs struct {
	Key  string `json:"key"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Engine defines what the MCP server needs from the path engine.
type Engine interface {
	FindPath(ctx context.Context, key string, q domain.Query) (*domain.Path, error)
	Graph(ctx context.Context, key string) (*domain.Graph, error)
	DefaultKey() string
}

// Server wraps the path Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("bpmnpath-mcp", strings.TrimSpace(bpmnpath.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: find_path
	findTool := mcp.NewTool("find_path",
		mcp.WithDescription("Find the shortest sequence-flow path between two nodes of a BPMN process."),
		mcp.WithString("key", mcp.Description("Process definition key (optional, defaults to "+s.engine.DefaultKey()+")")),
		mcp.WithString("from", mcp.Required(), mcp.Description("Start node id")),
		mcp.WithString("to", mcp.Required(), mcp.Description("End node id")),
		mcp.WithOutputSchema[PathResponse](),
	)
	s.mcpServer.AddTool(findTool, mcp.NewStructuredToolHandler(s.handleFindPath))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the flow nodes and sequence flows of a BPMN process."),
		mcp.WithString("key", mcp.Description("Process definition key (optional)")),
		mcp.WithString("format", mcp.Description("json (default) or mermaid")),
	), s.handleGetGraph)
}

func (s *Server) handleFindPath(ctx context.Context, request mcp.CallToolRequest, args FindPathArgs) (PathResponse, error) {
	path, err := s.engine.FindPath(ctx, args.Key, domain.Query{Start: args.From, End: args.To})
	if err != nil {
		s.logger.Warn("MCP find_path failed", "key", args.Key, "err", err)
		return PathResponse{}, fmt.Errorf("find_path failed: %w", err)
	}

	key := args.Key
	if key == "" {
		key = s.engine.DefaultKey()
	}
	nodes := path.Nodes
	if nodes == nil {
		nodes = []string{}
	}
	return PathResponse{
		Key:   key,
		From:  path.Start,
		To:    path.End,
		Found: path.Found(),
		Hops:  path.Hops(),
		Path:  nodes,
	}, nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := request.GetString("key", "")
	g, err := s.engine.Graph(ctx, key)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get_graph failed: %v", err)), nil
	}

	if request.GetString("format", "json") == "mermaid" {
		return mcp.NewToolResultText(graph.GenerateMermaid(g, nil)), nil
	}
	jsonBytes, err := json.Marshal(g)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode graph: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
