package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/minimaxviz"
	"github.com/aretw0/minimaxviz/internal/presentation/graph"
	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/session"
)

const graphURIPrefix = "minimaxviz://graphs/"

// StepResponse is the structured result of the step tool.
type StepResponse struct {
	Session *domain.Session   `json:"session" jsonschema_description:"The session after stepping"`
	Diff    *domain.StateDiff `json:"diff,omitempty" jsonschema_description:"What changed, absent when nothing did"`
}

// GraphList is the structured result of list_graphs.
type GraphList struct {
	Graphs []string `json:"graphs"`
}

type startArgs struct {
	Graph     string `json:"graph"`
	Algorithm string `json:"algorithm"`
	Nodes     string `json:"nodes"`
}

type stepArgs struct {
	SessionID string `json:"session_id"`
	Count     int    `json:"count"`
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
	Format    string `json:"format"`
}

// Server exposes a session manager as MCP tools, so an agent can drive a
// traversal one micro-step at a time.
type Server struct {
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		sessions: sessions,
		logger:   logger,
		mcpServer: server.NewMCPServer("minimaxviz-mcp", strings.TrimSpace(minimaxviz.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+host))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	algorithms := make([]string, len(domain.Algorithms))
	for i, a := range domain.Algorithms {
		algorithms[i] = string(a)
	}

	s.mcpServer.AddTool(mcp.NewTool("list_graphs",
		mcp.WithDescription("List the graphs a session can be started on."),
		mcp.WithOutputSchema[GraphList](),
	), s.handleListGraphs)

	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a traversal session on a named graph, or on inline nodes."),
		mcp.WithString("graph", mcp.Description("Name of a known graph")),
		mcp.WithString("algorithm", mcp.Description("Traversal algorithm (default: regular)"), mcp.Enum(algorithms...)),
		mcp.WithString("nodes", mcp.Description("JSON array of nodes; overrides graph when set")),
	), s.handleStart)

	s.mcpServer.AddTool(mcp.NewTool("step",
		mcp.WithDescription("Advance a session by one or more micro-steps."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithNumber("count", mcp.Description("Number of micro-steps (default: 1)")),
		mcp.WithOutputSchema[StepResponse](),
	), s.handleStep)

	s.mcpServer.AddTool(mcp.NewTool("snapshot",
		mcp.WithDescription("Read the current state of a session, as JSON or as a Mermaid/DOT drawing."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("format", mcp.Description("json (default), mermaid or dot"), mcp.Enum("json", "mermaid", "dot")),
	), s.handleSnapshot)

	s.mcpServer.AddTool(mcp.NewTool("restart",
		mcp.WithDescription("Discard the traversal of a session and start over."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), s.handleRestart)
}

func (s *Server) handleListGraphs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := GraphList{Graphs: []string{}}
	if loader := s.sessions.Loader(); loader != nil {
		names, err := loader.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		list.Graphs = names
	}
	return structured(list)
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args startArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	var (
		sess *domain.Session
		err  error
	)
	if args.Nodes != "" {
		var nodes []domain.GraphNode
		if err := json.Unmarshal([]byte(args.Nodes), &nodes); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("nodes must be a JSON array: %v", err)), nil
		}
		name := args.Graph
		if name == "" {
			name = "inline"
		}
		sess, err = s.sessions.Create(ctx, name, nodes, domain.Algorithm(args.Algorithm))
	} else {
		sess, err = s.sessions.Open(ctx, args.Graph, domain.Algorithm(args.Algorithm))
	}
	if err != nil {
		s.logger.Warn("MCP start_session rejected", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("start failed: %v", err)), nil
	}
	return structured(sess)
}

func (s *Server) handleStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args stepArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	sess, diff, err := s.sessions.Step(ctx, args.SessionID, args.Count)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("step failed: %v", err)), nil
	}
	return structured(StepResponse{Session: sess, Diff: diff})
}

func (s *Server) handleSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sessionArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	sess, err := s.sessions.Snapshot(ctx, args.SessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("snapshot failed: %v", err)), nil
	}

	switch args.Format {
	case "mermaid":
		return mcp.NewToolResultText(graph.GenerateMermaid(sess.State.GraphNodes(), sess.State)), nil
	case "dot":
		return mcp.NewToolResultText(graph.GenerateDOT(sess.Graph, sess.State.GraphNodes(), sess.State)), nil
	}
	return structured(sess)
}

func (s *Server) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sessionArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	sess, err := s.sessions.Restart(ctx, args.SessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("restart failed: %v", err)), nil
	}
	return structured(sess)
}

// structured returns v both as structured content and as its JSON text.
func structured(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultStructured(v, string(data)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: minimaxviz://graphs/{name}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(graphURIPrefix+"{name}", "Graph Definition",
		mcp.WithTemplateDescription("A graph known to the server, as JSON"),
		mcp.WithTemplateMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		loader := s.sessions.Loader()
		if loader == nil {
			return nil, domain.ErrGraphNotFound
		}
		name := strings.TrimPrefix(request.Params.URI, graphURIPrefix)
		doc, err := loader.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
