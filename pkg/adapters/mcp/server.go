// Package mcp exposes builder sessions to agents over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/aretw0/dropzone/internal/logging"
	"github.com/aretw0/dropzone/internal/runtime"
	"github.com/aretw0/dropzone/pkg/catalog"
	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/aretw0/dropzone/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CatalogURI is the resource holding the component catalog.
const CatalogURI = "catalog://components"

// SessionResult is returned by every session tool.
type SessionResult struct {
	Snapshot *domain.Snapshot      `json:"snapshot" jsonschema_description:"State of the builder session after the call"`
	Diff     *domain.SnapshotDiff  `json:"diff,omitempty" jsonschema_description:"What the call changed; omitted when nothing changed"`
	Node     *domain.ComponentNode `json:"node,omitempty" jsonschema_description:"Node placed by a drop"`
	Root     *domain.ComponentNode `json:"root,omitempty" jsonschema_description:"Updated tree after a drop"`
}

// Server wraps a session manager and catalog as an MCP server.
type Server struct {
	sessions  *session.Manager
	catalog   *catalog.Catalog
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, cat *catalog.Catalog, version string, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		catalog:   cat,
		mcpServer: server.NewMCPServer("dropzone-mcp", version),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
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

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
// baseURL is the externally reachable address advertised to clients.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

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

		s.logger.Info("Shutdown signal received, shutting down MCP server")
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
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_components",
		mcp.WithDescription("List palette components, optionally filtered by category."),
		mcp.WithString("category", mcp.Description("Category name, e.g. \"Containment\" (optional)")),
	), s.handleListComponents)

	sessionID := mcp.WithString("session_id", mcp.Required(), mcp.Description("Builder session ID"))

	s.mcpServer.AddTool(mcp.NewTool("start_drag",
		mcp.WithDescription("Start dragging a catalog component (palette drag) or an existing canvas node."),
		sessionID,
		mcp.WithString("component_id", mcp.Description("Catalog ID to drag from the palette")),
		mcp.WithString("item", mcp.Description("JSON object of a canvas node to move: {id, type, name, content, styles, children}")),
		mcp.WithBoolean("from_palette", mcp.Description("Treat item as a palette template (copied under a new ID)")),
	), mcp.NewStructuredToolHandler(s.handleStartDrag))

	s.mcpServer.AddTool(mcp.NewTool("show_indicator",
		mcp.WithDescription("Show the drop indicator at an insertion point."),
		sessionID,
		mcp.WithString("target_container_id", mcp.Required(), mcp.Description("Container receiving the drop")),
		mcp.WithNumber("insert_index", mcp.Description("Child index to insert at; omit or -1 to append")),
		mcp.WithNumber("x", mcp.Description("Pointer x coordinate")),
		mcp.WithNumber("y", mcp.Description("Pointer y coordinate")),
		mcp.WithString("orientation", mcp.Description("horizontal (default) or vertical")),
	), mcp.NewStructuredToolHandler(s.handleShowIndicator))

	s.mcpServer.AddTool(mcp.NewTool("hide_indicator",
		mcp.WithDescription("Hide the drop indicator."),
		sessionID,
	), mcp.NewStructuredToolHandler(s.handleHideIndicator))

	s.mcpServer.AddTool(mcp.NewTool("end_drag",
		mcp.WithDescription("End the current drag and hide the indicator."),
		sessionID,
	), mcp.NewStructuredToolHandler(s.handleEndDrag))

	s.mcpServer.AddTool(mcp.NewTool("drop",
		mcp.WithDescription("Commit the current drag into a page tree at the indicator position."),
		sessionID,
		mcp.WithString("root", mcp.Required(), mcp.Description("JSON object of the page tree root")),
		mcp.WithString("zones", mcp.Description("JSON array of drop zones: [{id, type, accepts}]")),
	), mcp.NewStructuredToolHandler(s.handleDrop))

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get the drag session and drop indicator of a builder session."),
		sessionID,
	), mcp.NewStructuredToolHandler(s.handleGetSession))
}

func (s *Server) handleListComponents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defs := s.catalog.All()
	if category := request.GetString("category", ""); category != "" {
		defs = s.catalog.ByCategory(category)
	}
	data, err := json.Marshal(defs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func numberArg(args map[string]interface{}, key string, def float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return def
}

// intArg reads a JSON number that must hold an int.
func intArg(args map[string]interface{}, key string, def int) (int, error) {
	v, ok := args[key].(float64)
	if !ok {
		return def, nil
	}
	if v != math.Trunc(v) || v < math.MinInt || v >= math.MaxInt {
		return 0, fmt.Errorf("%s must be an integer, got %v", key, v)
	}
	return int(v), nil
}

func (s *Server) update(ctx context.Context, args map[string]interface{}, fn func(*runtime.Controller) error) (SessionResult, error) {
	id := stringArg(args, "session_id")
	if id == "" {
		return SessionResult{}, errors.New("session_id is required")
	}
	old, updated, err := s.sessions.Update(ctx, id, fn)
	if err != nil {
		return SessionResult{}, err
	}
	return SessionResult{Snapshot: updated, Diff: domain.Diff(old, updated)}, nil
}

func (s *Server) handleStartDrag(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResult, error) {
	componentID := stringArg(args, "component_id")
	rawItem := stringArg(args, "item")
	fromPalette, _ := args["from_palette"].(bool)

	var (
		item *domain.ComponentNode
		err  error
	)
	switch {
	case componentID != "" && rawItem != "":
		return SessionResult{}, errors.New("component_id and item are mutually exclusive")
	case componentID != "":
		item, err = s.catalog.Template(componentID)
		fromPalette = true
	case rawItem != "":
		var m map[string]any
		if err := json.Unmarshal([]byte(rawItem), &m); err != nil {
			return SessionResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidNode, err)
		}
		item, err = domain.DecodeNode(m)
	default:
		return SessionResult{}, errors.New("component_id or item is required")
	}
	if err != nil {
		return SessionResult{}, err
	}

	return s.update(ctx, args, func(c *runtime.Controller) error {
		c.Start(item, fromPalette)
		return nil
	})
}

func (s *Server) handleShowIndicator(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResult, error) {
	orientation, err := domain.ParseOrientation(stringArg(args, "orientation"))
	if err != nil {
		return SessionResult{}, err
	}
	target := stringArg(args, "target_container_id")
	index, err := intArg(args, "insert_index", domain.NoIndex)
	if err != nil {
		return SessionResult{}, err
	}
	x, y := numberArg(args, "x", 0), numberArg(args, "y", 0)

	return s.update(ctx, args, func(c *runtime.Controller) error {
		c.Show(target, index, x, y, orientation)
		return nil
	})
}

func (s *Server) handleHideIndicator(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResult, error) {
	return s.update(ctx, args, func(c *runtime.Controller) error {
		c.Hide()
		return nil
	})
}

func (s *Server) handleEndDrag(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResult, error) {
	return s.update(ctx, args, func(c *runtime.Controller) error {
		c.End()
		return nil
	})
}

func (s *Server) handleDrop(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResult, error) {
	var root domain.ComponentNode
	if err := json.Unmarshal([]byte(stringArg(args, "root")), &root); err != nil {
		return SessionResult{}, fmt.Errorf("%w: root: %v", domain.ErrInvalidNode, err)
	}
	var zones []domain.DropZone
	if raw := stringArg(args, "zones"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &zones); err != nil {
			return SessionResult{}, fmt.Errorf("invalid zones: %w", err)
		}
	}

	var node *domain.ComponentNode
	res, err := s.update(ctx, args, func(c *runtime.Controller) error {
		var err error
		node, err = c.Drop(&root, zones...)
		return err
	})
	if err != nil {
		return SessionResult{}, err
	}
	res.Node, res.Root = node, &root
	return res, nil
}

func (s *Server) handleGetSession(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResult, error) {
	snap, err := s.sessions.Load(ctx, stringArg(args, "session_id"))
	if err != nil {
		return SessionResult{}, err
	}
	return SessionResult{Snapshot: snap}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Component Catalog",
		mcp.WithResourceDescription("Palette categories and component templates"),
		mcp.WithMIMEType("application/json"),
	), s.readCatalog)
}

func (s *Server) readCatalog(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(catalog.File{
		Categories: s.catalog.Categories(),
		Components: s.catalog.All(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
