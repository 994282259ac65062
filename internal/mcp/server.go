package mcp

import (
	"context"
	"log/slog"

	"github.com/claude/c25k/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(store storage.Store, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("C25K", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Couch to 5K training server. Query the 9-week program, the user's adapted plan, recorded sessions and progress, and build fitness platform exports. All data is scoped to the configured user."),
	)

	h := &handlers{store: store, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetProgram, Handler: h.getProgram},
		server.ServerTool{Tool: toolGetPlan, Handler: h.getPlan},
		server.ServerTool{Tool: toolGetTips, Handler: h.getTips},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolRecordSession, Handler: h.recordSession},
		server.ServerTool{Tool: toolExportWorkouts, Handler: h.exportWorkouts},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resProgram, Handler: h.programResource},
		server.ServerResource{Resource: resExportFormats, Handler: h.exportFormatsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	store storage.Store
	log   *slog.Logger
}

// --- Resource definitions ---

var resProgram = mcp.NewResource(
	"c25k://program",
	"Training Program",
	mcp.WithResourceDescription("The full unadapted 9-week Couch to 5K program with all workouts, intervals, and tips"),
	mcp.WithMIMEType("application/json"),
)

var resExportFormats = mcp.NewResource(
	"c25k://export_formats",
	"Export Formats",
	mcp.WithResourceDescription("Available plan export formats with descriptions"),
	mcp.WithMIMEType("application/json"),
)
