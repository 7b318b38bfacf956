// ABOUTME: MCP server setup for the fitdiary tracker.
// ABOUTME: Tools and resources call the tracker; food tools need a food service.
package mcp

import (
	"context"

	"github.com/harperreed/fitdiary/internal/food"
	"github.com/harperreed/fitdiary/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer   *mcp.Server
	tracker     *tracker.Tracker
	foods       *food.Service
	defaultUser string
}

// NewServer creates a new MCP server. Tool calls without a user_id act as
// defaultUser. foods may be nil, in which case the food tools are not registered.
func NewServer(t *tracker.Tracker, foods *food.Service, defaultUser string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitdiary",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer:   mcpServer,
		tracker:     t,
		foods:       foods,
		defaultUser: defaultUser,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) user(id string) string {
	if id == "" {
		return s.defaultUser
	}
	return id
}
