// Package mcptools serves the user store as MCP tools so agents can browse
// and edit users the same way the CLI does.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// version is set by the linker at build time.
var version = "dev"

// NewUserAdminMCPServer creates an MCP server with the user tools registered.
func NewUserAdminMCPServer(svc *UserService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "useradmin",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_users",
		Description: "Return the loaded page of users with pagination, search and request status. Pass page to fetch a different page first.",
	}, svc.ListUsers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_search",
		Description: "Filter the loaded page by a case-insensitive substring of full name or email. An empty query shows every user.",
	}, svc.SetSearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_user",
		Description: "Look up one user by id, from the loaded page when present and from the service otherwise.",
	}, svc.GetUser)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_user",
		Description: "Create a user. The record is appended to the loaded page with an id unique in the list.",
	}, svc.AddUser)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_user",
		Description: "Replace the names, email and optionally the avatar of a user.",
	}, svc.UpdateUser)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_user",
		Description: "Delete a user by id.",
	}, svc.DeleteUser)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_remote",
		Description: "Search every page of the remote service for users whose full name or email contains the query. Does not change the loaded page.",
	}, svc.SearchRemote)

	return server
}

// RunStdio serves the tools over stdin/stdout until ctx is done.
func RunStdio(ctx context.Context, svc *UserService) error {
	return NewUserAdminMCPServer(svc).Run(ctx, &mcp.StdioTransport{})
}

// shutdownTimeout bounds how long in-flight MCP requests get after ctx is
// done.
const shutdownTimeout = 5 * time.Second

// RunMCPServer listens on addr and serves the user tools over the
// streamable HTTP transport until ctx is done.
func RunMCPServer(ctx context.Context, svc *UserService, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("mcptools: listen %s: %w", addr, err)
	}
	return ServeMCP(ctx, svc, ln)
}

// ServeMCP serves the user tools on ln until ctx is done, then shuts the
// server down. Shutdown problems are logged, not returned.
func ServeMCP(ctx context.Context, svc *UserService, ln net.Listener) error {
	server := NewUserAdminMCPServer(svc)
	httpServer := &http.Server{
		Handler: mcp.NewStreamableHTTPHandler(
			func(*http.Request) *mcp.Server { return server },
			nil,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			svc.logger.Warn("mcp http shutdown", zap.Error(err))
		}
	}()

	svc.logger.Info("serving MCP over HTTP", zap.String("addr", ln.Addr().String()))
	err := httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-stopped
		return nil
	}
	return fmt.Errorf("mcptools: serve: %w", err)
}
