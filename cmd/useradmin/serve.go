package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dusk-indust/useradmin/internal/fakeapi"
	"github.com/dusk-indust/useradmin/internal/mcptools"
	"go.uber.org/zap"
)

// runServeMCP exposes the store as MCP tools, over stdio unless -http is
// given.
func (a *app) runServeMCP(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve-mcp", flag.ContinueOnError)
	addr := fs.String("http", "", "serve streamable HTTP on this address instead of stdio")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *addr == "" {
		*addr = a.cfg.MCPAddr
	}

	store := a.newStore()
	if err := store.Start(ctx); err != nil {
		a.logger.Warn("initial fetch failed", zap.Error(err))
	}
	svc := mcptools.NewUserService(store, mcptools.WithLogger(a.logger.Named("mcp")))

	if *addr == "" {
		return mcptools.RunStdio(ctx, svc)
	}
	return mcptools.RunMCPServer(ctx, svc, *addr)
}

// runServeFake runs the in-memory user service until interrupted.
func (a *app) runServeFake(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve-fake", flag.ContinueOnError)
	addr := fs.String("addr", a.cfg.FakeAddr, "listen address")
	persist := fs.Bool("persist", false, "keep created, updated and deleted users")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := []fakeapi.Option{fakeapi.WithLogger(a.logger.Named("fakeapi"))}
	if *persist {
		opts = append(opts, fakeapi.WithPersistence())
	}
	srv := fakeapi.NewServer(opts...)
	if err := srv.Start(ctx, *addr); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Serving fake user service at %s\n", srv.BaseURL())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
