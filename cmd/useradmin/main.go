package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dusk-indust/useradmin/internal/config"
	"github.com/dusk-indust/useradmin/internal/logging"
	"github.com/dusk-indust/useradmin/internal/render"
	"github.com/dusk-indust/useradmin/internal/userapi"
	"github.com/dusk-indust/useradmin/internal/userstore"
	"go.uber.org/zap"
)

// Global flags parsed before the command name.
type cliFlags struct {
	ConfigDir   string
	BaseURL     string
	Verbose     bool
	ToggleTheme bool
}

// version is set by goreleaser at build time.
var version = "dev"

const usage = `usage: useradmin [-config-dir DIR] [-base-url URL] [-verbose] [-toggle-theme] <command> [args]

commands:
  list [-page N] [-q QUERY] [-json] [-avatar]
  get ID [-json]
  add -first NAME -last NAME -email EMAIL [-avatar URL] [-page N]
  update ID -first NAME -last NAME -email EMAIL [-avatar URL] [-page N]
  delete ID [-page N]
  search QUERY [-json]
  serve-mcp [-http ADDR]
  serve-fake [-addr ADDR] [-persist]
  version

flags:`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// app carries what every command needs once config is loaded.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
	opts   render.Options
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var flags cliFlags

	fs := flag.NewFlagSet("useradmin", flag.ContinueOnError)
	fs.StringVar(&flags.ConfigDir, "config-dir", ".", "directory containing useradmin.yml")
	fs.StringVar(&flags.BaseURL, "base-url", "", "user service base URL (overrides config)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&flags.ToggleTheme, "toggle-theme", false, "use the opposite of the configured theme (light <-> dark)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	if cmd == "version" {
		fmt.Fprintln(stdout, version)
		return nil
	}

	cfg, err := config.Load(flags.ConfigDir)
	if err != nil {
		return err
	}
	if flags.BaseURL != "" {
		cfg.BaseURL = flags.BaseURL
	}
	if flags.Verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	a := &app{
		cfg:    cfg,
		logger: logger,
		out:    stdout,
		opts: render.Options{
			Theme: resolveTheme(cfg.Theme, flags.ToggleTheme, render.IsTerminal(stdout)),
			Width: render.TerminalWidth(stdout),
		},
	}

	switch cmd {
	case "list":
		return a.runList(ctx, rest)
	case "get":
		return a.runGet(ctx, rest)
	case "add":
		return a.runAdd(ctx, rest)
	case "update":
		return a.runUpdate(ctx, rest)
	case "delete":
		return a.runDelete(ctx, rest)
	case "search":
		return a.runSearch(ctx, rest)
	case "serve-mcp":
		return a.runServeMCP(ctx, rest)
	case "serve-fake":
		return a.runServeFake(ctx, rest)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// resolveTheme returns the configured palette, switched when toggle is set.
func resolveTheme(mode string, toggle, color bool) render.Theme {
	theme := render.NewTheme(mode, color)
	if toggle {
		theme = theme.Toggle()
	}
	return theme
}

// newStore builds a store talking to the configured service.
func (a *app) newStore() *userstore.Store {
	client := userapi.NewHTTPClient(a.cfg.BaseURL,
		userapi.WithTimeout(a.cfg.Timeout),
		userapi.WithLogger(a.logger.Named("userapi")),
	)
	return userstore.New(client,
		userstore.WithLogger(a.logger.Named("userstore")),
		userstore.WithDefaultAvatar(a.cfg.DefaultAvatar),
		userstore.WithServerIDs(a.cfg.TrustServerIDs),
		userstore.WithSearchConcurrency(a.cfg.SearchConcurrency),
	)
}
