package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/randutil"
	"github.com/lox/holdem-table/internal/server"
)

var CLI struct {
	Config   string `short:"c" default:"holdem-server.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" help:"Address to bind to as host:port (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	Seed     int64  `help:"Deck seed, 0 picks one from the clock (overrides config)"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("holdem-server"),
		kong.Description("Authoritative Texas Hold'em table over WebSocket."))
	ctx.FatalIfErrorf(run())
}

func run() error {
	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if CLI.Addr != "" {
		host, port, err := net.SplitHostPort(CLI.Addr)
		if err != nil {
			return fmt.Errorf("invalid --addr: %w", err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid port in --addr: %w", err)
		}
		cfg.Server.Address, cfg.Server.Port = host, p
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if CLI.Seed != 0 {
		cfg.Table.Seed = CLI.Seed
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := newLogger(cfg.Server)
	if err != nil {
		return err
	}
	defer closeLog()

	rng, seed := randutil.Seeded(cfg.Table.Seed)
	table := game.NewTable(rng,
		game.WithStartingChips(uint(cfg.Table.StartingChips)),
		game.WithMaxSeats(cfg.Table.MaxSeats),
		game.WithLogger(logger.WithPrefix("table")))

	session := server.NewSession(table, logger,
		server.WithRestartDelay(cfg.RestartDelay()),
		server.WithDisconnectFoldDelay(cfg.DisconnectFoldDelay()))
	srv := server.NewServer(cfg, session, logger)

	logger.Info("Starting Holdem Server",
		"addr", cfg.ListenAddress(),
		"seats", cfg.Table.MaxSeats,
		"chips", cfg.Table.StartingChips,
		"seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}

// newLogger writes to stderr, or to the configured file without colours
func newLogger(settings server.ServerSettings) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var (
		out     io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	styles := log.DefaultStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Bold(true).
		Foreground(lipgloss.Color("#96CEB4"))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Foreground(lipgloss.Color("#FFEAA7"))
	logger.SetStyles(styles)

	if settings.LogFile != "" {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger, closeFn, nil
}
