package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/djcmanager/djcmanager/internal/activation"
	"github.com/djcmanager/djcmanager/internal/cli"
	"github.com/djcmanager/djcmanager/internal/ctxlog"
	"github.com/djcmanager/djcmanager/internal/host"
	"github.com/djcmanager/djcmanager/internal/host/htmldoc"
	"github.com/djcmanager/djcmanager/internal/host/wsbridge"
	"github.com/djcmanager/djcmanager/internal/manager"
)

// main is the entrypoint for djcmanager.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and
// error handling.
func run(outW io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := newLogger(opts.Config.LogFormat, opts.Config.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = ctxlog.WithLogger(ctx, logger)

	h, closeHost, err := openHost(ctx, logger, opts)
	if err != nil {
		return fmt.Errorf("failed to open host: %w", err)
	}
	defer closeHost()

	m := manager.New(h, activation.Config{StallInterval: opts.Config.StallInterval})
	defer m.Close()

	if err := m.Start(ctx); err != nil {
		return fmt.Errorf("failed to start manager: %w", err)
	}

	if opts.FixturePath != "" {
		stats := m.Stats()
		fmt.Fprintf(outW, "fixture scan complete; %d activation(s) queued\n", stats.Depth)
		return nil
	}

	<-ctx.Done()
	return nil
}

// openHost builds the host.Host for this run: an offline htmldoc parsed
// from -fixture, or a live wsbridge connection to -bridge-addr.
func openHost(ctx context.Context, logger *slog.Logger, opts *cli.Options) (host.Host, func(), error) {
	if opts.FixturePath != "" {
		f, err := os.Open(opts.FixturePath)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		doc, err := htmldoc.NewFromReader(logger, f)
		if err != nil {
			return nil, nil, err
		}
		return doc, func() {}, nil
	}

	bridge, err := wsbridge.Dial(ctx, logger, wsbridge.Config{
		URL:                opts.Config.BridgeAddr,
		Namespace:          opts.Config.BridgeNamespace,
		InsecureSkipVerify: opts.Config.InsecureSkipVerify,
	})
	if err != nil {
		return nil, nil, err
	}
	return bridge, bridge.Close, nil
}

func newLogger(format, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
