package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/djcmanager/djcmanager/internal/config"
	"github.com/djcmanager/djcmanager/internal/fsutil"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options is what Parse hands back to main: a fully-resolved Config plus
// the CLI-only fixture path.
type Options struct {
	Config      config.Config
	FixturePath string
}

// Parse processes command-line arguments into Options, a boolean
// indicating the program should exit cleanly (e.g. -h was given), or an
// ExitError carrying the process exit code to use.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("djcmanager", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
djcmanager - an ordered, dependency-gated component activation manager.

Usage:
  djcmanager [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	bridgeAddrFlag := flagSet.String("bridge-addr", "", "wsbridge relay URL to connect to (e.g. ws://localhost:4000).")
	bridgeNamespaceFlag := flagSet.String("bridge-namespace", "", "socket.io namespace to join on the bridge relay.")
	configFlag := flagSet.String("config", "", "Path to an HCL settings file.")
	fixtureFlag := flagSet.String("fixture", "", "Path to a static HTML file to load offline instead of connecting to a bridge.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.NewLoader().Load(*configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = loaded
	}
	if *bridgeAddrFlag != "" {
		cfg.BridgeAddr = *bridgeAddrFlag
	}
	if *bridgeNamespaceFlag != "" {
		cfg.BridgeNamespace = *bridgeNamespaceFlag
	}

	if cfg.BridgeAddr == "" && *fixtureFlag == "" {
		return nil, false, &ExitError{Code: 2, Message: "one of -bridge-addr or -fixture is required"}
	}

	fixturePath := *fixtureFlag
	if fixturePath != "" {
		resolved, err := resolveFixture(fixturePath)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		fixturePath = resolved
	}
	slog.Debug("CLI parameter validation complete.")

	return &Options{Config: cfg, FixturePath: fixturePath}, false, nil
}

// resolveFixture accepts either a single HTML file or a directory, in
// which case the first *.html file found in it (recursively) is used —
// mirrors config.HCLLoader's same accommodation for -config.
func resolveFixture(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("fixture: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}
	files, err := fsutil.FindFilesByExtension(path, ".html")
	if err != nil {
		return "", fmt.Errorf("fixture: failed to search %s for .html files: %w", path, err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("fixture: no .html files found under %s", path)
	}
	return files[0], nil
}
