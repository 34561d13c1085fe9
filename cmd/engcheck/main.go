package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dshills/engcheck/internal/config"
	"github.com/dshills/engcheck/internal/logger"
	"github.com/dshills/engcheck/internal/registry"
	"github.com/dshills/engcheck/internal/schema"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// Exit codes.
const (
	exitNonCompliant = 2 // --fail and at least one document not compliant
	exitUsage        = 3 // invalid flags, config or registry
	exitExtraction   = 4 // a document could not be read
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// globalFlags are accepted by every command.
type globalFlags struct {
	registry  string
	config    string
	logLevel  string
	logFormat string
	verbose   bool
}

// app is the state shared by a single command invocation.
type app struct {
	cfg     config.Config
	catalog *registry.Catalog
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "engcheck",
		Short:         "Check engineering documents against a standards registry",
		Long:          "EngCheck builds per-project checklists from a standards registry and reports which checklist items a PDF or text document fails to address.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.registry, "registry", "", "Standards registry file, JSON or YAML (default from config)")
	pf.StringVar(&g.config, "config", "", "Config file (default ./"+config.DefaultFile+" when present)")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&g.logFormat, "log-format", "", "Log format: text or json")
	pf.BoolVar(&g.verbose, "verbose", false, "Log processing steps to stderr")

	setup := func() (*app, error) { return newApp(g, stdout, stderr) }

	root.AddCommand(
		newGenerateCmd(setup),
		newCheckCmd(setup),
		newProjectsCmd(setup),
		newDiffCmd(setup),
	)
	return root
}

// newApp resolves configuration, installs the logger and prepares the
// registry catalog. Flags override config values.
func newApp(g globalFlags, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(g.config)
	if err != nil {
		return nil, codeError(exitUsage, "loading config: %s", err)
	}
	if g.registry != "" {
		cfg.Registry = g.registry
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}
	// The output format is checked by each command once --format is known.
	if err := cfg.Log.Validate(); err != nil {
		return nil, codeError(exitUsage, "invalid flags: %s", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, codeError(exitUsage, "invalid flags: %s", err)
	}
	lc := logger.DefaultConfig()
	lc.Level = level
	lc.Format = cfg.Log.Format
	lc.Output = stderr
	if g.verbose {
		lc.Level = slog.LevelDebug
	}
	logger.Init(lc)

	return &app{
		cfg:     cfg,
		catalog: registry.NewCatalog(cfg.Registry),
		stdout:  stdout,
		stderr:  stderr,
	}, nil
}

// standards loads the registry, mapping failures to exitUsage.
func (a *app) standards() ([]schema.Standard, error) {
	standards, err := a.catalog.Standards()
	if err != nil {
		return nil, codeError(exitUsage, "loading registry: %s", err)
	}
	return standards, nil
}

// write sends output to path, or to stdout when path is empty.
func (a *app) write(path string, data []byte) error {
	if path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return codeError(exitUsage, "writing output file: %s", err)
		}
		return nil
	}
	if _, err := a.stdout.Write(data); err != nil {
		return codeError(exitUsage, "writing output: %s", err)
	}
	// Ensure output ends with a newline for terminal friendliness.
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(a.stdout)
	}
	return nil
}

// color reports whether styled output should be written: only to a
// terminal stdout, never to a file.
func (a *app) color(outPath string) bool {
	if outPath != "" {
		return false
	}
	f, ok := a.stdout.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (a *app) warnf(format string, args ...any) {
	fmt.Fprintf(a.stderr, "WARN: "+format+"\n", args...)
}

// resolveFormat returns the flag value, or the configured default.
func (a *app) resolveFormat(flag string) (string, error) {
	format := flag
	if format == "" {
		format = a.cfg.Format
	}
	if err := config.ValidateFormat(format); err != nil {
		return "", codeError(exitUsage, "invalid flags: %s", err)
	}
	return format, nil
}
