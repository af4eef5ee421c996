package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/command"
	"github.com/smileynet/contactbook/internal/config"
	"github.com/smileynet/contactbook/internal/logging"
	"github.com/smileynet/contactbook/internal/shell"
	"github.com/smileynet/contactbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals holds flags shared by every command.
type Globals struct {
	Config   string `help:"Project config file." default:".contacts.yaml" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error, off). Overrides config."`
}

// CLI is the top-level command structure for contacts.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Shell   ShellCmd         `cmd:"" default:"1" help:"Start an interactive session (default)."`
	Exec    ExecCmd          `cmd:"" help:"Run commands from a file, one per line."`
}

// ShellCmd runs the interactive command loop.
type ShellCmd struct {
	NoTUI  bool   `help:"Force plain text output even if stdout is a TTY." default:"false"`
	Prompt string `help:"Prompt text. Overrides config."`
}

// ExecCmd runs a command script non-interactively.
type ExecCmd struct {
	File string `arg:"" help:"Command file, or - for stdin."`
}

// errSetup marks failures that happen before any command line runs.
var errSetup = errors.New("setup")

// loadConfig loads layered config from user and project paths with env
// and flag overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/contacts/config.yaml"),
		g.Config,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads config and builds the logger.
func setup(g *Globals, logOut io.Writer) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errSetup, err)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, logOut)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errSetup, err)
	}
	return cfg, log, nil
}

// newDispatcher wires a fresh address book behind a shell dispatcher.
func newDispatcher(log *zap.Logger) *shell.Dispatcher {
	return shell.NewDispatcher(command.NewService(nil, command.WithLogger(log)))
}

// Run executes the shell command.
func (s *ShellCmd) Run(g *Globals) error {
	cfg, log, err := setup(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return s.run(ctx, os.Stdin, os.Stdout, cfg, log)
}

// run builds the session and blocks until it ends, enabling testable wiring.
func (s *ShellCmd) run(ctx context.Context, in io.Reader, out io.Writer, cfg *config.Config, log *zap.Logger) error {
	prompt := cfg.Shell.Prompt
	if s.Prompt != "" {
		prompt = s.Prompt
	}

	session := tui.NewSession(newDispatcher(log), tui.SessionOptions{
		In:         in,
		Out:        out,
		ForcePlain: s.NoTUI || cfg.Shell.NoTUI,
		Prompt:     prompt,
		History:    cfg.Shell.History,
	})

	log.Debug("session started", zap.String("prompt", prompt))
	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shell: %w", err)
	}
	return nil
}

// Run executes the exec command.
func (e *ExecCmd) Run(g *Globals) error {
	_, log, err := setup(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	defer func() { _ = log.Sync() }()

	in := io.Reader(os.Stdin)
	if e.File != "-" {
		f, err := os.Open(e.File)
		if err != nil {
			return fmt.Errorf("exec: %w: %w", errSetup, err)
		}
		defer f.Close()
		in = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return e.run(ctx, in, os.Stdout, log)
}

// run executes the script with the given reader, enabling testable wiring.
func (e *ExecCmd) run(ctx context.Context, in io.Reader, out io.Writer, log *zap.Logger) error {
	log.Debug("running script", zap.String("file", e.File))
	if err := tui.NewScriptSession(newDispatcher(log), in, out).Run(ctx); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitRuntime = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, errSetup) {
		return exitSetup
	}
	return exitRuntime
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contacts"),
		kong.Description("A command-line contact book."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
