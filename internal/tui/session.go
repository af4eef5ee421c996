// Package tui runs the interactive command loop, either as a Bubble Tea
// program or as plain prompt/reply lines.
package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/contactbook/internal/shell"
)

// DefaultPrompt is printed before each line in plain mode and shown in the TUI input.
const DefaultPrompt = "Enter command: "

// DefaultHistory is the number of transcript lines the TUI keeps.
const DefaultHistory = 200

// Dispatcher executes one command line. Implemented by *shell.Dispatcher.
type Dispatcher interface {
	Dispatch(line string) shell.Reply
}

// Session runs a command loop until the user quits, input ends, or ctx is done.
type Session interface {
	Run(ctx context.Context) error
}

// SessionOptions configures session creation.
type SessionOptions struct {
	In         io.Reader // Input source (default: os.Stdin).
	Out        io.Writer // Output destination (default: os.Stdout).
	ForcePlain bool      // Force plain text even if TTY.
	Prompt     string    // Prompt text (default: DefaultPrompt).
	History    int       // TUI transcript lines kept (default: DefaultHistory).
}

// NewSession returns a TUI session when Out is a TTY, or a plain line session
// otherwise. ForcePlain overrides TTY detection.
func NewSession(d Dispatcher, opts SessionOptions) Session {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.History <= 0 {
		opts.History = DefaultHistory
	}

	if opts.ForcePlain || !isTTY(opts.Out) {
		return &PlainSession{d: d, in: opts.In, out: opts.Out, prompt: opts.Prompt}
	}
	return &TUISession{d: d, in: opts.In, out: opts.Out, prompt: opts.Prompt, history: opts.History}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainSession prints a prompt, reads a line, and prints the reply.
type PlainSession struct {
	d      Dispatcher
	in     io.Reader
	out    io.Writer
	prompt string
	quiet  bool // suppress the prompt (script mode)
}

// NewScriptSession returns a PlainSession that prints replies only, for
// running commands from a file or pipe.
func NewScriptSession(d Dispatcher, in io.Reader, out io.Writer) *PlainSession {
	return &PlainSession{d: d, in: in, out: out, quiet: true}
}

// Run reads lines until a quit reply, end of input, or ctx cancellation.
func (s *PlainSession) Run(ctx context.Context) error {
	sc := bufio.NewScanner(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.quiet {
			_, _ = fmt.Fprint(s.out, s.prompt)
		}
		if !sc.Scan() {
			if !s.quiet {
				_, _ = fmt.Fprintln(s.out)
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("tui: reading input: %w", err)
			}
			return nil
		}

		reply := s.d.Dispatch(sc.Text())
		if reply.Empty {
			continue
		}
		_, _ = fmt.Fprintln(s.out, reply.Text)
		if reply.Quit {
			return nil
		}
	}
}

// TUISession runs the command loop in a Bubble Tea program.
// Falls back to PlainSession if the program fails to start.
type TUISession struct {
	d       Dispatcher
	in      io.Reader
	out     io.Writer
	prompt  string
	history int
}

// Run starts the Bubble Tea program and blocks until it exits.
func (s *TUISession) Run(ctx context.Context) error {
	model := NewModel(s.d, WithPrompt(s.prompt), WithHistory(s.history))
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
	)

	_, err := p.Run()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	plain := &PlainSession{d: s.d, in: s.in, out: s.out, prompt: s.prompt}
	return plain.Run(ctx)
}
