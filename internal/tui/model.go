package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// line is one transcript entry.
type line struct {
	kind lineKind
	text string
}

// Model is the Bubble Tea model for the interactive command loop.
type Model struct {
	d       Dispatcher
	input   textinput.Model
	help    help.Model
	keys    keyMap
	prompt  string
	lines   []line
	history int
	done    bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPrompt sets the text shown before the input.
func WithPrompt(p string) ModelOption {
	return func(m *Model) {
		m.prompt = p
	}
}

// WithHistory caps the number of transcript lines kept.
func WithHistory(n int) ModelOption {
	return func(m *Model) {
		if n > 0 {
			m.history = n
		}
	}
}

// NewModel creates a Model that sends submitted lines to d.
func NewModel(d Dispatcher, opts ...ModelOption) Model {
	m := Model{
		d:       d,
		help:    help.New(),
		keys:    defaultKeyMap(),
		prompt:  DefaultPrompt,
		history: DefaultHistory,
	}
	for _, opt := range opts {
		opt(&m)
	}

	ti := textinput.New()
	ti.Prompt = promptStyle.Render(m.prompt)
	ti.Focus()
	m.input = ti
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.lines = nil
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the current input and records the exchange.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	m.input.Reset()

	reply := m.d.Dispatch(text)
	if reply.Empty {
		return m, nil
	}

	m.append(kindEcho, m.prompt+text)
	kind := kindReply
	if reply.Err {
		kind = kindError
	}
	for _, l := range strings.Split(reply.Text, "\n") {
		m.append(kind, l)
	}

	if reply.Quit {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// append adds a transcript line, dropping the oldest past the history cap.
func (m *Model) append(kind lineKind, text string) {
	m.lines = append(m.lines, line{kind: kind, text: text})
	if over := len(m.lines) - m.history; over > 0 {
		m.lines = append(m.lines[:0:0], m.lines[over:]...)
	}
}

// View renders the transcript, the input line and the help bar.
func (m Model) View() string {
	var b strings.Builder
	for _, l := range m.lines {
		b.WriteString(l.kind.render(l.text))
		b.WriteByte('\n')
	}
	if m.done {
		return b.String()
	}
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Transcript returns the unstyled transcript lines.
func (m Model) Transcript() []string {
	out := make([]string, len(m.lines))
	for i, l := range m.lines {
		out[i] = l.text
	}
	return out
}
