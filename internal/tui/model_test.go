package tui

import (
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// submit types text into the model and presses enter.
func submit(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(newDispatcher())

	if m.prompt != DefaultPrompt {
		t.Errorf("prompt = %q, want %q", m.prompt, DefaultPrompt)
	}
	if m.history != DefaultHistory {
		t.Errorf("history = %d, want %d", m.history, DefaultHistory)
	}
	if !m.input.Focused() {
		t.Error("input should be focused")
	}
	if m.Init() == nil {
		t.Error("Init() should return a blink Cmd")
	}
}

func TestModel_Submit(t *testing.T) {
	m := NewModel(newDispatcher(), WithPrompt("> "))

	m, cmd := submit(t, m, "add alice 1234567890")
	if cmd != nil {
		t.Error("non-quit submit should not return a Cmd")
	}
	m, _ = submit(t, m, "phone alice")

	want := []string{
		"> add alice 1234567890",
		"Contact alice added with phone 1234567890",
		"> phone alice",
		"Phone number for alice: 1234567890",
	}
	if got := m.Transcript(); !slices.Equal(got, want) {
		t.Errorf("Transcript() = %q, want %q", got, want)
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want cleared", m.input.Value())
	}
}

func TestModel_SubmitErrorAndMultiline(t *testing.T) {
	m := NewModel(newDispatcher())

	m, _ = submit(t, m, "add alice 12")
	if last := m.lines[len(m.lines)-1]; last.kind != kindError {
		t.Errorf("error reply kind = %v, want kindError", last.kind)
	}

	m, _ = submit(t, m, "add alice 1111111111")
	m, _ = submit(t, m, "add bob 2222222222")
	before := len(m.lines)
	m, _ = submit(t, m, "show all")

	// echo + one line per contact
	if got := len(m.lines) - before; got != 3 {
		t.Errorf("show all added %d lines, want 3", got)
	}
}

func TestModel_BlankSubmitIgnored(t *testing.T) {
	m := NewModel(newDispatcher())

	m, _ = submit(t, m, "   ")

	if len(m.lines) != 0 {
		t.Errorf("lines = %v, want none", m.Transcript())
	}
}

func TestModel_QuitCommand(t *testing.T) {
	m := NewModel(newDispatcher())

	m, cmd := submit(t, m, "good bye")

	if !m.done {
		t.Error("model should be done after good bye")
	}
	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Cmd should produce tea.QuitMsg")
	}
}

func TestModel_KeyBindings(t *testing.T) {
	t.Run("esc quits", func(t *testing.T) {
		next, cmd := NewModel(newDispatcher()).Update(tea.KeyMsg{Type: tea.KeyEsc})
		if !next.(Model).done || cmd == nil {
			t.Error("esc should quit")
		}
	})

	t.Run("ctrl+c quits", func(t *testing.T) {
		next, cmd := NewModel(newDispatcher()).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if !next.(Model).done || cmd == nil {
			t.Error("ctrl+c should quit")
		}
	})

	t.Run("ctrl+l clears transcript", func(t *testing.T) {
		m, _ := submit(t, NewModel(newDispatcher()), "hello")
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
		if got := len(next.(Model).lines); got != 0 {
			t.Errorf("lines = %d after clear, want 0", got)
		}
	})

	t.Run("runes go to input", func(t *testing.T) {
		next, _ := NewModel(newDispatcher()).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
		if got := next.(Model).input.Value(); got != "hi" {
			t.Errorf("input = %q, want %q", got, "hi")
		}
	})
}

func TestModel_HistoryCap(t *testing.T) {
	m := NewModel(newDispatcher(), WithHistory(4))

	for i := 0; i < 5; i++ {
		m, _ = submit(t, m, "hello")
	}

	if len(m.lines) != 4 {
		t.Fatalf("lines = %d, want 4", len(m.lines))
	}
	if m.lines[0].text != DefaultPrompt+"hello" {
		t.Errorf("oldest kept line = %q, want an echo", m.lines[0].text)
	}
}

func TestModel_View(t *testing.T) {
	m := NewModel(newDispatcher())
	m, _ = submit(t, m, "hello")

	v := m.View()
	if !strings.Contains(v, "How can I help you?") {
		t.Errorf("View() missing reply:\n%s", v)
	}
	if !strings.Contains(v, "quit") {
		t.Errorf("View() missing help bar:\n%s", v)
	}

	m, _ = submit(t, m, "exit")
	if strings.Contains(m.View(), "quit") {
		t.Errorf("View() after exit should drop the input and help bar:\n%s", m.View())
	}
}

func TestModel_WindowSize(t *testing.T) {
	next, _ := NewModel(newDispatcher()).Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if got := next.(Model).help.Width; got != 100 {
		t.Errorf("help width = %d, want 100", got)
	}
}

// TestModel_Teatest_Session drives a full session through teatest.
func TestModel_Teatest_Session(t *testing.T) {
	m := NewModel(newDispatcher())
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	tm.Type("add alice 1234567890")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("change alice 0987654321")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("exit")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	want := []string{
		DefaultPrompt + "add alice 1234567890",
		"Contact alice added with phone 1234567890",
		DefaultPrompt + "change alice 0987654321",
		"Contact alice phone changed to 0987654321",
		DefaultPrompt + "exit",
		"Good bye!",
	}
	if got := final.Transcript(); !slices.Equal(got, want) {
		t.Errorf("Transcript() = %q, want %q", got, want)
	}
}
