// Package shell turns raw command lines into address book operations.
package shell

import (
	"fmt"
	"strings"

	"github.com/smileynet/contactbook/internal/command"
)

// Fixed replies.
const (
	Greeting       = "How can I help you?"
	Farewell       = "Good bye!"
	UnknownCommand = "Unknown command. Please try again."
)

// Reply is the result of dispatching one line.
type Reply struct {
	Text  string
	Err   bool // Text is an "Error: " reply.
	Quit  bool // The session should end after printing Text.
	Empty bool // The line was blank; nothing to print.
}

// commandDef describes one command: its argument names and the handler.
type commandDef struct {
	name  string
	args  []string
	help  string
	apply func(s *command.Service, args []string) command.Result
}

var commands = []commandDef{
	{
		name: "add",
		args: []string{"name", "phone"},
		help: "add a phone to a contact, creating it if needed",
		apply: func(s *command.Service, a []string) command.Result {
			return s.Add(a[0], a[1])
		},
	},
	{
		name: "change",
		args: []string{"name", "phone"},
		help: "replace the contact's first phone",
		apply: func(s *command.Service, a []string) command.Result {
			return s.Change(a[0], a[1])
		},
	},
	{
		name: "phone",
		args: []string{"name"},
		help: "show the contact's first phone",
		apply: func(s *command.Service, a []string) command.Result {
			return s.Phone(a[0])
		},
	},
	{
		name: "delete",
		args: []string{"name"},
		help: "remove a contact",
		apply: func(s *command.Service, a []string) command.Result {
			return s.Delete(a[0])
		},
	},
}

// Dispatcher parses lines and runs them against a command.Service.
type Dispatcher struct {
	svc *command.Service
}

// NewDispatcher returns a Dispatcher bound to svc.
func NewDispatcher(svc *command.Service) *Dispatcher {
	return &Dispatcher{svc: svc}
}

// Dispatch runs a single input line.
func (d *Dispatcher) Dispatch(line string) Reply {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Reply{Empty: true}
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	switch {
	case name == "hello" && len(args) == 0:
		return Reply{Text: Greeting}
	case name == "help" && len(args) == 0:
		return Reply{Text: Help()}
	case isQuit(name, args):
		return Reply{Text: Farewell, Quit: true}
	case name == "show" && len(args) == 1 && strings.EqualFold(args[0], "all"):
		return fromResult(d.svc.All())
	}

	for _, c := range commands {
		if c.name != name {
			continue
		}
		if len(args) != len(c.args) {
			return Reply{Text: "Error: " + c.usageError(), Err: true}
		}
		return fromResult(c.apply(d.svc, args))
	}
	return Reply{Text: UnknownCommand}
}

func isQuit(name string, args []string) bool {
	switch name {
	case "close", "exit":
		return len(args) == 0
	case "good":
		return len(args) == 1 && strings.EqualFold(args[0], "bye")
	}
	return false
}

func fromResult(r command.Result) Reply {
	return Reply{Text: r.String(), Err: !r.OK()}
}

func (c commandDef) usage() string {
	var b strings.Builder
	b.WriteString(c.name)
	for _, a := range c.args {
		fmt.Fprintf(&b, " <%s>", a)
	}
	return b.String()
}

func (c commandDef) usageError() string {
	return fmt.Sprintf("%s expects %d argument(s): %s", c.name, len(c.args), c.usage())
}

// Help lists the available commands.
func Help() string {
	var b strings.Builder
	b.WriteString("Commands:")
	b.WriteString("\n  hello")
	for _, c := range commands {
		fmt.Fprintf(&b, "\n  %-24s %s", c.usage(), c.help)
	}
	fmt.Fprintf(&b, "\n  %-24s %s", "show all", "list every contact")
	fmt.Fprintf(&b, "\n  %-24s %s", "exit | close | good bye", "leave")
	return b.String()
}
