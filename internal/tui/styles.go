package tui

import "github.com/charmbracelet/lipgloss"

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
	replyStyle  = lipgloss.NewStyle()
)

// lineKind classifies a transcript line for styling.
type lineKind int

const (
	kindEcho  lineKind = iota // The command the user typed.
	kindReply                 // A successful reply.
	kindError                 // An "Error: " reply.
)

// render styles text by kind.
func (k lineKind) render(text string) string {
	switch k {
	case kindEcho:
		return echoStyle.Render(text)
	case kindError:
		return errorStyle.Render(text)
	default:
		return replyStyle.Render(text)
	}
}
