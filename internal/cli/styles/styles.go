package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dracula color palette
const (
	Foreground = "#f8f8f2"
	Comment    = "#6272a4"
	Cyan       = "#8be9fd"
	Green      = "#50fa7b"
	Orange     = "#ffb86c"
	Pink       = "#ff79c6"
	Purple     = "#bd93f9"
	Red        = "#ff5555"
	Yellow     = "#f1fa8c"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Purple))

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Cyan))

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Pink)).
			MarginTop(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Comment)).
			Width(18)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Foreground))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Comment)).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Green))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Orange))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Red)).
			Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Yellow)).
			Underline(true)

	ListItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

// KV renders one aligned label/value line
func KV(label string, value interface{}) string {
	return LabelStyle.Render(label) + ValueStyle.Render(fmt.Sprint(value))
}

// List renders one item per line, or a muted placeholder when empty
func List(items []string, empty string) string {
	if len(items) == 0 {
		return ListItemStyle.Render(MutedStyle.Render(empty))
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, ListItemStyle.Render("• "+item))
	}
	return strings.Join(lines, "\n")
}

// OrDash returns s, or a dash when s is empty
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
