package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#A78BFA")
	Warning   = lipgloss.Color("#F59E0B")
	Danger    = lipgloss.Color("#EF4444")
	Info      = lipgloss.Color("#3B82F6")
	Text      = lipgloss.Color("#F3F4F6")
	TextDim   = lipgloss.Color("#9CA3AF")
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	FilePathStyle = lipgloss.NewStyle().
			Foreground(Info)

	FileSizeStyle = lipgloss.NewStyle().
			Foreground(Warning)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)
)

// Decision buttons
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(Text).
			Padding(0, 1)

	// ActiveButtonStyle marks the button under the cursor
	ActiveButtonStyle = lipgloss.NewStyle().
				Foreground(Text).
				Background(Primary).
				Bold(true).
				Padding(0, 1)

	// DangerButtonStyle marks an active button that deletes
	DangerButtonStyle = lipgloss.NewStyle().
				Foreground(Text).
				Background(Danger).
				Bold(true).
				Padding(0, 1)
)

// Button renders a decision button label, highlighted when active
func Button(label string, active, destructive bool) string {
	switch {
	case active && destructive:
		return DangerButtonStyle.Render(label)
	case active:
		return ActiveButtonStyle.Render(label)
	default:
		return ButtonStyle.Render(label)
	}
}
