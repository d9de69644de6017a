package inspect

import "github.com/charmbracelet/lipgloss"

// Semantic colors for the spot-check output.
var (
	titleColor = lipgloss.Color("#2196F3")
	labelColor = lipgloss.Color("#9E9E9E")
)

// Styles holds the lipgloss styles used by the Printer.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
}

// newStyles builds styles bound to a renderer. Binding to the output's
// renderer keeps piped and captured output free of escape sequences.
func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().Bold(true).Foreground(titleColor),
		Label: r.NewStyle().Foreground(labelColor),
	}
}
