package tui

import "github.com/charmbracelet/lipgloss"

// styles are the lipgloss styles of the feed browser
type styles struct {
	Header   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Liked    lipgloss.Style
	Saved    lipgloss.Style
	Success  lipgloss.Style
	Danger   lipgloss.Style
	Pending  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0def4")).
			Background(lipgloss.Color("#393552")).
			Bold(true).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#232136")).
			Background(lipgloss.Color("#c4a7e7")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6e6a86")),
		Liked:   lipgloss.NewStyle().Foreground(lipgloss.Color("#eb6f92")),
		Saved:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f6c177")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#9ccfd8")).Bold(true),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("#eb6f92")).Bold(true),
		Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("#908caa")).Italic(true),
	}
}
