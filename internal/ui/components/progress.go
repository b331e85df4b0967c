package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grimoire/internal/ui/theme"
)

// ProgressBar shows how far through a sequence the player is, e.g.
// "Monster 2 / 4".
type ProgressBar struct {
	Label   string
	Current int // 1-based position
	Total   int
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, current, total, width int) ProgressBar {
	return ProgressBar{Label: label, Current: current, Total: total, Width: width}
}

// Fraction returns Current/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Current)/float64(p.Total), 0), 1)
}

// View renders "<label> i / n  ████░░░░".
func (p ProgressBar) View() string {
	text := fmt.Sprintf("%d / %d", p.Current, p.Total)
	if p.Label != "" {
		text = p.Label + " " + text
	}
	left := lipgloss.NewStyle().Foreground(theme.Text).Render(text) + "  "

	barWidth := max(p.Width-lipgloss.Width(left), 4)
	filled := int(float64(barWidth) * p.Fraction())

	return left +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))
}
