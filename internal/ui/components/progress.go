package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/liftlog/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Cells returns the number of filled and empty cells for the bar alone.
func (p ProgressBar) Cells() (filled, empty int) {
	barWidth := p.Width - lipgloss.Width(p.label())
	if p.ShowPercent {
		barWidth -= 6 // "  100%"
	}
	if barWidth < 4 {
		barWidth = 4
	}

	filled = int(float64(barWidth) * p.Percent)
	filled = min(max(filled, 0), barWidth)
	return filled, barWidth - filled
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	result := p.label()
	filled, empty := p.Cells()

	result += theme.ProgressFilled.Render(strings.Repeat("█", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat("░", empty))

	if p.ShowPercent {
		pct := int(min(max(p.Percent, 0), 1) * 100)
		result += theme.Dim.Render(fmt.Sprintf("  %d%%", pct))
	}
	return result
}

func (p ProgressBar) label() string {
	if p.Label == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
}
