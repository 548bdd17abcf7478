package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas lipgloss.Style
	stats  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style

	running   lipgloss.Style
	paused    lipgloss.Style
	recording lipgloss.Style
	selected  lipgloss.Style
}

// stylesFor derives the live view styles from a theme.
func stylesFor(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Foreground(t.Bodies).Padding(1, 2),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(45),
		header: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		graph:  lipgloss.NewStyle().Foreground(t.Success).Padding(1, 0),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),

		running:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		paused:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		recording: lipgloss.NewStyle().Bold(true).Foreground(t.Error).Blink(true),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
	}
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	rng := max - min
	if rng == 0 {
		rng = 1
	}

	// Keep the most recent samples when there are more than fit.
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - min) / rng * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}

// ProgressBar renders a fill fraction as a bar of the given width.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
