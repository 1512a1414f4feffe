package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/speedtype/internal/engine"
)

var (
	resultsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 3)
	resultTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#F0F0F0")).
				MarginBottom(1)
	resultLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Width(12)
	resultValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

func resultTitle(reason engine.FinishReason) string {
	switch reason {
	case engine.FinishCompleted:
		return "Text complete!"
	case engine.FinishErrorCeiling:
		return "Too many errors"
	case engine.FinishTimeUp:
		return "Time's up!"
	default:
		return "Finished"
	}
}

func renderResults(snap engine.Snapshot) string {
	rows := [][2]string{
		{"WPM", fmt.Sprintf("%d", snap.WPM)},
		{"Accuracy", fmt.Sprintf("%d%%", snap.Accuracy)},
		{"Errors", fmt.Sprintf("%d", snap.ErrorCount)},
		{"Typed", fmt.Sprintf("%d/%d", snap.ProgressIndex, len([]rune(snap.TargetText)))},
		{"Time", fmt.Sprintf("%.1fs", snap.Elapsed(snap.EndedAt).Seconds())},
	}
	lines := []string{resultTitleStyle.Render(resultTitle(snap.Reason))}
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			resultLabelStyle.Render(row[0]),
			resultValueStyle.Render(row[1]),
		))
	}
	return resultsBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
