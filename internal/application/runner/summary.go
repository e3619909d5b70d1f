package runner

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"gatelab/pkg/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// RenderSummary renders the per-experiment tallies as a terminal table
func RenderSummary(results []domain.ExperimentResult) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return headerStyle
			}
			switch col {
			case 2:
				return successStyle
			case 3:
				return failureStyle
			}
			return lipgloss.NewStyle()
		}).
		Headers("Experiment", "Calls", "OK", "Failed", "Mean Latency", "Tokens")

	for _, res := range results {
		t.Row(
			res.Name,
			strconv.Itoa(res.Summary.Calls),
			strconv.Itoa(res.Summary.Successes),
			strconv.Itoa(res.Summary.Failures),
			fmt.Sprintf("%dms", res.Summary.MeanLatency.Milliseconds()),
			strconv.Itoa(res.Summary.TotalTokens),
		)
	}

	return t.Render()
}
