package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/PolyPack/internal/model"
)

var (
	colorFeasible   = lipgloss.Color("#00FF99")
	colorInfeasible = lipgloss.Color("#FF5F5F")
	colorUnknown    = lipgloss.Color("#FFB000")

	headerStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorInfeasible)

	verdictStyles = map[model.Verdict]lipgloss.Style{
		model.VerdictFeasible:   lipgloss.NewStyle().Foreground(colorFeasible).Bold(true),
		model.VerdictInfeasible: lipgloss.NewStyle().Foreground(colorInfeasible),
		model.VerdictUnknown:    lipgloss.NewStyle().Foreground(colorUnknown).Italic(true),
	}
)

// styleVerdict colors a padded verdict cell of the summary report.
func styleVerdict(v model.Verdict, cell string) string {
	return verdictStyles[v].Render(cell)
}
