// Package report renders a run report for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/jellyctl/internal/domain"
)

// Color palette
var (
	Green   = lipgloss.Color("#10B981")
	Red     = lipgloss.Color("#EF4444")
	Yellow  = lipgloss.Color("#F59E0B")
	Cyan    = lipgloss.Color("#06B6D4")
	DimGray = lipgloss.Color("#6B7280")
	White   = lipgloss.Color("#F9FAFB")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Yellow)

	statusStyles = map[domain.Status]lipgloss.Style{
		domain.StatusApplied:   lipgloss.NewStyle().Foreground(Green),
		domain.StatusSimulated: lipgloss.NewStyle().Foreground(Cyan),
		domain.StatusSkipped:   lipgloss.NewStyle().Foreground(DimGray),
		domain.StatusWarned:    lipgloss.NewStyle().Foreground(Yellow),
		domain.StatusFailed:    lipgloss.NewStyle().Foreground(Red),
	}
)

// Status glyphs
var statusGlyphs = map[domain.Status]string{
	domain.StatusApplied:   "✓",
	domain.StatusSimulated: "≈",
	domain.StatusSkipped:   "-",
	domain.StatusWarned:    "!",
	domain.StatusFailed:    "✗",
}

// Render formats the full report, one line per unit plus indented
// warnings and a summary line.
func Render(r *domain.RunReport) string {
	var b strings.Builder

	title := "Reconciliation report"
	if r.DryRun {
		title += " (dry run)"
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")

	for _, res := range r.Results {
		style, ok := statusStyles[res.Status]
		if !ok {
			style = DimStyle
		}
		b.WriteString(style.Render(statusGlyphs[res.Status]))
		b.WriteString(fmt.Sprintf(" %-9s %s/%s", res.Status, res.Kind, res.Unit))
		if res.Detail != "" {
			b.WriteString(DimStyle.Render("  " + res.Detail))
		}
		b.WriteString("\n")
		for _, w := range res.Warnings {
			b.WriteString(WarningStyle.Render("    warning: " + w))
			b.WriteString("\n")
		}
	}

	b.WriteString(summaryLine(r))
	b.WriteString("\n")
	return b.String()
}

func summaryLine(r *domain.RunReport) string {
	counts := r.Counts()
	parts := make([]string, 0, 5)
	for _, status := range []domain.Status{
		domain.StatusApplied,
		domain.StatusSimulated,
		domain.StatusSkipped,
		domain.StatusWarned,
		domain.StatusFailed,
	} {
		if n := counts[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, status))
		}
	}
	if len(parts) == 0 {
		return DimStyle.Render("nothing to reconcile")
	}

	summary := strings.Join(parts, ", ")
	if r.Failed() {
		return statusStyles[domain.StatusFailed].Render(summary)
	}
	return statusStyles[domain.StatusApplied].Render(summary)
}
