package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/complyo-io/complyo-engine/pkg/fix"
	"github.com/complyo-io/complyo-engine/pkg/types"
)

var (
	accent  = lipgloss.Color("#2563EB")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
	dim     = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	codeStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dim).
			Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)
	paywallStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(warning).
			Padding(1, 3)
	stepNumStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(dim)
)

// Progress renders one poll tick as a single status line.
func Progress(snap fix.Snapshot) string {
	bar := progressBar(snap.ProgressPercent, 24)
	return fmt.Sprintf("%s %3d%% %s", bar, snap.ProgressPercent, dimStyle.Render(snap.CurrentStep))
}

func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

var pillarLabels = map[types.Pillar]string{
	types.PillarAccessibility: "Barrierefreiheit",
	types.PillarPrivacy:       "Datenschutz",
	types.PillarLegalTexts:    "Rechtstexte",
	types.PillarCookies:       "Cookies",
}

// PillarSummary renders the per-pillar overview of scan findings: score
// and issue counts by severity, one line per pillar.
func PillarSummary(issues []types.ComplianceIssue) string {
	groups := types.GroupByPillar(issues)

	var b strings.Builder
	for _, pillar := range []types.Pillar{
		types.PillarAccessibility,
		types.PillarPrivacy,
		types.PillarLegalTexts,
		types.PillarCookies,
	} {
		group := groups[pillar]

		var counts types.SeverityResult
		for _, issue := range group {
			counts.IncreaseBySeverity(issue.Severity)
		}

		score := types.PillarScore(group)
		scoreStyle := stepNumStyle
		if score < 50 {
			scoreStyle = errorStyle
		}

		fmt.Fprintf(&b, "%-18s %s  %s\n",
			headerStyle.Render(pillarLabels[pillar]),
			scoreStyle.Render(fmt.Sprintf("%3d/100", score)),
			dimStyle.Render(fmt.Sprintf("%d Probleme (%d kritisch, %d Warnungen, %d Hinweise)",
				counts.Total(), counts.CriticalCount, counts.WarningCount, counts.InfoCount)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Presentation renders the finished view: a copyable code block, the
// sanitized legal text, a numbered guide, an error panel or the paywall.
func Presentation(p fix.Presentation) string {
	switch p.Kind {
	case fix.PresentationCode:
		header := headerStyle.Render("Generierter Code")
		if p.Language != "" {
			header += dimStyle.Render(" (" + p.Language + ")")
		}
		return header + "\n" + codeStyle.Render(strings.TrimRight(p.Code, "\n"))

	case fix.PresentationText:
		return headerStyle.Render("Generierter Rechtstext") + "\n" + p.HTML

	case fix.PresentationGuide:
		var b strings.Builder
		b.WriteString(headerStyle.Render("Schritt-für-Schritt-Anleitung") + "\n")
		for i, step := range p.Steps {
			fmt.Fprintf(&b, "%s %s\n", stepNumStyle.Render(fmt.Sprintf("%2d.", i+1)), step)
		}
		return strings.TrimRight(b.String(), "\n")

	case fix.PresentationError:
		return errorStyle.Render("Fehler: ") + p.ErrorMessage

	case fix.PresentationPaywall:
		body := fmt.Sprintf("%d von %d Fixes verwendet\n\nUpgrade auf Complyo Pro für unbegrenzte Fixes.",
			p.FixesUsed, p.FixesLimit)
		return paywallStyle.Render(headerStyle.Render("Fix-Limit erreicht") + "\n\n" + body)

	default:
		return dimStyle.Render("Kein Ergebnis verfügbar.")
	}
}
