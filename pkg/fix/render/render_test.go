package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/complyo-io/complyo-engine/pkg/fix"
	"github.com/complyo-io/complyo-engine/pkg/types"
)

func TestPillarSummary(t *testing.T) {
	out := PillarSummary([]types.ComplianceIssue{
		{ID: "i1", Category: "cookies", Title: "Cookie-Banner fehlt", Severity: types.IssueSeverityCritical},
		{ID: "i2", Category: "cookies", Title: "Tracking ohne Einwilligung", Severity: types.IssueSeverityWarning},
		{ID: "i3", Category: "legal", Title: "Impressum fehlt", Severity: types.IssueSeverityCritical},
	})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4, "one line per pillar")

	assert.Contains(t, out, "Cookies")
	assert.Contains(t, out, "2 Probleme (1 kritisch, 1 Warnungen, 0 Hinweise)")
	assert.Contains(t, out, "Rechtstexte")
	assert.Contains(t, out, "75/100")
	assert.Contains(t, out, "100/100", "empty pillars keep a full score")
}

func TestProgressClampsPercent(t *testing.T) {
	out := Progress(fix.Snapshot{ProgressPercent: 150, CurrentStep: "fertig"})
	assert.Contains(t, out, "150%")

	assert.NotPanics(t, func() {
		Progress(fix.Snapshot{ProgressPercent: -5})
	})
}

func TestPresentationPaywall(t *testing.T) {
	out := Presentation(fix.Presentation{Kind: fix.PresentationPaywall, FixesUsed: 1, FixesLimit: 1})
	assert.Contains(t, out, "Fix-Limit erreicht")
	assert.Contains(t, out, "1 von 1 Fixes verwendet")
}
