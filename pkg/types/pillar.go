package types

import (
	"strings"
)

// Pillar is one of the four compliance areas issues are grouped under on
// the dashboard.
type Pillar string

const (
	PillarAccessibility Pillar = "accessibility"
	PillarPrivacy       Pillar = "privacy"
	PillarLegalTexts    Pillar = "legal_texts"
	PillarCookies       Pillar = "cookies"
)

func (p Pillar) String() string {
	return string(p)
}

var pillarKeywords = map[Pillar][]string{
	PillarAccessibility: {"accessibility", "barrierefreiheit", "bfsg", "wcag"},
	PillarPrivacy:       {"datenschutz", "dsgvo", "gdpr", "privacy"},
	PillarLegalTexts:    {"impressum", "imprint", "agb", "legal"},
	PillarCookies:       {"cookie", "consent", "ttdsg", "tracking"},
}

// PillarForIssue groups an issue into a pillar by keyword-matching its
// category and title. Issues matching nothing fall back to the privacy
// pillar, which is where the scanner puts generic findings.
func PillarForIssue(issue ComplianceIssue) Pillar {
	haystack := strings.ToLower(issue.Category + " " + issue.Title)
	for _, pillar := range []Pillar{PillarLegalTexts, PillarCookies, PillarAccessibility, PillarPrivacy} {
		for _, keyword := range pillarKeywords[pillar] {
			if strings.Contains(haystack, keyword) {
				return pillar
			}
		}
	}
	return PillarPrivacy
}

// PillarScore is the 0-100 score of one pillar: 100 minus a severity
// weighted penalty per open issue, floored at zero.
func PillarScore(issues []ComplianceIssue) int {
	score := 100
	for _, issue := range issues {
		switch issue.Severity {
		case IssueSeverityCritical:
			score -= 25
		case IssueSeverityWarning:
			score -= 10
		case IssueSeverityInfo:
			score -= 5
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// GroupByPillar splits scan findings into per-pillar buckets.
func GroupByPillar(issues []ComplianceIssue) map[Pillar][]ComplianceIssue {
	groups := make(map[Pillar][]ComplianceIssue)
	for _, issue := range issues {
		pillar := PillarForIssue(issue)
		groups[pillar] = append(groups[pillar], issue)
	}
	return groups
}
