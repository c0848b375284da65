package types

import (
	"github.com/shopspring/decimal"
)

// ComplianceIssue is a single finding produced by the scan backend. The
// client never mutates an issue except to attach a generated solution text
// once a fix job for it completes.
type ComplianceIssue struct {
	ID          string        `json:"id"`
	Category    string        `json:"category" example:"datenschutz"`
	Severity    IssueSeverity `json:"severity" example:"critical"`
	Title       string        `json:"title"`
	Description string        `json:"description"`

	// EstimatedRisk is the potential fine in euros, when the scanner
	// provides one.
	EstimatedRisk *decimal.Decimal `json:"estimated_risk,omitempty"`

	AutoFixable bool           `json:"auto_fixable"`
	Solution    *IssueSolution `json:"solution,omitempty"`
}

type IssueSolution struct {
	Steps       []string `json:"steps"`
	CodeSnippet string   `json:"code_snippet,omitempty"`
}

// FixTarget is what a fix request is aimed at: one issue or a whole group
// of related issues.
type FixTarget struct {
	single *ComplianceIssue
	group  []ComplianceIssue
}

func SingleTarget(issue ComplianceIssue) FixTarget {
	return FixTarget{single: &issue}
}

func GroupTarget(issues []ComplianceIssue) FixTarget {
	return FixTarget{group: issues}
}

func (t FixTarget) IsGroup() bool {
	return t.single == nil
}

// Issues returns the targeted issues regardless of variant.
func (t FixTarget) Issues() []ComplianceIssue {
	if t.single != nil {
		return []ComplianceIssue{*t.single}
	}
	return t.group
}

// Primary returns the issue that drives classification and submission:
// the single issue, or the most severe issue of a group.
func (t FixTarget) Primary() ComplianceIssue {
	if t.single != nil {
		return *t.single
	}

	var primary ComplianceIssue
	for _, issue := range t.group {
		if issue.Severity.Level() > primary.Severity.Level() || primary.ID == "" {
			primary = issue
		}
	}
	return primary
}
