package types

import (
	"strings"
)

type IssueSeverity string

const (
	IssueSeverityInfo     IssueSeverity = "info"
	IssueSeverityWarning  IssueSeverity = "warning"
	IssueSeverityCritical IssueSeverity = "critical"
)

func (s IssueSeverity) Level() int {
	switch s {
	case IssueSeverityInfo:
		return 1
	case IssueSeverityWarning:
		return 2
	case IssueSeverityCritical:
		return 3
	default:
		return 0
	}
}

func (s IssueSeverity) String() string {
	return string(s)
}

var issueSeverities = []IssueSeverity{
	IssueSeverityInfo,
	IssueSeverityWarning,
	IssueSeverityCritical,
}

func ParseIssueSeverity(s string) IssueSeverity {
	s = strings.ToLower(s)
	for _, sev := range issueSeverities {
		if s == sev.String() {
			return sev
		}
	}
	return ""
}

type SeverityResult struct {
	InfoCount     int `json:"infoCount" example:"1"`
	WarningCount  int `json:"warningCount" example:"1"`
	CriticalCount int `json:"criticalCount" example:"1"`
}

func (r *SeverityResult) IncreaseBySeverity(severity IssueSeverity) {
	switch severity {
	case IssueSeverityCritical:
		r.CriticalCount++
	case IssueSeverityWarning:
		r.WarningCount++
	case IssueSeverityInfo:
		r.InfoCount++
	}
}

func (r *SeverityResult) Total() int {
	return r.InfoCount + r.WarningCount + r.CriticalCount
}
