package types

import (
	"strings"
)

// FixType decides how a fix is produced and presented: generated legal
// text, a code snippet, or a step-by-step guide.
type FixType string

const (
	FixTypeCode  FixType = "code"
	FixTypeText  FixType = "text"
	FixTypeGuide FixType = "guide"
)

// ClassifyFix maps an issue onto its fix type by keyword. Legal-text
// issues (Impressum, Datenschutz) get generated text, accessibility and
// cookie issues get code, everything else gets a guide. Title keywords win
// over category keywords so a "Impressum fehlt" issue filed under a code
// category still produces legal text.
func ClassifyFix(issue ComplianceIssue) FixType {
	title := strings.ToLower(issue.Title)
	if strings.Contains(title, "impressum") || strings.Contains(title, "datenschutz") {
		return FixTypeText
	}

	category := strings.ToLower(issue.Category)
	if strings.Contains(category, "impressum") || strings.Contains(category, "datenschutz") {
		return FixTypeText
	}
	if strings.Contains(category, "accessibility") || strings.Contains(category, "barrierefreiheit") ||
		strings.Contains(category, "cookie") {
		return FixTypeCode
	}
	return FixTypeGuide
}
