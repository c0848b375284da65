package types

import (
	"encoding/json"
)

type FixResultType string

const (
	FixResultCode   FixResultType = "code"
	FixResultText   FixResultType = "text"
	FixResultGuide  FixResultType = "guide"
	FixResultWidget FixResultType = "widget"
)

// FixResult is the payload of a completed fix job. Exactly one content
// field is meaningful depending on Type. Immutable once received.
type FixResult struct {
	Type     FixResultType `json:"type"`
	Content  string        `json:"content,omitempty"`
	Language string        `json:"language,omitempty"`
	Steps    []string      `json:"steps,omitempty"`

	// Widget results carry an embeddable script plus the issues it
	// fixes automatically.
	EmbedScript   string   `json:"embed_script,omitempty"`
	FixedIssueIDs []string `json:"fixed_issue_ids,omitempty"`
}

// DecodeFixResult decodes a job result that may arrive either as a JSON
// object or as a JSON-encoded string wrapping one. A nil result and a
// decode failure both yield (nil, err) and must be treated as "nothing to
// show", never as a reason to fail the job view.
func DecodeFixResult(raw json.RawMessage) (*FixResult, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	// Some backend versions double-encode the result as a string.
	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		raw = json.RawMessage(wrapped)
	}

	var result FixResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
