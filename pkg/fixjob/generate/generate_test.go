package generate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyo-io/complyo-engine/pkg/types"
)

func TestDefaultPlaybooksParse(t *testing.T) {
	playbooks, err := DefaultPlaybooks()
	require.NoError(t, err)
	assert.NotEmpty(t, playbooks)
	for _, playbook := range playbooks {
		assert.NotEmpty(t, playbook.ID)
		assert.NotEmpty(t, playbook.Match)
	}
}

func TestMatchPlaybook(t *testing.T) {
	playbooks, err := DefaultPlaybooks()
	require.NoError(t, err)

	match := MatchPlaybook(playbooks, types.ComplianceIssue{Category: "cookies", Title: "Cookie-Banner fehlt"})
	require.NotNil(t, match)
	assert.Equal(t, "cookie-consent-banner", match.ID)

	match = MatchPlaybook(playbooks, types.ComplianceIssue{Category: "sonstiges", Title: "Unbekanntes Problem"})
	assert.Nil(t, match)
}

func TestPlaybookGeneratorMatched(t *testing.T) {
	playbooks, err := DefaultPlaybooks()
	require.NoError(t, err)
	g := NewPlaybookGenerator(playbooks)

	result, err := g.Generate(context.Background(), types.ComplianceIssue{
		ID:       "i1",
		Category: "cookies",
		Title:    "Cookie-Banner fehlt",
	})
	require.NoError(t, err)
	assert.Equal(t, types.FixResultCode, result.Type)
	assert.Contains(t, result.Content, "banner.js")
}

func TestPlaybookGeneratorFallsBackToIssueSolution(t *testing.T) {
	g := NewPlaybookGenerator(nil)

	result, err := g.Generate(context.Background(), types.ComplianceIssue{
		ID:       "i1",
		Category: "sonstiges",
		Title:    "Unbekanntes Problem",
		Solution: &types.IssueSolution{Steps: []string{"Schritt A", "Schritt B"}},
	})
	require.NoError(t, err)
	assert.Equal(t, types.FixResultGuide, result.Type)
	assert.Equal(t, []string{"Schritt A", "Schritt B"}, result.Steps)
}

func TestPlaybookGeneratorGenericGuide(t *testing.T) {
	g := NewPlaybookGenerator(nil)

	result, err := g.Generate(context.Background(), types.ComplianceIssue{
		ID:       "i1",
		Category: "sonstiges",
		Title:    "Unbekanntes Problem",
	})
	require.NoError(t, err)
	assert.Equal(t, types.FixResultGuide, result.Type)
	assert.NotEmpty(t, result.Steps)
}

func TestSplitSteps(t *testing.T) {
	steps := splitSteps("1. Erstes\n2) Zweites\n\n- Drittes")
	assert.Equal(t, []string{"Erstes", "Zweites", "Drittes"}, steps)
}
