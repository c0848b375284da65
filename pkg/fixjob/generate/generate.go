package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/complyo-io/complyo-engine/pkg/types"
)

// Generator produces the fix payload for one issue.
type Generator interface {
	Generate(ctx context.Context, issue types.ComplianceIssue) (*types.FixResult, error)
}

// PlaybookGenerator answers from the canned playbooks. It is the fallback
// when no AI backend is configured and the safety net when the AI call
// fails.
type PlaybookGenerator struct {
	playbooks []Playbook
}

func NewPlaybookGenerator(playbooks []Playbook) *PlaybookGenerator {
	return &PlaybookGenerator{playbooks: playbooks}
}

func (g *PlaybookGenerator) Generate(_ context.Context, issue types.ComplianceIssue) (*types.FixResult, error) {
	if playbook := MatchPlaybook(g.playbooks, issue); playbook != nil {
		result := &types.FixResult{
			Type:     types.FixResultType(playbook.Type),
			Content:  playbook.Snippet,
			Language: playbook.Language,
			Steps:    playbook.Steps,
		}
		if result.Type == "" {
			result.Type = types.FixResultGuide
		}
		return result, nil
	}

	// No playbook matched; fall back to a generic guide built from the
	// issue's own solution steps when the scanner provided them.
	result := &types.FixResult{Type: types.FixResultGuide}
	if issue.Solution != nil && len(issue.Solution.Steps) > 0 {
		result.Steps = issue.Solution.Steps
		result.Content = issue.Solution.CodeSnippet
		return result, nil
	}
	result.Steps = []string{
		fmt.Sprintf("Problem prüfen: %s", issue.Title),
		"Betroffene Seiten identifizieren",
		"Korrektur durch Ihren Webentwickler umsetzen lassen",
	}
	return result, nil
}

// OpenAIGenerator asks the chat model for a remediation and shapes the
// answer into the fix type the issue classifies as. Any API failure falls
// through to the playbook generator so a configured-but-unreachable AI
// backend never fails jobs.
type OpenAIGenerator struct {
	client   *openai.Client
	model    string
	fallback *PlaybookGenerator
}

func NewOpenAIGenerator(apiKey, model string, fallback *PlaybookGenerator) *OpenAIGenerator {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIGenerator{
		client:   openai.NewClient(apiKey),
		model:    model,
		fallback: fallback,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, issue types.ComplianceIssue) (*types.FixResult, error) {
	fixType := types.ClassifyFix(issue)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "Du bist ein Experte für deutsche Website-Compliance (DSGVO, TTDSG, BFSG). " +
					"Antworte ausschließlich mit der Lösung, ohne Einleitung.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(issue, fixType),
			},
		},
	})
	if err != nil {
		return g.fallback.Generate(ctx, issue)
	}
	if len(resp.Choices) == 0 {
		return g.fallback.Generate(ctx, issue)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	switch fixType {
	case types.FixTypeCode:
		return &types.FixResult{Type: types.FixResultCode, Content: content, Language: "html"}, nil
	case types.FixTypeText:
		return &types.FixResult{Type: types.FixResultText, Content: content}, nil
	default:
		steps := splitSteps(content)
		if len(steps) == 0 {
			return g.fallback.Generate(ctx, issue)
		}
		return &types.FixResult{Type: types.FixResultGuide, Steps: steps}, nil
	}
}

func buildPrompt(issue types.ComplianceIssue, fixType types.FixType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compliance-Problem: %s\n", issue.Title)
	fmt.Fprintf(&b, "Kategorie: %s, Schweregrad: %s\n", issue.Category, issue.Severity)
	if issue.Description != "" {
		fmt.Fprintf(&b, "Beschreibung: %s\n", issue.Description)
	}
	switch fixType {
	case types.FixTypeCode:
		b.WriteString("Erzeuge ein einbaufertiges HTML/JS-Snippet, das dieses Problem behebt.")
	case types.FixTypeText:
		b.WriteString("Erzeuge den vollständigen Rechtstext als HTML.")
	default:
		b.WriteString("Erzeuge eine nummerierte Schritt-für-Schritt-Anleitung, ein Schritt pro Zeile.")
	}
	return b.String()
}

func splitSteps(content string) []string {
	var steps []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "0123456789.-) ")
		if line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}
