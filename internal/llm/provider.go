// Package llm generates optional narrative summaries of sweep reports.
// Summaries are presentation only: they never feed back into detection or
// scoring, and in strict mode the model may only cite artifact codes from
// an explicit allowlist.
package llm

import (
	"context"
	"fmt"
	"sort"

	"github.com/probatio/probatio/internal/model"
)

// Provider is one LLM backend.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative for the report under the citation
	// allowlist.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for narrative generation
type SummarizeRequest struct {
	// Report is the sweep report to summarize
	Report *model.SweepReport

	// AllowedArtifacts is the STRICT allowlist of artifact codes the model
	// can cite. It cannot reference any artifact not in this list.
	AllowedArtifacts []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the generated narrative
type SummarizeResponse struct {
	// Summary is the generated narrative text
	Summary string

	// CitedArtifacts are the artifact codes the model actually cited
	CitedArtifacts []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// BuildPrompt constructs the default summarization prompt with the
// citation allowlist embedded.
func BuildPrompt(report *model.SweepReport, allowedArtifacts []string) string {
	prompt := fmt.Sprintf(`You are summarizing a contradiction sweep over forensic evidence. The system reports probabilistic, advisory findings - it NEVER makes legal determinations.

CRITICAL RULES:
1. You MUST ONLY cite artifact codes from this allowed list:
%s

2. DO NOT infer, speculate, or reference artifacts beyond this list.
3. If the sweep found nothing, state that explicitly.
4. Describe conflict SIGNALS, not guilt or truth. Use phrases like:
   - "Two records disagree on..."
   - "The dates reported for X differ by..."
5. Never say "this proves" or "this is false" - only describe the findings.

Sweep Summary:
- Case: %s
- Evidence items: %d
- Pairs examined: %d of %d
- Contradictions found: %d

Findings by severity:
`, joinArtifacts(allowedArtifacts), report.CaseID, report.EvidenceCount,
		report.PairsExamined, report.PairsTotal, len(report.Contradictions))

	counts := report.BySeverity()
	severities := make([]string, 0, len(counts))
	for s := range counts {
		severities = append(severities, string(s))
	}
	sort.Strings(severities)
	for _, s := range severities {
		prompt += fmt.Sprintf("- %s: %d\n", s, counts[model.Severity(s)])
	}

	// Top findings only; full detail would blow the token budget.
	for i, c := range report.Contradictions {
		if i >= 5 {
			break
		}
		prompt += fmt.Sprintf("- [%s/%s] %s\n", c.Type, c.Severity, c.Description)
	}

	prompt += "\nProvide a 3-4 sentence summary of the conflict signals. End with a note that this is advisory analysis only."

	return prompt
}

func joinArtifacts(codes []string) string {
	if len(codes) == 0 {
		return "(No artifact codes available)"
	}
	result := ""
	for i, code := range codes {
		if i >= 20 { // Limit to first 20 to avoid token bloat
			result += fmt.Sprintf("\n... and %d more artifacts", len(codes)-20)
			break
		}
		result += fmt.Sprintf("\n- %s", code)
	}
	return result
}
