package llm

import (
	"context"

	"github.com/probatio/probatio/internal/model"
)

// Narrate attaches an optional narrative to a sweep report. It is
// best-effort: configuration problems, API failures, and citation leaks
// become warnings on the returned summary, never errors, because the
// narrative must not be able to block or alter the analytical result.
func Narrate(ctx context.Context, provider Provider, cfg model.LLMConfig, report *model.SweepReport, allowedArtifacts []string) *model.NarrativeSummary {
	if provider == nil {
		return &model.NarrativeSummary{Enabled: false}
	}

	summary := &model.NarrativeSummary{
		Enabled:         true,
		Provider:        provider.Name(),
		StrictCitations: cfg.StrictCitations,
	}

	resp, err := provider.Summarize(ctx, SummarizeRequest{
		Report:           report,
		AllowedArtifacts: allowedArtifacts,
		Model:            cfg.Model,
		MaxTokens:        cfg.MaxTokens,
	})
	if err != nil {
		summary.Warnings = append(summary.Warnings, err.Error())
		return summary
	}

	summary.Model = resp.Model
	summary.SummaryMD = resp.Summary
	return summary
}
