package model

import "time"

// Disclaimer accompanies every statistical output. The system produces
// advisory scores and flags, never binding conclusions.
const Disclaimer = "Probabilistic analysis of evidentiary support; not a legal determination."

// SweepReport represents the outcome of a case-wide contradiction sweep
type SweepReport struct {
	CaseID      string    `json:"case_id"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	EvidenceCount int  `json:"evidence_count"`
	PairsTotal    int  `json:"pairs_total"`    // All pairs in the case
	PairsExamined int  `json:"pairs_examined"` // Pairs actually compared
	Truncated     bool `json:"truncated"`      // True when the pair cap cut the sweep short
	Cancelled     bool `json:"cancelled"`      // True when the context expired mid-sweep

	Contradictions []Contradiction `json:"contradictions"`

	Disclaimer string `json:"disclaimer"`

	LLM *NarrativeSummary `json:"llm,omitempty"` // Optional narrative (never affects results)
}

// BySeverity counts the detected contradictions per severity rank.
func (r *SweepReport) BySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, c := range r.Contradictions {
		counts[c.Severity]++
	}
	return counts
}

// NarrativeSummary contains the optional LLM-generated narrative.
// CRITICAL: This never affects detection or scoring and is clearly separated.
type NarrativeSummary struct {
	Enabled         bool     `json:"enabled"`
	Provider        string   `json:"provider,omitempty"`
	Model           string   `json:"model,omitempty"`
	StrictCitations bool     `json:"strict_citations"` // Whether the evidence-id allowlist was enforced
	SummaryMD       string   `json:"summary_md,omitempty"`
	Warnings        []string `json:"warnings,omitempty"` // e.g. citation leaks detected
}
