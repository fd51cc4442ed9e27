package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/probatio/probatio/internal/model"
)

// writeJSON writes v to path as indented JSON.
func writeJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// renderMarkdown renders a sweep report as a human-readable document.
func renderMarkdown(r *model.SweepReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Contradiction Sweep: %s\n\n", r.CaseID)
	fmt.Fprintf(&b, "- Evidence items: %d\n", r.EvidenceCount)
	fmt.Fprintf(&b, "- Pairs examined: %d of %d\n", r.PairsExamined, r.PairsTotal)
	if r.Truncated {
		b.WriteString("- **Truncated**: the pair cap cut the sweep short\n")
	}
	if r.Cancelled {
		b.WriteString("- **Cancelled**: the sweep stopped before completion\n")
	}
	fmt.Fprintf(&b, "- Contradictions: %d\n\n", len(r.Contradictions))

	if len(r.Contradictions) > 0 {
		counts := r.BySeverity()
		b.WriteString("## Findings\n\n")
		for _, sev := range []model.Severity{model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow} {
			if counts[sev] == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s (%d)\n\n", strings.ToUpper(string(sev)), counts[sev])
			for _, c := range r.Contradictions {
				if c.Severity != sev {
					continue
				}
				fmt.Fprintf(&b, "- **%s** (confidence %.2f): %s\n", c.Type, c.Confidence, c.Description)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("No contradictions detected.\n\n")
	}

	if r.LLM != nil && r.LLM.Enabled && r.LLM.SummaryMD != "" {
		b.WriteString("## Narrative Summary (advisory, non-scoring)\n\n")
		b.WriteString(r.LLM.SummaryMD)
		b.WriteString("\n\n")
		for _, w := range r.LLM.Warnings {
			fmt.Fprintf(&b, "> Warning: %s\n", w)
		}
	}

	fmt.Fprintf(&b, "---\n%s\n", r.Disclaimer)
	return b.String()
}
