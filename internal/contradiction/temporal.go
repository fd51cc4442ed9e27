package contradiction

import (
	"fmt"
	"time"

	"github.com/probatio/probatio/internal/model"
)

// temporalTolerance is the largest gap two reports of the same event may
// show before they conflict.
const temporalTolerance = time.Hour

// dateLayouts are tried in order when parsing extracted DATE facts.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"2006-01-02",
	"January 2, 2006",
	"January 2 2006",
}

// detectTemporal flags DATE fact pairs that should describe the same event
// (shared keyword co-occurrence in their contexts) but differ by more than
// the tolerance. Severity scales with the gap.
func (d *Detector) detectTemporal(factsA, factsB []model.AtomicFact) []model.Contradiction {
	var results []model.Contradiction

	for _, fa := range factsA {
		if fa.FactType != model.FactDate {
			continue
		}
		ta, ok := parseDate(fa.Content)
		if !ok {
			continue // unparseable dates degrade silently
		}

		for _, fb := range factsB {
			if fb.FactType != model.FactDate {
				continue
			}
			keyword := sharedEventKeyword(fa.Context, fb.Context)
			if keyword == "" {
				continue
			}
			tb, ok := parseDate(fb.Content)
			if !ok {
				continue
			}

			gap := ta.Sub(tb)
			if gap < 0 {
				gap = -gap
			}
			if gap <= temporalTolerance {
				continue
			}

			earlier, later := fa.Content, fb.Content
			if tb.Before(ta) {
				earlier, later = fb.Content, fa.Content
			}

			results = append(results, model.Contradiction{
				Type:       model.ContradictionTemporal,
				Severity:   temporalSeverity(gap),
				Confidence: 0.9,
				Description: fmt.Sprintf("Conflicting dates for the same %s event: %s vs %s (%.0f hours apart)",
					keyword, earlier, later, gap.Hours()),
				Metadata: map[string]any{
					"shared_keyword": keyword,
					"gap_hours":      gap.Hours(),
					"dates":          []string{earlier, later},
				},
			})
		}
	}

	return results
}

// temporalSeverity ranks a date gap. Anything over a day is damaging; the
// year mark makes it critical.
func temporalSeverity(gap time.Duration) model.Severity {
	switch {
	case gap > 365*24*time.Hour:
		return model.SeverityCritical
	case gap > 24*time.Hour:
		return model.SeverityHigh
	default:
		return model.SeverityMedium
	}
}

// parseDate tries the known extraction layouts.
func parseDate(content string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, content); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
