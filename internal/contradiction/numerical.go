package contradiction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/probatio/probatio/internal/model"
)

// transactionKeywords establish that two amounts refer to the same
// transaction when both contexts mention one of them.
var transactionKeywords = []string{"payment", "invoice", "amount", "balance", "transaction", "wire", "deposit"}

// numericalTolerance is the relative difference below which two amounts are
// treated as the same figure (rounding, fees).
const numericalTolerance = 0.05

// detectNumerical flags AMOUNT/TRANSACTION pairs that should represent the
// same transaction but differ by more than the tolerance. Severity scales
// with the percent difference.
func (d *Detector) detectNumerical(factsA, factsB []model.AtomicFact) []model.Contradiction {
	var results []model.Contradiction

	for _, fa := range factsA {
		if fa.FactType != model.FactAmount && fa.FactType != model.FactTransaction {
			continue
		}
		va, ok := parseAmount(fa.Content)
		if !ok {
			continue
		}

		for _, fb := range factsB {
			if fb.FactType != model.FactAmount && fb.FactType != model.FactTransaction {
				continue
			}
			if !sharesTransactionContext(fa.Context, fb.Context) {
				continue
			}
			vb, ok := parseAmount(fb.Content)
			if !ok {
				continue
			}

			low, high := va, vb
			if low > high {
				low, high = high, low
			}
			if low <= 0 {
				continue
			}

			pct := (high - low) / low
			if pct <= numericalTolerance {
				continue
			}

			severity := model.SeverityMedium
			confidence := 0.75
			if pct > 0.5 {
				severity = model.SeverityHigh
				confidence = 0.85
			}

			results = append(results, model.Contradiction{
				Type:       model.ContradictionNumerical,
				Severity:   severity,
				Confidence: confidence,
				Description: fmt.Sprintf("Same transaction reported as $%.2f and $%.2f (%.0f%% apart)",
					low, high, pct*100),
				Metadata: map[string]any{
					"amounts":            []float64{low, high},
					"percent_difference": pct * 100,
					"tolerance_percent":  numericalTolerance * 100,
				},
			})
		}
	}

	return results
}

// sharesTransactionContext reports whether both contexts mention a common
// transaction keyword.
func sharesTransactionContext(contextA, contextB string) bool {
	for _, kw := range transactionKeywords {
		if containsFold(contextA, kw) && containsFold(contextB, kw) {
			return true
		}
	}
	return false
}

// parseAmount converts an extracted currency string to a value.
func parseAmount(content string) (float64, bool) {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// containsFold is a case-insensitive substring check.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
