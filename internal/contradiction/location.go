package contradiction

import (
	"fmt"
	"strings"

	"github.com/probatio/probatio/internal/model"
)

// streetAbbreviations normalize common address suffixes before comparison.
var streetAbbreviations = map[string]string{
	"st":   "street",
	"ave":  "avenue",
	"rd":   "road",
	"blvd": "boulevard",
	"ln":   "lane",
	"dr":   "drive",
	"ct":   "court",
}

// locationSimilarityFloor is the token overlap below which two locations
// for the same event are treated as conflicting.
const locationSimilarityFloor = 0.3

// detectLocation flags LOCATION pairs that should describe the same event
// but normalize to dissimilar street/city tokens.
func (d *Detector) detectLocation(factsA, factsB []model.AtomicFact) []model.Contradiction {
	var results []model.Contradiction

	for _, fa := range factsA {
		if fa.FactType != model.FactLocation {
			continue
		}
		for _, fb := range factsB {
			if fb.FactType != model.FactLocation {
				continue
			}
			keyword := sharedEventKeyword(fa.Context, fb.Context)
			if keyword == "" {
				continue
			}

			tokA := normalizeLocation(fa.Content)
			tokB := normalizeLocation(fb.Content)
			if len(tokA) == 0 || len(tokB) == 0 {
				continue
			}
			if jaccard(tokA, tokB) >= locationSimilarityFloor {
				continue
			}

			first, second := canonicalOrder(strings.ToLower(fa.Content), strings.ToLower(fb.Content))
			results = append(results, model.Contradiction{
				Type:       model.ContradictionLocation,
				Severity:   model.SeverityHigh,
				Confidence: 0.8,
				Description: fmt.Sprintf("Same %s event placed at different locations: %q vs %q",
					keyword, first, second),
				Metadata: map[string]any{
					"shared_keyword": keyword,
					"locations":      []string{first, second},
				},
			})
		}
	}

	return results
}

// normalizeLocation lowercases, strips punctuation, and expands street
// abbreviations into a comparable token set.
func normalizeLocation(content string) map[string]bool {
	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(content)) {
		tok = strings.Trim(tok, ".,;:#")
		if tok == "" {
			continue
		}
		if full, ok := streetAbbreviations[tok]; ok {
			tok = full
		}
		tokens[tok] = true
	}
	return tokens
}
