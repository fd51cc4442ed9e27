package contradiction

import (
	"fmt"
	"strings"

	"github.com/probatio/probatio/internal/model"
)

// negationMarkers flip the meaning of a statement.
var negationMarkers = []string{"not", "never", "no longer", "without"}

// oppositePairs are keyword pairs whose co-occurrence across two otherwise
// similar statements implies opposite conclusions.
var oppositePairs = [][2]string{
	{"guilty", "innocent"},
	{"admitted", "denied"},
	{"accepted", "rejected"},
	{"approved", "refused"},
	{"present", "absent"},
	{"paid", "unpaid"},
}

// jaccardThreshold is the lexical overlap above which two statements are
// assumed to describe the same assertion.
const jaccardThreshold = 0.7

// detectFactual flags STATEMENT pairs that directly negate each other
// (high severity) or that overlap heavily while carrying opposite
// implications (medium severity).
func (d *Detector) detectFactual(factsA, factsB []model.AtomicFact) []model.Contradiction {
	var results []model.Contradiction

	for _, fa := range factsA {
		if fa.FactType != model.FactStatement {
			continue
		}
		for _, fb := range factsB {
			if fb.FactType != model.FactStatement {
				continue
			}

			a := strings.ToLower(fa.Content)
			b := strings.ToLower(fb.Content)

			if c, ok := directNegation(a, b); ok {
				results = append(results, c)
				continue
			}
			if c, ok := oppositeImplication(a, b); ok {
				results = append(results, c)
			}
		}
	}

	return results
}

// directNegation fires when two statements share most of their tokens but
// exactly one of them is negated.
func directNegation(a, b string) (model.Contradiction, bool) {
	negA := containsAnyMarker(a, negationMarkers)
	negB := containsAnyMarker(b, negationMarkers)
	if negA == negB {
		return model.Contradiction{}, false
	}

	if jaccard(tokensWithout(a, negationMarkers), tokensWithout(b, negationMarkers)) < 0.6 {
		return model.Contradiction{}, false
	}

	first, second := canonicalOrder(a, b)
	return model.Contradiction{
		Type:        model.ContradictionFactual,
		Severity:    model.SeverityHigh,
		Confidence:  0.85,
		Description: fmt.Sprintf("Directly opposing statements: %q vs %q", first, second),
		Metadata: map[string]any{
			"rule":       "direct-negation",
			"statements": []string{first, second},
		},
	}, true
}

// oppositeImplication fires when two near-identical statements differ in a
// keyword pair with opposite meanings.
func oppositeImplication(a, b string) (model.Contradiction, bool) {
	if jaccard(tokensWithout(a, nil), tokensWithout(b, nil)) < jaccardThreshold {
		return model.Contradiction{}, false
	}

	for _, pair := range oppositePairs {
		crossed := (strings.Contains(a, pair[0]) && strings.Contains(b, pair[1])) ||
			(strings.Contains(a, pair[1]) && strings.Contains(b, pair[0]))
		if !crossed {
			continue
		}

		first, second := canonicalOrder(a, b)
		return model.Contradiction{
			Type:        model.ContradictionFactual,
			Severity:    model.SeverityMedium,
			Confidence:  0.75,
			Description: fmt.Sprintf("Overlapping statements with opposite implications (%s/%s): %q vs %q", pair[0], pair[1], first, second),
			Metadata: map[string]any{
				"rule":       "opposite-implication",
				"keywords":   []string{pair[0], pair[1]},
				"statements": []string{first, second},
			},
		}, true
	}

	return model.Contradiction{}, false
}

// canonicalOrder makes descriptions independent of argument order.
func canonicalOrder(a, b string) (string, string) {
	if a <= b {
		return a, b
	}
	return b, a
}

func containsAnyMarker(s string, markers []string) bool {
	padded := " " + s + " "
	for _, m := range markers {
		if strings.Contains(padded, " "+m+" ") {
			return true
		}
	}
	return false
}

// tokensWithout tokenizes a statement, dropping the given markers and
// punctuation.
func tokensWithout(s string, drop []string) map[string]bool {
	dropSet := make(map[string]bool, len(drop))
	for _, m := range drop {
		dropSet[m] = true
	}

	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		tok = strings.Trim(tok, ".,;:!?\"'()")
		if tok == "" || dropSet[tok] {
			continue
		}
		tokens[tok] = true
	}
	return tokens
}

// jaccard computes set overlap in [0,1].
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
