// Package contradiction implements the pairwise contradiction detection
// engine: seven independent, order-insensitive detectors that cross-check
// two evidence items' extracted facts and metadata for typed, severity-ranked
// conflicts. The engine is pure; updating conflict counters is the caller's
// responsibility.
package contradiction

import (
	"time"

	"github.com/probatio/probatio/internal/model"
)

// DefaultMinConfidence is the floor applied to detector output.
const DefaultMinConfidence = 0.70

// eventKeywords establish that two facts describe the same event when their
// contexts share at least one of them.
var eventKeywords = []string{
	"payment", "invoice", "transfer", "deposit", "meeting", "signing",
	"signed", "delivery", "filing", "filed", "accident", "incident",
	"contract", "agreement", "termination", "closing",
}

// Detector runs the pairwise comparison pipeline
type Detector struct {
	minConfidence float64
}

// NewDetector creates a detector with the given confidence floor.
// Non-positive values fall back to the default.
func NewDetector(minConfidence float64) *Detector {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Detector{minConfidence: minConfidence}
}

// Detect cross-checks two evidence items and their facts. Results for (A,B)
// and (B,A) are identical up to swapped evidence ids.
func (d *Detector) Detect(evA, evB *model.Evidence, factsA, factsB []model.AtomicFact) []model.Contradiction {
	if evA == nil || evB == nil || evA.ID == evB.ID {
		return nil
	}

	now := time.Now()
	var results []model.Contradiction

	results = append(results, d.detectTemporal(factsA, factsB)...)
	results = append(results, d.detectFactual(factsA, factsB)...)
	results = append(results, d.detectNumerical(factsA, factsB)...)
	results = append(results, d.detectIdentity(factsA, factsB)...)
	results = append(results, d.detectLocation(factsA, factsB)...)
	results = append(results, d.detectLogical(evA, evB, factsA, factsB)...)
	results = append(results, d.detectMetadata(evA, evB)...)

	filtered := results[:0]
	for _, c := range results {
		if c.Confidence < d.minConfidence {
			continue
		}
		c.Evidence1ID = evA.ID
		c.Evidence2ID = evB.ID
		c.Status = model.ContradictionActive
		c.DetectedAt = now
		filtered = append(filtered, c)
	}

	return filtered
}

// sharedEventKeyword returns the first event keyword both contexts mention,
// or "" when the facts do not appear to describe the same event. Scanning a
// fixed keyword list keeps the result independent of argument order.
func sharedEventKeyword(contextA, contextB string) string {
	for _, kw := range eventKeywords {
		if containsFold(contextA, kw) && containsFold(contextB, kw) {
			return kw
		}
	}
	return ""
}
