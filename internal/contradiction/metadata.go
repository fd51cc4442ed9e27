package contradiction

import (
	"fmt"
	"time"

	"github.com/probatio/probatio/internal/model"
)

// trustDivergenceThreshold flags same-tier, same-case evidence whose trust
// scores have drifted suspiciously far apart.
const trustDivergenceThreshold = 0.30

// rapidSubmissionWindow flags one uploader submitting two items implausibly
// close together, a fabrication signal.
const rapidSubmissionWindow = time.Hour

// detectMetadata cross-checks evidence metadata rather than extracted
// facts: trust divergence within a tier and rapid same-uploader
// submissions.
func (d *Detector) detectMetadata(evA, evB *model.Evidence) []model.Contradiction {
	var results []model.Contradiction

	if evA.Tier == evB.Tier && evA.CaseID != "" && evA.CaseID == evB.CaseID {
		diff := evA.TrustScore - evB.TrustScore
		if diff < 0 {
			diff = -diff
		}
		if diff > trustDivergenceThreshold {
			low, high := evA.TrustScore, evB.TrustScore
			if low > high {
				low, high = high, low
			}
			results = append(results, model.Contradiction{
				Type:       model.ContradictionMetadata,
				Severity:   model.SeverityMedium,
				Confidence: 0.75,
				Description: fmt.Sprintf("Same-tier evidence in one case with diverging trust scores (%.2f vs %.2f)",
					low, high),
				Metadata: map[string]any{
					"rule":         "trust-divergence",
					"tier":         string(evA.Tier),
					"trust_scores": []float64{low, high},
				},
			})
		}
	}

	if evA.UploadedBy != "" && evA.UploadedBy == evB.UploadedBy {
		gap := evA.UploadedAt.Sub(evB.UploadedAt)
		if gap < 0 {
			gap = -gap
		}
		if gap <= rapidSubmissionWindow {
			results = append(results, model.Contradiction{
				Type:       model.ContradictionMetadata,
				Severity:   model.SeverityHigh,
				Confidence: 0.8,
				Description: fmt.Sprintf("Uploader %q submitted both items within %.0f minutes (possible fabrication)",
					evA.UploadedBy, gap.Minutes()),
				Metadata: map[string]any{
					"rule":        "rapid-submission",
					"uploaded_by": evA.UploadedBy,
					"gap_minutes": gap.Minutes(),
				},
			})
		}
	}

	return results
}
