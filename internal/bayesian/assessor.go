// Package bayesian implements the scientific trust assessor: six quality
// metrics combined into a likelihood, updated against a tier-indexed prior
// to produce a posterior reliability estimate with an error band.
//
// This model is intentionally independent of the deterministic 6-axis
// minting scorer; the two share input data only.
package bayesian

import (
	"fmt"
	"math"
	"time"

	"github.com/probatio/probatio/internal/model"
)

// Methodology names the assessment procedure reported with every result.
const Methodology = "Bayesian posterior over tier-indexed prior with weighted quality-metric likelihood"

// Likelihood weights per quality metric. They sum to 1.0.
const (
	weightIntegrity    = 0.25
	weightAuthenticity = 0.20
	weightReliability  = 0.20
	weightCompleteness = 0.10
	weightAdmissible   = 0.15
	weightTemporal     = 0.10
)

// HashVerification is the optional result of checking the artifact's
// recorded hash against its content.
type HashVerification struct {
	Valid        bool   `json:"valid"`
	ComputedHash string `json:"computed_hash,omitempty"`
}

// QualityMetrics are the six observed quality dimensions, all in [0,1]
type QualityMetrics struct {
	Integrity         float64 `json:"integrity"`          // hash validity + anchoring + metadata
	Authenticity      float64 `json:"authenticity"`       // tier-indexed constant
	Reliability       float64 `json:"reliability"`        // corroboration vs. conflicts
	Completeness      float64 `json:"completeness"`       // metadata field coverage
	Admissibility     float64 `json:"admissibility"`      // custody + tier + technical compliance
	TemporalRelevance float64 `json:"temporal_relevance"` // step function of artifact age
}

// Bounds is the 95% error band around the posterior
type Bounds struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Assessment is the full probabilistic trust verdict
type Assessment struct {
	FinalScore           float64            `json:"final_score"` // posterior probability, [0,1]
	Confidence           float64            `json:"confidence"`  // [0,1]
	Methodology          string             `json:"methodology"`
	Components           map[string]float64 `json:"components"` // prior, likelihood, posterior and weights
	QualityMetrics       QualityMetrics     `json:"quality_metrics"`
	ErrorBounds          Bounds             `json:"error_bounds"`
	Recommendations      []string           `json:"recommendations"`
	Limitations          []string           `json:"limitations"`
	ExpertReviewRequired bool               `json:"expert_review_required"`
}

// Assessor produces probabilistic trust assessments
type Assessor struct{}

// NewAssessor creates a new assessor
func NewAssessor() *Assessor {
	return &Assessor{}
}

// Assess evaluates an evidence item. custody is the item's chain of custody
// and hv the optional hash-verification result; both may be empty.
func (a *Assessor) Assess(ev *model.Evidence, custody []model.CustodyEntry, hv *HashVerification, now time.Time) (Assessment, error) {
	prior, err := ev.Tier.Prior()
	if err != nil {
		return Assessment{}, err
	}
	authenticity, err := ev.Tier.Authenticity()
	if err != nil {
		return Assessment{}, err
	}
	tierBonus, err := ev.Tier.AdmissibilityBonus()
	if err != nil {
		return Assessment{}, err
	}

	completeness := a.completeness(ev)

	metrics := QualityMetrics{
		Integrity:         a.integrity(ev, hv, completeness),
		Authenticity:      authenticity,
		Reliability:       a.reliability(ev),
		Completeness:      completeness,
		Admissibility:     a.admissibility(ev, hv, tierBonus, len(custody)),
		TemporalRelevance: a.temporalRelevance(ev.Age(now)),
	}

	likelihood := weightIntegrity*metrics.Integrity +
		weightAuthenticity*metrics.Authenticity +
		weightReliability*metrics.Reliability +
		weightCompleteness*metrics.Completeness +
		weightAdmissible*metrics.Admissibility +
		weightTemporal*metrics.TemporalRelevance

	posterior := (likelihood * prior) / (likelihood*prior + (1-likelihood)*(1-prior))
	if math.IsNaN(posterior) {
		return Assessment{}, model.NewTrustScoreError("degenerate posterior for evidence %s (prior=%v likelihood=%v)", ev.ID, prior, likelihood)
	}

	confidence := a.confidence(ev, metrics)

	// Normal approximation around the posterior, widened as confidence in
	// the inputs drops.
	margin := 1.96 * math.Sqrt(posterior*(1-posterior)) * (1 - confidence)
	bounds := Bounds{
		Lower: clamp01(posterior - margin),
		Upper: clamp01(posterior + margin),
	}

	review := confidence < 0.7 ||
		metrics.Integrity < 0.8 ||
		ev.ConflictCount > 0 ||
		ev.Tier == model.TierUncorroboratedPerson

	return Assessment{
		FinalScore:  posterior,
		Confidence:  confidence,
		Methodology: Methodology,
		Components: map[string]float64{
			"prior":               prior,
			"likelihood":          likelihood,
			"posterior":           posterior,
			"weight_integrity":    weightIntegrity,
			"weight_authenticity": weightAuthenticity,
			"weight_reliability":  weightReliability,
			"weight_completeness": weightCompleteness,
			"weight_admissible":   weightAdmissible,
			"weight_temporal":     weightTemporal,
		},
		QualityMetrics:       metrics,
		ErrorBounds:          bounds,
		Recommendations:      a.recommendations(ev, metrics),
		Limitations:          limitations(),
		ExpertReviewRequired: review,
	}, nil
}

// integrity combines hash validity, blockchain anchoring, and metadata
// completeness into [0,1].
func (a *Assessor) integrity(ev *model.Evidence, hv *HashVerification, completeness float64) float64 {
	score := 0.0

	switch {
	case hv != nil && hv.Valid:
		score += 0.6
	case hv != nil && !hv.Valid:
		// A failed verification contributes nothing even if a hash exists.
	case ev.HashValue != "":
		score += 0.3 // recorded but unverified
	}

	if ev.BlockNumber != "" {
		score += 0.2
	}

	score += 0.2 * completeness

	return clamp01(score)
}

// reliability starts at 0.4 and moves with corroboration, conflicts, and
// verification status.
func (a *Assessor) reliability(ev *model.Evidence) float64 {
	score := 0.4

	corr := ev.CorroborationCount
	if corr > 3 {
		corr = 3
	}
	score += 0.15 * float64(corr)

	score -= 0.2 * float64(ev.ConflictCount)

	switch ev.Status {
	case model.StatusVerified, model.StatusMinted:
		score += 0.2
	case model.StatusRequiresCorroboration:
		score -= 0.1
	}

	return clamp01(score)
}

// completeness is the fraction of required metadata fields present plus
// bonuses for optional fields, capped at 1.0.
func (a *Assessor) completeness(ev *model.Evidence) float64 {
	required := 0
	if ev.ID != "" {
		required++
	}
	if ev.CaseID != "" {
		required++
	}
	if ev.UploadedBy != "" {
		required++
	}
	if !ev.UploadedAt.IsZero() {
		required++
	}

	score := float64(required) / 4.0

	if ev.Description != "" {
		score += 0.05
	}
	if ev.Location != "" {
		score += 0.05
	}
	if ev.ContentType != "" {
		score += 0.05
	}

	return clamp01(score)
}

// admissibility starts at 0.3 and adds custody depth, tier, and technical
// compliance bonuses.
func (a *Assessor) admissibility(ev *model.Evidence, hv *HashVerification, tierBonus float64, custodyDepth int) float64 {
	score := 0.3

	depth := custodyDepth
	if depth > 4 {
		depth = 4
	}
	score += 0.05 * float64(depth)

	score += tierBonus

	if hv != nil && hv.Valid {
		score += 0.15
	}
	if ev.ContentType != "" {
		score += 0.05
	}

	return clamp01(score)
}

// temporalRelevance is a step function of artifact age.
func (a *Assessor) temporalRelevance(age time.Duration) float64 {
	days := age.Hours() / 24
	switch {
	case days <= 30:
		return 1.0
	case days <= 90:
		return 0.9
	case days <= 365:
		return 0.8
	case days <= 5*365:
		return 0.7
	default:
		return 0.6
	}
}

// confidence grows with corroboration and high integrity/authenticity,
// capped at 1.0.
func (a *Assessor) confidence(ev *model.Evidence, metrics QualityMetrics) float64 {
	score := 0.5

	corr := ev.CorroborationCount
	if corr > 3 {
		corr = 3
	}
	score += 0.1 * float64(corr)

	if metrics.Integrity >= 0.9 {
		score += 0.1
	}
	if metrics.Authenticity >= 0.9 {
		score += 0.1
	}

	return clamp01(score)
}

// recommendations lists concrete follow-ups ordered by impact.
func (a *Assessor) recommendations(ev *model.Evidence, metrics QualityMetrics) []string {
	var recs []string

	if ev.ConflictCount > 0 {
		recs = append(recs, fmt.Sprintf("Resolve %d active contradictions before relying on this artifact", ev.ConflictCount))
	}
	if ev.CorroborationCount == 0 {
		recs = append(recs, "Obtain at least one independent corroborating source")
	}
	if metrics.Integrity < 0.8 {
		recs = append(recs, "Verify the artifact hash and anchor it to raise integrity")
	}
	if metrics.Completeness < 1.0 {
		recs = append(recs, "Complete the artifact metadata (description, location, content type)")
	}
	if ev.Status == model.StatusPending {
		recs = append(recs, "Submit the artifact for verification")
	}
	if len(recs) == 0 {
		recs = append(recs, "No corrective action indicated; maintain chain of custody")
	}

	return recs
}

// limitations self-reports what this assessment is and is not.
func limitations() []string {
	return []string{
		model.Disclaimer,
		"Posterior depends on heuristic quality metrics, not exhaustive examination of the artifact",
		"Tier priors are fixed empirical constants and do not adapt to case context",
		"Corroboration and conflict counts are taken as reported by the hosting service",
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
