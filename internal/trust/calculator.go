// Package trust implements the deterministic trust score lifecycle: a
// tier-based creation score and linear time decay, frozen by minting.
package trust

import (
	"math"
	"time"

	"github.com/probatio/probatio/internal/model"
)

// Calculator computes tier base scores and time-decayed current scores.
// It is a pure function of evidence state plus the supplied clock reading;
// persisting recomputed values is the caller's responsibility.
type Calculator struct {
	defaultRate float64
}

// NewCalculator creates a calculator with the given default per-hour decay
// rate. Non-positive rates fall back to the standard default.
func NewCalculator(ratePerHour float64) *Calculator {
	if ratePerHour <= 0 {
		ratePerHour = model.DefaultDegradationRate
	}
	return &Calculator{defaultRate: ratePerHour}
}

// BaseScore returns the creation-time trust score for a tier. Used once at
// creation to set both the original and the initial current score.
func (c *Calculator) BaseScore(tier model.EvidenceTier) (float64, error) {
	return tier.BaseScore()
}

// DefaultRate returns the decay rate applied to evidence that has not
// overridden it.
func (c *Calculator) DefaultRate() float64 {
	return c.defaultRate
}

// CurrentScore computes the trust score at the given instant. Minted
// evidence returns its frozen score unchanged; everything else decays
// linearly from the original score, floored at zero.
func (c *Calculator) CurrentScore(ev *model.Evidence, now time.Time) (float64, error) {
	if ev.IsMinted() {
		return ev.TrustScore, nil
	}

	rate := ev.TrustDegradationRate
	if rate < 0 {
		return 0, model.NewTrustScoreError("negative degradation rate %v on evidence %s", rate, ev.ID)
	}

	hours := now.Sub(ev.LastTrustUpdate).Hours()
	if hours < 0 {
		hours = 0 // clock skew never raises a score
	}

	score := ev.OriginalTrustScore - rate*hours
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, model.NewTrustScoreError("decay produced non-finite score for evidence %s", ev.ID)
	}
	if score < 0 {
		return 0, nil
	}
	return score, nil
}
