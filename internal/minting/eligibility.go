// Package minting implements the deterministic 6-axis minting eligibility
// scorer: six independently capped criteria summed to a 0-100 composite and
// normalized to [0,1], with a per-axis explainable reason trail.
package minting

import (
	"fmt"
	"time"

	"github.com/probatio/probatio/internal/model"
)

// Threshold is the normalized composite score required for eligibility.
const Threshold = 0.70

// Axis point caps.
const (
	maxSource   = 20.0
	maxTime     = 15.0
	maxChain    = 15.0
	maxNetwork  = 20.0
	maxOutcomes = 15.0
	maxJustice  = 15.0
)

// Reason is one axis verdict. The ✓/✗ rendering consumed by presentation
// layers is produced by String; internal consumers read Passed directly.
type Reason struct {
	Passed bool   `json:"passed"`
	Text   string `json:"text"`
}

// String renders the reason in the fixed prefix convention existing
// consumers color-code on: "✓ " or "✗ " followed by the text.
func (r Reason) String() string {
	if r.Passed {
		return "✓ " + r.Text
	}
	return "✗ " + r.Text
}

// AxisScores is the per-axis point breakdown
type AxisScores struct {
	Source   float64 `json:"source"`   // 0-20, tier-indexed
	Time     float64 `json:"time"`     // 0-15, artifact age
	Chain    float64 `json:"chain"`    // 0-15, custody depth
	Network  float64 `json:"network"`  // 0-20, corroboration
	Outcomes float64 `json:"outcomes"` // 0-15, verification status
	Justice  float64 `json:"justice"`  // 0-15, conflict exposure
}

// Total sums the six capped axes.
func (a AxisScores) Total() float64 {
	return a.Source + a.Time + a.Chain + a.Network + a.Outcomes + a.Justice
}

// Result is the eligibility verdict with its full breakdown
type Result struct {
	Eligible bool       `json:"eligible"`
	Score    float64    `json:"score"` // composite, [0,1]
	Reasons  []Reason   `json:"reasons"`
	Axes     AxisScores `json:"six_d_scores"`
}

// Scorer evaluates minting eligibility
type Scorer struct{}

// NewScorer creates a new eligibility scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Evaluate scores an evidence item against all six axes at the given
// instant. custodyEntries is the item's chain-of-custody depth.
func (s *Scorer) Evaluate(ev *model.Evidence, custodyEntries int, now time.Time) (Result, error) {
	var axes AxisScores
	var reason Reason
	reasons := make([]Reason, 0, 6)

	source, reason, err := s.scoreSource(ev.Tier)
	if err != nil {
		return Result{}, err
	}
	axes.Source = source
	reasons = append(reasons, reason)

	axes.Time, reason = s.scoreTime(ev.Age(now))
	reasons = append(reasons, reason)

	axes.Chain, reason = s.scoreChain(custodyEntries)
	reasons = append(reasons, reason)

	axes.Network, reason = s.scoreNetwork(ev.CorroborationCount)
	reasons = append(reasons, reason)

	axes.Outcomes, reason = s.scoreOutcomes(ev.Status)
	reasons = append(reasons, reason)

	axes.Justice, reason = s.scoreJustice(ev.ConflictCount)
	reasons = append(reasons, reason)

	composite := axes.Total() / 100.0

	return Result{
		Eligible: composite >= Threshold,
		Score:    composite,
		Reasons:  reasons,
		Axes:     axes,
	}, nil
}

// scoreSource scores the provenance tier (0-20 points).
func (s *Scorer) scoreSource(tier model.EvidenceTier) (float64, Reason, error) {
	weight, err := tier.MintWeight()
	if err != nil {
		return 0, Reason{}, err
	}

	return weight, Reason{
		Passed: weight >= 10,
		Text:   fmt.Sprintf("Source tier %s: %.0f/%.0f points", tier, weight, maxSource),
	}, nil
}

// scoreTime scores artifact freshness (0-15 points).
func (s *Scorer) scoreTime(age time.Duration) (float64, Reason) {
	var points float64
	switch {
	case age < 24*time.Hour:
		points = 15
	case age < 7*24*time.Hour:
		points = 12
	case age < 30*24*time.Hour:
		points = 8
	default:
		points = 0
	}

	return points, Reason{
		Passed: points > 0,
		Text:   fmt.Sprintf("Artifact age %.1f hours: %.0f/%.0f points", age.Hours(), points, maxTime),
	}
}

// scoreChain scores chain-of-custody depth (0-15 points).
func (s *Scorer) scoreChain(entries int) (float64, Reason) {
	var points float64
	switch {
	case entries >= 3:
		points = 15
	case entries >= 1:
		points = 10
	default:
		points = 0
	}

	return points, Reason{
		Passed: entries >= 1,
		Text:   fmt.Sprintf("Chain of custody depth %d: %.0f/%.0f points", entries, points, maxChain),
	}
}

// scoreNetwork scores independent corroboration (0-20 points).
func (s *Scorer) scoreNetwork(corroborations int) (float64, Reason) {
	var points float64
	switch {
	case corroborations >= 3:
		points = 20
	case corroborations >= 2:
		points = 15
	case corroborations >= 1:
		points = 8
	default:
		points = 0
	}

	return points, Reason{
		Passed: corroborations >= 1,
		Text:   fmt.Sprintf("%d corroborating sources: %.0f/%.0f points", corroborations, points, maxNetwork),
	}
}

// scoreOutcomes scores the verification status (0-15 points).
func (s *Scorer) scoreOutcomes(status model.EvidenceStatus) (float64, Reason) {
	var points float64
	switch status {
	case model.StatusVerified, model.StatusMinted:
		points = 15
	case model.StatusRequiresCorroboration:
		points = 5
	default:
		points = 0
	}

	return points, Reason{
		Passed: status == model.StatusVerified || status == model.StatusMinted,
		Text:   fmt.Sprintf("Status %s: %.0f/%.0f points", status, points, maxOutcomes),
	}
}

// scoreJustice scores conflict exposure (0-15 points).
func (s *Scorer) scoreJustice(conflicts int) (float64, Reason) {
	var points float64
	switch {
	case conflicts == 0:
		points = 15
	case conflicts == 1:
		points = 8
	default:
		points = 0
	}

	return points, Reason{
		Passed: conflicts == 0,
		Text:   fmt.Sprintf("%d unresolved conflicts: %.0f/%.0f points", conflicts, points, maxJustice),
	}
}
