// Package service is the facade the route/UI layer consumes. It wires the
// scoring, extraction, and detection components to the persistence
// collaborator, owns the evidence lifecycle transitions (verify, mint),
// and serializes every numeric score as a fixed two-decimal string so
// comparisons and display stay deterministic.
package service

import (
	"fmt"
	"time"

	"github.com/probatio/probatio/internal/bayesian"
	"github.com/probatio/probatio/internal/contradiction"
	"github.com/probatio/probatio/internal/extract"
	"github.com/probatio/probatio/internal/logging"
	"github.com/probatio/probatio/internal/minting"
	"github.com/probatio/probatio/internal/model"
	"github.com/probatio/probatio/internal/store"
	"github.com/probatio/probatio/internal/sweep"
	"github.com/probatio/probatio/internal/trust"
	"github.com/probatio/probatio/internal/verify"
)

// Service exposes the evidence trust lifecycle operations.
type Service struct {
	store    store.Store
	cfg      *model.Config
	sink     logging.Sink
	calc     *trust.Calculator
	scorer   *minting.Scorer
	assessor *bayesian.Assessor
	engine   *extract.Engine
	detector *contradiction.Detector
	verifier *verify.Verifier

	now func() time.Time // injectable clock
}

// New wires a service. A nil config uses the defaults; a nil sink discards.
func New(st store.Store, cfg *model.Config, sink logging.Sink) *Service {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if sink == nil {
		sink = logging.Discard
	}

	return &Service{
		store:    st,
		cfg:      cfg,
		sink:     sink,
		calc:     trust.NewCalculator(cfg.Trust.DegradationRatePerHour),
		scorer:   minting.NewScorer(),
		assessor: bayesian.NewAssessor(),
		engine:   extract.NewEngine(sink),
		detector: contradiction.NewDetector(cfg.Detection.MinimumConfidence),
		verifier: verify.NewVerifier(cfg.Sweep.Workers, sink),
		now:      time.Now,
	}
}

// formatScore renders a score in the fixed boundary representation.
func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// CalculateTrustScore returns the tier's base trust score.
func (s *Service) CalculateTrustScore(tier model.EvidenceTier) (string, error) {
	score, err := s.calc.BaseScore(tier)
	if err != nil {
		return "", err
	}
	return formatScore(score), nil
}

// CurrentTrustScore returns the item's decayed trust score as of now.
func (s *Service) CurrentTrustScore(ev *model.Evidence) (string, error) {
	if ev == nil {
		return "", model.NewValidationError("evidence is nil")
	}
	score, err := s.calc.CurrentScore(ev, s.now())
	if err != nil {
		return "", err
	}
	return formatScore(score), nil
}

// EligibilityResult is the boundary form of a minting evaluation: score as
// a two-decimal string and reasons rendered with the ✓/✗ prefix the
// presentation layer color-codes on.
type EligibilityResult struct {
	Eligible   bool               `json:"eligible"`
	Score      string             `json:"score"`
	Reasons    []string           `json:"reasons"`
	SixDScores minting.AxisScores `json:"six_d_scores"`
}

// CalculateMintingEligibility evaluates the six axes for a stored evidence
// item. A missing item yields an explicit not-found result with score
// "0.00" rather than an error; this endpoint is advisory and must never
// fail the caller for an absent record.
func (s *Service) CalculateMintingEligibility(evidenceID string) (EligibilityResult, error) {
	ev, err := s.store.GetEvidence(evidenceID)
	if model.IsNotFound(err) {
		return EligibilityResult{
			Eligible: false,
			Score:    "0.00",
			Reasons:  []string{"✗ Evidence not found"},
		}, nil
	}
	if err != nil {
		return EligibilityResult{}, err
	}

	chain, err := s.store.GetChainOfCustody(evidenceID)
	if err != nil {
		return EligibilityResult{}, err
	}

	res, err := s.scorer.Evaluate(ev, len(chain), s.now())
	if err != nil {
		return EligibilityResult{}, err
	}

	reasons := make([]string, len(res.Reasons))
	for i, r := range res.Reasons {
		reasons[i] = r.String()
	}

	return EligibilityResult{
		Eligible:   res.Eligible,
		Score:      formatScore(res.Score),
		Reasons:    reasons,
		SixDScores: res.Axes,
	}, nil
}

// ScientificResult is the boundary form of a Bayesian assessment: every
// numeric score rendered as a two-decimal string.
type ScientificResult struct {
	FinalScore           string            `json:"final_score"`
	Confidence           string            `json:"confidence"`
	Methodology          string            `json:"methodology"`
	Components           map[string]string `json:"components"`
	QualityMetrics       map[string]string `json:"quality_metrics"`
	ErrorBounds          map[string]string `json:"error_bounds"`
	Recommendations      []string          `json:"recommendations"`
	Limitations          []string          `json:"limitations"`
	ExpertReviewRequired bool              `json:"expert_review_required"`
}

// GenerateScientificTrustScore runs the Bayesian assessor over an evidence
// item. hv is the optional hash-verification input; pass nil when the
// artifact content was not checked.
func (s *Service) GenerateScientificTrustScore(ev *model.Evidence, custody []model.CustodyEntry, hv *bayesian.HashVerification) (ScientificResult, error) {
	if ev == nil {
		return ScientificResult{}, model.NewValidationError("evidence is nil")
	}

	a, err := s.assessor.Assess(ev, custody, hv, s.now())
	if err != nil {
		return ScientificResult{}, err
	}

	components := make(map[string]string, len(a.Components))
	for k, v := range a.Components {
		components[k] = formatScore(v)
	}

	return ScientificResult{
		FinalScore:  formatScore(a.FinalScore),
		Confidence:  formatScore(a.Confidence),
		Methodology: a.Methodology,
		Components:  components,
		QualityMetrics: map[string]string{
			"integrity":          formatScore(a.QualityMetrics.Integrity),
			"authenticity":       formatScore(a.QualityMetrics.Authenticity),
			"reliability":        formatScore(a.QualityMetrics.Reliability),
			"completeness":       formatScore(a.QualityMetrics.Completeness),
			"admissibility":      formatScore(a.QualityMetrics.Admissibility),
			"temporal_relevance": formatScore(a.QualityMetrics.TemporalRelevance),
		},
		ErrorBounds: map[string]string{
			"lower": formatScore(a.ErrorBounds.Lower),
			"upper": formatScore(a.ErrorBounds.Upper),
		},
		Recommendations:      a.Recommendations,
		Limitations:          a.Limitations,
		ExpertReviewRequired: a.ExpertReviewRequired,
	}, nil
}

// ExtractFacts runs the extraction engine over raw document text and
// persists the resulting facts. cfg overrides the configured extraction
// settings when non-nil.
func (s *Service) ExtractFacts(ev *model.Evidence, text string, cfg *model.ExtractionConfig) ([]model.AtomicFact, error) {
	effective := s.cfg.Extraction
	if cfg != nil {
		effective = *cfg
	}

	facts, err := s.engine.Extract(ev, text, effective)
	if err != nil {
		return nil, err
	}

	stored := make([]model.AtomicFact, 0, len(facts))
	for i := range facts {
		f, err := s.store.CreateFact(&facts[i])
		if err != nil {
			return nil, err
		}
		stored = append(stored, *f)
	}
	return stored, nil
}

// DetectContradictions cross-checks two evidence items. This endpoint is
// advisory and pure: nothing is persisted and no counters move. Case-wide
// sweeps own persistence and the conflict-count invariant.
func (s *Service) DetectContradictions(evA, evB *model.Evidence, factsA, factsB []model.AtomicFact) []model.Contradiction {
	return s.detector.Detect(evA, evB, factsA, factsB)
}

// ResolveContradiction marks a contradiction resolved and restores the
// conflict counters on both referenced items.
func (s *Service) ResolveContradiction(id string) (*model.Contradiction, error) {
	c, err := s.store.ResolveContradiction(id)
	if err != nil {
		return nil, err
	}
	if err := sweep.SyncConflictCounts(s.store, c.Evidence1ID, c.Evidence2ID); err != nil {
		return nil, err
	}

	s.sink.Log(logging.LevelInfo, "contradiction resolved", map[string]any{
		"contradiction_id": c.ID,
		"evidence_1":       c.Evidence1ID,
		"evidence_2":       c.Evidence2ID,
	})
	return c, nil
}
