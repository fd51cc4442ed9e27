package bayesian

import (
	"strings"
	"testing"
	"time"

	"github.com/probatio/probatio/internal/model"
)

func baseEvidence(now time.Time) *model.Evidence {
	verified := now.Add(-time.Hour)
	return &model.Evidence{
		ID:                 "ev-1",
		CaseID:             "case-1",
		Tier:               model.TierGovernment,
		Status:             model.StatusVerified,
		UploadedBy:         "examiner",
		UploadedAt:         now.Add(-2 * time.Hour),
		VerifiedAt:         &verified,
		ContentType:        "application/pdf",
		Description:        "certified court transcript",
		Location:           "county records office",
		HashValue:          "ab12",
		CorroborationCount: 3,
	}
}

func custodyChain(n int, now time.Time) []model.CustodyEntry {
	entries := make([]model.CustodyEntry, n)
	for i := range entries {
		entries[i] = model.CustodyEntry{
			EvidenceID:  "ev-1",
			Action:      model.ActionTransferred,
			PerformedBy: "clerk",
			Timestamp:   now.Add(time.Duration(i) * time.Minute),
		}
	}
	return entries
}

func TestAssessor_Assess_StrongEvidence(t *testing.T) {
	assessor := NewAssessor()
	now := time.Now()

	ev := baseEvidence(now)
	hv := &HashVerification{Valid: true, ComputedHash: "ab12"}

	assessment, err := assessor.Assess(ev, custodyChain(4, now), hv, now)
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}

	if assessment.FinalScore <= 0.5 || assessment.FinalScore > 1.0 {
		t.Errorf("FinalScore = %v, want strong posterior in (0.5, 1.0]", assessment.FinalScore)
	}
	if assessment.FinalScore <= assessment.Components["prior"]*0.5 {
		t.Errorf("Posterior %v collapsed far below prior %v", assessment.FinalScore, assessment.Components["prior"])
	}
	if assessment.Confidence < 0.7 {
		t.Errorf("Confidence = %v, want >= 0.7 for heavily corroborated evidence", assessment.Confidence)
	}
	if assessment.ExpertReviewRequired {
		t.Error("Expected no expert review for strong, conflict-free evidence")
	}
	if assessment.Methodology != Methodology {
		t.Errorf("Methodology = %q, want %q", assessment.Methodology, Methodology)
	}
}

func TestAssessor_Assess_PosteriorFormula(t *testing.T) {
	assessor := NewAssessor()
	now := time.Now()

	assessment, err := assessor.Assess(baseEvidence(now), custodyChain(3, now), nil, now)
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}

	prior := assessment.Components["prior"]
	likelihood := assessment.Components["likelihood"]
	want := (likelihood * prior) / (likelihood*prior + (1-likelihood)*(1-prior))
	if diff := assessment.FinalScore - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("FinalScore = %v, want Bayes update %v", assessment.FinalScore, want)
	}
}

func TestAssessor_Assess_MetricsWithinUnitInterval(t *testing.T) {
	assessor := NewAssessor()
	now := time.Now()

	ev := baseEvidence(now)
	ev.ConflictCount = 4 // large penalty must still clamp

	assessment, err := assessor.Assess(ev, nil, nil, now)
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}

	m := assessment.QualityMetrics
	for name, v := range map[string]float64{
		"integrity":          m.Integrity,
		"authenticity":       m.Authenticity,
		"reliability":        m.Reliability,
		"completeness":       m.Completeness,
		"admissibility":      m.Admissibility,
		"temporal_relevance": m.TemporalRelevance,
	} {
		if v < 0 || v > 1 {
			t.Errorf("Metric %s = %v, want within [0,1]", name, v)
		}
	}
	if assessment.ErrorBounds.Lower < 0 || assessment.ErrorBounds.Upper > 1 {
		t.Errorf("Error bounds %+v escape [0,1]", assessment.ErrorBounds)
	}
	if assessment.ErrorBounds.Lower > assessment.FinalScore || assessment.ErrorBounds.Upper < assessment.FinalScore {
		t.Errorf("Error bounds %+v do not bracket posterior %v", assessment.ErrorBounds, assessment.FinalScore)
	}
}

func TestAssessor_Assess_ExpertReviewTriggers(t *testing.T) {
	assessor := NewAssessor()
	now := time.Now()

	cases := []struct {
		name   string
		mutate func(ev *model.Evidence)
	}{
		{"conflicts present", func(ev *model.Evidence) { ev.ConflictCount = 1 }},
		{"uncorroborated tier", func(ev *model.Evidence) { ev.Tier = model.TierUncorroboratedPerson }},
		{"low integrity", func(ev *model.Evidence) {
			ev.HashValue = ""
			ev.BlockNumber = ""
			ev.CaseID = ""
			ev.UploadedBy = ""
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := baseEvidence(now)
			tc.mutate(ev)

			assessment, err := assessor.Assess(ev, nil, nil, now)
			if err != nil {
				t.Fatalf("Assess returned error: %v", err)
			}
			if !assessment.ExpertReviewRequired {
				t.Error("Expected ExpertReviewRequired=true")
			}
		})
	}
}

func TestAssessor_Assess_TemporalRelevanceSteps(t *testing.T) {
	assessor := NewAssessor()
	now := time.Now()

	cases := []struct {
		age  time.Duration
		want float64
	}{
		{10 * 24 * time.Hour, 1.0},
		{60 * 24 * time.Hour, 0.9},
		{200 * 24 * time.Hour, 0.8},
		{3 * 365 * 24 * time.Hour, 0.7},
		{6 * 365 * 24 * time.Hour, 0.6},
	}

	for _, tc := range cases {
		ev := baseEvidence(now)
		ev.UploadedAt = now.Add(-tc.age)

		assessment, err := assessor.Assess(ev, nil, nil, now)
		if err != nil {
			t.Fatalf("Assess returned error: %v", err)
		}
		if assessment.QualityMetrics.TemporalRelevance != tc.want {
			t.Errorf("TemporalRelevance at age %v = %v, want %v",
				tc.age, assessment.QualityMetrics.TemporalRelevance, tc.want)
		}
	}
}

func TestAssessor_Assess_AlwaysSelfReportsLimitations(t *testing.T) {
	assessor := NewAssessor()
	now := time.Now()

	assessment, err := assessor.Assess(baseEvidence(now), nil, nil, now)
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}

	if len(assessment.Limitations) == 0 {
		t.Fatal("Expected limitations to be reported")
	}
	found := false
	for _, l := range assessment.Limitations {
		if strings.Contains(l, "not a legal determination") {
			found = true
		}
	}
	if !found {
		t.Error("Expected the legal-determination disclaimer among limitations")
	}
}

func TestAssessor_Assess_UnknownTier(t *testing.T) {
	assessor := NewAssessor()
	now := time.Now()

	ev := baseEvidence(now)
	ev.Tier = model.EvidenceTier("PSYCHIC")

	_, err := assessor.Assess(ev, nil, nil, now)
	if err == nil {
		t.Fatal("Expected error for unknown tier")
	}
	if model.CodeOf(err) != model.CodeConfiguration {
		t.Errorf("Expected CONFIGURATION_ERROR, got %q", model.CodeOf(err))
	}
}
