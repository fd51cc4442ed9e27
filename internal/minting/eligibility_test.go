package minting

import (
	"strings"
	"testing"
	"time"

	"github.com/probatio/probatio/internal/model"
)

func TestScorer_Evaluate_FreshVerifiedGovernmentRecord(t *testing.T) {
	scorer := NewScorer()
	now := time.Now()

	ev := &model.Evidence{
		ID:                 "ev-1",
		Tier:               model.TierGovernment,
		Status:             model.StatusVerified,
		UploadedAt:         now.Add(-2 * time.Hour),
		CorroborationCount: 3,
		ConflictCount:      0,
	}

	result, err := scorer.Evaluate(ev, 3, now)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}

	want := AxisScores{Source: 18, Time: 15, Chain: 15, Network: 20, Outcomes: 15, Justice: 15}
	if result.Axes != want {
		t.Errorf("Axes = %+v, want %+v", result.Axes, want)
	}
	if result.Score != 0.98 {
		t.Errorf("Score = %v, want 0.98", result.Score)
	}
	if !result.Eligible {
		t.Error("Expected eligible=true at composite 0.98")
	}
	for _, r := range result.Reasons {
		if !r.Passed {
			t.Errorf("Expected all axes to pass, got failing reason %q", r.Text)
		}
		if !strings.HasPrefix(r.String(), "✓ ") {
			t.Errorf("Expected ✓ prefix, got %q", r.String())
		}
	}
}

func TestScorer_Evaluate_StaleUncorroboratedTestimony(t *testing.T) {
	scorer := NewScorer()
	now := time.Now()

	ev := &model.Evidence{
		ID:                 "ev-2",
		Tier:               model.TierUncorroboratedPerson,
		Status:             model.StatusPending,
		UploadedAt:         now.Add(-400 * 24 * time.Hour),
		CorroborationCount: 0,
		ConflictCount:      2,
	}

	result, err := scorer.Evaluate(ev, 0, now)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}

	if result.Score != 0.00 {
		t.Errorf("Score = %v, want 0.00", result.Score)
	}
	if result.Eligible {
		t.Error("Expected eligible=false at composite 0.00")
	}
	if len(result.Reasons) != 6 {
		t.Fatalf("Expected 6 reasons, got %d", len(result.Reasons))
	}
	for _, r := range result.Reasons {
		if r.Passed {
			t.Errorf("Expected all axes to fail, got passing reason %q", r.Text)
		}
		if !strings.HasPrefix(r.String(), "✗ ") {
			t.Errorf("Expected ✗ prefix, got %q", r.String())
		}
	}
}

func TestScorer_Evaluate_CompositeIsExactAxisSum(t *testing.T) {
	scorer := NewScorer()
	now := time.Now()

	cases := []struct {
		name      string
		ev        *model.Evidence
		custody   int
	}{
		{
			name: "partial corroboration",
			ev: &model.Evidence{
				Tier:               model.TierBusinessRecords,
				Status:             model.StatusRequiresCorroboration,
				UploadedAt:         now.Add(-3 * 24 * time.Hour),
				CorroborationCount: 1,
				ConflictCount:      1,
			},
			custody: 1,
		},
		{
			name: "financial verified",
			ev: &model.Evidence{
				Tier:               model.TierFinancialInstitution,
				Status:             model.StatusVerified,
				UploadedAt:         now.Add(-10 * 24 * time.Hour),
				CorroborationCount: 2,
				ConflictCount:      0,
			},
			custody: 5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := scorer.Evaluate(tc.ev, tc.custody, now)
			if err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}

			sum := result.Axes.Total() / 100.0
			if result.Score != sum {
				t.Errorf("Score = %v, want axis sum / 100 = %v", result.Score, sum)
			}
			if result.Eligible != (result.Score >= Threshold) {
				t.Errorf("Eligible = %v inconsistent with score %v against threshold %v",
					result.Eligible, result.Score, Threshold)
			}
		})
	}
}

func TestScorer_Evaluate_TimeAxisBoundaries(t *testing.T) {
	scorer := NewScorer()
	now := time.Now()

	cases := []struct {
		age  time.Duration
		want float64
	}{
		{12 * time.Hour, 15},
		{3 * 24 * time.Hour, 12},
		{20 * 24 * time.Hour, 8},
		{31 * 24 * time.Hour, 0},
	}

	for _, tc := range cases {
		ev := &model.Evidence{
			Tier:       model.TierGovernment,
			Status:     model.StatusPending,
			UploadedAt: now.Add(-tc.age),
		}
		result, err := scorer.Evaluate(ev, 0, now)
		if err != nil {
			t.Fatalf("Evaluate returned error: %v", err)
		}
		if result.Axes.Time != tc.want {
			t.Errorf("Time axis at age %v = %v, want %v", tc.age, result.Axes.Time, tc.want)
		}
	}
}

func TestScorer_Evaluate_UnknownTier(t *testing.T) {
	scorer := NewScorer()

	ev := &model.Evidence{Tier: model.EvidenceTier("RUMOR"), UploadedAt: time.Now()}
	_, err := scorer.Evaluate(ev, 0, time.Now())
	if err == nil {
		t.Fatal("Expected error for unknown tier")
	}
	if model.CodeOf(err) != model.CodeConfiguration {
		t.Errorf("Expected CONFIGURATION_ERROR, got %q", model.CodeOf(err))
	}
}
