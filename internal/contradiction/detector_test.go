package contradiction

import (
	"reflect"
	"testing"
	"time"

	"github.com/probatio/probatio/internal/model"
)

func testEvidence(id, caseID string, tier model.EvidenceTier) *model.Evidence {
	return &model.Evidence{
		ID:         id,
		CaseID:     caseID,
		Tier:       tier,
		TrustScore: 0.80,
		UploadedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UploadedBy: "clerk-" + id,
	}
}

func dateFact(evidenceID, content, context string) model.AtomicFact {
	return model.AtomicFact{
		ID:         "fact-" + evidenceID + "-" + content,
		EvidenceID: evidenceID,
		FactType:   model.FactDate,
		Content:    content,
		Context:    context,
	}
}

func amountFact(evidenceID, content, context string) model.AtomicFact {
	return model.AtomicFact{
		ID:         "fact-" + evidenceID + "-" + content,
		EvidenceID: evidenceID,
		FactType:   model.FactAmount,
		Content:    content,
		Context:    context,
	}
}

func TestDetector_Detect_TemporalPaymentDates(t *testing.T) {
	d := NewDetector(0)
	evA := testEvidence("ev-1", "case-1", model.TierGovernment)
	evB := testEvidence("ev-2", "case-1", model.TierFinancialInstitution)

	factsA := []model.AtomicFact{dateFact("ev-1", "03/15/2024", "payment was received on 03/15/2024")}
	factsB := []model.AtomicFact{dateFact("ev-2", "03/25/2024", "the payment cleared on 03/25/2024")}

	results := d.Detect(evA, evB, factsA, factsB)
	if len(results) != 1 {
		t.Fatalf("Detect() returned %d contradictions, want 1: %+v", len(results), results)
	}

	c := results[0]
	if c.Type != model.ContradictionTemporal {
		t.Errorf("Type = %q, want %q", c.Type, model.ContradictionTemporal)
	}
	if c.Severity != model.SeverityHigh {
		t.Errorf("Severity = %q, want %q", c.Severity, model.SeverityHigh)
	}
	if c.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", c.Confidence)
	}
	if c.Evidence1ID != "ev-1" || c.Evidence2ID != "ev-2" {
		t.Errorf("evidence ids = (%q, %q), want (ev-1, ev-2)", c.Evidence1ID, c.Evidence2ID)
	}
	if c.Status != model.ContradictionActive {
		t.Errorf("Status = %q, want %q", c.Status, model.ContradictionActive)
	}
}

func TestDetector_Detect_TemporalSeverityLadder(t *testing.T) {
	tests := []struct {
		name     string
		dateB    string
		severity model.Severity
	}{
		{"gap under a day", "03/15/2024", ""},                 // same day, within tolerance
		{"gap of ten days", "03/25/2024", model.SeverityHigh},
		{"gap over a year", "06/01/2025", model.SeverityCritical},
	}

	d := NewDetector(0)
	evA := testEvidence("ev-1", "case-1", model.TierGovernment)
	evB := testEvidence("ev-2", "case-1", model.TierFinancialInstitution)
	factsA := []model.AtomicFact{dateFact("ev-1", "03/15/2024", "invoice issued 03/15/2024")}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factsB := []model.AtomicFact{dateFact("ev-2", tt.dateB, "invoice issued " + tt.dateB)}
			results := d.Detect(evA, evB, factsA, factsB)

			if tt.severity == "" {
				if len(results) != 0 {
					t.Fatalf("Detect() = %+v, want no contradictions", results)
				}
				return
			}
			if len(results) != 1 {
				t.Fatalf("Detect() returned %d contradictions, want 1", len(results))
			}
			if results[0].Severity != tt.severity {
				t.Errorf("Severity = %q, want %q", results[0].Severity, tt.severity)
			}
		})
	}
}

func TestDetector_Detect_NumericalInvoiceAmounts(t *testing.T) {
	d := NewDetector(0)
	evA := testEvidence("ev-1", "case-1", model.TierGovernment)
	evB := testEvidence("ev-2", "case-1", model.TierBusinessRecords)

	factsA := []model.AtomicFact{amountFact("ev-1", "$1,000.00", "invoice amount of $1,000.00 due")}
	factsB := []model.AtomicFact{amountFact("ev-2", "$1,600.00", "invoice amount of $1,600.00 due")}

	results := d.Detect(evA, evB, factsA, factsB)
	if len(results) != 1 {
		t.Fatalf("Detect() returned %d contradictions, want 1: %+v", len(results), results)
	}

	c := results[0]
	if c.Type != model.ContradictionNumerical {
		t.Errorf("Type = %q, want %q", c.Type, model.ContradictionNumerical)
	}
	if c.Severity != model.SeverityHigh {
		t.Errorf("Severity = %q, want %q (60%% apart)", c.Severity, model.SeverityHigh)
	}
	if c.Confidence < 0.70 {
		t.Errorf("Confidence = %v, want >= 0.70", c.Confidence)
	}
}

func TestDetector_Detect_NumericalWithinTolerance(t *testing.T) {
	d := NewDetector(0)
	evA := testEvidence("ev-1", "case-1", model.TierGovernment)
	evB := testEvidence("ev-2", "case-1", model.TierBusinessRecords)

	factsA := []model.AtomicFact{amountFact("ev-1", "$1,000.00", "payment of $1,000.00 sent")}
	factsB := []model.AtomicFact{amountFact("ev-2", "$1,030.00", "payment of $1,030.00 received")}

	if results := d.Detect(evA, evB, factsA, factsB); len(results) != 0 {
		t.Errorf("Detect() = %+v, want none (3%% difference is within tolerance)", results)
	}
}

func TestDetector_Detect_FactualDirectNegation(t *testing.T) {
	d := NewDetector(0)
	evA := testEvidence("ev-1", "case-1", model.TierFirstPartyAdverse)
	evB := testEvidence("ev-2", "case-1", model.TierIndependentThird)

	factsA := []model.AtomicFact{{
		ID: "f-1", EvidenceID: "ev-1", FactType: model.FactStatement,
		Content: "The defendant was present at the office on the morning of the incident",
	}}
	factsB := []model.AtomicFact{{
		ID: "f-2", EvidenceID: "ev-2", FactType: model.FactStatement,
		Content: "The defendant was not present at the office on the morning of the incident",
	}}

	results := d.Detect(evA, evB, factsA, factsB)
	if len(results) != 1 {
		t.Fatalf("Detect() returned %d contradictions, want 1: %+v", len(results), results)
	}
	if results[0].Type != model.ContradictionFactual {
		t.Errorf("Type = %q, want %q", results[0].Type, model.ContradictionFactual)
	}
	if results[0].Severity != model.SeverityHigh {
		t.Errorf("Severity = %q, want %q", results[0].Severity, model.SeverityHigh)
	}
}

func TestDetector_Detect_LocationConflict(t *testing.T) {
	d := NewDetector(0)
	evA := testEvidence("ev-1", "case-1", model.TierGovernment)
	evB := testEvidence("ev-2", "case-1", model.TierBusinessRecords)

	factsA := []model.AtomicFact{{
		ID: "f-1", EvidenceID: "ev-1", FactType: model.FactLocation,
		Content: "123 Main St", Context: "the signing took place at 123 Main St",
	}}
	factsB := []model.AtomicFact{{
		ID: "f-2", EvidenceID: "ev-2", FactType: model.FactLocation,
		Content: "450 Oak Avenue", Context: "the signing took place at 450 Oak Avenue",
	}}

	results := d.Detect(evA, evB, factsA, factsB)
	if len(results) != 1 {
		t.Fatalf("Detect() returned %d contradictions, want 1: %+v", len(results), results)
	}
	if results[0].Type != model.ContradictionLocation {
		t.Errorf("Type = %q, want %q", results[0].Type, model.ContradictionLocation)
	}
}

func TestDetector_Detect_LocationAbbreviationNormalized(t *testing.T) {
	d := NewDetector(0)
	evA := testEvidence("ev-1", "case-1", model.TierGovernment)
	evB := testEvidence("ev-2", "case-1", model.TierBusinessRecords)

	factsA := []model.AtomicFact{{
		ID: "f-1", EvidenceID: "ev-1", FactType: model.FactLocation,
		Content: "123 Main St", Context: "delivery made to 123 Main St",
	}}
	factsB := []model.AtomicFact{{
		ID: "f-2", EvidenceID: "ev-2", FactType: model.FactLocation,
		Content: "123 Main Street", Context: "delivery made to 123 Main Street",
	}}

	if results := d.Detect(evA, evB, factsA, factsB); len(results) != 0 {
		t.Errorf("Detect() = %+v, want none (St and Street normalize together)", results)
	}
}

func TestDetector_Detect_MetadataTrustDivergence(t *testing.T) {
	d := NewDetector(0)
	evA := testEvidence("ev-1", "case-1", model.TierGovernment)
	evB := testEvidence("ev-2", "case-1", model.TierGovernment)
	evA.TrustScore = 0.92
	evB.TrustScore = 0.40

	results := d.Detect(evA, evB, nil, nil)
	if len(results) != 1 {
		t.Fatalf("Detect() returned %d contradictions, want 1: %+v", len(results), results)
	}
	if results[0].Type != model.ContradictionMetadata {
		t.Errorf("Type = %q, want %q", results[0].Type, model.ContradictionMetadata)
	}
	if results[0].Severity != model.SeverityMedium {
		t.Errorf("Severity = %q, want %q", results[0].Severity, model.SeverityMedium)
	}
}

func TestDetector_Detect_MetadataRapidSubmission(t *testing.T) {
	d := NewDetector(0)
	evA := testEvidence("ev-1", "case-1", model.TierGovernment)
	evB := testEvidence("ev-2", "case-1", model.TierBusinessRecords)
	evA.UploadedBy = "clerk-7"
	evB.UploadedBy = "clerk-7"
	evB.UploadedAt = evA.UploadedAt.Add(25 * time.Minute)

	results := d.Detect(evA, evB, nil, nil)
	if len(results) != 1 {
		t.Fatalf("Detect() returned %d contradictions, want 1: %+v", len(results), results)
	}
	if results[0].Type != model.ContradictionMetadata {
		t.Errorf("Type = %q, want %q", results[0].Type, model.ContradictionMetadata)
	}
	if results[0].Severity != model.SeverityHigh {
		t.Errorf("Severity = %q, want %q", results[0].Severity, model.SeverityHigh)
	}
}

func TestDetector_Detect_Symmetric(t *testing.T) {
	d := NewDetector(0)
	evA := testEvidence("ev-1", "case-1", model.TierGovernment)
	evB := testEvidence("ev-2", "case-1", model.TierFinancialInstitution)

	factsA := []model.AtomicFact{
		dateFact("ev-1", "03/15/2024", "payment was received on 03/15/2024"),
		amountFact("ev-1", "$1,000.00", "invoice amount of $1,000.00"),
	}
	factsB := []model.AtomicFact{
		dateFact("ev-2", "03/25/2024", "the payment cleared on 03/25/2024"),
		amountFact("ev-2", "$1,600.00", "invoice amount of $1,600.00"),
	}

	forward := d.Detect(evA, evB, factsA, factsB)
	reverse := d.Detect(evB, evA, factsB, factsA)
	if len(forward) == 0 {
		t.Fatal("Detect() found nothing, expected contradictions")
	}
	if len(forward) != len(reverse) {
		t.Fatalf("asymmetric result count: %d vs %d", len(forward), len(reverse))
	}

	for i := range reverse {
		reverse[i].Evidence1ID, reverse[i].Evidence2ID = reverse[i].Evidence2ID, reverse[i].Evidence1ID
		reverse[i].DetectedAt = forward[i].DetectedAt
	}
	if !reflect.DeepEqual(forward, reverse) {
		t.Errorf("results differ beyond swapped ids:\nforward: %+v\nreverse: %+v", forward, reverse)
	}
}

func TestDetector_Detect_ConfidenceFloor(t *testing.T) {
	d := NewDetector(0.8)
	evA := testEvidence("ev-1", "case-1", model.TierGovernment)
	evB := testEvidence("ev-2", "case-1", model.TierBusinessRecords)

	// 20% apart: medium severity numerical at confidence 0.75, below the floor.
	factsA := []model.AtomicFact{amountFact("ev-1", "$1,000.00", "payment of $1,000.00")}
	factsB := []model.AtomicFact{amountFact("ev-2", "$1,200.00", "payment of $1,200.00")}

	if results := d.Detect(evA, evB, factsA, factsB); len(results) != 0 {
		t.Errorf("Detect() = %+v, want none below the 0.8 floor", results)
	}
}

func TestDetector_Detect_GuardsDegenerateInput(t *testing.T) {
	d := NewDetector(0)
	ev := testEvidence("ev-1", "case-1", model.TierGovernment)

	if results := d.Detect(nil, ev, nil, nil); results != nil {
		t.Errorf("Detect(nil, ev) = %+v, want nil", results)
	}
	if results := d.Detect(ev, ev, nil, nil); results != nil {
		t.Errorf("Detect(ev, ev) = %+v, want nil", results)
	}
}
