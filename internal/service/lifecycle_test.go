package service

import (
	"strings"
	"testing"
	"time"

	"github.com/probatio/probatio/internal/model"
)

func TestService_Intake_SetsTrustLifecycle(t *testing.T) {
	s, st := newTestService(t)

	ev, err := s.Intake(IntakeRequest{
		CaseID:      "case-1",
		Tier:        model.TierFinancialInstitution,
		Description: "bank statement",
		UploadedBy:  "clerk-1",
		Content:     []byte("statement body"),
	})
	if err != nil {
		t.Fatalf("Intake() error: %v", err)
	}

	if ev.Status != model.StatusPending {
		t.Errorf("Status = %q, want PENDING", ev.Status)
	}
	if ev.OriginalTrustScore != 0.90 || ev.TrustScore != 0.90 {
		t.Errorf("trust scores = %v/%v, want 0.90/0.90", ev.OriginalTrustScore, ev.TrustScore)
	}
	if ev.TrustDegradationRate != model.DefaultDegradationRate {
		t.Errorf("TrustDegradationRate = %v, want the default", ev.TrustDegradationRate)
	}
	if !strings.HasPrefix(ev.ArtifactCode, "ART-") {
		t.Errorf("ArtifactCode = %q, want an ART- code", ev.ArtifactCode)
	}

	chain, err := st.GetChainOfCustody(ev.ID)
	if err != nil {
		t.Fatalf("GetChainOfCustody() error: %v", err)
	}
	if len(chain) != 1 || chain[0].Action != model.ActionUploaded {
		t.Fatalf("chain = %+v, want a single UPLOADED entry", chain)
	}
	if chain[0].HashAfter == "" {
		t.Error("intake custody entry is missing the content digest")
	}
}

func TestService_Intake_RequiresCaseAndUploader(t *testing.T) {
	s, _ := newTestService(t)

	if _, err := s.Intake(IntakeRequest{Tier: model.TierGovernment, UploadedBy: "x"}); !model.IsValidation(err) {
		t.Errorf("missing case id: error = %v, want VALIDATION_ERROR", err)
	}
	if _, err := s.Intake(IntakeRequest{Tier: model.TierGovernment, CaseID: "case-1"}); !model.IsValidation(err) {
		t.Errorf("missing uploader: error = %v, want VALIDATION_ERROR", err)
	}
	if _, err := s.Intake(IntakeRequest{Tier: "BAD", CaseID: "case-1", UploadedBy: "x"}); model.CodeOf(err) != model.CodeConfiguration {
		t.Errorf("unknown tier: error = %v, want CONFIGURATION_ERROR", err)
	}
}

func TestService_Verify_MatchingContent(t *testing.T) {
	s, st := newTestService(t)

	content := []byte("invoice 2024-113")
	ev, err := s.Intake(IntakeRequest{
		CaseID: "case-1", Tier: model.TierBusinessRecords, UploadedBy: "clerk-1", Content: content,
	})
	if err != nil {
		t.Fatalf("Intake() error: %v", err)
	}

	verified, err := s.Verify(ev.ID, content, "examiner-1")
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if verified.Status != model.StatusVerified || verified.VerifiedAt == nil {
		t.Errorf("verified = %+v, want VERIFIED with timestamp", verified)
	}

	chain, _ := st.GetChainOfCustody(ev.ID)
	if len(chain) != 2 || chain[1].Action != model.ActionVerified {
		t.Fatalf("chain = %+v, want UPLOADED then VERIFIED", chain)
	}
	if chain[1].HashBefore != chain[0].HashAfter {
		t.Error("verification entry does not link to the intake digest")
	}
}

func TestService_Verify_TamperedContent(t *testing.T) {
	s, _ := newTestService(t)

	ev, err := s.Intake(IntakeRequest{
		CaseID: "case-1", Tier: model.TierBusinessRecords, UploadedBy: "clerk-1",
		Content: []byte("original body"),
	})
	if err != nil {
		t.Fatalf("Intake() error: %v", err)
	}

	_, err = s.Verify(ev.ID, []byte("edited body"), "examiner-1")
	if !model.IsValidation(err) {
		t.Errorf("error = %v, want VALIDATION_ERROR for tampered content", err)
	}
}

func TestService_Verify_MissingEvidenceIsHardFailure(t *testing.T) {
	s, _ := newTestService(t)

	if _, err := s.Verify("missing", []byte("x"), "examiner-1"); !model.IsNotFound(err) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestService_Mint_RequiresBlockAndHash(t *testing.T) {
	s, st := newTestService(t)
	ev := seedStrongEvidence(t, s, st)

	if _, err := s.Mint(ev.ID, "", "0xabc", "registrar-1"); !model.IsValidation(err) {
		t.Errorf("missing block: error = %v, want VALIDATION_ERROR", err)
	}
	if _, err := s.Mint(ev.ID, "8451023", "", "registrar-1"); !model.IsValidation(err) {
		t.Errorf("missing hash: error = %v, want VALIDATION_ERROR", err)
	}
}

func TestService_Mint_RefusedBelowThreshold(t *testing.T) {
	s, _ := newTestService(t)

	ev, err := s.Intake(IntakeRequest{
		CaseID: "case-1", Tier: model.TierUncorroboratedPerson, UploadedBy: "tipster-1",
		Content: []byte("statement"),
	})
	if err != nil {
		t.Fatalf("Intake() error: %v", err)
	}

	_, err = s.Mint(ev.ID, "8451023", "0xabc", "registrar-1")
	if !model.IsValidation(err) {
		t.Fatalf("error = %v, want VALIDATION_ERROR refusal", err)
	}
	if !strings.Contains(err.Error(), "refused") {
		t.Errorf("error = %v, want an explicit refusal", err)
	}
}

func TestService_Mint_FreezesTrustScore(t *testing.T) {
	s, st := newTestService(t)

	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return t0 }
	ev := seedStrongEvidence(t, s, st)

	// Two hours of decay before the mint.
	s.now = func() time.Time { return t0.Add(2 * time.Hour) }
	minted, err := s.Mint(ev.ID, "8451023", "0xabc123", "registrar-1")
	if err != nil {
		t.Fatalf("Mint() error: %v", err)
	}

	if minted.Status != model.StatusMinted || minted.MintedAt == nil {
		t.Errorf("minted = %+v, want MINTED with timestamp", minted)
	}
	if minted.TrustDegradationRate != 0 {
		t.Errorf("TrustDegradationRate = %v, want 0 after minting", minted.TrustDegradationRate)
	}
	if minted.BlockNumber != "8451023" || minted.HashValue != "0xabc123" {
		t.Errorf("anchor = %q/%q, want the supplied block and hash", minted.BlockNumber, minted.HashValue)
	}
	if minted.ScientificTrustScore <= 0 || minted.ScientificTrustScore > 1 {
		t.Errorf("ScientificTrustScore = %v, want the posterior cached at minting", minted.ScientificTrustScore)
	}

	frozen := minted.TrustScore

	// A year later the frozen score is unchanged.
	s.now = func() time.Time { return t0.Add(9000 * time.Hour) }
	stored, _ := st.GetEvidence(ev.ID)
	got, err := s.CurrentTrustScore(stored)
	if err != nil {
		t.Fatalf("CurrentTrustScore() error: %v", err)
	}
	if want := formatScore(frozen); got != want {
		t.Errorf("CurrentTrustScore() = %q after minting, want frozen %q", got, want)
	}

	if _, err := s.Mint(ev.ID, "8451024", "0xdef", "registrar-1"); !model.IsValidation(err) {
		t.Errorf("double mint: error = %v, want VALIDATION_ERROR", err)
	}

	chain, _ := st.GetChainOfCustody(ev.ID)
	last := chain[len(chain)-1]
	if last.Action != model.ActionMinted {
		t.Errorf("last custody action = %q, want MINTED", last.Action)
	}
}

func TestService_ResolveContradiction_RestoresCounters(t *testing.T) {
	s, st := newTestService(t)

	evA, _ := st.CreateEvidence(&model.Evidence{CaseID: "case-1", ConflictCount: 1})
	evB, _ := st.CreateEvidence(&model.Evidence{CaseID: "case-1", ConflictCount: 1})
	c, _ := st.CreateContradiction(&model.Contradiction{
		Evidence1ID: evA.ID, Evidence2ID: evB.ID,
		Type: model.ContradictionNumerical, Status: model.ContradictionActive,
		DetectedAt: time.Now(),
	})

	resolved, err := s.ResolveContradiction(c.ID)
	if err != nil {
		t.Fatalf("ResolveContradiction() error: %v", err)
	}
	if resolved.Status != model.ContradictionResolved {
		t.Errorf("Status = %q, want resolved", resolved.Status)
	}

	for _, id := range []string{evA.ID, evB.ID} {
		ev, _ := st.GetEvidence(id)
		if ev.ConflictCount != 0 {
			t.Errorf("ConflictCount = %d after resolution, want 0", ev.ConflictCount)
		}
	}
}
