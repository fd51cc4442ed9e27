package service

import (
	"github.com/probatio/probatio/internal/logging"
	"github.com/probatio/probatio/internal/minting"
	"github.com/probatio/probatio/internal/model"
	"github.com/probatio/probatio/internal/verify"
)

// IntakeRequest describes a new artifact entering the system.
type IntakeRequest struct {
	CaseID      string
	Tier        model.EvidenceTier
	Description string
	ContentType string
	Location    string
	UploadedBy  string
	Content     []byte
}

// Intake registers a new evidence item: the tier fixes the original trust
// score, decay starts immediately, and the content digest is recorded in
// the opening custody entry.
func (s *Service) Intake(req IntakeRequest) (*model.Evidence, error) {
	if req.CaseID == "" {
		return nil, model.NewValidationError("case id is required")
	}
	if req.UploadedBy == "" {
		return nil, model.NewValidationError("uploader is required")
	}

	base, err := s.calc.BaseScore(req.Tier)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ev, err := s.store.CreateEvidence(&model.Evidence{
		CaseID:               req.CaseID,
		Tier:                 req.Tier,
		Description:          req.Description,
		ContentType:          req.ContentType,
		Location:             req.Location,
		UploadedBy:           req.UploadedBy,
		Status:               model.StatusPending,
		UploadedAt:           now,
		OriginalTrustScore:   base,
		TrustScore:           base,
		TrustDegradationRate: s.calc.DefaultRate(),
		LastTrustUpdate:      now,
	})
	if err != nil {
		return nil, err
	}

	_, err = s.store.AppendCustodyEntry(&model.CustodyEntry{
		EvidenceID:  ev.ID,
		Action:      model.ActionUploaded,
		PerformedBy: req.UploadedBy,
		Timestamp:   now,
		Location:    req.Location,
		HashAfter:   verify.HashContent(req.Content),
	})
	if err != nil {
		return nil, err
	}

	s.sink.Log(logging.LevelInfo, "evidence intake", map[string]any{
		"evidence_id":   ev.ID,
		"artifact_code": ev.ArtifactCode,
		"case_id":       ev.CaseID,
		"tier":          string(ev.Tier),
		"trust_score":   formatScore(ev.TrustScore),
	})
	return ev, nil
}

// recordedContentHash returns the newest custody digest for an item, or ""
// when no entry carries one.
func recordedContentHash(chain []model.CustodyEntry) string {
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].HashAfter != "" {
			return chain[i].HashAfter
		}
	}
	return ""
}

// Verify checks the supplied content against the item's recorded digest
// and, on success, moves the item to VERIFIED. Unlike the advisory scoring
// endpoints, a missing item here is a hard failure.
func (s *Service) Verify(evidenceID string, content []byte, performedBy string) (*model.Evidence, error) {
	ev, err := s.store.GetEvidence(evidenceID)
	if err != nil {
		return nil, err
	}
	if ev.IsMinted() {
		return nil, model.NewValidationError("evidence %s is already minted", evidenceID)
	}

	chain, err := s.store.GetChainOfCustody(evidenceID)
	if err != nil {
		return nil, err
	}
	recorded := recordedContentHash(chain)

	result := s.verifier.VerifyOne(verify.Item{
		Evidence:     ev,
		Content:      content,
		RecordedHash: recorded,
	})
	if !result.Valid && !result.Skipped {
		return nil, model.NewValidationError("content hash %s does not match recorded hash %s",
			result.ComputedHash, result.RecordedHash)
	}

	now := s.now()
	updated, err := s.store.UpdateEvidence(evidenceID, func(e *model.Evidence) error {
		e.Status = model.StatusVerified
		e.VerifiedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = s.store.AppendCustodyEntry(&model.CustodyEntry{
		EvidenceID:  evidenceID,
		Action:      model.ActionVerified,
		PerformedBy: performedBy,
		Timestamp:   now,
		HashBefore:  recorded,
		HashAfter:   result.ComputedHash,
	})
	if err != nil {
		return nil, err
	}

	s.sink.Log(logging.LevelInfo, "evidence verified", map[string]any{
		"evidence_id": evidenceID,
		"hash":        result.ComputedHash,
	})
	return updated, nil
}

// Mint permanently archives an eligible item: the externally supplied
// block number and anchor hash are recorded, the trust score is frozen at
// its current value, decay stops, and the Bayesian posterior at minting
// time is cached on the record. Minting is refused, not merely logged,
// when the item falls short of the eligibility threshold.
func (s *Service) Mint(evidenceID, blockNumber, hashValue, performedBy string) (*model.Evidence, error) {
	if blockNumber == "" {
		return nil, model.NewValidationError("block number is required for minting")
	}
	if hashValue == "" {
		return nil, model.NewValidationError("hash value is required for minting")
	}

	ev, err := s.store.GetEvidence(evidenceID)
	if err != nil {
		return nil, err
	}
	if ev.IsMinted() {
		return nil, model.NewValidationError("evidence %s is already minted", evidenceID)
	}

	chain, err := s.store.GetChainOfCustody(evidenceID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	res, err := s.scorer.Evaluate(ev, len(chain), now)
	if err != nil {
		return nil, err
	}
	if !res.Eligible {
		return nil, model.NewValidationError("minting refused: eligibility score %s is below the %s threshold",
			formatScore(res.Score), formatScore(minting.Threshold))
	}

	frozen, err := s.calc.CurrentScore(ev, now)
	if err != nil {
		return nil, err
	}

	assessment, err := s.assessor.Assess(ev, chain, nil, now)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateEvidence(evidenceID, func(e *model.Evidence) error {
		e.Status = model.StatusMinted
		e.MintedAt = &now
		e.BlockNumber = blockNumber
		e.HashValue = hashValue
		e.TrustScore = frozen
		e.TrustDegradationRate = 0
		e.LastTrustUpdate = now
		e.MintingEligible = true
		e.MintingScore = res.Score
		e.ScientificTrustScore = assessment.FinalScore
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = s.store.AppendCustodyEntry(&model.CustodyEntry{
		EvidenceID:  evidenceID,
		Action:      model.ActionMinted,
		PerformedBy: performedBy,
		Timestamp:   now,
		Notes:       "block " + blockNumber,
		HashAfter:   hashValue,
	})
	if err != nil {
		return nil, err
	}

	s.sink.Log(logging.LevelInfo, "evidence minted", map[string]any{
		"evidence_id":  evidenceID,
		"block_number": blockNumber,
		"trust_score":  formatScore(frozen),
		"mint_score":   formatScore(res.Score),
	})
	return updated, nil
}
