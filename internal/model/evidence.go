package model

import "time"

// EvidenceTier classifies an artifact's inherent provenance reliability
type EvidenceTier string

const (
	TierSelfAuthenticating   EvidenceTier = "SELF_AUTHENTICATING"     // Notarized, sealed, or self-proving documents
	TierGovernment           EvidenceTier = "GOVERNMENT"              // Court records, agency filings
	TierFinancialInstitution EvidenceTier = "FINANCIAL_INSTITUTION"   // Bank statements, processor records
	TierIndependentThird     EvidenceTier = "INDEPENDENT_THIRD_PARTY" // Disinterested third-party records
	TierBusinessRecords      EvidenceTier = "BUSINESS_RECORDS"        // Records kept in the ordinary course of business
	TierFirstPartyAdverse    EvidenceTier = "FIRST_PARTY_ADVERSE"     // Party admissions against interest
	TierFirstPartyFriendly   EvidenceTier = "FIRST_PARTY_FRIENDLY"    // Self-serving party statements
	TierUncorroboratedPerson EvidenceTier = "UNCORROBORATED_PERSON"   // Unsupported personal testimony
)

// Tiers lists all evidence tiers in decreasing order of inherent reliability.
var Tiers = []EvidenceTier{
	TierSelfAuthenticating,
	TierGovernment,
	TierFinancialInstitution,
	TierIndependentThird,
	TierBusinessRecords,
	TierFirstPartyAdverse,
	TierFirstPartyFriendly,
	TierUncorroboratedPerson,
}

// tierProfile holds every per-tier constant in one row so that adding a tier
// forces updating every table at once.
type tierProfile struct {
	BaseScore          float64 // initial trust score, [0.20, 0.99]
	MintWeight         float64 // source axis points for minting eligibility, [0, 20]
	Prior              float64 // Bayesian prior probability of reliability
	Authenticity       float64 // authenticity quality metric constant
	AdmissibilityBonus float64 // tier contribution to the admissibility metric
}

var tierProfiles = map[EvidenceTier]tierProfile{
	TierSelfAuthenticating:   {BaseScore: 0.99, MintWeight: 20, Prior: 0.95, Authenticity: 0.98, AdmissibilityBonus: 0.30},
	TierGovernment:           {BaseScore: 0.95, MintWeight: 18, Prior: 0.90, Authenticity: 0.95, AdmissibilityBonus: 0.28},
	TierFinancialInstitution: {BaseScore: 0.90, MintWeight: 16, Prior: 0.85, Authenticity: 0.92, AdmissibilityBonus: 0.25},
	TierIndependentThird:     {BaseScore: 0.85, MintWeight: 14, Prior: 0.80, Authenticity: 0.88, AdmissibilityBonus: 0.22},
	TierBusinessRecords:      {BaseScore: 0.75, MintWeight: 10, Prior: 0.70, Authenticity: 0.80, AdmissibilityBonus: 0.18},
	TierFirstPartyAdverse:    {BaseScore: 0.60, MintWeight: 6, Prior: 0.55, Authenticity: 0.65, AdmissibilityBonus: 0.12},
	TierFirstPartyFriendly:   {BaseScore: 0.40, MintWeight: 3, Prior: 0.40, Authenticity: 0.50, AdmissibilityBonus: 0.08},
	TierUncorroboratedPerson: {BaseScore: 0.20, MintWeight: 0, Prior: 0.25, Authenticity: 0.30, AdmissibilityBonus: 0.00},
}

// profileFor returns the constant table row for a tier. Every tier named in
// Tiers has a row; anything else is a data-model mismatch.
func profileFor(tier EvidenceTier) (tierProfile, error) {
	p, ok := tierProfiles[tier]
	if !ok {
		return tierProfile{}, NewConfigurationError("unknown evidence tier: %q", tier)
	}
	return p, nil
}

// BaseScore returns the tier's creation-time trust score.
func (t EvidenceTier) BaseScore() (float64, error) {
	p, err := profileFor(t)
	if err != nil {
		return 0, err
	}
	return p.BaseScore, nil
}

// MintWeight returns the tier's source-axis points for minting eligibility.
func (t EvidenceTier) MintWeight() (float64, error) {
	p, err := profileFor(t)
	if err != nil {
		return 0, err
	}
	return p.MintWeight, nil
}

// Prior returns the tier's Bayesian prior probability.
func (t EvidenceTier) Prior() (float64, error) {
	p, err := profileFor(t)
	if err != nil {
		return 0, err
	}
	return p.Prior, nil
}

// Authenticity returns the tier's authenticity quality constant.
func (t EvidenceTier) Authenticity() (float64, error) {
	p, err := profileFor(t)
	if err != nil {
		return 0, err
	}
	return p.Authenticity, nil
}

// AdmissibilityBonus returns the tier's admissibility metric contribution.
func (t EvidenceTier) AdmissibilityBonus() (float64, error) {
	p, err := profileFor(t)
	if err != nil {
		return 0, err
	}
	return p.AdmissibilityBonus, nil
}

// EvidenceStatus tracks the lifecycle of an evidence item
type EvidenceStatus string

const (
	StatusPending               EvidenceStatus = "PENDING"
	StatusVerified              EvidenceStatus = "VERIFIED"
	StatusRequiresCorroboration EvidenceStatus = "REQUIRES_CORROBORATION"
	StatusMinted                EvidenceStatus = "MINTED"
)

// DefaultDegradationRate is the per-hour linear trust decay applied to
// evidence that has not overridden it.
const DefaultDegradationRate = 0.0001

// Evidence represents a forensic artifact and its trust lifecycle state
type Evidence struct {
	ID           string       `json:"id"`
	ArtifactCode string       `json:"artifact_code"` // Human-readable sequential code, e.g. ART-00042
	CaseID       string       `json:"case_id"`
	Tier         EvidenceTier `json:"tier"`
	Description  string       `json:"description,omitempty"`
	ContentType  string       `json:"content_type,omitempty"`
	Location     string       `json:"location,omitempty"` // Where the artifact was collected
	UploadedBy   string       `json:"uploaded_by"`

	Status     EvidenceStatus `json:"status"`
	UploadedAt time.Time      `json:"uploaded_at"`
	VerifiedAt *time.Time     `json:"verified_at,omitempty"`
	MintedAt   *time.Time     `json:"minted_at,omitempty"`

	// Trust fields. OriginalTrustScore is set once at creation from the
	// tier and never changes; TrustScore decays until minting freezes it.
	OriginalTrustScore   float64   `json:"original_trust_score"`
	TrustScore           float64   `json:"trust_score"`
	TrustDegradationRate float64   `json:"trust_degradation_rate"` // per hour; 0 once minted
	LastTrustUpdate      time.Time `json:"last_trust_update"`

	// Set only at minting.
	BlockNumber string `json:"block_number,omitempty"`
	HashValue   string `json:"hash_value,omitempty"`

	// Quality counters maintained by the hosting service.
	CorroborationCount int `json:"corroboration_count"`
	ConflictCount      int `json:"conflict_count"`

	// Cached scoring outputs.
	MintingEligible      bool    `json:"minting_eligible"`
	MintingScore         float64 `json:"minting_score"`          // 0-1
	ScientificTrustScore float64 `json:"scientific_trust_score"` // 0-1, Bayesian posterior
}

// Age returns the elapsed time since the evidence was uploaded.
func (e *Evidence) Age(now time.Time) time.Duration {
	return now.Sub(e.UploadedAt)
}

// IsMinted reports whether the item has been permanently anchored.
func (e *Evidence) IsMinted() bool {
	return e.Status == StatusMinted
}
