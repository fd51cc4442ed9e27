package model

import "time"

// FactType categorizes the nature of an extracted assertion
type FactType string

const (
	FactAmount       FactType = "AMOUNT"        // Monetary amounts
	FactPercentage   FactType = "PERCENTAGE"    // Percentage figures
	FactDate         FactType = "DATE"          // Calendar dates
	FactPerson       FactType = "PERSON"        // Named individuals
	FactLocation     FactType = "LOCATION"      // Addresses and places
	FactStatement    FactType = "STATEMENT"     // Declarative factual sentences
	FactAccount      FactType = "ACCOUNT"       // Account numbers
	FactTransaction  FactType = "TRANSACTION"   // Transaction references
	FactCaseNumber   FactType = "CASE_NUMBER"   // Court or agency case numbers
	FactContractTerm FactType = "CONTRACT_TERM" // Contract and agreement clauses
)

// AtomicFact represents a single typed assertion extracted from evidence
// content. Facts are created by extraction and never mutated afterwards,
// except for an optional human verification stamp.
type AtomicFact struct {
	ID              string     `json:"id"`
	EvidenceID      string     `json:"evidence_id"`
	FactType        FactType   `json:"fact_type"`
	Content         string     `json:"content"`                // Normalized matched text
	ConfidenceScore float64    `json:"confidence_score"`       // [0,1]
	Context         string     `json:"context,omitempty"`      // Surrounding text window
	Source          string     `json:"source,omitempty"`       // Which extraction rule matched, e.g. "pattern:currency"
	ExtractedAt     time.Time  `json:"extracted_at"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"` // Set by a human reviewer
}
