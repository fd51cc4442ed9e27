package model

import "time"

// ContradictionType classifies the nature of a detected conflict
type ContradictionType string

const (
	ContradictionTemporal  ContradictionType = "temporal"  // Same event, incompatible dates
	ContradictionFactual   ContradictionType = "factual"   // Directly opposing statements
	ContradictionNumerical ContradictionType = "numerical" // Same transaction, diverging amounts
	ContradictionIdentity  ContradictionType = "identity"  // Conflicting person roles
	ContradictionLocation  ContradictionType = "location"  // Same event, incompatible places
	ContradictionLogical   ContradictionType = "logical"   // Physical or causal impossibility
	ContradictionMetadata  ContradictionType = "metadata"  // Suspicious evidence metadata patterns
)

// Severity ranks how damaging a contradiction is
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ContradictionStatus tracks whether a conflict is still unresolved
type ContradictionStatus string

const (
	ContradictionActive   ContradictionStatus = "active"
	ContradictionResolved ContradictionStatus = "resolved"
)

// Contradiction represents a detected conflict between two evidence items.
// Detection for (A,B) and (B,A) yields the same result with swapped ids.
type Contradiction struct {
	ID          string              `json:"id,omitempty"`
	Type        ContradictionType   `json:"type"`
	Severity    Severity            `json:"severity"`
	Description string              `json:"description"`
	Confidence  float64             `json:"confidence"` // [0,1], detector's certainty
	Evidence1ID string              `json:"evidence1_id"`
	Evidence2ID string              `json:"evidence2_id"`
	Status      ContradictionStatus `json:"status"`
	DetectedAt  time.Time           `json:"detected_at"`
	ResolvedAt  *time.Time          `json:"resolved_at,omitempty"`
	Metadata    map[string]any      `json:"metadata,omitempty"` // Transparent detection data (inputs, gaps, formulas)
}

// References reports whether the contradiction touches the given evidence id.
func (c *Contradiction) References(evidenceID string) bool {
	return c.Evidence1ID == evidenceID || c.Evidence2ID == evidenceID
}
