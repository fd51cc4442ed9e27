package model

import "time"

// CustodyAction identifies what happened to an evidence item
type CustodyAction string

const (
	ActionCollected   CustodyAction = "COLLECTED"
	ActionUploaded    CustodyAction = "UPLOADED"
	ActionTransferred CustodyAction = "TRANSFERRED"
	ActionAnalyzed    CustodyAction = "ANALYZED"
	ActionVerified    CustodyAction = "VERIFIED"
	ActionStored      CustodyAction = "STORED"
	ActionAccessed    CustodyAction = "ACCESSED"
	ActionDuplicated  CustodyAction = "DUPLICATED"
	ActionReturned    CustodyAction = "RETURNED"
	ActionMinted      CustodyAction = "MINTED"
	ActionUpdated     CustodyAction = "UPDATED"
)

// CustodyEntry is one append-only audit record in an evidence item's chain
// of custody. Entries for one item are totally ordered by Timestamp and are
// immutable once written.
type CustodyEntry struct {
	ID          string        `json:"id"`
	EvidenceID  string        `json:"evidence_id"`
	Action      CustodyAction `json:"action"`
	PerformedBy string        `json:"performed_by"`
	Timestamp   time.Time     `json:"timestamp"`
	Location    string        `json:"location,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	HashBefore  string        `json:"hash_before,omitempty"`
	HashAfter   string        `json:"hash_after,omitempty"`
}
