// Package store defines the persistence collaborator the scoring core
// talks to, plus an in-memory implementation suitable for the CLI and for
// tests. The core only ever sees this interface; swapping in a relational
// store is a host concern.
package store

import "github.com/probatio/probatio/internal/model"

// Store is the narrow persistence surface the core consumes. All methods
// return copies; mutating a returned record never changes stored state.
type Store interface {
	// CreateEvidence assigns an id and a sequential artifact code when
	// absent, then persists the record.
	CreateEvidence(ev *model.Evidence) (*model.Evidence, error)
	GetEvidence(id string) (*model.Evidence, error)
	// UpdateEvidence applies mutate to the stored record under the store's
	// lock and persists the result. mutate returning an error aborts the
	// update.
	UpdateEvidence(id string, mutate func(*model.Evidence) error) (*model.Evidence, error)
	ListEvidenceByCase(caseID string) ([]model.Evidence, error)

	AppendCustodyEntry(entry *model.CustodyEntry) (*model.CustodyEntry, error)
	GetChainOfCustody(evidenceID string) ([]model.CustodyEntry, error)

	CreateFact(fact *model.AtomicFact) (*model.AtomicFact, error)
	GetFactsByEvidence(evidenceID string) ([]model.AtomicFact, error)

	CreateContradiction(c *model.Contradiction) (*model.Contradiction, error)
	// ResolveContradiction marks a contradiction resolved; resolved
	// conflicts no longer count against the referenced items.
	ResolveContradiction(id string) (*model.Contradiction, error)
	ListContradictions(activeOnly bool) ([]model.Contradiction, error)
}
