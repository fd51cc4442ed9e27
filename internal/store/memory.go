package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/probatio/probatio/internal/model"
)

const (
	evidencePrefix      = "evidence:"
	custodyPrefix       = "custody:"
	factsPrefix         = "facts:"
	contradictionPrefix = "contradiction:"
)

// MemoryStore is the in-memory Store used by the CLI. Records live in a
// go-cache instance; individual cache operations are already thread-safe,
// but read-modify-write sequences (slice appends, artifact numbering) are
// serialized by the store's own mutex.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration

	mu           sync.Mutex
	nextArtifact int
}

// NewMemoryStore creates a store. ttl of zero means records never expire.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}

	return &MemoryStore{
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// NewMemoryStoreFromConfig builds a store from the store section of the
// configuration.
func NewMemoryStoreFromConfig(cfg model.StoreConfig) *MemoryStore {
	return NewMemoryStore(
		time.Duration(cfg.TTLMinutes)*time.Minute,
		time.Duration(cfg.CleanupMinutes)*time.Minute,
	)
}

// CreateEvidence persists a new record, assigning an id and the next
// sequential artifact code when the caller left them empty.
func (s *MemoryStore) CreateEvidence(ev *model.Evidence) (*model.Evidence, error) {
	if ev == nil {
		return nil, model.NewValidationError("evidence is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *ev
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.ArtifactCode == "" {
		s.nextArtifact++
		stored.ArtifactCode = fmt.Sprintf("ART-%05d", s.nextArtifact)
	}
	if stored.UploadedAt.IsZero() {
		stored.UploadedAt = time.Now()
	}

	if _, found := s.cache.Get(evidencePrefix + stored.ID); found {
		return nil, model.NewValidationError("evidence %s already exists", stored.ID)
	}
	s.cache.Set(evidencePrefix+stored.ID, stored, s.ttl)

	out := stored
	return &out, nil
}

// GetEvidence returns a copy of the stored record.
func (s *MemoryStore) GetEvidence(id string) (*model.Evidence, error) {
	val, found := s.cache.Get(evidencePrefix + id)
	if !found {
		return nil, model.NewNotFoundError("evidence %s not found", id)
	}
	ev := val.(model.Evidence)
	return &ev, nil
}

// UpdateEvidence applies mutate under the store lock.
func (s *MemoryStore) UpdateEvidence(id string, mutate func(*model.Evidence) error) (*model.Evidence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, found := s.cache.Get(evidencePrefix + id)
	if !found {
		return nil, model.NewNotFoundError("evidence %s not found", id)
	}

	ev := val.(model.Evidence)
	if err := mutate(&ev); err != nil {
		return nil, err
	}
	ev.ID = id // the id is not updatable
	s.cache.Set(evidencePrefix+id, ev, s.ttl)

	out := ev
	return &out, nil
}

// ListEvidenceByCase returns all evidence for a case, ordered by artifact
// code so sweeps enumerate pairs deterministically.
func (s *MemoryStore) ListEvidenceByCase(caseID string) ([]model.Evidence, error) {
	var out []model.Evidence
	for key, item := range s.cache.Items() {
		if !strings.HasPrefix(key, evidencePrefix) {
			continue
		}
		ev := item.Object.(model.Evidence)
		if ev.CaseID == caseID {
			out = append(out, ev)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ArtifactCode < out[j].ArtifactCode })
	return out, nil
}

// AppendCustodyEntry appends to the referenced item's chain. The chain is
// append-only; there is no update or delete.
func (s *MemoryStore) AppendCustodyEntry(entry *model.CustodyEntry) (*model.CustodyEntry, error) {
	if entry == nil || entry.EvidenceID == "" {
		return nil, model.NewValidationError("custody entry missing evidence id")
	}
	if _, found := s.cache.Get(evidencePrefix + entry.EvidenceID); !found {
		return nil, model.NewNotFoundError("evidence %s not found", entry.EvidenceID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *entry
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now()
	}

	key := custodyPrefix + stored.EvidenceID
	var chain []model.CustodyEntry
	if val, found := s.cache.Get(key); found {
		chain = val.([]model.CustodyEntry)
	}
	chain = append(chain, stored)
	s.cache.Set(key, chain, s.ttl)

	out := stored
	return &out, nil
}

// GetChainOfCustody returns the item's custody entries in append order.
func (s *MemoryStore) GetChainOfCustody(evidenceID string) ([]model.CustodyEntry, error) {
	val, found := s.cache.Get(custodyPrefix + evidenceID)
	if !found {
		return []model.CustodyEntry{}, nil
	}
	chain := val.([]model.CustodyEntry)
	out := make([]model.CustodyEntry, len(chain))
	copy(out, chain)
	return out, nil
}

// CreateFact persists an extracted fact under its evidence id.
func (s *MemoryStore) CreateFact(fact *model.AtomicFact) (*model.AtomicFact, error) {
	if fact == nil || fact.EvidenceID == "" {
		return nil, model.NewValidationError("fact missing evidence id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *fact
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	key := factsPrefix + stored.EvidenceID
	var facts []model.AtomicFact
	if val, found := s.cache.Get(key); found {
		facts = val.([]model.AtomicFact)
	}
	facts = append(facts, stored)
	s.cache.Set(key, facts, s.ttl)

	out := stored
	return &out, nil
}

// GetFactsByEvidence returns the facts recorded for an evidence item.
func (s *MemoryStore) GetFactsByEvidence(evidenceID string) ([]model.AtomicFact, error) {
	val, found := s.cache.Get(factsPrefix + evidenceID)
	if !found {
		return []model.AtomicFact{}, nil
	}
	facts := val.([]model.AtomicFact)
	out := make([]model.AtomicFact, len(facts))
	copy(out, facts)
	return out, nil
}

// CreateContradiction persists a detected contradiction.
func (s *MemoryStore) CreateContradiction(c *model.Contradiction) (*model.Contradiction, error) {
	if c == nil || c.Evidence1ID == "" || c.Evidence2ID == "" {
		return nil, model.NewValidationError("contradiction missing evidence ids")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *c
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.Status == "" {
		stored.Status = model.ContradictionActive
	}
	s.cache.Set(contradictionPrefix+stored.ID, stored, s.ttl)

	out := stored
	return &out, nil
}

// ResolveContradiction marks a stored contradiction resolved.
func (s *MemoryStore) ResolveContradiction(id string) (*model.Contradiction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, found := s.cache.Get(contradictionPrefix + id)
	if !found {
		return nil, model.NewNotFoundError("contradiction %s not found", id)
	}

	c := val.(model.Contradiction)
	if c.Status != model.ContradictionResolved {
		c.Status = model.ContradictionResolved
		now := time.Now()
		c.ResolvedAt = &now
	}
	s.cache.Set(contradictionPrefix+id, c, s.ttl)

	out := c
	return &out, nil
}

// ListContradictions returns stored contradictions, newest first.
func (s *MemoryStore) ListContradictions(activeOnly bool) ([]model.Contradiction, error) {
	var out []model.Contradiction
	for key, item := range s.cache.Items() {
		if !strings.HasPrefix(key, contradictionPrefix) {
			continue
		}
		c := item.Object.(model.Contradiction)
		if activeOnly && c.Status != model.ContradictionActive {
			continue
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DetectedAt.After(out[j].DetectedAt) })
	return out, nil
}
