// Package sweep runs case-wide contradiction sweeps: every pair of
// evidence items in a case is cross-checked by the detector, fanned out
// across a bounded worker pool with optional pacing. The sweeper is the
// component that persists confirmed contradictions and bumps conflict
// counters; the detector itself stays pure.
package sweep

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/probatio/probatio/internal/contradiction"
	"github.com/probatio/probatio/internal/logging"
	"github.com/probatio/probatio/internal/model"
	"github.com/probatio/probatio/internal/store"
)

// Sweeper enumerates and examines evidence pairs for one case.
type Sweeper struct {
	store    store.Store
	detector *contradiction.Detector
	workers  int
	maxPairs int
	limiter  *rate.Limiter // nil when unthrottled
	sink     logging.Sink
}

// NewSweeper creates a sweeper from the sweep section of the configuration.
func NewSweeper(st store.Store, det *contradiction.Detector, cfg model.SweepConfig, sink logging.Sink) *Sweeper {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	if sink == nil {
		sink = logging.Discard
	}

	var limiter *rate.Limiter
	if cfg.PairsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 5
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.PairsPerSecond), burst)
	}

	return &Sweeper{
		store:    st,
		detector: det,
		workers:  workers,
		maxPairs: cfg.MaxPairs,
		limiter:  limiter,
		sink:     sink,
	}
}

type pair struct {
	a, b int
}

// SweepCase examines all evidence pairs for caseID. Detected contradictions
// are persisted and each one increments the conflict counter on both
// referenced items. Cancellation stops feeding new pairs but lets in-flight
// comparisons finish; the report marks the sweep as cancelled.
func (s *Sweeper) SweepCase(ctx context.Context, caseID string) (*model.SweepReport, error) {
	if caseID == "" {
		return nil, model.NewValidationError("case id is required")
	}

	report := &model.SweepReport{
		CaseID:     caseID,
		StartedAt:  time.Now(),
		Disclaimer: model.Disclaimer,
	}

	items, err := s.store.ListEvidenceByCase(caseID)
	if err != nil {
		return nil, err
	}
	report.EvidenceCount = len(items)

	facts := make([][]model.AtomicFact, len(items))
	for i := range items {
		f, err := s.store.GetFactsByEvidence(items[i].ID)
		if err != nil {
			return nil, err
		}
		facts[i] = f
	}

	pairs := enumeratePairs(len(items))
	report.PairsTotal = len(pairs)
	if s.maxPairs > 0 && len(pairs) > s.maxPairs {
		pairs = pairs[:s.maxPairs]
		report.Truncated = true
	}

	var (
		mu       sync.Mutex
		found    []model.Contradiction
		examined int
	)

	jobs := make(chan pair)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				if s.limiter != nil {
					if err := s.limiter.Wait(ctx); err != nil {
						return
					}
				}
				got := s.detector.Detect(&items[p.a], &items[p.b], facts[p.a], facts[p.b])

				mu.Lock()
				examined++
				found = append(found, got...)
				mu.Unlock()
			}
		}()
	}

feed:
	for _, p := range pairs {
		select {
		case <-ctx.Done():
			report.Cancelled = true
			break feed
		case jobs <- p:
		}
	}
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		report.Cancelled = true
	}

	// A fixed ordering keeps reports reproducible regardless of which
	// worker finished first.
	sort.Slice(found, func(i, j int) bool {
		if found[i].Evidence1ID != found[j].Evidence1ID {
			return found[i].Evidence1ID < found[j].Evidence1ID
		}
		if found[i].Evidence2ID != found[j].Evidence2ID {
			return found[i].Evidence2ID < found[j].Evidence2ID
		}
		return found[i].Type < found[j].Type
	})

	persisted := make([]model.Contradiction, 0, len(found))
	touched := make(map[string]bool)
	for i := range found {
		stored, err := s.store.CreateContradiction(&found[i])
		if err != nil {
			return nil, err
		}
		persisted = append(persisted, *stored)
		touched[stored.Evidence1ID] = true
		touched[stored.Evidence2ID] = true
	}

	ids := make([]string, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	if err := SyncConflictCounts(s.store, ids...); err != nil {
		return nil, err
	}

	report.PairsExamined = examined
	report.Contradictions = persisted
	report.CompletedAt = time.Now()

	s.sink.Log(logging.LevelInfo, "case sweep complete", map[string]any{
		"case_id":        caseID,
		"evidence":       report.EvidenceCount,
		"pairs_total":    report.PairsTotal,
		"pairs_examined": report.PairsExamined,
		"contradictions": len(report.Contradictions),
		"truncated":      report.Truncated,
		"cancelled":      report.Cancelled,
	})

	return report, nil
}

// SyncConflictCounts restores the invariant that an item's conflict
// counter equals the number of active contradictions referencing it. The
// counters are recomputed from the contradiction store rather than
// incremented blindly, so recording and resolving both converge.
func SyncConflictCounts(st store.Store, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	active, err := st.ListContradictions(true)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, c := range active {
		counts[c.Evidence1ID]++
		counts[c.Evidence2ID]++
	}

	for _, id := range ids {
		want := counts[id]
		if _, err := st.UpdateEvidence(id, func(ev *model.Evidence) error {
			ev.ConflictCount = want
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// enumeratePairs lists all unordered index pairs in lexicographic order.
func enumeratePairs(n int) []pair {
	if n < 2 {
		return nil
	}
	pairs := make([]pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, pair{a: i, b: j})
		}
	}
	return pairs
}
