// Package verify computes and checks content digests for evidence
// artifacts. Verification never mutates evidence; it reports whether the
// supplied content still matches the hash recorded at intake.
package verify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/probatio/probatio/internal/logging"
	"github.com/probatio/probatio/internal/model"
)

// Item pairs an evidence record with the raw content to check against a
// recorded hash. RecordedHash normally comes from the item's chain of
// custody; when empty, the minting anchor hash on the evidence record is
// used instead.
type Item struct {
	Evidence     *model.Evidence
	Content      []byte
	RecordedHash string
}

// Result is the outcome of one hash check.
type Result struct {
	EvidenceID   string `json:"evidenceId"`
	ComputedHash string `json:"computedHash"`
	RecordedHash string `json:"recordedHash"`
	Valid        bool   `json:"valid"`   // computed == recorded
	Skipped      bool   `json:"skipped"` // no recorded hash to compare against
	Error        string `json:"error,omitempty"`
}

// Verifier checks artifact hashes, fanning batches out across a bounded
// number of goroutines.
type Verifier struct {
	maxWorkers int
	sink       logging.Sink
}

// NewVerifier creates a verifier. Non-positive maxWorkers falls back to 8.
func NewVerifier(maxWorkers int, sink logging.Sink) *Verifier {
	if maxWorkers <= 0 {
		maxWorkers = 8
	}
	if sink == nil {
		sink = logging.Discard
	}
	return &Verifier{maxWorkers: maxWorkers, sink: sink}
}

// HashContent returns the hex-encoded SHA-256 digest of content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// VerifyOne checks a single item.
func (v *Verifier) VerifyOne(item Item) Result {
	if item.Evidence == nil || item.Evidence.ID == "" {
		return Result{Error: "evidence missing or has no id"}
	}

	recorded := item.RecordedHash
	if recorded == "" {
		recorded = item.Evidence.HashValue
	}

	r := Result{
		EvidenceID:   item.Evidence.ID,
		ComputedHash: HashContent(item.Content),
		RecordedHash: recorded,
	}
	if r.RecordedHash == "" {
		r.Skipped = true
		return r
	}
	r.Valid = r.ComputedHash == r.RecordedHash
	if !r.Valid {
		v.sink.Log(logging.LevelWarn, "hash mismatch", map[string]any{
			"evidence_id": r.EvidenceID,
			"computed":    r.ComputedHash,
			"recorded":    r.RecordedHash,
		})
	}
	return r
}

// Verify checks all items concurrently. Results are positional: results[i]
// corresponds to items[i]. Cancellation marks unstarted items with an error
// instead of aborting the batch.
func (v *Verifier) Verify(ctx context.Context, items []Item) []Result {
	if len(items) == 0 {
		return []Result{}
	}

	results := make([]Result, len(items))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, v.maxWorkers)

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it Item) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				id := ""
				if it.Evidence != nil {
					id = it.Evidence.ID
				}
				results[idx] = Result{EvidenceID: id, Error: "context cancelled"}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = v.VerifyOne(it)
		}(i, item)
	}

	wg.Wait()

	return results
}
