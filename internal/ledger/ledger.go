// Package ledger supplies decoy candidates for a Revelio anonymity set. The
// proof scheme never inspects where a decoy commitment came from; this
// package is the seam a production deployment swaps to draw real
// third-party outputs instead of fabricated ones.
package ledger

import (
	"context"
	"sync/atomic"

	"github.com/rawblock/revelio-por/internal/curve"
)

// Candidate is a commitment offered as a decoy anonymity-set entry. Height
// is the synthetic ledger position it was drawn from, surfaced for
// observability only; the proof scheme does not consume it.
type Candidate struct {
	Commitment *curve.Point
	Height     int64
}

// Source fetches decoy candidates for an anonymity set. Implementations
// assert no known discrete-log relation for the commitments they return.
type Source interface {
	FetchDecoyCandidates(ctx context.Context, n int) ([]Candidate, error)
}

// Simulated fabricates decoy commitments as t_i*G for fresh random t_i,
// exactly as spec.md §4.5/§9 describes for the reference simulator. Height
// advances once per batch, grounded on the teacher's BlockScanner
// atomic-counter idiom (internal/scanner/block_scanner.go's currentHeight).
type Simulated struct {
	gens   *curve.Generators
	height atomic.Int64
}

// NewSimulated constructs a decoy source rooted at the given generators.
func NewSimulated(gens *curve.Generators) *Simulated {
	return &Simulated{gens: gens}
}

// FetchDecoyCandidates returns n freshly fabricated decoy commitments. It
// never errors and never blocks; context is accepted for interface
// conformance with a future real ledger adapter.
func (s *Simulated) FetchDecoyCandidates(_ context.Context, n int) ([]Candidate, error) {
	h := s.height.Add(1)
	out := make([]Candidate, n)
	for i := 0; i < n; i++ {
		t := curve.ScalarRand()
		out[i] = Candidate{
			Commitment: curve.ScalarBaseMult(t),
			Height:     h,
		}
	}
	return out, nil
}

// Height reports the current synthetic ledger cursor (thread-safe).
func (s *Simulated) Height() int64 {
	return s.height.Load()
}
