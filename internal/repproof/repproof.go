// Package repproof implements the Simple scheme's representation
// Σ-protocol: a Fiat–Shamir proof of knowledge of (alpha, beta) such that
// C = alpha*G + beta*H.
package repproof

import (
	"errors"

	"github.com/rawblock/revelio-por/internal/curve"
)

// Proof is the tuple (c, s1, s2) from spec.md §4.3.
type Proof struct {
	C, S1, S2 *curve.Scalar
}

// Prove produces a non-interactive representation proof for C = alpha*G +
// beta*H, where beta is encoded via curve.ScalarFromU64 (so beta must be
// nonzero — callers aggregating a Simple-scheme own_list always pass a
// positive total).
func Prove(gens *curve.Generators, output *curve.Point, alpha *curve.Scalar, beta uint64) (*Proof, error) {
	betaScalar, err := curve.ScalarFromU64(beta)
	if err != nil {
		return nil, err
	}

	r1 := curve.ScalarRand()
	r2 := curve.ScalarRand()

	v := curve.PointAdd(curve.ScalarBaseMult(r1), curve.PointMul(gens.H, r2))

	c := curve.HashToScalar(
		curve.CompressBytes(gens.G),
		curve.CompressBytes(gens.H),
		curve.CompressBytes(output),
		curve.CompressBytes(v),
	)

	s1 := curve.ScalarAdd(r1, curve.ScalarMul(curve.ScalarNeg(c), alpha))
	s2 := curve.ScalarAdd(r2, curve.ScalarMul(curve.ScalarNeg(c), betaScalar))

	return &Proof{C: c, S1: s1, S2: s2}, nil
}

// Verify recomputes V' = s1*G + s2*H + c*C and accepts iff c matches the
// Fiat–Shamir hash of the recomputed transcript (spec.md §4.3).
func Verify(gens *curve.Generators, output *curve.Point, p *Proof) bool {
	v := curve.PointAdd(
		curve.PointAdd(curve.ScalarBaseMult(p.S1), curve.PointMul(gens.H, p.S2)),
		curve.PointMul(output, p.C),
	)

	want := curve.HashToScalar(
		curve.CompressBytes(gens.G),
		curve.CompressBytes(gens.H),
		curve.CompressBytes(output),
		curve.CompressBytes(v),
	)

	return p.C.Equal(want)
}

// ErrEmptyOwnList is a contract violation: the Simple scheme requires at
// least one owned output (spec.md §4.5, §7).
var ErrEmptyOwnList = errors.New("repproof: own_list must not be empty")

// AggregateOutputs sums a Simple scheme's own_list by point addition,
// producing the single commitment the representation proof is given over
// (spec.md §4.3 "Simple scheme orchestration").
func AggregateOutputs(outputs []*curve.Point) (*curve.Point, error) {
	if len(outputs) == 0 {
		return nil, ErrEmptyOwnList
	}
	return curve.PointAddMany(outputs)
}
