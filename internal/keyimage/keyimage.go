// Package keyimage computes the key image that binds a Revelio OR-proof to
// an anonymity-set entry without revealing whether that entry is owned.
package keyimage

import "github.com/rawblock/revelio-por/internal/curve"

// Create computes I = alpha*G' when beta == 0, or I = alpha*G' + beta*H
// otherwise (spec.md §4.2). The beta == 0 short-circuit avoids ever running
// beta through curve.ScalarFromU64, which rejects zero — a decoy key image
// built directly from a secret gamma (I = gamma*G') must match exactly,
// with no H term at all.
func Create(gens *curve.Generators, beta uint64, alpha *curve.Scalar) *curve.Point {
	blindGprime := curve.PointMul(gens.Gprime, alpha)
	if beta == 0 {
		return blindGprime
	}
	betaScalar, _ := curve.ScalarFromU64(beta) // beta != 0 here, never errors
	amountH := curve.PointMul(gens.H, betaScalar)
	return curve.PointAdd(blindGprime, amountH)
}
