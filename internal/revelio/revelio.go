// Package revelio implements the Revelio OR-proof: for each anonymity-set
// entry, a non-interactive proof that either "I know the opening of this
// commitment" (the real branch) or "I know the decoy's key-image discrete
// log" (the decoy branch) — without revealing which.
package revelio

import (
	"errors"

	"github.com/rawblock/revelio-por/internal/curve"
)

// Proof is the five-scalar OR-proof tuple (c1, c2, s1, s2, s3) from
// spec.md §4.4. Exactly one of the two branches it encodes was computed
// honestly; the other was simulated, and nothing in the tuple reveals which.
type Proof struct {
	C1, C2, S1, S2, S3 *curve.Scalar
}

// transcriptChallenge hashes the eight-point transcript in the normative
// order G, G', H, C, I, V1, V2, V3 (spec.md §4.4).
func transcriptChallenge(gens *curve.Generators, output, keyimage, v1, v2, v3 *curve.Point) *curve.Scalar {
	return curve.HashToScalar(
		curve.CompressBytes(gens.G),
		curve.CompressBytes(gens.Gprime),
		curve.CompressBytes(gens.H),
		curve.CompressBytes(output),
		curve.CompressBytes(keyimage),
		curve.CompressBytes(v1),
		curve.CompressBytes(v2),
		curve.CompressBytes(v3),
	)
}

// ProveReal produces an OR-proof for an owned anonymity-set entry: the
// representation branch (output = alpha*G + beta*H, keyimage = alpha*G' +
// beta*H) is proved honestly; the decoy branch is simulated by drawing c2
// and s3 at random and solving for a consistent V3 (spec.md §4.4,
// grounded on original_source's create_spk_from_representation).
func ProveReal(gens *curve.Generators, output, keyimage *curve.Point, alpha *curve.Scalar, beta uint64) (*Proof, error) {
	betaScalar, err := curve.ScalarFromU64(beta)
	if err != nil {
		return nil, err
	}

	r1 := curve.ScalarRand()
	r2 := curve.ScalarRand()
	c2 := curve.ScalarRand()
	s3 := curve.ScalarRand()

	// V1 = r1*G + r2*H
	v1 := curve.PointAdd(curve.ScalarBaseMult(r1), curve.PointMul(gens.H, r2))

	// V2 = r1*G' + r2*H
	v2 := curve.PointAdd(curve.PointMul(gens.Gprime, r1), curve.PointMul(gens.H, r2))

	// V3 = s3*G' + c2*I (decoy branch simulated)
	v3 := curve.PointAdd(curve.PointMul(gens.Gprime, s3), curve.PointMul(keyimage, c2))

	challenge := transcriptChallenge(gens, output, keyimage, v1, v2, v3)

	// c1 = H(...) - c2
	c1 := curve.ScalarSub(challenge, c2)

	// s1 = r1 - c1*alpha, s2 = r2 - c1*beta
	s1 := curve.ScalarAdd(r1, curve.ScalarMul(curve.ScalarNeg(c1), alpha))
	s2 := curve.ScalarAdd(r2, curve.ScalarMul(curve.ScalarNeg(c1), betaScalar))

	return &Proof{C1: c1, C2: c2, S1: s1, S2: s2, S3: s3}, nil
}

// ProveDecoy produces an OR-proof for a decoy anonymity-set entry: the
// decoy branch (keyimage = gamma*G') is proved honestly; the representation
// branch is simulated by drawing c1, s1, s2 at random and solving for
// consistent V1, V2 (spec.md §4.4, grounded on original_source's
// create_spk_from_decoykey).
func ProveDecoy(gens *curve.Generators, output, keyimage *curve.Point, gamma *curve.Scalar) *Proof {
	r3 := curve.ScalarRand()
	c1 := curve.ScalarRand()
	s1 := curve.ScalarRand()
	s2 := curve.ScalarRand()

	// V1 = s1*G + s2*H + c1*C (representation branch simulated)
	v1 := curve.PointAdd(
		curve.PointAdd(curve.ScalarBaseMult(s1), curve.PointMul(gens.H, s2)),
		curve.PointMul(output, c1),
	)

	// V2 = s1*G' + s2*H + c1*I
	v2 := curve.PointAdd(
		curve.PointAdd(curve.PointMul(gens.Gprime, s1), curve.PointMul(gens.H, s2)),
		curve.PointMul(keyimage, c1),
	)

	// V3 = r3*G'
	v3 := curve.PointMul(gens.Gprime, r3)

	challenge := transcriptChallenge(gens, output, keyimage, v1, v2, v3)

	// c2 = H(...) - c1
	c2 := curve.ScalarSub(challenge, c1)

	// s3 = r3 - c2*gamma
	s3 := curve.ScalarAdd(r3, curve.ScalarMul(curve.ScalarNeg(c2), gamma))

	return &Proof{C1: c1, C2: c2, S1: s1, S2: s2, S3: s3}
}

// Verify recomputes V1, V2, V3 from the proof's scalars, recomputes the
// Fiat–Shamir challenge over the same eight-point transcript, and accepts
// iff c1+c2 matches it (spec.md §4.4).
func Verify(gens *curve.Generators, output, keyimage *curve.Point, p *Proof) bool {
	v1 := curve.PointAdd(
		curve.PointAdd(curve.ScalarBaseMult(p.S1), curve.PointMul(gens.H, p.S2)),
		curve.PointMul(output, p.C1),
	)
	v2 := curve.PointAdd(
		curve.PointAdd(curve.PointMul(gens.Gprime, p.S1), curve.PointMul(gens.H, p.S2)),
		curve.PointMul(keyimage, p.C1),
	)
	v3 := curve.PointAdd(curve.PointMul(gens.Gprime, p.S3), curve.PointMul(keyimage, p.C2))

	challenge := transcriptChallenge(gens, output, keyimage, v1, v2, v3)
	sum := curve.ScalarAdd(p.C1, p.C2)

	return sum.Equal(challenge)
}

// ErrLengthMismatch signals that parallel per-index slices (outputs,
// keyimages, proofs) disagree in length — an index-alignment contract
// violation that must never occur for a well-formed bundle (spec.md §6).
var ErrLengthMismatch = errors.New("revelio: per-index slices have mismatched lengths")

// VerifyAll checks every index of an anonymity set in one pass, short
// circuiting index-alignment failures before touching any curve arithmetic.
func VerifyAll(gens *curve.Generators, outputs, keyimages []*curve.Point, proofs []*Proof) (bool, error) {
	n := len(outputs)
	if len(keyimages) != n || len(proofs) != n {
		return false, ErrLengthMismatch
	}
	for i := 0; i < n; i++ {
		if !Verify(gens, outputs[i], keyimages[i], proofs[i]) {
			return false, nil
		}
	}
	return true, nil
}
