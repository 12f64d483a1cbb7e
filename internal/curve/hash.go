package curve

import "crypto/sha256"

// HashToScalar is SHA-256 over the concatenation of its inputs, interpreted
// as a scalar mod q: a digest at or above q is reduced mod q, never rejected
// or re-hashed (spec.md §4.1, §9). Prover and verifier both derive their
// challenges through this one function, so they agree bit for bit.
func HashToScalar(parts ...[]byte) *Scalar {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return ScalarFromBytes(sum)
}
