package curve

// Generators holds the three process-wide, nothing-up-my-sleeve basepoints
// this protocol is defined over. They must be identical across prover and
// verifier (spec.md §3) and are immutable once constructed.
type Generators struct {
	G      *Point // standard secp256k1 base point
	H      *Point // Pedersen value generator
	Gprime *Point // independent key-image generator
}

// These fixed compressed-point byte constants are carried over verbatim from
// the reference implementation (avras/revelio's GENERATOR_G / GENERATOR_H /
// GENERATOR_J_COMPR) so that a compatible implementation agrees on the same
// basepoints bit for bit.
var (
	generatorGCompressed = [33]byte{
		0x02,
		0x79, 0xbe, 0x66, 0x7e, 0xf9, 0xdc, 0xbb, 0xac,
		0x55, 0xa0, 0x62, 0x95, 0xce, 0x87, 0x0b, 0x07,
		0x02, 0x9b, 0xfc, 0xdb, 0x2d, 0xce, 0x28, 0xd9,
		0x59, 0xf2, 0x81, 0x5b, 0x16, 0xf8, 0x17, 0x98,
	}
	generatorHCompressed = [33]byte{
		0x02,
		0x50, 0x92, 0x9b, 0x74, 0xc1, 0xa0, 0x49, 0x54,
		0xb7, 0x8b, 0x4b, 0x60, 0x35, 0xe9, 0x7a, 0x5e,
		0x07, 0x8a, 0x5a, 0x0f, 0x28, 0xec, 0x96, 0xd5,
		0x47, 0xbf, 0xee, 0x9a, 0xce, 0x80, 0x3a, 0xc0,
	}
	// GeneratorJCompressed is the key-image generator G', exported so
	// internal/keyimage's §8 property-5 test can assert key_image(0,1) ==
	// GeneratorJCompressed without re-deriving Generators itself.
	GeneratorJCompressed = [33]byte{
		0x02,
		0xb8, 0x60, 0xf5, 0x67, 0x95, 0xfc, 0x03, 0xf3,
		0xc2, 0x16, 0x85, 0x38, 0x3d, 0x1b, 0x5a, 0x2f,
		0x29, 0x54, 0xf4, 0x9b, 0x7e, 0x39, 0x8b, 0x8d,
		0x2a, 0x01, 0x93, 0x93, 0x36, 0x21, 0x15, 0x5f,
	}
)

// DefaultGenerators parses the fixed G, H, G' constants once. Callers should
// treat the result as an immutable, process-wide singleton and thread it
// explicitly through calls rather than reaching for a package-level global
// (spec.md §9 — avoid a global secp context).
func DefaultGenerators() *Generators {
	return &Generators{
		G:      MustDecompressPoint(generatorGCompressed[:]),
		H:      MustDecompressPoint(generatorHCompressed[:]),
		Gprime: MustDecompressPoint(GeneratorJCompressed[:]),
	}
}

// Pedersen computes C = alpha*G + beta*H. beta == 0 is permitted here (unlike
// ScalarFromU64) because the generators themselves are defined in terms of
// degenerate commitments, e.g. pedersen(1, 0) == H (spec.md §8 property 5).
func Pedersen(gens *Generators, beta uint64, alpha *Scalar) *Point {
	gAlpha := PointMul(gens.G, alpha)
	if beta == 0 {
		return gAlpha
	}
	betaScalar, _ := ScalarFromU64(beta) // beta != 0 here, never errors
	hBeta := PointMul(gens.H, betaScalar)
	return PointAdd(gAlpha, hBeta)
}
