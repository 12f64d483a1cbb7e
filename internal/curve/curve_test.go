package curve

import "testing"

// check_minus_one_key (spec.md §8 property 6): (alpha+1)*G + (-1)*G == alpha*G.
func TestMinusOne(t *testing.T) {
	alpha := ScalarRand()
	lhs := PointAdd(ScalarBaseMult(ScalarAdd(alpha, ScalarOne())), ScalarBaseMult(MinusOne))
	rhs := ScalarBaseMult(alpha)
	if !lhs.Equal(rhs) {
		t.Fatal("(alpha+1)*G + (-1)*G != alpha*G")
	}
}

// check_amount_to_key (spec.md §8 property 7): pedersen(beta, alpha) ==
// alpha*G + scalar_from_u64(beta)*H, sampled at every 97th beta in [1, 1000).
func TestAmountEncodingMatchesPedersen(t *testing.T) {
	gens := DefaultGenerators()
	alpha := ScalarRand()
	for beta := uint64(1); beta < 1000; beta += 97 {
		got := Pedersen(gens, beta, alpha)

		betaScalar, err := ScalarFromU64(beta)
		if err != nil {
			t.Fatalf("ScalarFromU64(%d): %v", beta, err)
		}
		want := PointAdd(ScalarBaseMult(alpha), PointMul(gens.H, betaScalar))

		if !got.Equal(want) {
			t.Fatalf("Pedersen(%d, alpha) != alpha*G + scalar_from_u64(%d)*H", beta, beta)
		}
	}
}

// Generator consistency (spec.md §8 property 5, partial — the G' leg is
// covered in internal/keyimage): pedersen(0,1) == G, pedersen(1,0) == H.
func TestGeneratorConsistency(t *testing.T) {
	gens := DefaultGenerators()

	if !Pedersen(gens, 0, ScalarOne()).Equal(gens.G) {
		t.Fatal("pedersen(0, 1) != G")
	}
	if !Pedersen(gens, 1, ScalarZero()).Equal(gens.H) {
		t.Fatal("pedersen(1, 0) != H")
	}
}

func TestScalarFromU64RejectsZero(t *testing.T) {
	if _, err := ScalarFromU64(0); err != ErrZeroAmount {
		t.Fatalf("expected ErrZeroAmount, got %v", err)
	}
}

func TestPointAddManyRejectsIdentity(t *testing.T) {
	s := ScalarRand()
	p := ScalarBaseMult(s)
	negP := ScalarBaseMult(ScalarNeg(s))

	_, err := PointAddMany([]*Point{p, negP})
	if err != ErrIdentity {
		t.Fatalf("expected ErrIdentity from p + (-p), got %v", err)
	}
}

func TestCompressDecompressRoundtrip(t *testing.T) {
	p := ScalarBaseMult(ScalarRand())
	c := p.Compress()
	got, err := DecompressPoint(c[:])
	if err != nil {
		t.Fatalf("DecompressPoint: %v", err)
	}
	if !got.Equal(p) {
		t.Fatal("decompress(compress(p)) != p")
	}
}
