package keyimage

import (
	"testing"

	"github.com/rawblock/revelio-por/internal/curve"
)

// Generator consistency (spec.md §8 property 5): key_image(0, 1) == G'.
func TestKeyImageDefinesGprime(t *testing.T) {
	gens := curve.DefaultGenerators()

	got := Create(gens, 0, curve.ScalarOne())
	if !got.Equal(gens.Gprime) {
		t.Fatal("key_image(0, 1) != G'")
	}

	compressed := got.Compress()
	if compressed != curve.GeneratorJCompressed {
		t.Fatal("key_image(0, 1) does not match the fixed GENERATOR_J_COMPR constant")
	}
}

func TestKeyImageOwnedMatchesAlphaGprimePlusBetaH(t *testing.T) {
	gens := curve.DefaultGenerators()
	alpha := curve.ScalarRand()
	beta := uint64(250)

	got := Create(gens, beta, alpha)

	betaScalar, err := curve.ScalarFromU64(beta)
	if err != nil {
		t.Fatal(err)
	}
	want := curve.PointAdd(curve.PointMul(gens.Gprime, alpha), curve.PointMul(gens.H, betaScalar))

	if !got.Equal(want) {
		t.Fatal("key_image(beta, alpha) != alpha*G' + beta*H for beta != 0")
	}
}

func TestKeyImageDecoyShapeIsGammaGprime(t *testing.T) {
	gens := curve.DefaultGenerators()
	gamma := curve.ScalarRand()

	got := Create(gens, 0, gamma)
	want := curve.PointMul(gens.Gprime, gamma)

	if !got.Equal(want) {
		t.Fatal("key_image(0, gamma) != gamma*G'")
	}
}
