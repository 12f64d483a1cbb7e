package revelio

import (
	"testing"

	"github.com/rawblock/revelio-por/internal/curve"
	"github.com/rawblock/revelio-por/internal/keyimage"
)

// Revelio proof roundtrip for an owned (real-branch) entry.
func TestProveRealVerifyRoundtrip(t *testing.T) {
	gens := curve.DefaultGenerators()
	alpha := curve.ScalarRand()
	beta := uint64(1250)

	output := curve.Pedersen(gens, beta, alpha)
	keyImg := keyimage.Create(gens, beta, alpha)

	proof, err := ProveReal(gens, output, keyImg, alpha, beta)
	if err != nil {
		t.Fatal(err)
	}
	if !Verify(gens, output, keyImg, proof) {
		t.Fatal("expected a freshly produced real-branch proof to verify")
	}
}

// Revelio proof roundtrip for a decoy entry.
func TestProveDecoyVerifyRoundtrip(t *testing.T) {
	gens := curve.DefaultGenerators()
	gamma := curve.ScalarRand()

	output := curve.Pedersen(gens, 1, curve.ScalarRand()) // decoy output, opening unknown to the prover
	keyImg := keyimage.Create(gens, 0, gamma)

	proof := ProveDecoy(gens, output, keyImg, gamma)
	if !Verify(gens, output, keyImg, proof) {
		t.Fatal("expected a freshly produced decoy-branch proof to verify")
	}
}

// Property 2 (spec.md §8): a mixed anonymity set of owned and decoy indices
// verifies end to end, regardless of which branch each index took.
func TestVerifyAllMixedAnonymitySet(t *testing.T) {
	gens := curve.DefaultGenerators()

	type entry struct {
		output   *curve.Point
		keyImage *curve.Point
		proof    *Proof
	}

	var entries []entry

	// Owned entries.
	for _, beta := range []uint64{100, 200, 300} {
		alpha := curve.ScalarRand()
		output := curve.Pedersen(gens, beta, alpha)
		keyImg := keyimage.Create(gens, beta, alpha)
		proof, err := ProveReal(gens, output, keyImg, alpha, beta)
		if err != nil {
			t.Fatal(err)
		}
		entries = append(entries, entry{output, keyImg, proof})
	}

	// Decoy entries.
	for i := 0; i < 3; i++ {
		gamma := curve.ScalarRand()
		output := curve.Pedersen(gens, 1, curve.ScalarRand())
		keyImg := keyimage.Create(gens, 0, gamma)
		proof := ProveDecoy(gens, output, keyImg, gamma)
		entries = append(entries, entry{output, keyImg, proof})
	}

	var outputs, keyImages []*curve.Point
	var proofs []*Proof
	for _, e := range entries {
		outputs = append(outputs, e.output)
		keyImages = append(keyImages, e.keyImage)
		proofs = append(proofs, e.proof)
	}

	ok, err := VerifyAll(gens, outputs, keyImages, proofs)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected the mixed anonymity set to verify end to end")
	}
}

func TestVerifyAllRejectsLengthMismatch(t *testing.T) {
	gens := curve.DefaultGenerators()
	alpha := curve.ScalarRand()
	output := curve.Pedersen(gens, 10, alpha)
	keyImg := keyimage.Create(gens, 10, alpha)
	proof, err := ProveReal(gens, output, keyImg, alpha, 10)
	if err != nil {
		t.Fatal(err)
	}

	_, err = VerifyAll(gens, []*curve.Point{output}, []*curve.Point{keyImg}, []*Proof{proof, proof})
	if err != ErrLengthMismatch {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

// S4 (spec.md §8): flipping one scalar field of a single index's proof must
// make that index's verification fail.
func TestScenarioS4TamperedScalarField(t *testing.T) {
	gens := curve.DefaultGenerators()
	alpha := curve.ScalarRand()
	beta := uint64(500)
	output := curve.Pedersen(gens, beta, alpha)
	keyImg := keyimage.Create(gens, beta, alpha)

	proof, err := ProveReal(gens, output, keyImg, alpha, beta)
	if err != nil {
		t.Fatal(err)
	}

	tampered := *proof
	tampered.S1 = curve.ScalarAdd(tampered.S1, curve.ScalarOne())

	if Verify(gens, output, keyImg, &tampered) {
		t.Fatal("expected verify to reject a proof with a flipped s1 field")
	}
}

// S5 (spec.md §8): swapping the key images of two indices must make both
// indices' verifications fail, since each transcript is bound to its own
// (C, I) pair.
func TestScenarioS5SwappedKeyImages(t *testing.T) {
	gens := curve.DefaultGenerators()

	alpha1, beta1 := curve.ScalarRand(), uint64(111)
	output1 := curve.Pedersen(gens, beta1, alpha1)
	keyImg1 := keyimage.Create(gens, beta1, alpha1)
	proof1, err := ProveReal(gens, output1, keyImg1, alpha1, beta1)
	if err != nil {
		t.Fatal(err)
	}

	alpha2, beta2 := curve.ScalarRand(), uint64(222)
	output2 := curve.Pedersen(gens, beta2, alpha2)
	keyImg2 := keyimage.Create(gens, beta2, alpha2)
	proof2, err := ProveReal(gens, output2, keyImg2, alpha2, beta2)
	if err != nil {
		t.Fatal(err)
	}

	if Verify(gens, output1, keyImg2, proof1) {
		t.Fatal("expected verify to reject index 1 after its key image was swapped")
	}
	if Verify(gens, output2, keyImg1, proof2) {
		t.Fatal("expected verify to reject index 2 after its key image was swapped")
	}
}
