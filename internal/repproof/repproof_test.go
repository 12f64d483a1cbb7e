package repproof

import (
	"testing"

	"github.com/rawblock/revelio-por/internal/curve"
)

// Representation proof roundtrip (spec.md §8 property 1).
func TestProveVerifyRoundtrip(t *testing.T) {
	gens := curve.DefaultGenerators()
	alpha := curve.ScalarRand()
	beta := uint64(777)

	output := curve.Pedersen(gens, beta, alpha)

	proof, err := Prove(gens, output, alpha, beta)
	if err != nil {
		t.Fatal(err)
	}
	if !Verify(gens, output, proof) {
		t.Fatal("expected verify to accept a freshly produced proof")
	}
}

func TestProveRejectsZeroAmount(t *testing.T) {
	gens := curve.DefaultGenerators()
	alpha := curve.ScalarRand()
	output := curve.Pedersen(gens, 1, alpha)

	if _, err := Prove(gens, output, alpha, 0); err != curve.ErrZeroAmount {
		t.Fatalf("expected ErrZeroAmount, got %v", err)
	}
}

// S6 (spec.md §8): Simple scheme with three owned outputs, amounts
// {250, 350, 100}; verify, then mutate the aggregate commitment and expect
// rejection.
func TestScenarioS6SimpleThreeOutputs(t *testing.T) {
	gens := curve.DefaultGenerators()
	amounts := []uint64{250, 350, 100}

	var outputs []*curve.Point
	blindSum := curve.ScalarZero()
	var amountSum uint64
	for _, amount := range amounts {
		blind := curve.ScalarRand()
		outputs = append(outputs, curve.Pedersen(gens, amount, blind))
		blindSum = curve.ScalarAdd(blindSum, blind)
		amountSum += amount
	}

	sum, err := AggregateOutputs(outputs)
	if err != nil {
		t.Fatal(err)
	}

	proof, err := Prove(gens, sum, blindSum, amountSum)
	if err != nil {
		t.Fatal(err)
	}
	if !Verify(gens, sum, proof) {
		t.Fatal("expected S6 aggregate proof to verify")
	}

	// Mutate the aggregate commitment by adding 1*H and expect rejection.
	tampered := curve.PointAdd(sum, gens.H)
	if Verify(gens, tampered, proof) {
		t.Fatal("expected verify to reject after mutating the aggregate commitment")
	}
}

// Soundness sanity (spec.md §8 property 3): tampering with any proof field
// must cause verify to reject.
func TestTamperedProofFieldsRejected(t *testing.T) {
	gens := curve.DefaultGenerators()
	alpha := curve.ScalarRand()
	beta := uint64(42)
	output := curve.Pedersen(gens, beta, alpha)

	proof, err := Prove(gens, output, alpha, beta)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		tamper func(*Proof) *Proof
	}{
		{"c", func(p *Proof) *Proof { q := *p; q.C = curve.ScalarAdd(q.C, curve.ScalarOne()); return &q }},
		{"s1", func(p *Proof) *Proof { q := *p; q.S1 = curve.ScalarAdd(q.S1, curve.ScalarOne()); return &q }},
		{"s2", func(p *Proof) *Proof { q := *p; q.S2 = curve.ScalarAdd(q.S2, curve.ScalarOne()); return &q }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tampered := tc.tamper(proof)
			if Verify(gens, output, tampered) {
				t.Fatalf("expected verify to reject a tampered %s field", tc.name)
			}
		})
	}
}
