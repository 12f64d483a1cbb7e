package por

import (
	"context"
	"testing"

	"github.com/rawblock/revelio-por/internal/curve"
	"github.com/rawblock/revelio-por/internal/ledger"
)

func newTestOrchestrator(t *testing.T) (*curve.Generators, ledger.Source, KExch) {
	t.Helper()
	gens := curve.DefaultGenerators()
	source := ledger.NewSimulated(gens)
	kExch, err := NewKExch()
	if err != nil {
		t.Fatal(err)
	}
	return gens, source, kExch
}

// S1 (spec.md §8): N=1, n=1. Build -> prove -> verify -> true.
func TestScenarioS1SingleOwned(t *testing.T) {
	gens, source, kExch := newTestOrchestrator(t)
	ctx := context.Background()

	state, err := BuildRevelio(ctx, gens, source, kExch, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	bundle, err := ProveRevelio(state)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := VerifyRevelio(bundle)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected S1 to verify")
	}
}

// S2 (spec.md §8): N=100, n=10, repeated 100 times; all true.
func TestScenarioS2RepeatedMixed(t *testing.T) {
	gens, source, kExch := newTestOrchestrator(t)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		state, err := BuildRevelio(ctx, gens, source, kExch, 100, 10)
		if err != nil {
			t.Fatal(err)
		}
		bundle, err := ProveRevelio(state)
		if err != nil {
			t.Fatal(err)
		}
		ok, err := VerifyRevelio(bundle)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatalf("expected S2 iteration %d to verify", i)
		}
	}
}

// S3 (spec.md §8): N=10, n=0, pure decoys. Build -> prove -> verify -> true.
func TestScenarioS3PureDecoys(t *testing.T) {
	gens, source, kExch := newTestOrchestrator(t)
	ctx := context.Background()

	state, err := BuildRevelio(ctx, gens, source, kExch, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	bundle, err := ProveRevelio(state)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := VerifyRevelio(bundle)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected S3 (pure decoys) to verify")
	}
}

// S4 (spec.md §8): flip spk_list[5].s1 in an S2-shaped bundle; verify -> false.
func TestScenarioS4TamperedSpkField(t *testing.T) {
	gens, source, kExch := newTestOrchestrator(t)
	ctx := context.Background()

	state, err := BuildRevelio(ctx, gens, source, kExch, 100, 10)
	if err != nil {
		t.Fatal(err)
	}
	bundle, err := ProveRevelio(state)
	if err != nil {
		t.Fatal(err)
	}

	bundle.SpkList[5].S1 = curve.ScalarAdd(bundle.SpkList[5].S1, curve.ScalarOne())

	ok, err := VerifyRevelio(bundle)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected verify to reject after tampering spk_list[5].s1")
	}
}

// S5 (spec.md §8): swap keyimage_list[3] and keyimage_list[4]; verify -> false.
func TestScenarioS5SwappedKeyImages(t *testing.T) {
	gens, source, kExch := newTestOrchestrator(t)
	ctx := context.Background()

	state, err := BuildRevelio(ctx, gens, source, kExch, 100, 10)
	if err != nil {
		t.Fatal(err)
	}
	bundle, err := ProveRevelio(state)
	if err != nil {
		t.Fatal(err)
	}

	bundle.KeyImageList[3], bundle.KeyImageList[4] = bundle.KeyImageList[4], bundle.KeyImageList[3]

	ok, err := VerifyRevelio(bundle)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected verify to reject after swapping keyimage_list[3] and [4]")
	}
}

func TestBuildRevelioRejectsInvalidSizes(t *testing.T) {
	gens, source, kExch := newTestOrchestrator(t)
	ctx := context.Background()

	if _, err := BuildRevelio(ctx, gens, source, kExch, 0, 0); err != ErrInvalidSize {
		t.Fatalf("expected ErrInvalidSize for anonSize=0, got %v", err)
	}
	if _, err := BuildRevelio(ctx, gens, source, kExch, 5, 6); err != ErrInvalidSize {
		t.Fatalf("expected ErrInvalidSize for ownSize>anonSize, got %v", err)
	}
}

// Simple scheme end-to-end, mirroring S6's shape but through the orchestrator.
func TestSimpleSchemeRoundtrip(t *testing.T) {
	gens := curve.DefaultGenerators()

	state, err := BuildSimple(gens, 3)
	if err != nil {
		t.Fatal(err)
	}
	bundle, err := ProveSimple(state)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := VerifySimple(bundle)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected Simple scheme roundtrip to verify")
	}
}

func TestBuildSimpleRejectsEmptyOwnSize(t *testing.T) {
	gens := curve.DefaultGenerators()
	if _, err := BuildSimple(gens, 0); err != ErrEmptyOwnSize {
		t.Fatalf("expected ErrEmptyOwnSize, got %v", err)
	}
}

// Property 4 (spec.md §8): no statistical dependence between ownership and
// the observable bundle field used here.
func TestHidingSanityCheck(t *testing.T) {
	gens := curve.DefaultGenerators()
	source := ledger.NewSimulated(gens)
	ctx := context.Background()

	ari, vi, err := HidingSanityCheck(ctx, gens, source, 300, 20, 5)
	if err != nil {
		t.Fatal(err)
	}
	if ari > 0.05 || ari < -0.05 {
		t.Fatalf("expected ARI near 0, got %f", ari)
	}
	if vi <= 0 {
		t.Fatalf("expected positive VI (no perfect agreement), got %f", vi)
	}
}
