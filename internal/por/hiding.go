package por

import (
	"context"

	"github.com/rawblock/revelio-por/internal/curve"
	"github.com/rawblock/revelio-por/internal/ledger"
	"github.com/rawblock/revelio-por/internal/metrics"
)

// HidingSanityCheck runs trials independent Build+Prove cycles at the given
// (anonSize, ownSize) and compares the ground-truth ownership partition
// (prover-only, never derivable by a verifier) against an observable
// partition bucketed from the published bundle — the low byte of each
// anon_list entry's compressed form, a field a verifier genuinely sees
// (spec.md §8 property 4). It reports the Adjusted Rand Index and
// Variation of Information between the two partitions: no statistical
// dependence means ARI near 0 and VI near its maximum.
func HidingSanityCheck(ctx context.Context, gens *curve.Generators, source ledger.Source, trials, anonSize, ownSize int) (ari, vi float64, err error) {
	var groundTruth, observed []int

	for t := 0; t < trials; t++ {
		kExch, err := NewKExch()
		if err != nil {
			return 0, 0, err
		}

		state, err := BuildRevelio(ctx, gens, source, kExch, anonSize, ownSize)
		if err != nil {
			kExch.Zeroize()
			return 0, 0, err
		}
		bundle, err := ProveRevelio(state)
		kExch.Zeroize()
		if err != nil {
			return 0, 0, err
		}

		for i, sl := range state.slots {
			label := 0
			if sl.owned {
				label = 1
			}
			groundTruth = append(groundTruth, label)

			compressed := curve.CompressBytes(bundle.AnonList[i])
			observed = append(observed, int(compressed[len(compressed)-1])%8)
		}
	}

	ari = metrics.AdjustedRandIndex(observed, groundTruth)
	vi = metrics.VariationOfInformation(observed, groundTruth)
	return ari, vi, nil
}
