// Package por orchestrates the Simple and Revelio proof-of-reserves schemes:
// building an anonymity set (or owned-only list), deriving per-index
// commitments and key images, invoking the appropriate Σ-protocol per
// index, and assembling/verifying the resulting bundle.
package por

import (
	"context"
	"crypto/rand"
	"errors"
	"runtime"
	"sync"

	"github.com/rawblock/revelio-por/internal/curve"
	"github.com/rawblock/revelio-por/internal/keyimage"
	"github.com/rawblock/revelio-por/internal/ledger"
	"github.com/rawblock/revelio-por/internal/repproof"
	"github.com/rawblock/revelio-por/internal/revelio"
)

// MaxAmount bounds simulated owned amounts to [1, MaxAmount), matching the
// reference simulator (spec.md §3, §9).
const MaxAmount = 1000

// ErrInvalidSize is a contract violation: own_size must not exceed
// anon_size, and anon_size must be at least 1 (spec.md §4.5, §7).
var ErrInvalidSize = errors.New("por: invalid (anon_size, own_size) combination")

// KExch is the custodian's long-term decoy-derivation secret. It outlives
// any single epoch and must be zeroized when no longer needed (spec.md §5).
type KExch [32]byte

// NewKExch draws a fresh, high-entropy long-term secret.
func NewKExch() (KExch, error) {
	var k KExch
	if _, err := rand.Read(k[:]); err != nil {
		return k, err
	}
	return k, nil
}

// Zeroize overwrites k in place so it does not linger in memory past its
// owner's lifetime (spec.md §5 "held with the same care as any long-term key").
func (k *KExch) Zeroize() {
	for i := range k {
		k[i] = 0
	}
}

// slot is the tagged per-index build secret: exactly one of the owned or
// decoy fields is populated, replacing the reference's zero-scalar
// sentinel (spec.md §9 "re-express as a tagged variant per slot").
type slot struct {
	owned bool
	alpha *curve.Scalar // owned
	beta  uint64        // owned
	gamma *curve.Scalar // decoy

	commitment *curve.Point
	keyImage   *curve.Point
}

// BuildState is the immutable result of BuildRevelio: per-index secrets and
// public values, ready to be consumed (not aliased) by ProveRevelio
// (spec.md §9 "consuming the build state, no mutable aliases").
type BuildState struct {
	gens  *curve.Generators
	slots []slot
}

// RevelioBundle is the public artifact of a completed Revelio epoch.
type RevelioBundle struct {
	Gens         *curve.Generators
	AnonList     []*curve.Point
	KeyImageList []*curve.Point
	SpkList      []*revelio.Proof
}

// cryptoRandIndex returns a cryptographically random integer in [0, n).
func cryptoRandIndex(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	x := uint64(0)
	for _, b := range buf {
		x = x<<8 | uint64(b)
	}
	return int(x % uint64(n)), nil
}

// shuffle performs an in-place Fisher–Yates permutation using a
// cryptographic source of randomness, so that owned slot positions within
// the anonymity set are uniformly distributed (spec.md §4.5 step 2).
func shuffle(slots []slot) error {
	for i := len(slots) - 1; i > 0; i-- {
		j, err := cryptoRandIndex(i + 1)
		if err != nil {
			return err
		}
		slots[i], slots[j] = slots[j], slots[i]
	}
	return nil
}

// randomAmount draws beta uniformly from [1, MaxAmount).
func randomAmount() (uint64, error) {
	n, err := cryptoRandIndex(MaxAmount - 1)
	if err != nil {
		return 0, err
	}
	return uint64(n) + 1, nil
}

// BuildRevelio assembles the per-index build state for an anonymity set of
// size anonSize with ownSize owned entries: fresh owned slots, a uniform
// permutation, then per-index commitment/key-image derivation (spec.md
// §4.5). Decoy commitments are requested from source rather than fabricated
// inline, the one concrete extension over the reference orchestrator.
func BuildRevelio(ctx context.Context, gens *curve.Generators, source ledger.Source, kExch KExch, anonSize, ownSize int) (*BuildState, error) {
	if anonSize < 1 || ownSize < 0 || ownSize > anonSize {
		return nil, ErrInvalidSize
	}

	slots := make([]slot, anonSize)
	for i := 0; i < ownSize; i++ {
		slots[i].owned = true
	}
	if err := shuffle(slots); err != nil {
		return nil, err
	}

	decoyCount := anonSize - ownSize
	var candidates []ledger.Candidate
	if decoyCount > 0 {
		var err error
		candidates, err = source.FetchDecoyCandidates(ctx, decoyCount)
		if err != nil {
			return nil, err
		}
	}

	candidateIdx := 0
	for i := range slots {
		if slots[i].owned {
			alpha := curve.ScalarRand()
			beta, err := randomAmount()
			if err != nil {
				return nil, err
			}
			slots[i].alpha = alpha
			slots[i].beta = beta
			slots[i].commitment = curve.Pedersen(gens, beta, alpha)
			slots[i].keyImage = keyimage.Create(gens, beta, alpha)
			continue
		}

		commitment := candidates[candidateIdx].Commitment
		candidateIdx++
		gamma := curve.HashToScalar(kExch[:], curve.CompressBytes(commitment))
		slots[i].gamma = gamma
		slots[i].commitment = commitment
		slots[i].keyImage = keyimage.Create(gens, 0, gamma)
	}

	return &BuildState{gens: gens, slots: slots}, nil
}

// workerCount bounds per-index fan-out to the host's parallelism, never
// exceeding the number of indices actually being worked on.
func workerCount(n int) int {
	w := runtime.NumCPU()
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// ProveRevelio invokes the real or decoy branch per index (grounded on the
// teacher's Hub/RateLimiter goroutine-plus-mutex fan-out idiom) and
// assembles the resulting proofs back into index order before returning the
// bundle (spec.md §5 "assembled in index order").
func ProveRevelio(state *BuildState) (*RevelioBundle, error) {
	n := len(state.slots)
	anonList := make([]*curve.Point, n)
	keyImageList := make([]*curve.Point, n)
	spkList := make([]*revelio.Proof, n)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		sem      = make(chan struct{}, workerCount(n))
	)

	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			s := state.slots[i]
			anonList[i] = s.commitment
			keyImageList[i] = s.keyImage

			var proof *revelio.Proof
			if s.owned {
				p, err := revelio.ProveReal(state.gens, s.commitment, s.keyImage, s.alpha, s.beta)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				proof = p
			} else {
				proof = revelio.ProveDecoy(state.gens, s.commitment, s.keyImage, s.gamma)
			}
			spkList[i] = proof
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return &RevelioBundle{
		Gens:         state.gens,
		AnonList:     anonList,
		KeyImageList: keyImageList,
		SpkList:      spkList,
	}, nil
}

// VerifyRevelio retraces the per-index transcript for every entry and
// accepts iff all of them do (spec.md §4.5 "Accept iff all N succeed").
func VerifyRevelio(bundle *RevelioBundle) (bool, error) {
	return revelio.VerifyAll(bundle.Gens, bundle.AnonList, bundle.KeyImageList, bundle.SpkList)
}

// SimpleBuildState is the immutable build result for the Simple scheme: n
// owned commitments plus the aggregate opening the representation proof
// will be produced over.
type SimpleBuildState struct {
	gens    *curve.Generators
	alphas  []*curve.Scalar
	betas   []uint64
	ownList []*curve.Point
}

// SimpleBundle is the public artifact of a completed Simple epoch.
type SimpleBundle struct {
	Gens    *curve.Generators
	OwnList []*curve.Point
	RepSpk  *repproof.Proof
}

// ErrEmptyOwnSize is a contract violation: the Simple scheme requires at
// least one owned output (spec.md §4.5, §7).
var ErrEmptyOwnSize = errors.New("por: own_size must be at least 1 for the Simple scheme")

// BuildSimple draws n fresh owned commitments with amounts in [1, MaxAmount).
func BuildSimple(gens *curve.Generators, ownSize int) (*SimpleBuildState, error) {
	if ownSize < 1 {
		return nil, ErrEmptyOwnSize
	}

	state := &SimpleBuildState{gens: gens}
	for i := 0; i < ownSize; i++ {
		alpha := curve.ScalarRand()
		beta, err := randomAmount()
		if err != nil {
			return nil, err
		}
		state.alphas = append(state.alphas, alpha)
		state.betas = append(state.betas, beta)
		state.ownList = append(state.ownList, curve.Pedersen(gens, beta, alpha))
	}
	return state, nil
}

// ProveSimple aggregates the owned list's openings by point, scalar, and
// uint64 addition and produces one representation proof over the sum
// (spec.md §4.3 "Simple scheme orchestration").
func ProveSimple(state *SimpleBuildState) (*SimpleBundle, error) {
	sum, err := repproof.AggregateOutputs(state.ownList)
	if err != nil {
		return nil, err
	}

	alphaSum := curve.ScalarZero()
	var betaSum uint64
	for i := range state.alphas {
		alphaSum = curve.ScalarAdd(alphaSum, state.alphas[i])
		if betaSum+state.betas[i] < betaSum {
			return nil, errors.New("por: aggregate amount overflows uint64")
		}
		betaSum += state.betas[i]
	}

	proof, err := repproof.Prove(state.gens, sum, alphaSum, betaSum)
	if err != nil {
		return nil, err
	}

	return &SimpleBundle{Gens: state.gens, OwnList: state.ownList, RepSpk: proof}, nil
}

// VerifySimple recomputes the aggregate commitment from own_list and runs
// the single representation-proof verify over it.
func VerifySimple(bundle *SimpleBundle) (bool, error) {
	sum, err := repproof.AggregateOutputs(bundle.OwnList)
	if err != nil {
		return false, err
	}
	return repproof.Verify(bundle.Gens, sum, bundle.RepSpk), nil
}
