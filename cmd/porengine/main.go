// Command porengine is the reference CLI harness: it runs build->prove->
// verify for the Revelio scheme (and, when own_list_size == anon_list_size,
// also exercises the Simple scheme on freshly drawn owned outputs of that
// size) over a fixed number of
// iterations, logging aggregate timings (spec_full.md §4.10). It is not
// part of the cryptographic core — a convenience harness around it.
package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/rawblock/revelio-por/internal/curve"
	"github.com/rawblock/revelio-por/internal/ledger"
	"github.com/rawblock/revelio-por/internal/por"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("usage: %s anon_list_size own_list_size [iterations]", os.Args[0])
	}

	anonSize := mustParseInt(os.Args[1], "anon_list_size")
	ownSize := mustParseInt(os.Args[2], "own_list_size")

	iterations := 1
	if len(os.Args) >= 4 {
		iterations = mustParseInt(os.Args[3], "iterations")
	}

	gens := curve.DefaultGenerators()
	source := ledger.NewSimulated(gens)
	kExch, err := por.NewKExch()
	if err != nil {
		log.Fatalf("FATAL: failed to initialize long-term decoy secret: %v", err)
	}
	defer kExch.Zeroize()

	ctx := context.Background()
	var totalProve, totalVerify time.Duration
	allVerified := true

	for i := 0; i < iterations; i++ {
		state, err := por.BuildRevelio(ctx, gens, source, kExch, anonSize, ownSize)
		if err != nil {
			log.Fatalf("FATAL: build_revelio failed on iteration %d: %v", i, err)
		}

		proveStart := time.Now()
		bundle, err := por.ProveRevelio(state)
		totalProve += time.Since(proveStart)
		if err != nil {
			log.Fatalf("FATAL: prove_revelio failed on iteration %d: %v", i, err)
		}

		verifyStart := time.Now()
		verified, err := por.VerifyRevelio(bundle)
		totalVerify += time.Since(verifyStart)
		if err != nil {
			log.Fatalf("FATAL: verify_revelio failed on iteration %d: %v", i, err)
		}
		if !verified {
			allVerified = false
			log.Printf("iteration %d: revelio verify returned false", i)
		}
	}

	log.Printf("revelio: %d iterations, anon_size=%d own_size=%d, total prove=%s verify=%s",
		iterations, anonSize, ownSize, totalProve, totalVerify)

	if ownSize == anonSize {
		simpleStart := time.Now()
		simpleProve, simpleVerify := time.Duration(0), time.Duration(0)
		for i := 0; i < iterations; i++ {
			state, err := por.BuildSimple(gens, ownSize)
			if err != nil {
				log.Fatalf("FATAL: build_simple failed on iteration %d: %v", i, err)
			}

			proveStart := time.Now()
			bundle, err := por.ProveSimple(state)
			simpleProve += time.Since(proveStart)
			if err != nil {
				log.Fatalf("FATAL: prove_simple failed on iteration %d: %v", i, err)
			}

			verifyStart := time.Now()
			verified, err := por.VerifySimple(bundle)
			simpleVerify += time.Since(verifyStart)
			if err != nil {
				log.Fatalf("FATAL: verify_simple failed on iteration %d: %v", i, err)
			}
			if !verified {
				allVerified = false
				log.Printf("iteration %d: simple verify returned false", i)
			}
		}
		log.Printf("simple: %d iterations, own_size=%d, total prove=%s verify=%s (wall %s)",
			iterations, ownSize, simpleProve, simpleVerify, time.Since(simpleStart))
	}

	if !allVerified {
		os.Exit(1)
	}
}

func mustParseInt(s, name string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("FATAL: invalid %s %q: %v", name, s, err)
	}
	return n
}
