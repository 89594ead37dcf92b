// Package deepfriprover provides a DEEP-ALI + DEEP-FRI succinct
// proof-of-knowledge core over a ~256-bit prime field.
//
// # Features
//
//   - Poseidon permutation and sponge at widths t in {9, 17, 33, 65}
//   - Fiat-Shamir transcript channel with domain-separated absorb/challenge
//   - High-arity Merkle commitment with union-of-paths multiproofs
//   - DEEP-ALI merge: public (A,S,E,T) evaluation vectors to f0
//   - DEEP-FRI prover/verifier over an arbitrary folding schedule
//
// # Quick Start
//
// Generating and verifying a DEEP-FRI proof:
//
//	cfg := deepfriprover.DefaultConfig().WithN0(128)
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
//	proof, err := deepfriprover.Prove(a, s, e, t, cfg.FriParams())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if !deepfriprover.Verify(cfg.FriParams(), proof) {
//		log.Fatal("proof rejected")
//	}
//
// # Architecture
//
//   - pkg/deepfri-prover/: public API (this package)
//   - internal/deepfri-prover/: private implementation (not importable)
//     - core: prime-field arithmetic and radix-2 domains
//     - poseidon: permutation, sponge, deterministic parameter derivation
//     - transcript: Fiat-Shamir channel
//     - merkle: high-arity commitment and multiproofs
//     - fri: DEEP-ALI merge and the DEEP-FRI prover/verifier
//
// Implementation details under internal/ can change without breaking this
// package's surface.
package deepfriprover
