package fri

import (
	"fmt"
	"sort"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/merkle"
)

// layerTrees bundles what the prover keeps alive for one fold step, beyond
// what goes into the emitted proof: the actual Merkle trees, needed to
// answer query openings once every query index is known.
type layerTrees struct {
	arity    uint64
	pairLeaf bool
	f, s     []*core.FieldElement
	treeF    *merkle.Tree
	treeS    *merkle.Tree // nil when pairLeaf
}

// treeLabelFor derives a tree_label unique to a (FRI layer, column) pair, so
// distinct layers' Merkle trees never share a domain-separation space even
// when they happen to use the same arity.
func treeLabelFor(layer int, column uint64) uint64 {
	return uint64(layer)*4 + column
}

// Prove builds a complete DEEP-FRI proof from the public evaluation vectors
// A, S, E, T of length n0 on H(n0), under the given schedule/queries/seed.
func Prove(a, s, e, t []*core.FieldElement, params Params) (*Proof, error) {
	if err := ValidateSchedule(params.Schedule, params.N0); err != nil {
		return nil, err
	}
	if params.Queries <= 0 {
		return nil, fmt.Errorf("fri: queries must be positive")
	}

	domain0, err := core.NewDomain(params.N0)
	if err != nil {
		return nil, fmt.Errorf("fri: building base domain: %w", err)
	}

	z := deriveALIPoint(params.SeedZ, domain0)
	merged, err := Merge(domain0, a, s, e, t, z)
	if err != nil {
		return nil, fmt.Errorf("fri: DEEP-ALI merge failed: %w", err)
	}

	layerSizes := LayerSizes(params.N0, params.Schedule)
	L := len(params.Schedule)

	layers := make([]LayerCommitment, L+1)
	trees := make([]*layerTrees, L+1)

	f := merged.F0
	for l := 0; l < L; l++ {
		nl := layerSizes[l]
		ml := params.Schedule[l]
		zl := deriveFoldingChallenge(params.SeedZ, l, nl)

		nNext := layerSizes[l+1]
		fNext := make([]*core.FieldElement, nNext)
		for b := uint64(0); b < nNext; b++ {
			acc := core.DefaultField.Zero()
			zPow := core.DefaultField.One()
			for tt := uint64(0); tt < ml; tt++ {
				acc = acc.Add(f[b*ml+tt].Mul(zPow))
				zPow = zPow.Mul(zl)
			}
			fNext[b] = acc
		}

		sLayer := make([]*core.FieldElement, nl)
		for i := uint64(0); i < nl; i++ {
			sLayer[i] = fNext[i/ml]
		}

		arity := SelectArity(nl, ml)
		pairLeaf := usesPairLeaf(arity)

		lt := &layerTrees{arity: arity, pairLeaf: pairLeaf, f: f, s: sLayer}
		if pairLeaf {
			cfg, err := merkle.NewConfig(arity, treeLabelFor(l, 0))
			if err != nil {
				return nil, fmt.Errorf("fri: layer %d config: %w", l, err)
			}
			tree, err := merkle.CommitPairs(cfg, f, sLayer)
			if err != nil {
				return nil, fmt.Errorf("fri: layer %d pair commit: %w", l, err)
			}
			lt.treeF = tree
			layers[l] = LayerCommitment{Arity: arity, PairLeaf: true, RootF: tree.Root()}
		} else {
			cfgF, err := merkle.NewConfig(arity, treeLabelFor(l, 0))
			if err != nil {
				return nil, fmt.Errorf("fri: layer %d f-config: %w", l, err)
			}
			cfgS, err := merkle.NewConfig(arity, treeLabelFor(l, 1))
			if err != nil {
				return nil, fmt.Errorf("fri: layer %d s-config: %w", l, err)
			}
			treeF, err := merkle.CommitSingle(cfgF, f)
			if err != nil {
				return nil, fmt.Errorf("fri: layer %d f commit: %w", l, err)
			}
			treeS, err := merkle.CommitSingle(cfgS, sLayer)
			if err != nil {
				return nil, fmt.Errorf("fri: layer %d s commit: %w", l, err)
			}
			lt.treeF = treeF
			lt.treeS = treeS
			layers[l] = LayerCommitment{Arity: arity, PairLeaf: false, RootF: treeF.Root(), RootS: treeS.Root()}
		}
		trees[l] = lt
		f = fNext
	}

	// Final layer: the remaining short vector, committed with arity 1.
	finalCfg, err := merkle.NewConfig(1, treeLabelFor(L, 2))
	if err != nil {
		return nil, fmt.Errorf("fri: final layer config: %w", err)
	}
	finalTree, err := merkle.CommitSingle(finalCfg, f)
	if err != nil {
		return nil, fmt.Errorf("fri: final layer commit: %w", err)
	}
	layers[L] = LayerCommitment{Arity: 1, PairLeaf: false, RootF: finalTree.Root()}
	trees[L] = &layerTrees{arity: 1, pairLeaf: false, f: f, treeF: finalTree}

	var allRoots []*core.FieldElement
	for _, lc := range layers {
		allRoots = append(allRoots, lc.RootF)
		if lc.RootS != nil {
			allRoots = append(allRoots, lc.RootS)
		}
	}
	rootsSeed := deriveRootsSeed(allRoots)

	queries := make([]QueryRecord, params.Queries)
	for q := 0; q < params.Queries; q++ {
		childIdx := make([]uint64, L)
		parentIdx := make([]uint64, L)
		for l := 0; l < L; l++ {
			nl := layerSizes[l]
			ci := deriveQueryIndex(rootsSeed, l, q, nl)
			childIdx[l] = ci
			parentIdx[l] = ci / params.Schedule[l]
		}
		queries[q] = QueryRecord{ChildIndex: childIdx, ParentIndex: parentIdx}
	}

	openings := make([]LayerOpening, L)
	for l := 0; l < L; l++ {
		childBatch := uniqueIndicesAt(queries, l, true)
		parentBatch := uniqueIndicesAt(queries, l, false)

		opening := LayerOpening{ChildIndices: childBatch, ParentIndices: parentBatch}

		childTree := trees[l]
		opening.ChildF = gather(childTree.f, childBatch)
		if childTree.pairLeaf {
			opening.ChildS = gather(childTree.s, childBatch)
			opening.ChildProofF = childTree.treeF.Open(childBatch)
		} else {
			opening.ChildS = gather(childTree.s, childBatch)
			opening.ChildProofF = childTree.treeF.Open(childBatch)
			opening.ChildProofS = childTree.treeS.Open(childBatch)
		}

		parentTree := trees[l+1]
		opening.ParentF = gather(parentTree.f, parentBatch)
		if parentTree.pairLeaf {
			opening.ParentS = gather(parentTree.s, parentBatch)
			opening.ParentProofF = parentTree.treeF.Open(parentBatch)
		} else if parentTree.treeS != nil {
			opening.ParentS = gather(parentTree.s, parentBatch)
			opening.ParentProofF = parentTree.treeF.Open(parentBatch)
			opening.ParentProofS = parentTree.treeS.Open(parentBatch)
		} else {
			// Final layer: f-only commitment, no derived s column.
			opening.ParentProofF = parentTree.treeF.Open(parentBatch)
		}

		openings[l] = opening
	}

	finalOpeningProof := finalTree.Open([]uint64{0})

	return &Proof{
		Params:   params,
		Layers:   layers,
		Openings: openings,
		Queries:  queries,
		Final:    FinalOpening{F: f[0], Proof: finalOpeningProof},
	}, nil
}

func gather(values []*core.FieldElement, indices []uint64) []*core.FieldElement {
	out := make([]*core.FieldElement, len(indices))
	for i, idx := range indices {
		out[i] = values[idx]
	}
	return out
}

func uniqueIndicesAt(queries []QueryRecord, layer int, child bool) []uint64 {
	seen := make(map[uint64]bool)
	var out []uint64
	for _, q := range queries {
		var idx uint64
		if child {
			idx = q.ChildIndex[layer]
		} else {
			idx = q.ParentIndex[layer]
		}
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// deriveALIPoint derives the DEEP-ALI off-domain point z from seedZ via a
// transcript tagged "ALI/z", rejecting candidates in H(n0) or equal to
// zero, with the same bounded-retry-then-fallback discipline as the
// per-layer folding challenges.
func deriveALIPoint(seedZ []byte, domain *core.Domain) *core.FieldElement {
	n := domain.Size()
	tr := newALITranscript(seedZ, n)

	for i := 0; i < maxRejectionRetries; i++ {
		candidate := tr.Challenge(scopedLabel("candidate", i))
		if acceptableFoldChallenge(candidate, n) {
			return candidate
		}
	}

	fallback := tr.Challenge([]byte("fallback-offset"))
	one := core.DefaultField.One()
	for i := 0; i < maxRejectionRetries; i++ {
		if acceptableFoldChallenge(fallback, n) {
			return fallback
		}
		fallback = fallback.Add(one)
	}
	return core.DefaultGenerator
}
