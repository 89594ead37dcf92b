package fri

import (
	"bytes"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/merkle"
)

// Verify replays the transcript-seeded derivations and checks every Merkle
// opening and local fold predicate in proof against params. It never
// panics: any structural, cryptographic, protocol, or parametric failure
// yields a single composite reject.
func Verify(params Params, proof *Proof) bool {
	if proof == nil {
		return false
	}
	stated := proof.Params
	if stated.N0 != params.N0 || stated.Queries != params.Queries ||
		!equalIndices(stated.Schedule, params.Schedule) || !bytes.Equal(stated.SeedZ, params.SeedZ) {
		return false
	}
	if err := ValidateSchedule(params.Schedule, params.N0); err != nil {
		return false
	}
	L := len(params.Schedule)
	if len(proof.Layers) != L+1 || len(proof.Openings) != L || len(proof.Queries) != params.Queries {
		return false
	}

	layerSizes := LayerSizes(params.N0, params.Schedule)

	for l := 0; l < L; l++ {
		expectedArity := SelectArity(layerSizes[l], params.Schedule[l])
		lc := proof.Layers[l]
		if lc.Arity != expectedArity {
			return false
		}
		if lc.PairLeaf != usesPairLeaf(expectedArity) {
			return false
		}
		if lc.PairLeaf && lc.RootS != nil {
			return false
		}
		if !lc.PairLeaf && lc.RootS == nil {
			return false
		}
	}
	finalLayer := proof.Layers[L]
	if finalLayer.Arity != 1 || finalLayer.PairLeaf || finalLayer.RootS != nil {
		return false
	}

	var allRoots []*core.FieldElement
	for _, lc := range proof.Layers {
		allRoots = append(allRoots, lc.RootF)
		if lc.RootS != nil {
			allRoots = append(allRoots, lc.RootS)
		}
	}
	rootsSeed := deriveRootsSeed(allRoots)

	for q, rec := range proof.Queries {
		if len(rec.ChildIndex) != L || len(rec.ParentIndex) != L {
			return false
		}
		for l := 0; l < L; l++ {
			expectedChild := deriveQueryIndex(rootsSeed, l, q, layerSizes[l])
			if rec.ChildIndex[l] != expectedChild {
				return false
			}
			if rec.ParentIndex[l] != expectedChild/params.Schedule[l] {
				return false
			}
		}
	}

	for l := 0; l < L; l++ {
		expectedChildBatch := uniqueIndicesAt(proof.Queries, l, true)
		expectedParentBatch := uniqueIndicesAt(proof.Queries, l, false)
		opening := proof.Openings[l]
		if !equalIndices(opening.ChildIndices, expectedChildBatch) {
			return false
		}
		if !equalIndices(opening.ParentIndices, expectedParentBatch) {
			return false
		}

		if !verifyChildSide(params, proof.Layers[l], opening, l) {
			return false
		}
		if !verifyParentSide(params, proof.Layers[l+1], opening, l, L) {
			return false
		}

		childS := indexValueMap(opening.ChildIndices, opening.ChildS)
		parentF := indexValueMap(opening.ParentIndices, opening.ParentF)
		for _, rec := range proof.Queries {
			sVal, ok := childS[rec.ChildIndex[l]]
			if !ok {
				return false
			}
			fVal, ok := parentF[rec.ParentIndex[l]]
			if !ok {
				return false
			}
			if !sVal.Equal(fVal) {
				return false
			}
		}
	}

	finalCfg, err := merkle.NewConfig(1, treeLabelFor(L, 2))
	if err != nil {
		return false
	}
	if proof.Final.F == nil {
		return false
	}
	if !merkle.VerifySingle(finalCfg, finalLayer.RootF, []uint64{0}, []*core.FieldElement{proof.Final.F}, proof.Final.Proof) {
		return false
	}

	return true
}

func verifyChildSide(params Params, layer LayerCommitment, opening LayerOpening, l int) bool {
	if layer.PairLeaf {
		cfg, err := merkle.NewConfig(layer.Arity, treeLabelFor(l, 0))
		if err != nil {
			return false
		}
		pairs, ok := zipPairs(opening.ChildF, opening.ChildS)
		if !ok {
			return false
		}
		return merkle.VerifyPairs(cfg, layer.RootF, opening.ChildIndices, pairs, opening.ChildProofF)
	}
	cfgF, err := merkle.NewConfig(layer.Arity, treeLabelFor(l, 0))
	if err != nil {
		return false
	}
	cfgS, err := merkle.NewConfig(layer.Arity, treeLabelFor(l, 1))
	if err != nil {
		return false
	}
	if !merkle.VerifySingle(cfgF, layer.RootF, opening.ChildIndices, opening.ChildF, opening.ChildProofF) {
		return false
	}
	return merkle.VerifySingle(cfgS, layer.RootS, opening.ChildIndices, opening.ChildS, opening.ChildProofS)
}

func verifyParentSide(params Params, layer LayerCommitment, opening LayerOpening, l int, L int) bool {
	if l+1 == L {
		cfg, err := merkle.NewConfig(layer.Arity, treeLabelFor(L, 2))
		if err != nil {
			return false
		}
		return merkle.VerifySingle(cfg, layer.RootF, opening.ParentIndices, opening.ParentF, opening.ParentProofF)
	}
	if layer.PairLeaf {
		cfg, err := merkle.NewConfig(layer.Arity, treeLabelFor(l+1, 0))
		if err != nil {
			return false
		}
		pairs, ok := zipPairs(opening.ParentF, opening.ParentS)
		if !ok {
			return false
		}
		return merkle.VerifyPairs(cfg, layer.RootF, opening.ParentIndices, pairs, opening.ParentProofF)
	}
	cfgF, err := merkle.NewConfig(layer.Arity, treeLabelFor(l+1, 0))
	if err != nil {
		return false
	}
	cfgS, err := merkle.NewConfig(layer.Arity, treeLabelFor(l+1, 1))
	if err != nil {
		return false
	}
	if !merkle.VerifySingle(cfgF, layer.RootF, opening.ParentIndices, opening.ParentF, opening.ParentProofF) {
		return false
	}
	return merkle.VerifySingle(cfgS, layer.RootS, opening.ParentIndices, opening.ParentS, opening.ParentProofS)
}

// zipPairs pairs up f and s by index. It reports ok=false without touching
// s[i] if the two slices disagree in length, so a malformed proof with
// mismatched column lengths is rejected here rather than panicking on an
// out-of-range index.
func zipPairs(f, s []*core.FieldElement) (pairs [][2]*core.FieldElement, ok bool) {
	if len(f) != len(s) {
		return nil, false
	}
	out := make([][2]*core.FieldElement, len(f))
	for i := range f {
		out[i] = [2]*core.FieldElement{f[i], s[i]}
	}
	return out, true
}

func indexValueMap(indices []uint64, values []*core.FieldElement) map[uint64]*core.FieldElement {
	m := make(map[uint64]*core.FieldElement, len(indices))
	for i, idx := range indices {
		m[idx] = values[i]
	}
	return m
}

func equalIndices(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
