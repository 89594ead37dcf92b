package merkle

import (
	"sort"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
)

// Proof is a union-of-paths multiproof: per level, the actual child count of
// each touched parent (in ascending parent order) and the flat list of
// non-opened child digests, scanned in the same order. The arity travels
// with the proof for self-description.
type Proof struct {
	Arity      uint64
	GroupSizes [][]int
	Siblings   [][]*core.FieldElement
}

func sortedUnique(indices []uint64) []uint64 {
	cp := append([]uint64{}, indices...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	out := cp[:0]
	var last uint64
	first := true
	for _, v := range cp {
		if first || v != last {
			out = append(out, v)
			last = v
			first = false
		}
	}
	return out
}

// Open builds a union-of-paths multiproof for the given leaf indices
// (arbitrary order, possibly containing duplicates).
func (t *Tree) Open(indices []uint64) *Proof {
	frontier := sortedUnique(indices)

	proof := &Proof{Arity: t.cfg.Arity}
	for level := 0; level < len(t.levels)-1; level++ {
		curLevel := t.levels[level]
		opened := make(map[uint64]bool, len(frontier))
		for _, idx := range frontier {
			opened[idx] = true
		}

		var groupSizes []int
		var siblings []*core.FieldElement
		var nextFrontier []uint64

		i := 0
		for i < len(frontier) {
			parent := frontier[i] / t.cfg.Arity
			childStart := parent * t.cfg.Arity
			childEnd := childStart + t.cfg.Arity
			if childEnd > uint64(len(curLevel)) {
				childEnd = uint64(len(curLevel))
			}
			childCount := int(childEnd - childStart)
			groupSizes = append(groupSizes, childCount)

			for pos := uint64(0); pos < uint64(childCount); pos++ {
				idx := childStart + pos
				if !opened[idx] {
					siblings = append(siblings, curLevel[idx])
				}
			}

			nextFrontier = append(nextFrontier, parent)
			for i < len(frontier) && frontier[i]/t.cfg.Arity == parent {
				i++
			}
		}

		proof.GroupSizes = append(proof.GroupSizes, groupSizes)
		proof.Siblings = append(proof.Siblings, siblings)
		frontier = nextFrontier
	}

	return proof
}
