package merkle

import (
	"sort"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
)

type indexDigest struct {
	index  uint64
	digest *core.FieldElement
}

// VerifySingle verifies a single-column opening: values are leaf digests
// directly (no leaf hashing step).
func VerifySingle(cfg *Config, root *core.FieldElement, indices []uint64, values []*core.FieldElement, proof *Proof) bool {
	if len(indices) != len(values) {
		return false
	}
	pairs := make([]indexDigest, len(indices))
	for i := range indices {
		pairs[i] = indexDigest{index: indices[i], digest: values[i]}
	}
	return verifyLeafDigests(cfg, root, pairs, proof)
}

// VerifyPairs verifies a pair-leaf opening: each (f,s) pair is hashed into a
// leaf digest under the leaf marker before the shared verification walk.
func VerifyPairs(cfg *Config, root *core.FieldElement, indices []uint64, fs [][2]*core.FieldElement, proof *Proof) bool {
	if len(indices) != len(fs) {
		return false
	}
	pairs := make([]indexDigest, len(indices))
	for i, idx := range indices {
		digest := hashNode(cfg, LeafMarker, idx, []*core.FieldElement{fs[i][0], fs[i][1]})
		pairs[i] = indexDigest{index: idx, digest: digest}
	}
	return verifyLeafDigests(cfg, root, pairs, proof)
}

func verifyLeafDigests(cfg *Config, root *core.FieldElement, pairs []indexDigest, proof *Proof) bool {
	if proof == nil || proof.Arity != cfg.Arity {
		return false
	}
	if len(pairs) == 0 {
		return false
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].index < pairs[j].index })
	deduped := pairs[:0:0]
	var last uint64
	first := true
	for _, p := range pairs {
		if first || p.index != last {
			deduped = append(deduped, p)
			last = p.index
			first = false
		}
	}
	frontier := deduped

	if len(proof.GroupSizes) != len(proof.Siblings) {
		return false
	}

	for level := 0; level < len(proof.GroupSizes); level++ {
		groupSizes := proof.GroupSizes[level]
		siblings := proof.Siblings[level]

		var nextFrontier []indexDigest
		siblingCursor := 0
		groupIdx := 0
		i := 0
		for i < len(frontier) {
			if groupIdx >= len(groupSizes) {
				return false
			}
			parent := frontier[i].index / cfg.Arity
			childCount := groupSizes[groupIdx]

			opened := make(map[uint64]*core.FieldElement)
			j := i
			for j < len(frontier) && frontier[j].index/cfg.Arity == parent {
				opened[frontier[j].index%cfg.Arity] = frontier[j].digest
				j++
			}

			children := make([]*core.FieldElement, childCount)
			for pos := 0; pos < childCount; pos++ {
				if d, ok := opened[uint64(pos)]; ok {
					children[pos] = d
				} else {
					if siblingCursor >= len(siblings) {
						return false
					}
					children[pos] = siblings[siblingCursor]
					siblingCursor++
				}
			}

			parentDigest := hashNode(cfg, uint64(level), parent, children)
			nextFrontier = append(nextFrontier, indexDigest{index: parent, digest: parentDigest})

			groupIdx++
			i = j
		}

		if groupIdx != len(groupSizes) {
			return false
		}
		if siblingCursor != len(siblings) {
			return false
		}

		frontier = nextFrontier
	}

	if len(frontier) != 1 {
		return false
	}
	return frontier[0].digest.Equal(root)
}
