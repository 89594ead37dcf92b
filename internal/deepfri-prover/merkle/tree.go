package merkle

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
)

// parallelHashThreshold is the level width above which buildFromLevel0
// hashes node groups across a worker pool instead of sequentially; below it
// the per-goroutine overhead outweighs the saving. Matches the threshold
// core.Field.ParallelBatchInversion uses for the same reason.
const parallelHashThreshold = 1000

// Tree owns its level storage exclusively: levels[0] holds leaf digests,
// levels[len(levels)-1] has length 1 and is the root. Parents refer to
// children only by arithmetic (p -> children p*arity..(p+1)*arity), never by
// pointer.
type Tree struct {
	cfg    *Config
	levels [][]*core.FieldElement
}

// Root returns the tree's single top-level digest.
func (t *Tree) Root() *core.FieldElement {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// NumLeaves returns the number of level-0 leaves.
func (t *Tree) NumLeaves() int {
	return len(t.levels[0])
}

// CommitSingle builds a single-column tree: level 0 is the leaves
// themselves, with no leaf-hashing step.
func CommitSingle(cfg *Config, leaves []*core.FieldElement) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("merkle: cannot commit an empty leaf list")
	}
	level0 := make([]*core.FieldElement, len(leaves))
	copy(level0, leaves)
	return buildFromLevel0(cfg, level0)
}

// CommitPairs builds a pair-leaf tree: level 0's digest at position i is
// hash_ds(DS(m, LEAF_MARKER, i, L), [f_i, s_i], P).
func CommitPairs(cfg *Config, f []*core.FieldElement, s []*core.FieldElement) (*Tree, error) {
	if len(f) == 0 {
		return nil, fmt.Errorf("merkle: cannot commit an empty leaf list")
	}
	if len(f) != len(s) {
		return nil, fmt.Errorf("merkle: pair-leaf columns must have equal length, got %d and %d", len(f), len(s))
	}
	level0 := make([]*core.FieldElement, len(f))
	for i := range f {
		level0[i] = hashNode(cfg, LeafMarker, uint64(i), []*core.FieldElement{f[i], s[i]})
	}
	return buildFromLevel0(cfg, level0)
}

func buildFromLevel0(cfg *Config, level0 []*core.FieldElement) (*Tree, error) {
	levels := [][]*core.FieldElement{level0}
	cur := level0
	level := uint64(0)
	for len(cur) > 1 {
		numGroups := (len(cur) + int(cfg.Arity) - 1) / int(cfg.Arity)
		next := make([]*core.FieldElement, numGroups)

		hashGroup := func(pos int) {
			start := pos * int(cfg.Arity)
			end := start + int(cfg.Arity)
			if end > len(cur) {
				end = len(cur)
			}
			next[pos] = hashNode(cfg, level, uint64(pos), cur[start:end])
		}

		if len(cur) >= parallelHashThreshold {
			hashGroupsParallel(numGroups, hashGroup)
		} else {
			for pos := 0; pos < numGroups; pos++ {
				hashGroup(pos)
			}
		}

		levels = append(levels, next)
		cur = next
		level++
	}
	return &Tree{cfg: cfg, levels: levels}, nil
}

// hashGroupsParallel runs hashGroup(pos) for pos in [0, numGroups) across a
// worker pool. Each call writes to a distinct slice index, so the result is
// identical to the sequential loop regardless of scheduling order.
func hashGroupsParallel(numGroups int, hashGroup func(pos int)) {
	workers := runtime.NumCPU()
	if workers > numGroups {
		workers = numGroups
	}
	chunkSize := (numGroups + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= numGroups {
			break
		}
		end := start + chunkSize
		if end > numGroups {
			end = numGroups
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for pos := start; pos < end; pos++ {
				hashGroup(pos)
			}
		}(start, end)
	}
	wg.Wait()
}
