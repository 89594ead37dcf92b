// Package merkle implements the high-arity Merkle commitment this core
// uses: single-column or pair-leaf trees over Poseidon, opened with
// union-of-paths multiproofs that transmit each sibling at most once.
package merkle

import (
	"fmt"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/poseidon"
)

// LeafMarker tags a level-0 (leaf) domain-separation tuple, distinguishing
// leaf hashing from internal-node hashing under the same arity/label.
const LeafMarker = uint64(0xFFFFFFFF)

// ValidArities enumerates the arities this core's Merkle commitment
// supports: a power of two no larger than the widest rate this core's
// Poseidon parameters provide.
var ValidArities = []uint64{2, 8, 16, 32, 64}

// Config is a Merkle tree's shape: arity, a caller-chosen label used to
// separate otherwise-identical trees, and the Poseidon parameters for the
// smallest legal width covering this arity.
type Config struct {
	Arity     uint64
	TreeLabel uint64
	Params    *poseidon.Params
}

// NewConfig builds a Config for the given arity and tree label, selecting
// the smallest legal Poseidon width t with m <= t-1: m<=8 => t=9, m<=16 =>
// t=17, m<=32 => t=33, m<=64 => t=65.
func NewConfig(arity uint64, treeLabel uint64) (*Config, error) {
	width, err := widthForArity(arity)
	if err != nil {
		return nil, err
	}
	params, err := poseidon.ParamsForWidth(width)
	if err != nil {
		return nil, fmt.Errorf("merkle: building params for arity %d: %w", arity, err)
	}
	return &Config{Arity: arity, TreeLabel: treeLabel, Params: params}, nil
}

func widthForArity(arity uint64) (int, error) {
	switch {
	case arity == 0:
		return 0, fmt.Errorf("merkle: arity must be positive")
	case arity <= 8:
		return 9, nil
	case arity <= 16:
		return 17, nil
	case arity <= 32:
		return 33, nil
	case arity <= 64:
		return 65, nil
	default:
		return 0, fmt.Errorf("merkle: arity %d exceeds the maximum supported arity 64", arity)
	}
}

// dsFields builds the domain-separation tuple DS(m, level, pos, L) absorbed
// before a node's (or leaf's) children.
func dsFields(cfg *Config, level uint64, pos uint64) []*core.FieldElement {
	return []*core.FieldElement{
		core.DefaultField.NewElementFromUint64(cfg.Arity),
		core.DefaultField.NewElementFromUint64(level),
		core.DefaultField.NewElementFromUint64(pos),
		core.DefaultField.NewElementFromUint64(cfg.TreeLabel),
	}
}

func hashNode(cfg *Config, level uint64, pos uint64, children []*core.FieldElement) *core.FieldElement {
	return poseidon.HashDS(cfg.Params, dsFields(cfg, level, pos), children)
}
