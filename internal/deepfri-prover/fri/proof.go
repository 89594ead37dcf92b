package fri

import (
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/merkle"
)

// Params are the public DEEP-FRI parameters: the folding schedule, the
// number of queries, the seed driving every z_l and index derivation, and
// the size of the base layer.
type Params struct {
	Schedule []uint64
	Queries  int
	SeedZ    []byte
	N0       uint64
}

// LayerCommitment is one layer's Merkle commitment: either a single
// pair-leaf root (arities 8, 16) or two side-by-side single-column roots
// over f and s (every other fold-layer arity). The arity-1 final layer
// carries a single-column root over f only (RootS is nil).
type LayerCommitment struct {
	Arity    uint64
	PairLeaf bool
	RootF    *core.FieldElement
	RootS    *core.FieldElement
}

// LayerOpening is the batched union-of-paths opening for one fold step
// (layer l folding into layer l+1): the child batch drawn from layer l's
// commitment and the parent batch drawn from layer l+1's commitment.
type LayerOpening struct {
	ChildIndices []uint64
	ChildF       []*core.FieldElement
	ChildS       []*core.FieldElement
	ChildProofF  *merkle.Proof
	ChildProofS  *merkle.Proof

	ParentIndices []uint64
	ParentF       []*core.FieldElement
	ParentS       []*core.FieldElement
	ParentProofF  *merkle.Proof
	ParentProofS  *merkle.Proof
}

// QueryRecord holds, for a single query, the per-layer child and parent
// indices derived from the transcript-seeded index sampler.
type QueryRecord struct {
	ChildIndex  []uint64
	ParentIndex []uint64
}

// FinalOpening is the base-case opening of the last, shortest layer at
// index 0.
type FinalOpening struct {
	F     *core.FieldElement
	Proof *merkle.Proof
}

// Proof is the complete DEEP-FRI artifact: per-layer roots (length L+1),
// batched per-layer openings (length L), per-query index records, a final
// layer opening, and the parameters that produced it.
type Proof struct {
	Params   Params
	Layers   []LayerCommitment
	Openings []LayerOpening
	Queries  []QueryRecord
	Final    FinalOpening
}

const bytesPerField = 32
const bytesPerIndex = 8

// merkleProofSizeBytes implements the §6 Merkle proof sizing formula:
// arity (1) + group_sizes (1/entry + 8/level length prefix) + siblings
// (32/entry + 8/level length prefix).
func merkleProofSizeBytes(p *merkle.Proof) uint64 {
	if p == nil {
		return 0
	}
	size := uint64(1)
	for _, level := range p.GroupSizes {
		size += bytesPerIndex + uint64(len(level))*1
	}
	for _, level := range p.Siblings {
		size += bytesPerIndex + uint64(len(level))*bytesPerField
	}
	return size
}

// ProofSizeBytes is a pure accounting function over a Proof's shape: it
// never serializes the proof, it only sums the byte cost each component
// would occupy on the wire, per the §6 sizing convention (32-byte field
// elements, 8-byte indices).
func ProofSizeBytes(p *Proof) uint64 {
	var total uint64

	for _, layer := range p.Layers {
		total += bytesPerField
		if layer.RootS != nil {
			total += bytesPerField
		}
	}

	// (omega_0, n0) preamble.
	total += bytesPerField + bytesPerIndex

	total += merkleProofSizeBytes(p.Final.Proof)
	total += bytesPerField

	for _, o := range p.Openings {
		total += merkleProofSizeBytes(o.ChildProofF)
		total += merkleProofSizeBytes(o.ChildProofS)
		total += merkleProofSizeBytes(o.ParentProofF)
		total += merkleProofSizeBytes(o.ParentProofS)

		total += bytesPerIndex + uint64(len(o.ChildIndices))*bytesPerIndex
		total += bytesPerIndex + uint64(len(o.ParentIndices))*bytesPerIndex

		total += uint64(len(o.ChildF)) * bytesPerField
		total += uint64(len(o.ChildS)) * bytesPerField
		total += uint64(len(o.ParentF)) * bytesPerField
		total += uint64(len(o.ParentS)) * bytesPerField
	}

	l := uint64(len(p.Params.Schedule))
	for range p.Queries {
		total += bytesPerIndex + bytesPerField // final index + final f
		total += l * (2*bytesPerIndex + 4*bytesPerField)
	}

	return total
}
