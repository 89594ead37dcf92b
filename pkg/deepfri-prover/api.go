package deepfriprover

import (
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/fri"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/merkle"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/poseidon"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/transcript"
)

// --- Poseidon contract ---

// ParamsForWidth returns the deterministic Poseidon parameters for width t
// (one of 9, 17, 33, 65).
func ParamsForWidth(t int) (*PoseidonParams, error) {
	p, err := poseidon.ParamsForWidth(t)
	if err != nil {
		return nil, wrapf(ErrInvalidWidth, err, "resolving Poseidon parameters for width %d", t)
	}
	return p, nil
}

// HashDS is the domain-separated Poseidon hashing contract shared by the
// Merkle and Transcript layers.
func HashDS(p *PoseidonParams, dsFields, inputs []*FieldElement) *FieldElement {
	return poseidon.HashDS(p, dsFields, inputs)
}

// --- Transcript contract ---

// Transcript is the Fiat-Shamir sponge channel type.
type Transcript = transcript.Transcript

// NewTranscript creates a transcript over the given context label and
// Poseidon parameters.
func NewTranscript(contextLabel []byte, p *PoseidonParams) *Transcript {
	return transcript.New(contextLabel, p)
}

// --- Merkle contract ---

// NewMerkleConfig builds a Merkle configuration for the given arity and
// tree label.
func NewMerkleConfig(arity uint64, treeLabel uint64) (*MerkleConfig, error) {
	cfg, err := merkle.NewConfig(arity, treeLabel)
	if err != nil {
		return nil, wrapf(ErrInvalidArity, err, "building Merkle config for arity %d", arity)
	}
	return cfg, nil
}

// CommitSingle builds a single-column Merkle tree over leaves.
func CommitSingle(cfg *MerkleConfig, leaves []*FieldElement) (*FieldElement, *MerkleTree, error) {
	tree, err := merkle.CommitSingle(cfg, leaves)
	if err != nil {
		return nil, nil, wrapf(ErrInvalidInput, err, "committing single-column Merkle tree")
	}
	return tree.Root(), tree, nil
}

// CommitPairs builds a pair-leaf Merkle tree over (f,s) columns.
func CommitPairs(cfg *MerkleConfig, f, s []*FieldElement) (*FieldElement, *MerkleTree, error) {
	tree, err := merkle.CommitPairs(cfg, f, s)
	if err != nil {
		return nil, nil, wrapf(ErrInvalidInput, err, "committing pair-leaf Merkle tree")
	}
	return tree.Root(), tree, nil
}

// Open builds a union-of-paths multiproof for the given tree and indices.
func Open(tree *MerkleTree, indices []uint64) *MerkleProof {
	return tree.Open(indices)
}

// VerifySingle verifies a single-column multiproof.
func VerifySingle(cfg *MerkleConfig, root *FieldElement, indices []uint64, values []*FieldElement, proof *MerkleProof) bool {
	return merkle.VerifySingle(cfg, root, indices, values, proof)
}

// VerifyPairs verifies a pair-leaf multiproof.
func VerifyPairs(cfg *MerkleConfig, root *FieldElement, indices []uint64, pairs [][2]*FieldElement, proof *MerkleProof) bool {
	return merkle.VerifyPairs(cfg, root, indices, pairs, proof)
}

// --- DeepFri contract ---

// Prove builds a complete DEEP-FRI proof from public evaluation vectors
// A, S, E, T under params (schedule, query count, seed_z, n0).
func Prove(a, s, e, t []*FieldElement, params FriParams) (*FriProof, error) {
	proof, err := fri.Prove(a, s, e, t, params)
	if err != nil {
		return nil, wrapf(ErrProofGeneration, err, "generating DEEP-FRI proof")
	}
	return proof, nil
}

// Verify checks a DEEP-FRI proof against params. It never panics: any
// structural, cryptographic, protocol, or parametric failure yields false.
func Verify(params FriParams, proof *FriProof) bool {
	return fri.Verify(params, proof)
}

// ProofSizeBytes is the pure byte-accounting function over a proof's shape.
func ProofSizeBytes(proof *FriProof) uint64 {
	return fri.ProofSizeBytes(proof)
}

// --- Field / domain helpers ---

// DefaultField is the ~256-bit prime field every component in this core
// shares.
var DefaultField = core.DefaultField

// NewDomain builds H(n) for n a power of two within the field's
// two-adicity.
func NewDomain(n uint64) (*Domain, error) {
	d, err := core.NewDomain(n)
	if err != nil {
		return nil, wrapf(ErrInvalidConfig, err, "building domain of size %d", n)
	}
	return d, nil
}
