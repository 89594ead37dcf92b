package deepfriprover

import (
	"fmt"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/fri"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/merkle"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/poseidon"
)

// FieldElement is the core.FieldElement type, re-exported for callers that
// need to construct or inspect field values without importing internal/.
type FieldElement = core.FieldElement

// Field is the core.Field type.
type Field = core.Field

// Domain is the core.Domain multiplicative subgroup type.
type Domain = core.Domain

// PoseidonParams are the deterministic, width-keyed Poseidon parameters.
type PoseidonParams = poseidon.Params

// MerkleConfig is a Merkle tree's arity/label/parameter shape.
type MerkleConfig = merkle.Config

// MerkleTree is a committed high-arity Merkle tree.
type MerkleTree = merkle.Tree

// MerkleProof is a union-of-paths multiproof.
type MerkleProof = merkle.Proof

// FriParams are the public DEEP-FRI parameters: schedule, query count, and
// the seed driving every challenge derivation.
type FriParams = fri.Params

// FriProof is the complete DEEP-FRI proof artifact.
type FriProof = fri.Proof

// Config is the builder surface over the knobs this core exposes: the
// Merkle arity/label defaults and the DEEP-FRI schedule/query/seed
// defaults. It follows the same With*-returning-pointer/Validate() shape
// as this repo's ambient configuration layer.
type Config struct {
	MerkleArity     uint64
	MerkleTreeLabel uint64
	Schedule        []uint64
	Queries         int
	SeedZ           []byte
	N0              uint64
}

// DefaultConfig returns a reasonable default shape: arity 16 (the widest
// pair-leaf arity), a zero tree label, a [8,8,2] schedule, 32 queries, and
// no base size (the caller must set N0).
func DefaultConfig() *Config {
	return &Config{
		MerkleArity:     16,
		MerkleTreeLabel: 0,
		Schedule:        []uint64{8, 8, 2},
		Queries:         32,
		SeedZ:           []byte("deepfri-prover/default-seed"),
	}
}

// WithMerkleArity sets the default Merkle arity.
func (c *Config) WithMerkleArity(arity uint64) *Config {
	c.MerkleArity = arity
	return c
}

// WithMerkleTreeLabel sets the default Merkle tree label.
func (c *Config) WithMerkleTreeLabel(label uint64) *Config {
	c.MerkleTreeLabel = label
	return c
}

// WithSchedule sets the DEEP-FRI folding schedule.
func (c *Config) WithSchedule(schedule []uint64) *Config {
	c.Schedule = append([]uint64{}, schedule...)
	return c
}

// WithQueries sets the number of DEEP-FRI queries.
func (c *Config) WithQueries(queries int) *Config {
	c.Queries = queries
	return c
}

// WithSeedZ sets the seed driving z_l and query index derivation.
func (c *Config) WithSeedZ(seed []byte) *Config {
	c.SeedZ = append([]byte{}, seed...)
	return c
}

// WithN0 sets the base layer size n0.
func (c *Config) WithN0(n0 uint64) *Config {
	c.N0 = n0
	return c
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if err := merkleArityValid(c.MerkleArity); err != nil {
		return err
	}
	if len(c.Schedule) == 0 {
		return fmt.Errorf("schedule must not be empty")
	}
	if c.Queries <= 0 {
		return fmt.Errorf("queries must be positive")
	}
	if c.N0 == 0 {
		return fmt.Errorf("n0 must be positive")
	}
	return fri.ValidateSchedule(c.Schedule, c.N0)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	return &Config{
		MerkleArity:     c.MerkleArity,
		MerkleTreeLabel: c.MerkleTreeLabel,
		Schedule:        append([]uint64{}, c.Schedule...),
		Queries:         c.Queries,
		SeedZ:           append([]byte{}, c.SeedZ...),
		N0:              c.N0,
	}
}

// FriParams converts this Config into the fri.Params the prover/verifier
// contracts expect.
func (c *Config) FriParams() FriParams {
	return FriParams{
		Schedule: append([]uint64{}, c.Schedule...),
		Queries:  c.Queries,
		SeedZ:    append([]byte{}, c.SeedZ...),
		N0:       c.N0,
	}
}

func merkleArityValid(arity uint64) error {
	for _, a := range merkle.ValidArities {
		if a == arity {
			return nil
		}
	}
	return fmt.Errorf("merkle arity %d is not one of %v", arity, merkle.ValidArities)
}
