// Package poseidon implements the Poseidon permutation and sponge at the
// widths this core requires (t ∈ {9, 17, 33, 65}), plus a deterministic,
// width-only parameter derivation so every caller gets identical MDS/ARK
// constants for a given width.
package poseidon

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
)

// SboxPower is the Poseidon S-box exponent alpha used throughout this core.
const SboxPower = 5

// RoundsFull is the number of full rounds RF, split RF/2 before and RF/2
// after the partial rounds, for every supported width.
const RoundsFull = 8

// Params holds a fully materialized Poseidon parameter set for one width.
type Params struct {
	Width          int
	Rate           int
	Capacity       int
	RoundsFull     int
	RoundsPartial  int
	SboxPower      int
	roundConstants [][]*core.FieldElement
	mdsMatrix      [][]*core.FieldElement
}

// roundsPartialByWidth is the per-width partial round count. Widths and
// round counts are fixed by this table alone: the same width always
// produces the same parameters.
var roundsPartialByWidth = map[int]int{
	9:  41,
	17: 41,
	33: 42,
	65: 43,
}

// ValidWidths enumerates the widths this core supports.
var ValidWidths = []int{9, 17, 33, 65}

// ParamsForWidth returns the deterministic Poseidon parameters for width t.
// t must be one of {9, 17, 33, 65}; any other value is a precondition
// violation (the core assumes internal callers, per the error handling
// design) and is reported as an error rather than silently coerced.
func ParamsForWidth(t int) (*Params, error) {
	rp, ok := roundsPartialByWidth[t]
	if !ok {
		return nil, fmt.Errorf("poseidon: unsupported width %d (valid: %v)", t, ValidWidths)
	}

	rate := t - 1
	seed := deriveLabeledSeed(t, rate, RoundsFull, rp)

	ark, err := generateRoundConstants(seed, t, RoundsFull+rp)
	if err != nil {
		return nil, fmt.Errorf("poseidon: generating round constants for width %d: %w", t, err)
	}
	mds, err := generateCauchyMDS(t)
	if err != nil {
		return nil, fmt.Errorf("poseidon: generating MDS matrix for width %d: %w", t, err)
	}

	return &Params{
		Width:          t,
		Rate:           rate,
		Capacity:       1,
		RoundsFull:     RoundsFull,
		RoundsPartial:  rp,
		SboxPower:      SboxPower,
		roundConstants: ark,
		mdsMatrix:      mds,
	}, nil
}

// deriveLabeledSeed builds the labeled XOF seed for a width's parameter
// generation: the width, rate, and round counts are mixed into the label so
// no two distinct parameter shapes can collide on the same constant stream.
func deriveLabeledSeed(width, rate, rf, rp int) []byte {
	buf := make([]byte, 0, 32)
	buf = append(buf, []byte("DEEPFRI-POSEIDON-PARAMS-V1")...)
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(width))
	buf = append(buf, tmp[:]...)
	binary.LittleEndian.PutUint32(tmp[:], uint32(rate))
	buf = append(buf, tmp[:]...)
	binary.LittleEndian.PutUint32(tmp[:], uint32(rf))
	buf = append(buf, tmp[:]...)
	binary.LittleEndian.PutUint32(tmp[:], uint32(rp))
	buf = append(buf, tmp[:]...)
	return buf
}

// constantStream is a deterministic field-element generator backed by a
// SHAKE256 XOF, playing the role the Grain LFSR plays in published Poseidon
// parameter generators: a wide, labeled, reproducible stream of randomness
// keyed only by the width's shape, rejection-sampled into the field.
type constantStream struct {
	xof sha3.ShakeHash
}

func newConstantStream(seed []byte) *constantStream {
	xof := sha3.NewShake256()
	xof.Write(seed)
	return &constantStream{xof: xof}
}

func (c *constantStream) nextFieldElement() *core.FieldElement {
	var buf [core.ByteWidth]byte
	for {
		c.xof.Read(buf[:])
		candidate := new(big.Int).SetBytes(buf[:])
		if candidate.Cmp(core.StarkPrime) < 0 {
			return core.DefaultField.NewElement(candidate)
		}
		// Rejected: candidate >= p. Draw again from the same stream.
	}
}

func generateRoundConstants(seed []byte, width, totalRounds int) ([][]*core.FieldElement, error) {
	stream := newConstantStream(seed)
	constants := make([][]*core.FieldElement, totalRounds)
	for r := 0; r < totalRounds; r++ {
		row := make([]*core.FieldElement, width)
		for i := 0; i < width; i++ {
			row[i] = stream.nextFieldElement()
		}
		constants[r] = row
	}
	return constants, nil
}

// generateCauchyMDS builds a width x width Cauchy matrix M[i][j] = 1/(x_i -
// y_j) over disjoint point sets {x_i} and {y_j}, which is always MDS.
func generateCauchyMDS(width int) ([][]*core.FieldElement, error) {
	field := core.DefaultField
	matrix := make([][]*core.FieldElement, width)
	for i := 0; i < width; i++ {
		matrix[i] = make([]*core.FieldElement, width)
		x := field.NewElementFromInt64(int64(i + 1))
		for j := 0; j < width; j++ {
			y := field.NewElementFromInt64(int64(j + width + 1))
			diff := x.Sub(y)
			if diff.IsZero() {
				return nil, fmt.Errorf("degenerate Cauchy matrix entry at (%d,%d)", i, j)
			}
			inv, err := diff.Inv()
			if err != nil {
				return nil, fmt.Errorf("inverting Cauchy entry (%d,%d): %w", i, j, err)
			}
			matrix[i][j] = inv
		}
	}
	return matrix, nil
}
