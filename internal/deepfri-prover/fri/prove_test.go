package fri

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
)

func lcgEvals(n uint64, seed int64) []*core.FieldElement {
	out := make([]*core.FieldElement, n)
	x := seed
	for i := range out {
		x = x*6364136223846793005 + 1442695040888963407
		out[i] = core.DefaultField.NewElement(new(big.Int).SetInt64(x))
	}
	return out
}

func roundTripParams() ([]*core.FieldElement, []*core.FieldElement, []*core.FieldElement, []*core.FieldElement, Params) {
	const n0 = 128
	a := lcgEvals(n0, 2025)
	s := lcgEvals(n0, 2025+1)
	e := lcgEvals(n0, 2025+2)
	t := make([]*core.FieldElement, n0)
	for i := range t {
		t[i] = a[i].Mul(s[i]).Add(e[i])
	}
	params := Params{
		Schedule: []uint64{8, 8, 2},
		Queries:  32,
		SeedZ:    []byte{0x12, 0x34, 0x56, 0x78, 0xAB, 0xCD},
		N0:       n0,
	}
	return a, s, e, t, params
}

// TestDeepFRIRoundTrip is the spec's concrete scenario 4: n0=128,
// schedule=[8,8,2], 32 queries, seed_z=0x12345678ABCD, f0 derived from an
// A,S,E,T quadruple with T=A*S+E (so Phi vanishes identically and folding
// degenerates to the zero polynomial, the simplest case the fold/commit/
// verify pipeline must still accept).
func TestDeepFRIRoundTrip(t *testing.T) {
	a, s, e, tt, params := roundTripParams()

	proof, err := Prove(a, s, e, tt, params)
	require.NoError(t, err)
	require.True(t, Verify(params, proof))
}

// TestDeepFRIRejectsTamperedOpening is the spec's concrete scenario 5:
// flipping the first byte of an opened f value in query 0's layer-0 child
// opening must flip verification to false.
func TestDeepFRIRejectsTamperedOpening(t *testing.T) {
	a, s, e, tt, params := roundTripParams()

	proof, err := Prove(a, s, e, tt, params)
	require.NoError(t, err)
	require.NotEmpty(t, proof.Openings[0].ChildF)

	tampered := *proof
	tampered.Openings = append([]LayerOpening{}, proof.Openings...)
	openingZero := proof.Openings[0]
	tamperedChildF := append([]*core.FieldElement{}, openingZero.ChildF...)

	// Locate query 0's layer-0 child index inside the batched child opening.
	pos := 0
	for i, idx := range openingZero.ChildIndices {
		if idx == proof.Queries[0].ChildIndex[0] {
			pos = i
		}
	}

	b := tamperedChildF[pos].Bytes()
	b[0] ^= 0xFF
	tamperedChildF[pos] = core.DefaultField.FromBytes(b)

	openingZero.ChildF = tamperedChildF
	tampered.Openings[0] = openingZero

	require.False(t, Verify(params, &tampered))
}

// TestDeepFRIVerifyRejectsMismatchedPairLengths guards against a regression
// where a malformed pair-leaf opening with ChildF and ChildS of different
// lengths panicked inside zipPairs instead of failing verification cleanly.
func TestDeepFRIVerifyRejectsMismatchedPairLengths(t *testing.T) {
	a, s, e, tt, params := roundTripParams()
	proof, err := Prove(a, s, e, tt, params)
	require.NoError(t, err)
	require.True(t, proof.Layers[0].PairLeaf)
	require.NotEmpty(t, proof.Openings[0].ChildS)

	tampered := *proof
	tampered.Openings = append([]LayerOpening{}, proof.Openings...)
	openingZero := proof.Openings[0]
	openingZero.ChildS = openingZero.ChildS[:len(openingZero.ChildS)-1]
	tampered.Openings[0] = openingZero

	require.NotPanics(t, func() {
		require.False(t, Verify(params, &tampered))
	})
}

func TestDeepFRIRejectsWrongSchedule(t *testing.T) {
	a, s, e, tt, params := roundTripParams()
	proof, err := Prove(a, s, e, tt, params)
	require.NoError(t, err)

	wrongParams := params
	wrongParams.Schedule = []uint64{8, 16}
	require.False(t, Verify(wrongParams, proof))
}

func TestDeepFRIRejectsMismatchedSeed(t *testing.T) {
	a, s, e, tt, params := roundTripParams()
	proof, err := Prove(a, s, e, tt, params)
	require.NoError(t, err)

	wrongParams := params
	wrongParams.SeedZ = []byte("totally different seed")
	require.False(t, Verify(wrongParams, proof))
}

func TestProveRejectsBadSchedule(t *testing.T) {
	a, s, e, tt, params := roundTripParams()
	params.Schedule = []uint64{7}
	_, err := Prove(a, s, e, tt, params)
	require.Error(t, err)
}

func TestProofSizeBytesIsPositiveAndStable(t *testing.T) {
	a, s, e, tt, params := roundTripParams()
	proof, err := Prove(a, s, e, tt, params)
	require.NoError(t, err)

	size1 := ProofSizeBytes(proof)
	size2 := ProofSizeBytes(proof)
	require.Equal(t, size1, size2)
	require.Greater(t, size1, uint64(0))
}
