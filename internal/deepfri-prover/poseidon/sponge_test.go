package poseidon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
)

func TestSpongeAbsorbPermutesAtRateBoundary(t *testing.T) {
	p, err := ParamsForWidth(9)
	require.NoError(t, err)

	s := NewSponge(p)
	require.Equal(t, 0, s.Cursor())

	elems := make([]*core.FieldElement, p.Rate)
	for i := range elems {
		elems[i] = core.DefaultField.NewElementFromInt64(int64(i + 1))
	}
	s.Absorb(elems)
	require.Equal(t, 0, s.Cursor(), "cursor should wrap to 0 after a full rate block")
}

func TestSpongeSqueezeIsDeterministicGivenSameAbsorbs(t *testing.T) {
	p, err := ParamsForWidth(9)
	require.NoError(t, err)

	build := func() []*core.FieldElement {
		s := NewSponge(p)
		s.Absorb([]*core.FieldElement{core.DefaultField.NewElementFromInt64(42)})
		return s.Squeeze(3)
	}

	a := build()
	b := build()
	for i := range a {
		require.True(t, a[i].Equal(b[i]))
	}
}

func TestSpongeForcePermuteResetsCursor(t *testing.T) {
	p, err := ParamsForWidth(9)
	require.NoError(t, err)

	s := NewSponge(p)
	s.Absorb([]*core.FieldElement{core.DefaultField.NewElementFromInt64(1), core.DefaultField.NewElementFromInt64(2)})
	before := s.State0()
	s.ForcePermute()
	require.Equal(t, 0, s.Cursor())
	require.False(t, s.State0().Equal(before))
}
