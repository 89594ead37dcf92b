package poseidon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParamsForWidthAcceptsAllValidWidths(t *testing.T) {
	for _, width := range ValidWidths {
		p, err := ParamsForWidth(width)
		require.NoError(t, err)
		require.Equal(t, width, p.Width)
		require.Equal(t, width-1, p.Rate)
		require.Equal(t, 1, p.Capacity)
		require.Equal(t, RoundsFull, p.RoundsFull)
		require.Equal(t, roundsPartialByWidth[width], p.RoundsPartial)
	}
}

func TestParamsForWidthRejectsUnsupportedWidth(t *testing.T) {
	_, err := ParamsForWidth(12)
	require.Error(t, err)
}

func TestParamsForWidthIsDeterministic(t *testing.T) {
	a, err := ParamsForWidth(9)
	require.NoError(t, err)
	b, err := ParamsForWidth(9)
	require.NoError(t, err)

	require.Equal(t, len(a.roundConstants), len(b.roundConstants))
	for r := range a.roundConstants {
		for i := range a.roundConstants[r] {
			require.True(t, a.roundConstants[r][i].Equal(b.roundConstants[r][i]))
		}
	}
	for i := range a.mdsMatrix {
		for j := range a.mdsMatrix[i] {
			require.True(t, a.mdsMatrix[i][j].Equal(b.mdsMatrix[i][j]))
		}
	}
}

func TestDifferentWidthsProduceDifferentConstants(t *testing.T) {
	a, err := ParamsForWidth(9)
	require.NoError(t, err)
	b, err := ParamsForWidth(17)
	require.NoError(t, err)

	require.False(t, a.roundConstants[0][0].Equal(b.roundConstants[0][0]))
}
