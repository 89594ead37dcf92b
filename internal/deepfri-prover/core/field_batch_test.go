package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBatchInversionMatchesIndividualInversions(t *testing.T) {
	values := make([]*FieldElement, 0, 16)
	for i := int64(1); i <= 16; i++ {
		values = append(values, DefaultField.NewElementFromInt64(i*7+3))
	}

	batched, err := DefaultField.BatchInversion(values)
	require.NoError(t, err)
	require.Len(t, batched, len(values))

	for i, v := range values {
		want, err := v.Inv()
		require.NoError(t, err)
		require.True(t, batched[i].Equal(want))
	}
}

func TestBatchInversionRejectsZero(t *testing.T) {
	values := []*FieldElement{
		DefaultField.NewElementFromInt64(1),
		DefaultField.Zero(),
		DefaultField.NewElementFromInt64(3),
	}
	_, err := DefaultField.BatchInversion(values)
	require.Error(t, err)
}

func TestParallelBatchInversionMatchesSequential(t *testing.T) {
	const n = 2048 // above the 1000-element parallel threshold
	values := make([]*FieldElement, n)
	for i := range values {
		values[i] = DefaultField.NewElementFromInt64(int64(i*13 + 1))
	}

	sequential, err := DefaultField.BatchInversion(values)
	require.NoError(t, err)
	parallel, err := DefaultField.ParallelBatchInversion(values, 8)
	require.NoError(t, err)

	require.Len(t, parallel, n)
	for i := range sequential {
		require.True(t, sequential[i].Equal(parallel[i]))
	}
}

func TestParallelBatchInversionFallsBackBelowThreshold(t *testing.T) {
	values := []*FieldElement{DefaultField.NewElementFromInt64(3), DefaultField.NewElementFromInt64(5)}
	out, err := DefaultField.ParallelBatchInversion(values, 8)
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestBatchInversionEmpty(t *testing.T) {
	out, err := DefaultField.BatchInversion(nil)
	require.NoError(t, err)
	require.Empty(t, out)
}
