package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDomainElementsAreDistinctPowersOfOmega(t *testing.T) {
	d, err := NewDomain(64)
	require.NoError(t, err)
	require.Equal(t, uint64(64), d.Size())

	seen := make(map[string]bool)
	for i := uint64(0); i < d.Size(); i++ {
		e := d.Element(i)
		require.False(t, seen[e.String()], "duplicate domain element at index %d", i)
		seen[e.String()] = true
		require.True(t, d.Contains(e))
	}
	require.True(t, d.Element(0).IsOne())
	require.True(t, d.Element(64).Equal(d.Element(0)), "Element should wrap modulo size")
}

func TestDomainVanishingEvalIsZeroOnDomainOnly(t *testing.T) {
	d, err := NewDomain(32)
	require.NoError(t, err)

	for i := uint64(0); i < d.Size(); i++ {
		require.True(t, d.VanishingEval(d.Element(i)).IsZero())
	}

	off := DefaultField.NewElementFromInt64(999999)
	require.False(t, d.Contains(off))
	require.False(t, d.VanishingEval(off).IsZero())
}

func TestNewDomainRejectsNonPowerOfTwo(t *testing.T) {
	_, err := NewDomain(100)
	require.Error(t, err)
}
