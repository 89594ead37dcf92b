package fri

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
)

func TestDeriveFoldingChallengeIsDeterministicAndInRange(t *testing.T) {
	seed := []byte("seed-a")
	c1 := deriveFoldingChallenge(seed, 2, 16)
	c2 := deriveFoldingChallenge(seed, 2, 16)
	require.True(t, c1.Equal(c2))
	require.True(t, acceptableFoldChallenge(c1, 16))
}

func TestDeriveFoldingChallengeVariesWithLayerAndSize(t *testing.T) {
	seed := []byte("seed-a")
	c0 := deriveFoldingChallenge(seed, 0, 16)
	c1 := deriveFoldingChallenge(seed, 1, 16)
	require.False(t, c0.Equal(c1))

	cOtherSize := deriveFoldingChallenge(seed, 0, 32)
	require.False(t, c0.Equal(cOtherSize))
}

func TestDeriveQueryIndexIsDeterministicAndInRange(t *testing.T) {
	roots := []*core.FieldElement{core.DefaultField.NewElementFromInt64(11), core.DefaultField.NewElementFromInt64(22)}
	seed := deriveRootsSeed(roots)

	for layer := 0; layer < 3; layer++ {
		for q := 0; q < 10; q++ {
			idx := deriveQueryIndex(seed, layer, q, 37)
			require.Less(t, idx, uint64(37))

			again := deriveQueryIndex(seed, layer, q, 37)
			require.Equal(t, idx, again)
		}
	}
}

func TestDeriveRootsSeedChangesWithRoots(t *testing.T) {
	a := []*core.FieldElement{core.DefaultField.NewElementFromInt64(1)}
	b := []*core.FieldElement{core.DefaultField.NewElementFromInt64(2)}
	require.NotEqual(t, deriveRootsSeed(a), deriveRootsSeed(b))
}

func TestAcceptableFoldChallengeRejectsZeroAndDomainMembers(t *testing.T) {
	require.False(t, acceptableFoldChallenge(core.DefaultField.Zero(), 16))

	domain, err := core.NewDomain(16)
	require.NoError(t, err)
	require.False(t, acceptableFoldChallenge(domain.Element(3), 16))

	require.True(t, acceptableFoldChallenge(core.DefaultField.NewElementFromInt64(123456789), 16))
}
