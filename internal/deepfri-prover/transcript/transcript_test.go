package transcript

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/poseidon"
)

func testParams(t *testing.T) *poseidon.Params {
	p, err := poseidon.ParamsForWidth(9)
	require.NoError(t, err)
	return p
}

// TestTranscriptStability is the spec's context "ctx-A" / absorb "hello" /
// three challenges under label "alpha" scenario: two transcripts built the
// same way must agree, and flipping the absorbed message must change the
// first challenge drawn afterward.
func TestTranscriptStability(t *testing.T) {
	p := testParams(t)

	run := func(message string) []*core.FieldElement {
		tr := New([]byte("ctx-A"), p)
		tr.AbsorbBytes([]byte(message))
		return tr.Challenges([]byte("alpha"), 3)
	}

	a := run("hello")
	b := run("hello")
	require.Len(t, a, 3)
	for i := range a {
		require.True(t, a[i].Equal(b[i]), "challenge %d should be stable across identical transcripts", i)
	}

	c := run("hellp")
	require.False(t, a[0].Equal(c[0]), "flipping the absorbed message must change the first challenge")
}

func TestTranscriptDistinctContextLabelsDiverge(t *testing.T) {
	p := testParams(t)

	trA := New([]byte("ctx-A"), p)
	trB := New([]byte("ctx-B"), p)

	challengeA := trA.Challenge([]byte("x"))
	challengeB := trB.Challenge([]byte("x"))
	require.False(t, challengeA.Equal(challengeB))
}

func TestTranscriptChallengeResetsCursorAndAdvancesState(t *testing.T) {
	p := testParams(t)
	tr := New([]byte("ctx"), p)

	first := tr.Challenge([]byte("a"))
	require.Equal(t, 0, tr.sponge.Cursor(), "a challenge must leave the cursor at 0")
	second := tr.Challenge([]byte("a"))
	require.False(t, first.Equal(second), "repeated challenge calls under the same label must not repeat the output")
}

func TestTranscriptAbsorbFieldAffectsChallenge(t *testing.T) {
	p := testParams(t)

	tr1 := New([]byte("ctx"), p)
	tr1.AbsorbField(core.DefaultField.NewElementFromInt64(1))
	c1 := tr1.Challenge([]byte("label"))

	tr2 := New([]byte("ctx"), p)
	tr2.AbsorbField(core.DefaultField.NewElementFromInt64(2))
	c2 := tr2.Challenge([]byte("label"))

	require.False(t, c1.Equal(c2))
}
