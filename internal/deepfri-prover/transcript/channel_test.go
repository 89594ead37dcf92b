package transcript

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
)

func TestChannelSendRecvDigestAgree(t *testing.T) {
	p := testParams(t)

	proverT := New([]byte("ctx"), p)
	verifierT := New([]byte("ctx"), p)
	proverC := NewChannel(proverT)
	verifierC := NewChannel(verifierT)

	digest := core.DefaultField.NewElementFromInt64(555)
	proverC.SendDigest("root", digest)
	verifierC.RecvDigest("root", digest)

	require.True(t, proverT.Challenge([]byte("post")).Equal(verifierT.Challenge([]byte("post"))))
}

func TestChannelSendRecvOpeningAgree(t *testing.T) {
	p := testParams(t)

	proverT := New([]byte("ctx"), p)
	verifierT := New([]byte("ctx"), p)
	proverC := NewChannel(proverT)
	verifierC := NewChannel(verifierT)

	indices := []uint64{3, 7, 9}
	values := []*core.FieldElement{
		core.DefaultField.NewElementFromInt64(1),
		core.DefaultField.NewElementFromInt64(2),
		core.DefaultField.NewElementFromInt64(3),
	}
	proofFields := []*core.FieldElement{core.DefaultField.NewElementFromInt64(99)}

	proverC.SendOpening("layer0", indices, values, proofFields)
	verifierC.RecvOpening("layer0", indices, values, proofFields)

	require.True(t, proverT.Challenge([]byte("post")).Equal(verifierT.Challenge([]byte("post"))))
}

func TestChannelDifferentOpeningsDiverge(t *testing.T) {
	p := testParams(t)

	trA := New([]byte("ctx"), p)
	trB := New([]byte("ctx"), p)
	cA := NewChannel(trA)
	cB := NewChannel(trB)

	cA.SendOpening("layer0", []uint64{1}, []*core.FieldElement{core.DefaultField.NewElementFromInt64(1)}, nil)
	cB.SendOpening("layer0", []uint64{1}, []*core.FieldElement{core.DefaultField.NewElementFromInt64(2)}, nil)

	require.False(t, trA.Challenge([]byte("post")).Equal(trB.Challenge([]byte("post"))))
}
