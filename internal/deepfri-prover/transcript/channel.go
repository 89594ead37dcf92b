package transcript

import (
	"encoding/binary"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
)

// Channel wraps a Transcript with message-typed helpers so the prover and
// verifier sides of this core absorb structured messages identically: a
// digest under a label, or an opening (indices, values, proof fields) under
// a fixed sub-label. SendX and RecvX perform the same absorb sequence by
// construction, since both call the same helper.
type Channel struct {
	T *Transcript
}

// NewChannel wraps t in a Channel.
func NewChannel(t *Transcript) *Channel {
	return &Channel{T: t}
}

// SendDigest absorbs a single digest under a fixed sub-label, used for
// Merkle roots and other commitments.
func (c *Channel) SendDigest(label string, digest *core.FieldElement) {
	c.T.AbsorbBytes([]byte("DIGEST/" + label))
	c.T.AbsorbField(digest)
}

// RecvDigest performs the identical absorb sequence as SendDigest on the
// verifier's transcript.
func (c *Channel) RecvDigest(label string, digest *core.FieldElement) {
	c.SendDigest(label, digest)
}

// SendOpening absorbs an opening: a label, the queried indices, the opened
// values, and the flattened proof fields, all under a fixed sub-label.
func (c *Channel) SendOpening(label string, indices []uint64, values []*core.FieldElement, proofFields []*core.FieldElement) {
	c.T.AbsorbBytes([]byte("OPENING/" + label))
	for _, idx := range indices {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], idx)
		c.T.AbsorbBytes(buf[:])
	}
	c.T.AbsorbFields(values)
	c.T.AbsorbFields(proofFields)
}

// RecvOpening performs the identical absorb sequence as SendOpening.
func (c *Channel) RecvOpening(label string, indices []uint64, values []*core.FieldElement, proofFields []*core.FieldElement) {
	c.SendOpening(label, indices, values, proofFields)
}
