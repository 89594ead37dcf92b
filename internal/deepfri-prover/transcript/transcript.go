// Package transcript implements the Fiat-Shamir sponge channel every prover
// and verifier side of this core uses to derive challenges: a Poseidon
// sponge of width t with rate r = t-1 and capacity 1, domain-separated by
// labeled DS fields at construction, before every byte-string absorb and
// before every challenge. Field elements are absorbed without a DS field.
package transcript

import (
	"encoding/binary"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/poseidon"
)

// wordBytes is the width of a little-endian field word used to encode raw
// bytes for absorption: 31 bytes keeps every word strictly below the field
// modulus regardless of content, avoiding field-order bias.
const wordBytes = 31

// Transcript is a single-owner Fiat-Shamir channel. It is never shared
// across the prover/verifier boundary; each side owns its own instance and
// the two stay in lockstep only by absorbing identical message sequences.
type Transcript struct {
	params *poseidon.Params
	sponge *poseidon.Sponge
}

// New creates a transcript over the given Poseidon parameters, seeded with a
// per-construction DS field and the context label. Distinct context labels
// at construction produce non-interfering transcripts.
func New(contextLabel []byte, params *poseidon.Params) *Transcript {
	t := &Transcript{
		params: params,
		sponge: poseidon.NewSponge(params),
	}
	t.sponge.Absorb([]*core.FieldElement{dsField("TRANSCRIPT-INIT")})
	t.sponge.Absorb(encodeBytes(contextLabel))
	return t
}

// AbsorbBytes absorbs an arbitrary byte string: a labeled DS field for
// "ABSORB-BYTES" is absorbed first, then the bytes themselves are encoded
// into 31-byte little-endian field words and absorbed in order.
func (t *Transcript) AbsorbBytes(b []byte) {
	t.sponge.Absorb([]*core.FieldElement{dsField("ABSORB-BYTES")})
	t.sponge.Absorb(encodeBytes(b))
}

// AbsorbField absorbs a single field element into the current rate lane,
// permuting at block boundaries.
func (t *Transcript) AbsorbField(x *core.FieldElement) {
	t.sponge.Absorb([]*core.FieldElement{x})
}

// AbsorbFields absorbs a sequence of field elements in order.
func (t *Transcript) AbsorbFields(xs []*core.FieldElement) {
	t.sponge.Absorb(xs)
}

// Challenge absorbs a "CHALLENGE" DS field followed by label, forces a
// permutation, resets the cursor, and returns the new state[0].
func (t *Transcript) Challenge(label []byte) *core.FieldElement {
	t.sponge.Absorb([]*core.FieldElement{dsField("CHALLENGE")})
	t.sponge.Absorb(encodeBytes(label))
	t.sponge.ForcePermute()
	return t.sponge.State0()
}

// Challenges returns n challenges, each derived as Challenge(label ||
// i_le_bytes) for i = 0..n-1.
func (t *Transcript) Challenges(label []byte, n int) []*core.FieldElement {
	out := make([]*core.FieldElement, n)
	for i := 0; i < n; i++ {
		var idx [8]byte
		binary.LittleEndian.PutUint64(idx[:], uint64(i))
		scoped := append(append([]byte{}, label...), idx[:]...)
		out[i] = t.Challenge(scoped)
	}
	return out
}

// dsField derives a single domain-separation field element from an ASCII
// label by encoding its bytes as a little-endian field word; labels used in
// this core are always short enough to fit in one word.
func dsField(label string) *core.FieldElement {
	words := encodeBytes([]byte(label))
	if len(words) == 0 {
		return core.DefaultField.Zero()
	}
	return words[0]
}

// encodeBytes splits b into 31-byte little-endian chunks, each interpreted
// as a field element below the modulus by construction.
func encodeBytes(b []byte) []*core.FieldElement {
	if len(b) == 0 {
		return []*core.FieldElement{core.DefaultField.Zero()}
	}
	var words []*core.FieldElement
	for i := 0; i < len(b); i += wordBytes {
		end := i + wordBytes
		if end > len(b) {
			end = len(b)
		}
		chunk := b[i:end]
		buf := make([]byte, wordBytes)
		copy(buf, chunk)
		// Interpret as little-endian: reverse into big-endian for big.Int.
		be := make([]byte, len(buf))
		for j := range buf {
			be[len(buf)-1-j] = buf[j]
		}
		words = append(words, core.DefaultField.FromBytes(be))
	}
	return words
}
