package poseidon

import "github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"

// Sponge is the bare width-t sponge construction over Poseidon: it exposes
// absorb/squeeze with no padding at this layer — padding, domain separation
// and challenge derivation are the caller's concern (the Transcript and
// Merkle layers build on top of this).
type Sponge struct {
	params *Params
	state  []*core.FieldElement
	cursor int
}

// NewSponge creates a sponge over params with a zeroed state.
func NewSponge(params *Params) *Sponge {
	state := make([]*core.FieldElement, params.Width)
	for i := range state {
		state[i] = core.DefaultField.Zero()
	}
	return &Sponge{params: params, state: state}
}

// Absorb adds each element into the current rate lane, permuting whenever
// the cursor reaches the rate.
func (s *Sponge) Absorb(elements []*core.FieldElement) {
	for _, x := range elements {
		s.state[s.cursor] = s.state[s.cursor].Add(x)
		s.cursor++
		if s.cursor == s.params.Rate {
			s.state = Permute(s.params, s.state)
			s.cursor = 0
		}
	}
}

// Squeeze produces n output field elements, permuting to refresh the rate
// whenever the cursor runs past it.
func (s *Sponge) Squeeze(n int) []*core.FieldElement {
	out := make([]*core.FieldElement, n)
	for i := 0; i < n; i++ {
		if s.cursor >= s.params.Rate {
			s.state = Permute(s.params, s.state)
			s.cursor = 0
		}
		out[i] = s.state[s.cursor]
		s.cursor++
	}
	return out
}

// ForcePermute permutes the state unconditionally and resets the cursor,
// used by callers (the Transcript's challenge derivation) that need a clean
// permutation boundary regardless of how full the rate currently is.
func (s *Sponge) ForcePermute() {
	s.state = Permute(s.params, s.state)
	s.cursor = 0
}

// State0 returns the current value of lane 0, the sponge's standard
// single-element squeeze output.
func (s *Sponge) State0() *core.FieldElement {
	return s.state[0]
}

// Cursor returns the current absorb/squeeze cursor position.
func (s *Sponge) Cursor() int {
	return s.cursor
}
