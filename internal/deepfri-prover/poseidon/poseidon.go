package poseidon

import "github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"

// Permute applies the full Poseidon permutation to state and returns the
// result in a new slice (the input slice is left unchanged): RF/2 full
// rounds, RP partial rounds (S-box on lane 0 only), then RF/2 more full
// rounds, each round being ARK -> S-box -> MDS.
func Permute(p *Params, state []*core.FieldElement) []*core.FieldElement {
	if len(state) != p.Width {
		panic("poseidon: state width does not match parameters")
	}

	round := 0
	for i := 0; i < p.RoundsFull/2; i++ {
		state = fullRound(p, state, round)
		round++
	}
	for i := 0; i < p.RoundsPartial; i++ {
		state = partialRound(p, state, round)
		round++
	}
	for i := 0; i < p.RoundsFull/2; i++ {
		state = fullRound(p, state, round)
		round++
	}
	return state
}

func fullRound(p *Params, state []*core.FieldElement, round int) []*core.FieldElement {
	state = addRoundConstants(p, state, round)
	for i := range state {
		state[i] = sbox(state[i])
	}
	return applyMDS(p, state)
}

func partialRound(p *Params, state []*core.FieldElement, round int) []*core.FieldElement {
	state = addRoundConstants(p, state, round)
	state[0] = sbox(state[0])
	return applyMDS(p, state)
}

func addRoundConstants(p *Params, state []*core.FieldElement, round int) []*core.FieldElement {
	out := make([]*core.FieldElement, p.Width)
	rc := p.roundConstants[round]
	for i := range state {
		out[i] = state[i].Add(rc[i])
	}
	return out
}

func sbox(x *core.FieldElement) *core.FieldElement {
	return x.ExpUint64(SboxPower)
}

func applyMDS(p *Params, state []*core.FieldElement) []*core.FieldElement {
	out := make([]*core.FieldElement, p.Width)
	for i := 0; i < p.Width; i++ {
		acc := core.DefaultField.Zero()
		row := p.mdsMatrix[i]
		for j := 0; j < p.Width; j++ {
			acc = acc.Add(state[j].Mul(row[j]))
		}
		out[i] = acc
	}
	return out
}

// HashDS is the domain-separated hashing contract shared by the Merkle and
// Transcript layers: it initializes a zero state, absorbs ds_fields then
// inputs with no padding, permutes whenever the rate fills and once more
// unconditionally before the final read, and returns state[0]. Given
// identical (ds, inputs, P), it is deterministic; any change in any
// component changes the output with overwhelming probability.
func HashDS(p *Params, dsFields []*core.FieldElement, inputs []*core.FieldElement) *core.FieldElement {
	state := make([]*core.FieldElement, p.Width)
	for i := range state {
		state[i] = core.DefaultField.Zero()
	}

	cursor := 0
	absorb := func(x *core.FieldElement) {
		state[cursor] = state[cursor].Add(x)
		cursor++
		if cursor == p.Rate {
			state = Permute(p, state)
			cursor = 0
		}
	}

	for _, x := range dsFields {
		absorb(x)
	}
	for _, x := range inputs {
		absorb(x)
	}

	// Permute once more so a final partial block is always mixed before the
	// read, keeping the contract identical whether or not the last block
	// exactly filled the rate.
	state = Permute(p, state)
	return state[0]
}
