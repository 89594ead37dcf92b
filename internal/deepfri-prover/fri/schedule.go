package fri

import "fmt"

// validFoldingFactors enumerates the folding factors a schedule entry may
// use.
var validFoldingFactors = map[uint64]bool{2: true, 8: true, 16: true, 32: true, 64: true, 128: true}

// arityCandidates lists the Merkle arities a layer commitment may choose,
// tried largest-first.
var arityCandidates = []uint64{16, 8, 2, 1}

// ValidateSchedule checks that every factor is a legal power of two and
// that the schedule's prefix product divides n0. This is a precondition
// check: a bad schedule is a caller bug, not a data error.
func ValidateSchedule(schedule []uint64, n0 uint64) error {
	if len(schedule) == 0 {
		return fmt.Errorf("fri: schedule must not be empty")
	}
	product := uint64(1)
	for i, m := range schedule {
		if !validFoldingFactors[m] {
			return fmt.Errorf("fri: schedule[%d] = %d is not a supported folding factor", i, m)
		}
		product *= m
	}
	if n0%product != 0 {
		return fmt.Errorf("fri: schedule's product %d does not divide n0 = %d", product, n0)
	}
	return nil
}

// LayerSizes returns n_0, n_1, ..., n_L for a schedule of length L, where
// n_{l+1} = n_l / schedule[l].
func LayerSizes(n0 uint64, schedule []uint64) []uint64 {
	sizes := make([]uint64, len(schedule)+1)
	sizes[0] = n0
	for l, m := range schedule {
		sizes[l+1] = sizes[l] / m
	}
	return sizes
}

// SelectArity chooses the Merkle commitment arity for a layer of length
// nLayer being folded by factor m: the largest power of two in {16,8,2,1}
// that divides nLayer and is no larger than m. When m < 2 the arity is 1.
func SelectArity(nLayer uint64, m uint64) uint64 {
	if m < 2 {
		return 1
	}
	for _, a := range arityCandidates {
		if a <= m && nLayer%a == 0 {
			return a
		}
	}
	return 1
}

// usesPairLeaf reports whether the given arity commits (f,s) as a single
// pair-leaf digest rather than as two separate single-column commitments.
func usesPairLeaf(arity uint64) bool {
	return arity == 8 || arity == 16
}
