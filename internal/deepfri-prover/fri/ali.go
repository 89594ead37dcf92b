// Package fri implements the DEEP-ALI merge and the DEEP-FRI prover and
// verifier that fold the merged evaluation vector through a schedule of
// folding factors.
package fri

import (
	"fmt"
	"runtime"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
)

// batchInversionWorkers is passed to core.Field.ParallelBatchInversion: below
// its internal 1000-element threshold it is ignored and the sequential path
// runs, so this is only consulted for the domain sizes large enough to
// benefit.
func batchInversionWorkers() int {
	return runtime.NumCPU()
}

// MergeResult is the output of the DEEP-ALI merge: the off-domain evaluation
// Phi(z), the constant c* = Phi(z)/Z_H(z), and f0 evaluated on H(n).
type MergeResult struct {
	PhiAtZ *core.FieldElement
	CStar  *core.FieldElement
	F0     []*core.FieldElement
}

// Merge builds f0 from public evaluation vectors A, S, E, T of length n on
// H(n) and an off-domain point z with z^n != 1: Phi(x) = A(x)*S(x) + E(x) -
// T(x), decoupled from H via the DEEP substitution.
func Merge(domain *core.Domain, a, s, e, t []*core.FieldElement, z *core.FieldElement) (*MergeResult, error) {
	phi, err := composePhi(domain, a, s, e, t)
	if err != nil {
		return nil, err
	}
	return mergeFromPhi(domain, phi, z)
}

// MergeBlinded is Merge with an additional beta*R(x) term folded into Phi
// before the DEEP substitution; everything else is identical.
func MergeBlinded(domain *core.Domain, a, s, e, t, r []*core.FieldElement, beta, z *core.FieldElement) (*MergeResult, error) {
	phi, err := composePhi(domain, a, s, e, t)
	if err != nil {
		return nil, err
	}
	n := domain.Size()
	if uint64(len(r)) != n {
		return nil, fmt.Errorf("fri: blinding vector R must have length %d, got %d", n, len(r))
	}
	blinded := make([]*core.FieldElement, n)
	for j := range phi {
		blinded[j] = phi[j].Add(beta.Mul(r[j]))
	}
	return mergeFromPhi(domain, blinded, z)
}

func composePhi(domain *core.Domain, a, s, e, t []*core.FieldElement) ([]*core.FieldElement, error) {
	n := domain.Size()
	if uint64(len(a)) != n || uint64(len(s)) != n || uint64(len(e)) != n || uint64(len(t)) != n {
		return nil, fmt.Errorf("fri: A,S,E,T must each have length %d", n)
	}
	phi := make([]*core.FieldElement, n)
	for j := uint64(0); j < n; j++ {
		phi[j] = a[j].Mul(s[j]).Add(e[j]).Sub(t[j])
	}
	return phi, nil
}

func mergeFromPhi(domain *core.Domain, phi []*core.FieldElement, z *core.FieldElement) (*MergeResult, error) {
	if domain.Contains(z) {
		return nil, fmt.Errorf("fri: off-domain point z must satisfy z^n != 1")
	}

	field := core.DefaultField
	n := domain.Size()
	zH := domain.VanishingEval(z)

	phiAtZ, err := barycentricEvalOnSubgroup(domain, phi, z)
	if err != nil {
		return nil, fmt.Errorf("fri: barycentric evaluation at z failed: %w", err)
	}

	cStar, err := phiAtZ.Div(zH)
	if err != nil {
		return nil, fmt.Errorf("fri: Z_H(z) is zero, z is in the domain: %w", err)
	}

	diffs := make([]*core.FieldElement, n)
	for j := uint64(0); j < n; j++ {
		diffs[j] = domain.Element(j).Sub(z)
	}
	diffInvs, err := field.ParallelBatchInversion(diffs, batchInversionWorkers())
	if err != nil {
		return nil, fmt.Errorf("fri: batch-inverting (omega^j - z): %w", err)
	}

	f0 := make([]*core.FieldElement, n)
	for j := uint64(0); j < n; j++ {
		f0[j] = phi[j].Mul(diffInvs[j])
	}

	return &MergeResult{PhiAtZ: phiAtZ, CStar: cStar, F0: f0}, nil
}

// barycentricEvalOnSubgroup evaluates the unique polynomial f of degree < n
// defined by evaluations `evals` on H(n), at an off-domain point z, via the
// subgroup barycentric formula:
//
//	f(z) = (Z_H(z) / n) * sum_j f(omega^j) * omega^j / (z - omega^j)
//
// Batch inversion (Montgomery's trick) handles the n divisions in one pass.
func barycentricEvalOnSubgroup(domain *core.Domain, evals []*core.FieldElement, z *core.FieldElement) (*core.FieldElement, error) {
	field := core.DefaultField
	n := domain.Size()
	if uint64(len(evals)) != n {
		return nil, fmt.Errorf("fri: evaluation vector length %d does not match domain size %d", len(evals), n)
	}

	diffs := make([]*core.FieldElement, n)
	for j := uint64(0); j < n; j++ {
		diffs[j] = z.Sub(domain.Element(j))
	}
	diffInvs, err := field.ParallelBatchInversion(diffs, batchInversionWorkers())
	if err != nil {
		return nil, fmt.Errorf("batch-inverting (z - omega^j): %w", err)
	}

	sum := field.Zero()
	for j := uint64(0); j < n; j++ {
		term := evals[j].Mul(domain.Element(j)).Mul(diffInvs[j])
		sum = sum.Add(term)
	}

	zH := domain.VanishingEval(z)
	nInv, err := field.NewElementFromUint64(n).Inv()
	if err != nil {
		return nil, fmt.Errorf("inverting domain size: %w", err)
	}

	return zH.Mul(nInv).Mul(sum), nil
}
