package fri

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepfri/deepfri-prover/internal/deepfri-prover/core"
)

// randomPolyEvals evaluates a polynomial of the given degree, whose
// coefficients are drawn deterministically from seed, over domain's elements.
func randomPolyEvals(domain *core.Domain, degree int, seed int64) []*core.FieldElement {
	coeffs := make([]*core.FieldElement, degree+1)
	x := seed
	for i := range coeffs {
		x = x*6364136223846793005 + 1442695040888963407
		coeffs[i] = core.DefaultField.NewElement(new(big.Int).SetInt64(x))
	}
	evals := make([]*core.FieldElement, domain.Size())
	for j := uint64(0); j < domain.Size(); j++ {
		point := domain.Element(j)
		acc := core.DefaultField.Zero()
		power := core.DefaultField.One()
		for _, c := range coeffs {
			acc = acc.Add(c.Mul(power))
			power = power.Mul(point)
		}
		evals[j] = acc
	}
	return evals
}

// TestDeepALIIdentity is the spec's concrete scenario 3: n=64, A,S,E of
// degree <= 20 from seed 2024, T = A*S+E on H, z = field(5); the DEEP
// substitution f0(omega^j) = Phi(omega^j)/(omega^j - z) must hold for the
// listed sample indices, and Phi(z)/Z_H(z) must equal the barycentric
// evaluation of Phi at z divided by Z_H(z).
func TestDeepALIIdentity(t *testing.T) {
	const n = 64
	domain, err := core.NewDomain(n)
	require.NoError(t, err)

	a := randomPolyEvals(domain, 20, 2024)
	s := randomPolyEvals(domain, 20, 2024+1)
	e := randomPolyEvals(domain, 20, 2024+2)

	tEvals := make([]*core.FieldElement, n)
	for j := 0; j < n; j++ {
		tEvals[j] = a[j].Mul(s[j]).Add(e[j])
	}

	z := core.DefaultField.NewElementFromInt64(5)
	result, err := Merge(domain, a, s, e, tEvals, z)
	require.NoError(t, err)

	for _, j := range []uint64{0, 1, 7, 13, 31, 47, 63} {
		omegaJ := domain.Element(j)
		phiJ := a[j].Mul(s[j]).Add(e[j]).Sub(tEvals[j])
		require.True(t, phiJ.IsZero(), "T was built exactly as A*S+E, so Phi must vanish on H")

		expectedF0 := core.DefaultField.Zero() // Phi(omega^j) == 0 => f0(omega^j) == 0
		require.True(t, result.F0[j].Equal(expectedF0))

		denom := omegaJ.Sub(z)
		require.False(t, denom.IsZero())
	}

	zH := domain.VanishingEval(z)
	reconstructed := result.CStar.Mul(zH)
	require.True(t, reconstructed.Equal(result.PhiAtZ))
}

func TestDeepALIRejectsInDomainZ(t *testing.T) {
	const n = 16
	domain, err := core.NewDomain(n)
	require.NoError(t, err)

	vecs := make([][]*core.FieldElement, 4)
	for i := range vecs {
		vecs[i] = randomPolyEvals(domain, 3, int64(i))
	}

	_, err = Merge(domain, vecs[0], vecs[1], vecs[2], vecs[3], domain.Element(2))
	require.Error(t, err)
}

func TestDeepALIMergeBlindedDiffersFromUnblinded(t *testing.T) {
	const n = 16
	domain, err := core.NewDomain(n)
	require.NoError(t, err)

	a := randomPolyEvals(domain, 3, 1)
	s := randomPolyEvals(domain, 3, 2)
	e := randomPolyEvals(domain, 3, 3)
	tt := randomPolyEvals(domain, 3, 4)
	r := randomPolyEvals(domain, 3, 5)
	beta := core.DefaultField.NewElementFromInt64(17)
	z := core.DefaultField.NewElementFromInt64(999)

	plain, err := Merge(domain, a, s, e, tt, z)
	require.NoError(t, err)
	blinded, err := MergeBlinded(domain, a, s, e, tt, r, beta, z)
	require.NoError(t, err)

	require.False(t, plain.PhiAtZ.Equal(blinded.PhiAtZ))
}
