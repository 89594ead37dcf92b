package core

import "fmt"

// Domain is the multiplicative subgroup H(n) of DefaultField generated by a
// primitive n-th root of unity, n = 2^k.
type Domain struct {
	size      uint64
	generator *FieldElement
	elements  []*FieldElement
}

// NewDomain builds H(n) for n a power of two within the field's two-adicity.
func NewDomain(n uint64) (*Domain, error) {
	omega, err := PrimitiveRootOfUnity(n)
	if err != nil {
		return nil, fmt.Errorf("cannot build domain of size %d: %w", n, err)
	}
	elements := make([]*FieldElement, n)
	cur := DefaultField.One()
	for i := uint64(0); i < n; i++ {
		elements[i] = cur
		cur = cur.Mul(omega)
	}
	return &Domain{size: n, generator: omega, elements: elements}, nil
}

// Size returns n = |H(n)|.
func (d *Domain) Size() uint64 {
	return d.size
}

// Generator returns the primitive n-th root of unity omega.
func (d *Domain) Generator() *FieldElement {
	return d.generator
}

// Element returns omega^i.
func (d *Domain) Element(i uint64) *FieldElement {
	return d.elements[i%d.size]
}

// Elements returns the full domain as omega^0, omega^1, ..., omega^(n-1).
func (d *Domain) Elements() []*FieldElement {
	return d.elements
}

// VanishingEval evaluates the vanishing polynomial Z_H(x) = x^n - 1 at a
// point not necessarily in H(n).
func (d *Domain) VanishingEval(x *FieldElement) *FieldElement {
	return x.ExpUint64(d.size).Sub(DefaultField.One())
}

// Contains reports whether x is an element of H(n), via x^n == 1.
func (d *Domain) Contains(x *FieldElement) bool {
	return x.ExpUint64(d.size).IsOne()
}
