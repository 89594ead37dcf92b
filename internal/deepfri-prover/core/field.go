// Package core provides prime-field arithmetic and radix-2 multiplicative
// subgroups for the DEEP-ALI / DEEP-FRI proof core.
package core

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ByteWidth is the canonical byte encoding width for a field element.
const ByteWidth = 32

// Field represents a finite prime field with modular arithmetic operations.
type Field struct {
	modulus *big.Int
}

// FieldElement represents an element in the finite field.
type FieldElement struct {
	field *Field
	value *big.Int
}

// NewField creates a new finite field with the given modulus.
func NewField(modulus *big.Int) (*Field, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("modulus must be greater than 2")
	}
	return &Field{modulus: new(big.Int).Set(modulus)}, nil
}

// Modulus returns the field modulus.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// Equals reports whether two fields share the same modulus.
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// NewElement creates a new field element from a big.Int, reducing modulo p.
func (f *Field) NewElement(value *big.Int) *FieldElement {
	normalized := new(big.Int).Mod(value, f.modulus)
	return &FieldElement{field: f, value: normalized}
}

// NewElementFromInt64 creates a new field element from an int64.
func (f *Field) NewElementFromInt64(value int64) *FieldElement {
	return f.NewElement(big.NewInt(value))
}

// NewElementFromUint64 creates a new field element from a uint64.
func (f *Field) NewElementFromUint64(value uint64) *FieldElement {
	return f.NewElement(new(big.Int).SetUint64(value))
}

// RandomElement draws a uniformly random field element from crypto/rand.
func (f *Field) RandomElement() (*FieldElement, error) {
	value, err := rand.Int(rand.Reader, f.modulus)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random element: %w", err)
	}
	return f.NewElement(value), nil
}

// Zero returns the additive identity.
func (f *Field) Zero() *FieldElement {
	return f.NewElement(big.NewInt(0))
}

// One returns the multiplicative identity.
func (f *Field) One() *FieldElement {
	return f.NewElement(big.NewInt(1))
}

// Big returns the value as a big.Int copy.
func (fe *FieldElement) Big() *big.Int {
	return new(big.Int).Set(fe.value)
}

// Field returns the field this element belongs to.
func (fe *FieldElement) Field() *Field {
	return fe.field
}

// Add performs field addition.
func (fe *FieldElement) Add(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot add elements from different fields")
	}
	return fe.field.NewElement(new(big.Int).Add(fe.value, other.value))
}

// Sub performs field subtraction.
func (fe *FieldElement) Sub(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot subtract elements from different fields")
	}
	return fe.field.NewElement(new(big.Int).Sub(fe.value, other.value))
}

// Neg returns the additive inverse.
func (fe *FieldElement) Neg() *FieldElement {
	return fe.field.NewElement(new(big.Int).Neg(fe.value))
}

// Mul performs field multiplication.
func (fe *FieldElement) Mul(other *FieldElement) *FieldElement {
	if !fe.field.Equals(other.field) {
		panic("cannot multiply elements from different fields")
	}
	return fe.field.NewElement(new(big.Int).Mul(fe.value, other.value))
}

// Div performs field division (multiplication by the inverse).
func (fe *FieldElement) Div(other *FieldElement) (*FieldElement, error) {
	if !fe.field.Equals(other.field) {
		return nil, fmt.Errorf("cannot divide elements from different fields")
	}
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("division failed: %w", err)
	}
	return fe.Mul(inv), nil
}

// Inv computes the multiplicative inverse via the extended Euclidean algorithm.
func (fe *FieldElement) Inv() (*FieldElement, error) {
	if fe.value.Sign() == 0 {
		return nil, fmt.Errorf("cannot compute inverse of zero")
	}
	gcd := new(big.Int)
	x := new(big.Int)
	y := new(big.Int)
	gcd.GCD(x, y, fe.value, fe.field.modulus)
	if gcd.Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("inverse does not exist")
	}
	if x.Sign() < 0 {
		x.Add(x, fe.field.modulus)
	}
	return fe.field.NewElement(x), nil
}

// Exp performs field exponentiation.
func (fe *FieldElement) Exp(exponent *big.Int) *FieldElement {
	e := exponent
	if e.Sign() < 0 {
		e = new(big.Int).Mod(e, new(big.Int).Sub(fe.field.modulus, big.NewInt(1)))
	}
	return fe.field.NewElement(new(big.Int).Exp(fe.value, e, fe.field.modulus))
}

// ExpUint64 is a convenience wrapper around Exp for small exponents.
func (fe *FieldElement) ExpUint64(exponent uint64) *FieldElement {
	return fe.Exp(new(big.Int).SetUint64(exponent))
}

// Square computes the square of the field element.
func (fe *FieldElement) Square() *FieldElement {
	return fe.Mul(fe)
}

// Equal checks if two field elements are equal.
func (fe *FieldElement) Equal(other *FieldElement) bool {
	if other == nil {
		return false
	}
	if !fe.field.Equals(other.field) {
		return false
	}
	return fe.value.Cmp(other.value) == 0
}

// IsZero checks if the element is zero.
func (fe *FieldElement) IsZero() bool {
	return fe.value.Sign() == 0
}

// IsOne checks if the element is one.
func (fe *FieldElement) IsOne() bool {
	return fe.value.Cmp(big.NewInt(1)) == 0
}

// LessThan returns true if this field element's canonical representative is
// less than the other's. Used only for soundness-bound comparisons, never
// for arithmetic.
func (fe *FieldElement) LessThan(other *FieldElement) bool {
	return fe.value.Cmp(other.value) < 0
}

// String returns a decimal string representation of the field element.
func (fe *FieldElement) String() string {
	return fe.value.String()
}

// Bytes returns the canonical big-endian, fixed-width (ByteWidth) byte
// encoding of the field element, used for hashing and sizing.
func (fe *FieldElement) Bytes() []byte {
	out := make([]byte, ByteWidth)
	fe.value.FillBytes(out)
	return out
}

// FromBytes decodes a canonical big-endian byte encoding into a field element.
func (f *Field) FromBytes(b []byte) *FieldElement {
	return f.NewElement(new(big.Int).SetBytes(b))
}

// StarkPrime is the 2^251 + 17*2^192 + 1 prime used throughout this core: a
// ~256-bit prime with two-adicity 192 (p-1 = 2^192 * odd), giving ample room
// for the radix-2 domains this core's FRI schedules require.
var StarkPrime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	t := new(big.Int).Lsh(big.NewInt(17), 192)
	p.Add(p, t)
	p.Add(p, big.NewInt(1))
	return p
}()

// DefaultField is the field used by every component in this core unless a
// caller explicitly constructs a different one with NewField.
var DefaultField, _ = NewField(StarkPrime)

// DefaultGenerator is a generator of the multiplicative group of DefaultField.
var DefaultGenerator = DefaultField.NewElementFromInt64(3)

// TwoAdicity is the largest k such that 2^k divides (StarkPrime - 1).
const TwoAdicity = 192

// PrimitiveRootOfUnity returns a primitive n-th root of unity in
// DefaultField, where n = 2^k and k <= TwoAdicity. Returns an error if n is
// not a power of two or exceeds the field's two-adicity.
func PrimitiveRootOfUnity(n uint64) (*FieldElement, error) {
	if n == 0 || (n&(n-1)) != 0 {
		return nil, fmt.Errorf("n must be a power of two, got %d", n)
	}
	k := bitLen64(n) - 1
	if k > TwoAdicity {
		return nil, fmt.Errorf("domain size 2^%d exceeds field two-adicity %d", k, TwoAdicity)
	}
	// omega = generator^((p-1) / n)
	pMinus1 := new(big.Int).Sub(StarkPrime, big.NewInt(1))
	exp := new(big.Int).Div(pMinus1, new(big.Int).SetUint64(n))
	return DefaultGenerator.Exp(exp), nil
}

func bitLen64(n uint64) int {
	l := 0
	for n > 0 {
		n >>= 1
		l++
	}
	return l
}
