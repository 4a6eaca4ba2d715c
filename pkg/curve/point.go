package curve

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"
)

// Point is an affine point on the Edwards BLS12-377 curve.
// Points built through this package are always members of the prime-order subgroup.
type Point struct {
	p twistededwards.PointAffine
}

// Generator returns the fixed subgroup generator G.
func Generator() Point {
	return Point{p: generator}
}

// Identity returns the neutral element (0, 1).
func Identity() Point {
	var id Point
	id.p.X.SetZero()
	id.p.Y.SetOne()
	return id
}

// BaseMul returns k*G.
func BaseMul(k *big.Int) Point {
	return Generator().Mul(k)
}

// Mul returns k*p. k must be non-negative.
func (p Point) Mul(k *big.Int) Point {
	var r Point
	r.p.ScalarMultiplication(&p.p, k)
	return r
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	var r Point
	r.p.Add(&p.p, &q.p)
	return r
}

// Neg returns -p.
func (p Point) Neg() Point {
	var r Point
	r.p.Neg(&p.p)
	return r
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	return p.p.Equal(&q.p)
}

// IsIdentity reports whether p is the neutral element.
func (p Point) IsIdentity() bool {
	return p.p.IsZero()
}

// InSubgroup reports whether p lies in the subgroup of order n.
func (p Point) InSubgroup() bool {
	if !p.p.IsOnCurve() {
		return false
	}
	return p.Mul(orderMinusOne).Equal(p.Neg())
}

// Bytes returns the little-endian encoding of the x-coordinate.
func (p Point) Bytes() [PointSize]byte {
	var out [PointSize]byte
	var x big.Int
	p.p.X.BigInt(&x)
	intToLE(&x, out[:])
	return out
}

// PointFromBytes decodes a subgroup point from its little-endian x-coordinate.
func PointFromBytes(b []byte) (Point, error) {
	if len(b) != PointSize {
		return Point{}, ErrInvalidLength
	}
	xi := leToInt(b)
	if xi.Cmp(fr.Modulus()) >= 0 {
		return Point{}, ErrNonCanonical
	}

	var x, x2, num, den, y2, y, one fr.Element
	one.SetOne()
	x.SetBigInt(xi)
	x2.Square(&x)

	// y^2 = (1 + x^2) / (1 - d*x^2)
	num.Add(&one, &x2)
	den.Mul(&edwardsD, &x2)
	den.Sub(&one, &den)
	if den.IsZero() {
		return Point{}, ErrNotOnCurve
	}
	den.Inverse(&den)
	y2.Mul(&num, &den)
	if y.Sqrt(&y2) == nil {
		return Point{}, ErrNotOnCurve
	}

	// (x, y) and (x, -y) differ by the 2-torsion point (0, -1); at most one
	// of them is in the odd-order subgroup.
	candidate := Point{p: twistededwards.PointAffine{X: x, Y: y}}
	if candidate.InSubgroup() {
		return candidate, nil
	}
	candidate.p.Y.Neg(&y)
	if candidate.InSubgroup() {
		return candidate, nil
	}
	return Point{}, ErrNotInSubgroup
}
