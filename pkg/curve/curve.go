package curve

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"
)

const (
	// ScalarSize is the length of a little-endian encoded scalar.
	ScalarSize = 32
	// PointSize is the length of an encoded point, which is its little-endian x-coordinate.
	PointSize = 32
)

var (
	ErrInvalidLength = errors.New("invalid encoding length")
	ErrNonCanonical  = errors.New("value is not in canonical range")
	ErrNotOnCurve    = errors.New("x-coordinate has no point on the curve")
	ErrNotInSubgroup = errors.New("point is not in the prime-order subgroup")
)

var (
	// order is the prime order n of the subgroup generated by G.
	order = mustBigInt("2111115437357092606062206234695386632838870926408408195193685246394721360383")
	// orderMinusOne is used for subgroup membership: P is in the subgroup iff [n-1]P == -P.
	orderMinusOne = new(big.Int).Sub(order, big.NewInt(1))
	// montgomeryInv is 2^-256 mod n. Sampled words are read as Montgomery limbs.
	montgomeryInv = func() *big.Int {
		r := new(big.Int).Lsh(big.NewInt(1), 256)
		r.Mod(r, order)
		return r.ModInverse(r, order)
	}()

	// edwardsD is the d coefficient of -x^2 + y^2 = 1 + d*x^2*y^2.
	edwardsD = func() fr.Element {
		var d fr.Element
		d.SetUint64(3021)
		return d
	}()

	generator = mustPoint(
		"522678458525321116977504528531602186870683848189190546523208313015552693483",
		"4625467284263880392848236339834904393692054417272076479096796531274999498606",
	)
)

// Order returns a copy of the subgroup order n.
func Order() *big.Int {
	return new(big.Int).Set(order)
}

// FieldModulus returns a copy of the base field modulus p.
func FieldModulus() *big.Int {
	return fr.Modulus()
}

func mustBigInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("curve: invalid integer constant " + s)
	}
	return v
}

func mustPoint(x, y string) twistededwards.PointAffine {
	var p twistededwards.PointAffine
	p.X.SetBigInt(mustBigInt(x))
	p.Y.SetBigInt(mustBigInt(y))
	if !p.IsOnCurve() {
		panic("curve: generator is not on the curve")
	}
	return p
}

// leToInt interprets b as a little-endian unsigned integer.
func leToInt(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(be)
}

// intToLE writes v as a little-endian integer of exactly len(out) bytes.
// v must be non-negative and fit in out.
func intToLE(v *big.Int, out []byte) {
	clear(out)
	be := v.Bytes()
	for i := range be {
		out[i] = be[len(be)-1-i]
	}
}
