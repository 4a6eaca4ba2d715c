package curve

import (
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// ScalarFromBytes decodes a little-endian scalar and rejects values >= n.
func ScalarFromBytes(b []byte) (*big.Int, error) {
	if len(b) != ScalarSize {
		return nil, ErrInvalidLength
	}
	k := leToInt(b)
	if k.Cmp(order) >= 0 {
		return nil, ErrNonCanonical
	}
	return k, nil
}

// ScalarToBytes encodes k, which must already be reduced modulo n.
func ScalarToBytes(k *big.Int) [ScalarSize]byte {
	var out [ScalarSize]byte
	intToLE(k, out[:])
	return out
}

// ReduceScalar returns k mod n as a new value.
func ReduceScalar(k *big.Int) *big.Int {
	return new(big.Int).Mod(k, order)
}

// AddScalars returns the sum of ks modulo n.
func AddScalars(ks ...*big.Int) *big.Int {
	sum := new(big.Int)
	for _, k := range ks {
		sum.Add(sum, k)
	}
	return sum.Mod(sum, order)
}

// HashToScalar maps a domain tag and message parts to a scalar.
//
// The digest is BLAKE2b-512 over len(domain) || domain || parts..., read as a
// little-endian integer and reduced modulo n. The 512-bit width keeps the
// reduction bias negligible.
func HashToScalar(domain string, parts ...[]byte) *big.Int {
	h, err := blake2b.New512(nil)
	if err != nil {
		// only possible with an oversized key
		panic(err)
	}
	h.Write([]byte{byte(len(domain))})
	h.Write([]byte(domain))
	for _, part := range parts {
		h.Write(part)
	}
	k := leToInt(h.Sum(nil))
	return k.Mod(k, order)
}
