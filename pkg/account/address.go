package account

import (
	"errors"

	"github.com/snehendu098/ghost/wallet/pkg/curve"
)

// Address is the public identity of an account: a point in the prime-order
// subgroup, shown as a bech32m string with the "aleo" prefix.
// Address values are comparable; the zero value is not a valid address.
type Address struct {
	x     [curve.PointSize]byte
	point curve.Point
}

func newAddress(p curve.Point) Address {
	return Address{x: p.Bytes(), point: p}
}

// AddressFromPrivateKey derives the address of pk through its compute key.
func AddressFromPrivateKey(pk *PrivateKey) Address {
	return pk.computeKey().address()
}

// AddressFromViewKey derives the address viewed by vk as vk*G.
func AddressFromViewKey(vk *ViewKey) Address {
	k := vk.scalarInt()
	defer wipe(k)
	return newAddress(curve.BaseMul(k))
}

// AddressFromBytes decodes an address from its 32-byte x-coordinate.
func AddressFromBytes(b []byte) (Address, error) {
	p, err := curve.PointFromBytes(b)
	if err != nil {
		kind := ErrInvalidValue
		if errors.Is(err, curve.ErrInvalidLength) {
			kind = ErrInvalidLength
		}
		return Address{}, decodeErr("address", kind, err)
	}
	return newAddress(p), nil
}

// ParseAddress decodes a canonical aleo1 address string.
func ParseAddress(text string) (Address, error) {
	payload, err := decodeAddress(text)
	if err != nil {
		return Address{}, err
	}
	return AddressFromBytes(payload)
}

// String returns the canonical bech32m encoding.
func (a Address) String() string {
	return encodeAddress(a.x)
}

// Bytes returns the 32-byte x-coordinate.
func (a Address) Bytes() []byte {
	out := make([]byte, curve.PointSize)
	copy(out, a.x[:])
	return out
}

// Equal reports whether a and other are the same address.
func (a Address) Equal(other Address) bool {
	return a.x == other.x
}

// IsZero reports whether a is the zero value rather than a derived or parsed address.
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
