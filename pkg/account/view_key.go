package account

import (
	"crypto/subtle"
	"fmt"
	"math/big"

	"github.com/snehendu098/ghost/wallet/pkg/curve"
)

// ViewKey grants read access to an account's records without signing authority.
//
// It is the scalar sk_sig + r_sig + sk_prf, so ViewKey*G is the account address.
type ViewKey struct {
	scalar [curve.ScalarSize]byte
}

// NewViewKey derives the view key of pk. The derivation is deterministic and one-way.
func NewViewKey(pk *PrivateKey) *ViewKey {
	skSig, rSig := pk.signingScalars()
	defer wipe(skSig, rSig)
	ck := newComputeKey(curve.BaseMul(skSig), curve.BaseMul(rSig))

	vk := curve.AddScalars(skSig, rSig, ck.skPRF)
	defer wipe(vk)
	return &ViewKey{scalar: curve.ScalarToBytes(vk)}
}

// ViewKeyFromBytes builds a view key from its 32-byte little-endian scalar.
func ViewKeyFromBytes(b []byte) (*ViewKey, error) {
	if len(b) != curve.ScalarSize {
		return nil, decodeErr("view key", ErrInvalidLength, fmt.Errorf("got %d bytes, want %d", len(b), curve.ScalarSize))
	}
	if _, err := curve.ScalarFromBytes(b); err != nil {
		return nil, decodeErr("view key", ErrInvalidValue, err)
	}
	vk := &ViewKey{}
	copy(vk.scalar[:], b)
	return vk, nil
}

// ParseViewKey decodes a canonical AViewKey1 string.
func ParseViewKey(text string) (*ViewKey, error) {
	payload, err := decodePrefixed("view key", text, ViewKeyPrefix, ViewKeyLength, viewKeyMagic)
	if err != nil {
		return nil, err
	}
	defer clear(payload)
	return ViewKeyFromBytes(payload)
}

// String returns the canonical AViewKey1 encoding.
func (vk *ViewKey) String() string {
	return encodePrefixed(viewKeyMagic, vk.scalar[:])
}

// Redacted returns a log-safe placeholder for the key.
func (vk *ViewKey) Redacted() string {
	return ViewKeyPrefix + "[REDACTED]"
}

// Bytes returns a copy of the 32-byte scalar.
func (vk *ViewKey) Bytes() []byte {
	out := make([]byte, curve.ScalarSize)
	copy(out, vk.scalar[:])
	return out
}

// Equal compares two view keys in constant time.
func (vk *ViewKey) Equal(other *ViewKey) bool {
	if vk == nil || other == nil {
		return vk == other
	}
	return subtle.ConstantTimeCompare(vk.scalar[:], other.scalar[:]) == 1
}

func (vk *ViewKey) scalarInt() *big.Int {
	k, err := curve.ScalarFromBytes(vk.scalar[:])
	if err != nil {
		// every constructor validates the range
		panic("account: view key scalar out of range")
	}
	return k
}

// Zero wipes the key material.
func (vk *ViewKey) Zero() {
	clear(vk.scalar[:])
}

// Address derives the address that vk views.
func (vk *ViewKey) Address() Address {
	return AddressFromViewKey(vk)
}

// MarshalText implements encoding.TextMarshaler.
func (vk *ViewKey) MarshalText() ([]byte, error) {
	return []byte(vk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (vk *ViewKey) UnmarshalText(text []byte) error {
	parsed, err := ParseViewKey(string(text))
	if err != nil {
		return err
	}
	*vk = *parsed
	return nil
}
