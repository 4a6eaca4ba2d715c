package account

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"

	"github.com/snehendu098/ghost/wallet/pkg/curve"
)

// Domain tags for values derived from the private key seed.
const (
	domainSignatureSecretKey  = "AleoAccountSignatureSecretKey0"
	domainSignatureRandomizer = "AleoAccountSignatureRandomizer0"
	domainPRFSecretKey        = "AleoAccountPRFSecretKey0"
)

// PrivateKey is the root account secret: a scalar seed from which the
// signing keys, the view key and the address are derived.
// The zero value is not usable; construct one with NewPrivateKey,
// PrivateKeyFromSeed or ParsePrivateKey.
type PrivateKey struct {
	seed [curve.ScalarSize]byte
}

// NewPrivateKey samples a fresh private key from crypto/rand.
func NewPrivateKey() (*PrivateKey, error) {
	return PrivateKeyFromReader(rand.Reader)
}

// PrivateKeyFromSeed deterministically derives a private key from a 64-bit seed.
// The same seed always yields the same key. Intended for fixtures, never for real funds.
func PrivateKeyFromSeed(seed uint64) (*PrivateKey, error) {
	return PrivateKeyFromReader(curve.NewSeededReader(seed))
}

// PrivateKeyFromReader samples a private key from r.
func PrivateKeyFromReader(r io.Reader) (*PrivateKey, error) {
	k, err := curve.SampleScalar(r)
	if err != nil {
		return nil, fmt.Errorf("sample private key: %w", err)
	}
	defer wipe(k)
	return &PrivateKey{seed: curve.ScalarToBytes(k)}, nil
}

// PrivateKeyFromBytes builds a private key from its 32-byte little-endian seed.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != curve.ScalarSize {
		return nil, decodeErr("private key", ErrInvalidLength, fmt.Errorf("got %d bytes, want %d", len(b), curve.ScalarSize))
	}
	if _, err := curve.ScalarFromBytes(b); err != nil {
		return nil, decodeErr("private key", ErrInvalidValue, err)
	}
	pk := &PrivateKey{}
	copy(pk.seed[:], b)
	return pk, nil
}

// ParsePrivateKey decodes a canonical APrivateKey1 string.
func ParsePrivateKey(text string) (*PrivateKey, error) {
	payload, err := decodePrefixed("private key", text, PrivateKeyPrefix, PrivateKeyLength, privateKeyMagic)
	if err != nil {
		return nil, err
	}
	defer clear(payload)
	return PrivateKeyFromBytes(payload)
}

// String returns the canonical APrivateKey1 encoding.
// The result is secret; use Redacted for anything that may be logged.
func (pk *PrivateKey) String() string {
	return encodePrefixed(privateKeyMagic, pk.seed[:])
}

// Redacted returns a log-safe placeholder for the key.
func (pk *PrivateKey) Redacted() string {
	return PrivateKeyPrefix + "[REDACTED]"
}

// Bytes returns a copy of the 32-byte seed.
func (pk *PrivateKey) Bytes() []byte {
	out := make([]byte, curve.ScalarSize)
	copy(out, pk.seed[:])
	return out
}

// Equal compares two private keys in constant time.
func (pk *PrivateKey) Equal(other *PrivateKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return subtle.ConstantTimeCompare(pk.seed[:], other.seed[:]) == 1
}

// Zero wipes the key material. The key must not be used afterwards.
func (pk *PrivateKey) Zero() {
	clear(pk.seed[:])
}

// ViewKey derives the view key of pk.
func (pk *PrivateKey) ViewKey() *ViewKey {
	return NewViewKey(pk)
}

// Address derives the address of pk.
func (pk *PrivateKey) Address() Address {
	return AddressFromPrivateKey(pk)
}

// signingScalars returns (sk_sig, r_sig), the two secret scalars behind the compute key.
func (pk *PrivateKey) signingScalars() (skSig, rSig *big.Int) {
	return curve.HashToScalar(domainSignatureSecretKey, pk.seed[:]),
		curve.HashToScalar(domainSignatureRandomizer, pk.seed[:])
}

// computeKey returns the public part of the signing keys.
func (pk *PrivateKey) computeKey() computeKey {
	skSig, rSig := pk.signingScalars()
	defer wipe(skSig, rSig)
	return newComputeKey(curve.BaseMul(skSig), curve.BaseMul(rSig))
}

// wipe zeroes the limbs of secret intermediates.
func wipe(ks ...*big.Int) {
	for _, k := range ks {
		clear(k.Bits())
		k.SetInt64(0)
	}
}
