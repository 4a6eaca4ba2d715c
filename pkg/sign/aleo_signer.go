package sign

import (
	"fmt"

	"github.com/snehendu098/ghost/wallet/pkg/account"
)

// Ensure our types implement the interfaces at compile time.
var _ Signer = (*AleoSigner)(nil)
var _ AddressRecoverer = (*AleoAddressRecoverer)(nil)
var _ PublicKey = (*AleoPublicKey)(nil)
var _ Address = (*AleoAddress)(nil)

// AleoAddress implements the Address interface for Aleo.
type AleoAddress struct{ account.Address }

// NewAleoAddress wraps an account address.
func NewAleoAddress(addr account.Address) AleoAddress {
	return AleoAddress{addr}
}

// NewAleoAddressFromString parses a canonical aleo1 address.
func NewAleoAddressFromString(s string) (AleoAddress, error) {
	addr, err := account.ParseAddress(s)
	if err != nil {
		return AleoAddress{}, err
	}
	return AleoAddress{addr}, nil
}

// Equals returns true if this address equals the other address.
func (a AleoAddress) Equals(other Address) bool {
	if otherAddr, ok := other.(AleoAddress); ok {
		return a.Address.Equal(otherAddr.Address)
	}
	return a.String() == other.String()
}

// AleoPublicKey implements the PublicKey interface for Aleo.
// Aleo accounts expose no standalone public key, so the address point stands in for it.
type AleoPublicKey struct{ addr account.Address }

func (p AleoPublicKey) Address() Address { return AleoAddress{p.addr} }
func (p AleoPublicKey) Bytes() []byte   { return p.addr.Bytes() }

// AleoSigner is the Aleo implementation of the Signer interface.
type AleoSigner struct {
	privateKey *account.PrivateKey
	publicKey  AleoPublicKey
}

func (s *AleoSigner) PublicKey() PublicKey { return s.publicKey }

// Sign signs the raw message. Unlike ECDSA signers it does not expect a pre-hashed input.
func (s *AleoSigner) Sign(message []byte) (Signature, error) {
	return Signature(s.privateKey.Sign(message)), nil
}

// NewAleoSigner creates a new Aleo signer from a canonical APrivateKey1 string.
func NewAleoSigner(privateKey string) (Signer, error) {
	pk, err := account.ParsePrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("could not parse aleo private key: %w", err)
	}
	return NewAleoSignerFromKey(pk), nil
}

// NewAleoSignerFromKey creates a new Aleo signer around an existing private key.
func NewAleoSignerFromKey(pk *account.PrivateKey) *AleoSigner {
	return &AleoSigner{
		privateKey: pk,
		publicKey:  AleoPublicKey{addr: pk.Address()},
	}
}

// AleoAddressRecoverer implements the AddressRecoverer interface for Aleo.
type AleoAddressRecoverer struct{}

// RecoverAddress implements the AddressRecoverer interface.
func (r *AleoAddressRecoverer) RecoverAddress(message []byte, signature Signature) (Address, error) {
	addr, err := account.RecoverAddress(message, signature)
	if err != nil {
		return nil, fmt.Errorf("signature recovery failed: %w", err)
	}
	return AleoAddress{addr}, nil
}

// Verify reports whether signature is valid for message under addr.
func Verify(addr Address, message []byte, signature Signature) bool {
	recoverer, err := NewAddressRecovererFromSignature(signature)
	if err != nil {
		return false
	}
	signer, err := recoverer.RecoverAddress(message, signature)
	if err != nil {
		return false
	}
	return signer.Equals(addr)
}
