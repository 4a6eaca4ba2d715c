package sign

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/snehendu098/ghost/wallet/pkg/account"
)

// Signer is an interface for a chain-agnostic signer.
type Signer interface {
	PublicKey() PublicKey                // Public key associated with this signer.
	Sign(data []byte) (Signature, error) // Sign generates a signature for the given data.
}

// AddressRecoverer is an interface for recovering addresses from signatures.
type AddressRecoverer interface {
	RecoverAddress(message []byte, signature Signature) (Address, error)
}

// PublicKey is an interface for a chain-agnostic public key.
type PublicKey interface {
	Address() Address
	Bytes() []byte
}

// Address is an interface for a chain-specific address.
type Address interface {
	fmt.Stringer // All addresses must have a string representation.

	// Equals returns true if this address equals the other address.
	Equals(other Address) bool
}

// Signature is a generic byte slice representing a cryptographic signature.
type Signature []byte

// Type represents the signature scheme used for signatures.
type Type uint8

const (
	TypeAleo    Type = iota
	TypeUnknown      = 255
)

// String returns the string representation of the signature type.
func (t Type) String() string {
	switch t {
	case TypeAleo:
		return "Aleo"
	default:
		return "Unknown"
	}
}

// Type returns the signature type for this signature based on its length.
func (s Signature) Type() Type {
	if len(s) == account.SignatureSize {
		// challenge, response and the two compute key coordinates, 32 bytes each
		return TypeAleo
	}
	return TypeUnknown
}

// MarshalJSON implements the json.Marshaler interface, encoding the signature as a hex string.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	decoded, err := hexutil.Decode(hexStr)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// String implements the fmt.Stringer interface.
func (s Signature) String() string {
	return hexutil.Encode(s)
}

// ParseSignature decodes a 0x-prefixed hex signature.
func ParseSignature(hexStr string) (Signature, error) {
	decoded, err := hexutil.Decode(hexStr)
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", err)
	}
	return Signature(decoded), nil
}

// NewAddressRecoverer creates an appropriate AddressRecoverer based on the signature type.
func NewAddressRecoverer(sigType Type) (AddressRecoverer, error) {
	switch sigType {
	case TypeAleo:
		return &AleoAddressRecoverer{}, nil
	default:
		return nil, fmt.Errorf("unsupported signature type: %s", sigType.String())
	}
}

// NewAddressRecovererFromSignature creates an AddressRecoverer based on signature type detection.
func NewAddressRecovererFromSignature(signature Signature) (AddressRecoverer, error) {
	return NewAddressRecoverer(signature.Type())
}
