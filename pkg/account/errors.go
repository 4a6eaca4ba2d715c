package account

import (
	"errors"
	"fmt"
)

// Decode failure kinds. A *DecodeError always wraps exactly one of them.
var (
	ErrInvalidPrefix    = errors.New("invalid prefix")
	ErrInvalidChecksum  = errors.New("invalid checksum")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrInvalidLength    = errors.New("invalid length")
	ErrInvalidValue     = errors.New("invalid value")
)

// ErrInvalidSignature is returned by RecoverAddress for signatures that do not verify.
var ErrInvalidSignature = errors.New("invalid signature")

// DecodeError describes why a canonical string or byte encoding was rejected.
type DecodeError struct {
	// Entity is the kind of value being decoded, e.g. "private key".
	Entity string
	// Kind is one of the ErrInvalid* sentinels.
	Kind error
	// Detail optionally carries the underlying cause.
	Detail error
}

func (e *DecodeError) Error() string {
	if e.Detail != nil {
		return fmt.Sprintf("decode %s: %v: %v", e.Entity, e.Kind, e.Detail)
	}
	return fmt.Sprintf("decode %s: %v", e.Entity, e.Kind)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *DecodeError) Unwrap() []error {
	if e.Detail != nil {
		return []error{e.Kind, e.Detail}
	}
	return []error{e.Kind}
}

func decodeErr(entity string, kind, detail error) error {
	return &DecodeError{Entity: entity, Kind: kind, Detail: detail}
}
