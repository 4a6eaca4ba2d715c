package keystore

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	envelopeVersion = 1
	envelopeKDF     = "argon2id"
	envelopePrefix  = "ALEOKS1\n"
	saltSize        = 16
)

var (
	ErrAuthFailed      = errors.New("wrong passphrase or tampered envelope")
	ErrInvalidEnvelope = errors.New("invalid envelope")
	ErrWeakKDF         = errors.New("envelope key derivation parameters are below the minimum")
)

// KDFParams are the argon2id cost parameters recorded in every envelope.
type KDFParams struct {
	Time     uint32 `json:"time"`
	MemoryKB uint32 `json:"memory_kb"`
	Threads  uint8  `json:"threads"`
}

var (
	// DefaultKDFParams are used by Seal.
	DefaultKDFParams = KDFParams{Time: 2, MemoryKB: 64 * 1024, Threads: 1}
	// MinKDFParams is the weakest cost Open accepts.
	MinKDFParams = KDFParams{Time: 2, MemoryKB: 64 * 1024, Threads: 1}
	// maxKDFMemoryKB and maxKDFTime bound the work an untrusted envelope can make Open do.
	maxKDFMemoryKB uint32 = 1024 * 1024
	maxKDFTime     uint32 = 64
	maxKDFThreads  uint8  = 64
)

// Envelope is the serialized form of a sealed secret.
type Envelope struct {
	Version    uint32    `json:"version"`
	KDF        string    `json:"kdf"`
	Params     KDFParams `json:"params"`
	Salt       []byte    `json:"salt"`
	Nonce      []byte    `json:"nonce"`
	Ciphertext []byte    `json:"ciphertext"`
}

// Seal encrypts secret under passphrase with XChaCha20-Poly1305, using a key
// stretched by argon2id. associatedData is authenticated but not stored; the
// same bytes must be passed to Open.
func Seal(secret []byte, passphrase string, associatedData []byte) ([]byte, error) {
	return sealWithParams(secret, passphrase, associatedData, DefaultKDFParams)
}

func sealWithParams(secret []byte, passphrase string, associatedData []byte, params KDFParams) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key := deriveKey(passphrase, salt, params)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(Envelope{
		Version:    envelopeVersion,
		KDF:        envelopeKDF,
		Params:     params,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, secret, associatedData),
	})
	if err != nil {
		return nil, err
	}
	return append([]byte(envelopePrefix), raw...), nil
}

// Open reverses Seal. It returns ErrAuthFailed for a wrong passphrase, a
// mismatched associatedData or a modified envelope, and ErrWeakKDF for
// envelopes whose cost parameters were lowered below MinKDFParams.
func Open(sealed []byte, passphrase string, associatedData []byte) ([]byte, error) {
	if !strings.HasPrefix(string(sealed), envelopePrefix) {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidEnvelope)
	}
	var env Envelope
	if err := json.Unmarshal(sealed[len(envelopePrefix):], &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if err := env.validate(); err != nil {
		return nil, err
	}

	key := deriveKey(passphrase, env.Salt, env.Params)
	defer zeroBytes(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, associatedData)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

func (env *Envelope) validate() error {
	switch {
	case env.Version != envelopeVersion:
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidEnvelope, env.Version)
	case env.KDF != envelopeKDF:
		return fmt.Errorf("%w: unsupported kdf %q", ErrInvalidEnvelope, env.KDF)
	case len(env.Salt) != saltSize:
		return fmt.Errorf("%w: salt length %d", ErrInvalidEnvelope, len(env.Salt))
	case len(env.Nonce) != chacha20poly1305.NonceSizeX:
		return fmt.Errorf("%w: nonce length %d", ErrInvalidEnvelope, len(env.Nonce))
	case env.Params.Time < MinKDFParams.Time,
		env.Params.MemoryKB < MinKDFParams.MemoryKB,
		env.Params.Threads < MinKDFParams.Threads:
		return ErrWeakKDF
	case env.Params.MemoryKB > maxKDFMemoryKB:
		return fmt.Errorf("%w: kdf memory %d KiB exceeds limit", ErrInvalidEnvelope, env.Params.MemoryKB)
	case env.Params.Time > maxKDFTime:
		return fmt.Errorf("%w: kdf time %d exceeds limit", ErrInvalidEnvelope, env.Params.Time)
	case env.Params.Threads > maxKDFThreads:
		return fmt.Errorf("%w: kdf threads %d exceed limit", ErrInvalidEnvelope, env.Params.Threads)
	}
	return nil
}

func deriveKey(passphrase string, salt []byte, params KDFParams) []byte {
	return argon2.IDKey([]byte(passphrase), salt, params.Time, params.MemoryKB, params.Threads, chacha20poly1305.KeySize)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
