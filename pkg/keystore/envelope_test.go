package keystore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	secret := []byte("thirty-two bytes of seed material")
	aad := []byte("aleo1address")

	sealed, err := Seal(secret, "correct horse", aad)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), string(secret))

	t.Run("round trip", func(t *testing.T) {
		plain, err := Open(sealed, "correct horse", aad)
		require.NoError(t, err)
		assert.Equal(t, secret, plain)
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		_, err := Open(sealed, "battery staple", aad)
		assert.ErrorIs(t, err, ErrAuthFailed)
	})

	t.Run("wrong associated data", func(t *testing.T) {
		_, err := Open(sealed, "correct horse", []byte("aleo1other"))
		assert.ErrorIs(t, err, ErrAuthFailed)
	})

	t.Run("fresh salt and nonce per seal", func(t *testing.T) {
		again, err := Seal(secret, "correct horse", aad)
		require.NoError(t, err)
		assert.NotEqual(t, sealed, again)
	})
}

func TestOpenRejectsMalformedEnvelopes(t *testing.T) {
	sealed, err := Seal([]byte("secret"), "pw", nil)
	require.NoError(t, err)

	mutate := func(f func(env *Envelope)) []byte {
		var env Envelope
		require.NoError(t, json.Unmarshal(sealed[len(envelopePrefix):], &env))
		f(&env)
		raw, err := json.Marshal(env)
		require.NoError(t, err)
		return append([]byte(envelopePrefix), raw...)
	}

	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{"missing header", sealed[len(envelopePrefix):], ErrInvalidEnvelope},
		{"not json", []byte(envelopePrefix + "{"), ErrInvalidEnvelope},
		{"unknown version", mutate(func(e *Envelope) { e.Version = 2 }), ErrInvalidEnvelope},
		{"unknown kdf", mutate(func(e *Envelope) { e.KDF = "scrypt" }), ErrInvalidEnvelope},
		{"short nonce", mutate(func(e *Envelope) { e.Nonce = e.Nonce[:12] }), ErrInvalidEnvelope},
		{"downgraded time", mutate(func(e *Envelope) { e.Params.Time = 1 }), ErrWeakKDF},
		{"downgraded memory", mutate(func(e *Envelope) { e.Params.MemoryKB = 1024 }), ErrWeakKDF},
		{"excessive memory", mutate(func(e *Envelope) { e.Params.MemoryKB = 1 << 30 }), ErrInvalidEnvelope},
		{"excessive time", mutate(func(e *Envelope) { e.Params.Time = 4_000_000_000 }), ErrInvalidEnvelope},
		{"excessive threads", mutate(func(e *Envelope) { e.Params.Threads = 255 }), ErrInvalidEnvelope},
		{"flipped ciphertext", mutate(func(e *Envelope) { e.Ciphertext[0] ^= 1 }), ErrAuthFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.input, "pw", nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
