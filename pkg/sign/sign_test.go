package sign

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType(t *testing.T) {
	t.Run("String representation", func(t *testing.T) {
		tests := []struct {
			sigType  Type
			expected string
		}{
			{TypeAleo, "Aleo"},
			{TypeUnknown, "Unknown"},
			{Type(99), "Unknown"},
		}

		for _, test := range tests {
			assert.Equal(t, test.expected, test.sigType.String())
		}
	})
}

func TestSignature(t *testing.T) {
	t.Run("Type detection", func(t *testing.T) {
		tests := []struct {
			name     string
			sig      Signature
			expected Type
		}{
			{
				name:     "Aleo signature (128 bytes)",
				sig:      make(Signature, 128),
				expected: TypeAleo,
			},
			{
				name:     "ECDSA-sized signature",
				sig:      make(Signature, 65),
				expected: TypeUnknown,
			},
			{
				name:     "Short signature",
				sig:      make(Signature, 32),
				expected: TypeUnknown,
			},
			{
				name:     "Empty signature",
				sig:      Signature{},
				expected: TypeUnknown,
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				assert.Equal(t, test.expected, test.sig.Type())
			})
		}
	})

	t.Run("JSON marshaling", func(t *testing.T) {
		sig := Signature{0x01, 0x02, 0x03}

		jsonData, err := json.Marshal(sig)
		require.NoError(t, err)
		assert.Equal(t, `"0x010203"`, string(jsonData))

		var unmarshaled Signature
		require.NoError(t, json.Unmarshal(jsonData, &unmarshaled))
		assert.Equal(t, sig, unmarshaled)
	})

	t.Run("JSON unmarshaling errors", func(t *testing.T) {
		var sig Signature
		assert.Error(t, json.Unmarshal([]byte(`"010203"`), &sig), "missing 0x prefix")
		assert.Error(t, json.Unmarshal([]byte(`"0xzz"`), &sig))
		assert.Error(t, json.Unmarshal([]byte(`123`), &sig))
	})

	t.Run("ParseSignature", func(t *testing.T) {
		sig, err := ParseSignature("0x0a0b")
		require.NoError(t, err)
		assert.Equal(t, Signature{0x0a, 0x0b}, sig)

		_, err = ParseSignature("0x0")
		assert.Error(t, err)
	})
}

func TestNewAddressRecoverer(t *testing.T) {
	recoverer, err := NewAddressRecoverer(TypeAleo)
	require.NoError(t, err)
	assert.IsType(t, &AleoAddressRecoverer{}, recoverer)

	_, err = NewAddressRecoverer(TypeUnknown)
	assert.EqualError(t, err, "unsupported signature type: Unknown")

	_, err = NewAddressRecovererFromSignature(make(Signature, 10))
	assert.Error(t, err)
}
