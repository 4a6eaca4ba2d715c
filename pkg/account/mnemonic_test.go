package account_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"github.com/snehendu098/ghost/wallet/pkg/account"
)

func TestMnemonicRoundTrip(t *testing.T) {
	pk, err := account.PrivateKeyFromSeed(12345)
	require.NoError(t, err)

	phrase, err := pk.Mnemonic()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(phrase), account.MnemonicWords)

	restored, err := account.PrivateKeyFromMnemonic(phrase)
	require.NoError(t, err)
	assert.True(t, pk.Equal(restored))
	assert.Equal(t, seededPrivateKey, restored.String())

	t.Run("tolerates spacing and case", func(t *testing.T) {
		messy := "  " + strings.ToUpper(strings.Join(strings.Fields(phrase), "\t ")) + "\n"
		restored, err := account.PrivateKeyFromMnemonic(messy)
		require.NoError(t, err)
		assert.True(t, pk.Equal(restored))
	})
}

func TestPrivateKeyFromMnemonicErrors(t *testing.T) {
	pk, err := account.PrivateKeyFromSeed(5)
	require.NoError(t, err)
	phrase, err := pk.Mnemonic()
	require.NoError(t, err)
	words := strings.Fields(phrase)

	t.Run("word count", func(t *testing.T) {
		_, err := account.PrivateKeyFromMnemonic(strings.Join(words[:12], " "))
		assert.ErrorIs(t, err, account.ErrInvalidLength)
	})

	t.Run("unknown word", func(t *testing.T) {
		broken := append([]string{"notaword"}, words[1:]...)
		_, err := account.PrivateKeyFromMnemonic(strings.Join(broken, " "))
		assert.ErrorIs(t, err, account.ErrInvalidCharacter)
	})

	t.Run("checksum", func(t *testing.T) {
		// replacing the final word breaks the embedded checksum for all but
		// one in 256 choices
		failures := 0
		for _, replacement := range []string{"abandon", "ability", "able", "about"} {
			broken := append(append([]string{}, words[:23]...), replacement)
			_, err := account.PrivateKeyFromMnemonic(strings.Join(broken, " "))
			if err != nil {
				assert.ErrorIs(t, err, account.ErrInvalidChecksum)
				failures++
			}
		}
		assert.GreaterOrEqual(t, failures, 3)
	})

	t.Run("entropy out of scalar range", func(t *testing.T) {
		entropy := make([]byte, 32)
		for i := range entropy {
			entropy[i] = 0xff
		}
		phrase, err := bip39.NewMnemonic(entropy)
		require.NoError(t, err)
		_, err = account.PrivateKeyFromMnemonic(phrase)
		assert.ErrorIs(t, err, account.ErrInvalidValue)

		var decodeErr *account.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "mnemonic", decodeErr.Entity)
		assert.True(t, strings.HasPrefix(err.Error(), "decode mnemonic: invalid value"), err.Error())
		assert.Equal(t, 1, strings.Count(err.Error(), "decode "), err.Error())
	})
}
