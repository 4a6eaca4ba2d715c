package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicWords is the number of words in a private key backup phrase.
const MnemonicWords = 24

// Mnemonic encodes the private key seed as a 24-word BIP-39 phrase.
// The phrase is as sensitive as the key itself.
func (pk *PrivateKey) Mnemonic() (string, error) {
	mnemonic, err := bip39.NewMnemonic(pk.seed[:])
	if err != nil {
		return "", fmt.Errorf("encode mnemonic: %w", err)
	}
	return mnemonic, nil
}

// PrivateKeyFromMnemonic restores a private key from a phrase produced by Mnemonic.
// Words may be separated by any amount of whitespace.
func PrivateKeyFromMnemonic(mnemonic string) (*PrivateKey, error) {
	const entity = "mnemonic"

	words := strings.Fields(mnemonic)
	if len(words) != MnemonicWords {
		return nil, decodeErr(entity, ErrInvalidLength, fmt.Errorf("got %d words, want %d", len(words), MnemonicWords))
	}
	entropy, err := bip39.EntropyFromMnemonic(strings.ToLower(strings.Join(words, " ")))
	if err != nil {
		kind := ErrInvalidCharacter
		if errors.Is(err, bip39.ErrChecksumIncorrect) {
			kind = ErrInvalidChecksum
		}
		return nil, decodeErr(entity, kind, err)
	}
	defer clear(entropy)

	pk, err := PrivateKeyFromBytes(entropy)
	if err != nil {
		var inner *DecodeError
		if errors.As(err, &inner) {
			inner.Entity = entity
		}
		return nil, err
	}
	return pk, nil
}
