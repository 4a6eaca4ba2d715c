package account

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/mr-tron/base58/base58"

	"github.com/snehendu098/ghost/wallet/pkg/curve"
)

const (
	// PrivateKeyPrefix starts every canonical private key string.
	PrivateKeyPrefix = "APrivateKey1"
	// ViewKeyPrefix starts every canonical view key string.
	ViewKeyPrefix = "AViewKey1"
	// AddressPrefix starts every canonical address string.
	AddressPrefix = AddressHRP + "1"
	// AddressHRP is the bech32m human-readable part of an address.
	AddressHRP = "aleo"
	// PrivateKeyLength is the length of every canonical private key string.
	PrivateKeyLength = 59
	// ViewKeyLength is the length of every canonical view key string.
	ViewKeyLength = 53
	// AddressLength is the length of every canonical address string.
	AddressLength = 63

	bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
)

// The byte prefixes are chosen so the base58 text always begins with the
// human-readable prefix above.
var (
	privateKeyMagic = []byte{0x7f, 0x86, 0xbd, 0x74, 0xd2, 0xdd, 0xd2, 0x89, 0x91, 0x12, 0xfd}
	viewKeyMagic    = []byte{0x0e, 0x8a, 0xdf, 0xcc, 0xf7, 0xe0, 0x7a}
)

func encodePrefixed(magic, payload []byte) string {
	buf := make([]byte, 0, len(magic)+len(payload))
	buf = append(buf, magic...)
	buf = append(buf, payload...)
	defer clear(buf)
	return base58.Encode(buf)
}

// decodePrefixed returns the 32-byte payload of a base58 key string.
func decodePrefixed(entity, text, prefix string, length int, magic []byte) ([]byte, error) {
	if !strings.HasPrefix(text, prefix) {
		return nil, decodeErr(entity, ErrInvalidPrefix, fmt.Errorf("want %q", prefix))
	}
	raw, err := base58.Decode(text)
	if err != nil {
		return nil, decodeErr(entity, ErrInvalidCharacter, err)
	}
	defer clear(raw)

	if len(text) != length {
		return nil, decodeErr(entity, ErrInvalidLength, fmt.Errorf("got %d characters, want %d", len(text), length))
	}
	if want := len(magic) + curve.ScalarSize; len(raw) != want {
		return nil, decodeErr(entity, ErrInvalidLength, fmt.Errorf("got %d bytes, want %d", len(raw), want))
	}
	if subtle.ConstantTimeCompare(raw[:len(magic)], magic) != 1 {
		return nil, decodeErr(entity, ErrInvalidPrefix, nil)
	}

	payload := make([]byte, curve.ScalarSize)
	copy(payload, raw[len(magic):])
	return payload, nil
}

func encodeAddress(x [curve.PointSize]byte) string {
	data, err := bech32.ConvertBits(x[:], 8, 5, true)
	if err != nil {
		panic(fmt.Sprintf("account: regroup address bits: %v", err))
	}
	s, err := bech32.EncodeM(AddressHRP, data)
	if err != nil {
		panic(fmt.Sprintf("account: encode address: %v", err))
	}
	return s
}

// decodeAddress returns the x-coordinate bytes carried by an address string.
func decodeAddress(text string) ([]byte, error) {
	const entity = "address"

	if !strings.HasPrefix(text, AddressPrefix) {
		return nil, decodeErr(entity, ErrInvalidPrefix, fmt.Errorf("want %q", AddressPrefix))
	}
	for i, r := range text[len(AddressPrefix):] {
		if !strings.ContainsRune(bech32Charset, r) {
			return nil, decodeErr(entity, ErrInvalidCharacter, fmt.Errorf("%q at position %d", r, len(AddressPrefix)+i))
		}
	}
	if len(text) != AddressLength {
		return nil, decodeErr(entity, ErrInvalidLength, fmt.Errorf("got %d characters, want %d", len(text), AddressLength))
	}

	hrp, data, version, err := bech32.DecodeGeneric(text)
	if err != nil {
		var checksumErr bech32.ErrInvalidChecksum
		if errors.As(err, &checksumErr) {
			return nil, decodeErr(entity, ErrInvalidChecksum, err)
		}
		return nil, decodeErr(entity, ErrInvalidCharacter, err)
	}
	if hrp != AddressHRP {
		return nil, decodeErr(entity, ErrInvalidPrefix, fmt.Errorf("human-readable part %q", hrp))
	}
	if version != bech32.VersionM {
		return nil, decodeErr(entity, ErrInvalidChecksum, errors.New("bech32 checksum where bech32m is required"))
	}

	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, decodeErr(entity, ErrInvalidValue, err)
	}
	if len(payload) != curve.PointSize {
		return nil, decodeErr(entity, ErrInvalidLength, fmt.Errorf("got %d bytes, want %d", len(payload), curve.PointSize))
	}
	return payload, nil
}
