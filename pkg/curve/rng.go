package curve

import (
	"encoding/binary"
	"io"
	"math/big"
	"math/bits"

	"golang.org/x/crypto/chacha20"
)

const (
	// pcgMultiplier and pcgIncrement expand a 64-bit seed into a ChaCha20 key.
	pcgMultiplier = 6364136223846793005
	pcgIncrement  = 11634580027462260723

	// n is 251 bits wide, so only the low 3 bits of the top byte are kept.
	topByteMask = 0x07
)

// SampleScalar draws a uniform scalar from r.
//
// Each attempt reads 32 bytes, clears the bits above the width of n and retries
// when the value is still >= n. The accepted value is interpreted as the
// Montgomery representation of the scalar, so the result is v * 2^-256 mod n.
// Combined with NewSeededReader this reproduces the reference seeded keys.
func SampleScalar(r io.Reader) (*big.Int, error) {
	var buf [ScalarSize]byte
	defer clear(buf[:])
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		buf[ScalarSize-1] &= topByteMask
		v := leToInt(buf[:])
		if v.Cmp(order) < 0 {
			v.Mul(v, montgomeryInv)
			return v.Mod(v, order), nil
		}
	}
}

type seededReader struct {
	cipher *chacha20.Cipher
}

// NewSeededReader returns a deterministic byte stream for seed.
//
// The seed is expanded into a 256-bit key with eight PCG32 steps and the stream
// is the ChaCha20 keystream under that key with a zero nonce. Identical seeds
// always produce identical streams. This is for reproducible fixtures only;
// production keys must come from crypto/rand.
func NewSeededReader(seed uint64) io.Reader {
	var key [chacha20.KeySize]byte
	state := seed
	for i := 0; i < len(key); i += 4 {
		state = state*pcgMultiplier + pcgIncrement
		xorshifted := uint32(((state >> 18) ^ state) >> 27)
		rot := int(state >> 59)
		binary.LittleEndian.PutUint32(key[i:], bits.RotateLeft32(xorshifted, -rot))
	}

	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	clear(key[:])
	if err != nil {
		// key and nonce sizes are fixed above
		panic(err)
	}
	return &seededReader{cipher: c}
}

func (r *seededReader) Read(p []byte) (int, error) {
	clear(p)
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
