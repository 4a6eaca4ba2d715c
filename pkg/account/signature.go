package account

import (
	"fmt"
	"math/big"

	"github.com/snehendu098/ghost/wallet/pkg/curve"
)

// SignatureSize is the length of an encoded signature:
// challenge || response || x(pk_sig) || x(pr_sig), each 32 bytes.
const SignatureSize = 2*curve.ScalarSize + 2*curve.PointSize

const (
	domainSignatureNonce     = "AleoSignatureNonce0"
	domainSignatureChallenge = "AleoSignatureChallenge0"
)

// Sign produces a deterministic Schnorr signature over message.
//
// The nonce is derived from the signing scalars and the message, so signing
// the same message twice yields the same signature.
func (pk *PrivateKey) Sign(message []byte) []byte {
	skSig, rSig := pk.signingScalars()
	defer wipe(skSig, rSig)
	ck := newComputeKey(curve.BaseMul(skSig), curve.BaseMul(rSig))
	addr := ck.address()

	skBytes, rBytes := curve.ScalarToBytes(skSig), curve.ScalarToBytes(rSig)
	nonce := curve.HashToScalar(domainSignatureNonce, skBytes[:], rBytes[:], message)
	clear(skBytes[:])
	clear(rBytes[:])
	defer wipe(nonce)

	e := challenge(curve.BaseMul(nonce), ck, addr, message)

	// s = k - e*sk_sig mod n
	s := new(big.Int).Mul(e, skSig)
	s.Sub(nonce, s)
	s.Mod(s, curve.Order())

	eBytes, sBytes := curve.ScalarToBytes(e), curve.ScalarToBytes(s)
	pkX, prX := ck.pkSig.Bytes(), ck.prSig.Bytes()

	sig := make([]byte, 0, SignatureSize)
	sig = append(sig, eBytes[:]...)
	sig = append(sig, sBytes[:]...)
	sig = append(sig, pkX[:]...)
	sig = append(sig, prX[:]...)
	return sig
}

// Verify reports whether signature is a valid signature by addr over message.
//
// Malformed signatures of any shape yield false; Verify never panics on
// untrusted input.
func Verify(addr Address, message, signature []byte) bool {
	signer, err := RecoverAddress(message, signature)
	if err != nil {
		return false
	}
	return signer.Equal(addr)
}

// RecoverAddress checks signature over message and returns the address of the
// key that produced it.
func RecoverAddress(message, signature []byte) (Address, error) {
	e, s, ck, err := decodeSignature(signature)
	if err != nil {
		return Address{}, err
	}
	addr := ck.address()

	// R = s*G + e*pk_sig
	r := curve.BaseMul(s).Add(ck.pkSig.Mul(e))
	if challenge(r, ck, addr, message).Cmp(e) != 0 {
		return Address{}, fmt.Errorf("%w: challenge mismatch", ErrInvalidSignature)
	}
	return addr, nil
}

func decodeSignature(sig []byte) (e, s *big.Int, ck computeKey, err error) {
	if len(sig) != SignatureSize {
		return nil, nil, computeKey{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignature, len(sig), SignatureSize)
	}
	const (
		sOff  = curve.ScalarSize
		pkOff = 2 * curve.ScalarSize
		prOff = pkOff + curve.PointSize
	)

	if e, err = curve.ScalarFromBytes(sig[:sOff]); err != nil {
		return nil, nil, computeKey{}, fmt.Errorf("%w: challenge: %v", ErrInvalidSignature, err)
	}
	if s, err = curve.ScalarFromBytes(sig[sOff:pkOff]); err != nil {
		return nil, nil, computeKey{}, fmt.Errorf("%w: response: %v", ErrInvalidSignature, err)
	}
	pkSig, err := curve.PointFromBytes(sig[pkOff:prOff])
	if err != nil {
		return nil, nil, computeKey{}, fmt.Errorf("%w: signature public key: %v", ErrInvalidSignature, err)
	}
	prSig, err := curve.PointFromBytes(sig[prOff:])
	if err != nil {
		return nil, nil, computeKey{}, fmt.Errorf("%w: signature randomizer: %v", ErrInvalidSignature, err)
	}
	return e, s, newComputeKey(pkSig, prSig), nil
}

func challenge(r curve.Point, ck computeKey, addr Address, message []byte) *big.Int {
	rX, pkX, prX := r.Bytes(), ck.pkSig.Bytes(), ck.prSig.Bytes()
	return curve.HashToScalar(domainSignatureChallenge, rX[:], pkX[:], prX[:], addr.x[:], message)
}
