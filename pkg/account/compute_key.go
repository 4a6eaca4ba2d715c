package account

import (
	"math/big"

	"github.com/snehendu098/ghost/wallet/pkg/curve"
)

// computeKey is the public half of the signing keys: pk_sig = sk_sig*G,
// pr_sig = r_sig*G and the PRF key bound to both. It is embedded in every
// signature and is enough to rebuild the signer's address.
type computeKey struct {
	pkSig curve.Point
	prSig curve.Point
	skPRF *big.Int
}

func newComputeKey(pkSig, prSig curve.Point) computeKey {
	pkX, prX := pkSig.Bytes(), prSig.Bytes()
	return computeKey{
		pkSig: pkSig,
		prSig: prSig,
		skPRF: curve.HashToScalar(domainPRFSecretKey, pkX[:], prX[:]),
	}
}

// address returns pk_sig + pr_sig + sk_prf*G, which equals view_key*G.
func (ck computeKey) address() Address {
	return newAddress(ck.pkSig.Add(ck.prSig).Add(curve.BaseMul(ck.skPRF)))
}
