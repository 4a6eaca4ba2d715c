// Package account implements Aleo account identities: private keys, view keys,
// addresses, and the signatures that bind messages to an address.
//
// # Derivation
//
// Every account starts from a PrivateKey and flows one way:
//
//	PrivateKey ──► ViewKey ──► Address
//	     └───────────────────────►┘
//
// A PrivateKey is a 32-byte scalar seed. Two secret scalars are hashed out of
// it: the signature secret key sk_sig and the randomizer r_sig. Their public
// images pk_sig = sk_sig*G and pr_sig = r_sig*G form the compute key, which is
// hashed once more into sk_prf. The ViewKey is the scalar sk_sig + r_sig + sk_prf
// and the Address is ViewKey*G. AddressFromPrivateKey walks the compute-key
// path (pk_sig + pr_sig + sk_prf*G) while AddressFromViewKey multiplies the view
// key directly; both always land on the same point.
//
// # Encodings
//
// Canonical strings round-trip exactly through the Parse functions:
//
//   - private keys: base58, always 59 characters starting with "APrivateKey1"
//   - view keys: base58, always 53 characters starting with "AViewKey1"
//   - addresses: bech32m with the "aleo" prefix, always 63 characters
//
// Malformed input produces a *DecodeError whose Kind is one of ErrInvalidPrefix,
// ErrInvalidChecksum, ErrInvalidCharacter, ErrInvalidLength or ErrInvalidValue.
// Parsing never panics and never returns a partially built value.
//
// # Signatures
//
// PrivateKey.Sign produces a deterministic 128-byte Schnorr signature that
// carries the signer's compute key. Verify recomputes the signer address from
// that compute key and checks it against the expected address. It returns false
// for any malformed or mismatching input instead of an error:
//
//	sig := pk.Sign(msg)
//	ok := account.Verify(pk.Address(), msg, sig)
//
// # Secret handling
//
// PrivateKey and ViewKey keep their bytes unexported, compare in constant time
// and can be wiped with Zero. Their String methods return the secret encoding;
// use Redacted when a value may end up in logs.
package account
