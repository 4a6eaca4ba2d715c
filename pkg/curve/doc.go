// Package curve provides the group arithmetic behind account keys.
//
// Keys live on the twisted Edwards curve embedded in BLS12-377
// (-x^2 + y^2 = 1 + 3021*x^2*y^2 over the BLS12-377 scalar field). The package
// wraps gnark-crypto's point and field types and adds the pieces the account
// layer needs on top of them:
//
//   - Point: elements of the prime-order subgroup, encoded as their x-coordinate
//   - scalars modulo the subgroup order, encoded as 32 little-endian bytes
//   - HashToScalar: domain-separated BLAKE2b-512 reduced modulo the order
//   - SampleScalar and NewSeededReader: uniform scalar sampling from either a
//     secure source or a ChaCha20 stream derived from a 64-bit seed
//
// Decoding a point from its x-coordinate recovers y from the curve equation and
// picks the root that lies in the prime-order subgroup; at most one of the two
// does, so the encoding is unambiguous.
package curve
