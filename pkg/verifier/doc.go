// Package verifier exposes signature verification, view key to address
// derivation and signer recovery over HTTP.
//
//	POST /v1/verify  {"address", "message", "signature"} -> {"request_id", "valid"}
//	POST /v1/derive  {"view_key"}                        -> {"request_id", "address"}
//	POST /v1/recover {"message", "signature"}            -> {"request_id", "address"}
//
// Signatures are 0x-prefixed hex. Messages are UTF-8 unless "encoding" is
// "hex". Malformed addresses and view keys are rejected with 400; a signature
// that cannot be parsed or does not verify yields "valid": false.
//
// Prometheus metrics are served on a separate listener at /metrics.
package verifier
