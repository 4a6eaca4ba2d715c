// Package sign provides chain-agnostic cryptographic signing interfaces.
//
// This package defines core interfaces for digital signatures that can be
// implemented by various chains while keeping a consistent API for signing
// and verification.
//
// The primary interfaces are:
//
//   - Signer: Core interface for cryptographic signing operations
//   - PublicKey: Interface for public key operations
//   - Address: Interface for chain addresses
//   - AddressRecoverer: Interface for signature-based address recovery
//
// Aleo is the implemented backend. Aleo signatures embed the signer's compute
// key, which makes address recovery possible without a separate public key.
//
// # Security Design
//
//   - Private key material is never exposed through the interfaces
//   - Signers only offer signing and public key access
//   - Verification of untrusted signatures reports false instead of failing
//
// # Usage
//
//	signer, err := sign.NewAleoSigner(privateKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Aleo signers take the raw message, not a digest
//	signature, err := signer.Sign([]byte("hello world"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	address := signer.PublicKey().Address()
//	fmt.Println("Address:", address.String())
//	fmt.Println("Valid:", sign.Verify(address, []byte("hello world"), signature))
package sign
