package sign_test

import (
	"fmt"
	"log"

	"github.com/snehendu098/ghost/wallet/pkg/sign"
)

// ExampleNewAleoSigner demonstrates creating an Aleo signer and signing a message.
func ExampleNewAleoSigner() {
	signer, err := sign.NewAleoSigner("APrivateKey1zkp4md8AREpQMoEmmVG8kAp8qKpgT95o6upA9ZzL2yHYUMM")
	if err != nil {
		log.Fatal(err)
	}

	message := []byte("hello world")
	signature, err := signer.Sign(message)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Signature length:", len(signature))
	fmt.Println("Type:", signature.Type())
	fmt.Println("Valid:", sign.Verify(signer.PublicKey().Address(), message, signature))
	// Output:
	// Signature length: 128
	// Type: Aleo
	// Valid: true
}

// ExampleSignature_String demonstrates the String method of Signature.
func ExampleSignature_String() {
	sig := sign.Signature([]byte{0x01, 0x02, 0x03, 0x04})
	fmt.Println(sig.String())
	// Output:
	// 0x01020304
}
