package signature_test

import (
	"fmt"

	"github.com/tokopedia/sat-go/signature"
)

func ExampleSigner_Sign() {
	signer, err := signature.NewBuilder().
		PrivateKeyFile("testdata/private.pem").
		PublicKeyFile("testdata/public.pem").
		Build()
	if err != nil {
		fmt.Printf("failed to build signer: %s\n", err)
		return
	}

	payload := []byte(`{"data":{"type":"order","id":"REQ-1","attributes":{"product_code":"pln-postpaid","client_number":"2121212"}}}`)
	sig, err := signer.Sign(payload)
	if err != nil {
		fmt.Printf("failed to sign: %s\n", err)
		return
	}

	ok, err := signer.Verify(payload, sig)
	if err != nil {
		fmt.Printf("failed to verify: %s\n", err)
		return
	}
	fmt.Printf("verified: %t\n", ok)

	ok, _ = signer.Verify(append(payload, ' '), sig)
	fmt.Printf("verified after tampering: %t\n", ok)
	// Output:
	// verified: true
	// verified after tampering: false
}
