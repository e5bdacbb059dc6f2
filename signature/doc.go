// Package signature signs outgoing SAT payloads and verifies signed SAT
// responses.
//
// The scheme is RSASSA-PSS with SHA-256 and a salt as long as the digest
// (JWS "PS256"). Signatures are randomized: signing the same payload twice
// produces two different values, both of which verify.
//
// # Key Material
//
// Keys are PEM encoded. Private keys may be PKCS#8 ("PRIVATE KEY") or
// PKCS#1 ("RSA PRIVATE KEY"); public keys may be PKIX ("PUBLIC KEY") or
// PKCS#1 ("RSA PUBLIC KEY"). Key material is read once, when the Signer is
// built:
//
//	signer, err := signature.NewBuilder().
//		PrivateKeyFile("partner.pem").
//		PublicKeyFile("sat.pub").
//		Build()
//
// A Signer without a private key can only verify, and one without a public
// key can only sign. Calling the missing half is a configuration error, not
// a verification failure.
package signature
