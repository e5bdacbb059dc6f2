package signature

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/lestrrat-go/jwx/v3/jws/jwsbb"
	"github.com/tokopedia/sat-go/internal/apierrors"
)

// Algorithm is the JWS name of the signature scheme: RSASSA-PSS using
// SHA-256, salt length equal to the digest length.
const Algorithm = "PS256"

var verifyOptions = rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthAuto}

// Signer holds the key pair used to sign requests and verify responses.
// A Signer is immutable and safe for concurrent use.
type Signer struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// HasPrivateKey reports whether the Signer can sign.
func (s *Signer) HasPrivateKey() bool {
	return s != nil && s.privateKey != nil
}

// HasPublicKey reports whether the Signer can verify.
func (s *Signer) HasPublicKey() bool {
	return s != nil && s.publicKey != nil
}

// Sign signs message and returns the standard base64 encoding of the
// signature.
func (s *Signer) Sign(message []byte) (string, error) {
	if !s.HasPrivateKey() {
		return "", apierrors.NewConfigurationError(apierrors.ErrMissingPrivateKey, "")
	}

	// A nil reader makes jwsbb use crypto/rand, which randomizes the PSS salt.
	signature, err := jwsbb.Sign(s.privateKey, Algorithm, message, nil)
	if err != nil {
		return "", fmt.Errorf("failed to sign with algorithm %s: %w", Algorithm, err)
	}
	return base64.StdEncoding.EncodeToString(signature), nil
}

// Verify reports whether signature is a valid base64 encoded signature of
// message. A mismatch, including a signature that is not valid base64, is
// reported as false with a nil error; an error means the Signer cannot
// verify at all.
//
// Any PSS salt length is accepted. Signers that use the maximum salt
// length, the OpenSSL default, verify as well as those produced by Sign.
func (s *Signer) Verify(message []byte, signature string) (bool, error) {
	if !s.HasPublicKey() {
		return false, apierrors.NewConfigurationError(apierrors.ErrMissingPublicKey, "")
	}

	raw, ok := decodeSignature(signature)
	if !ok {
		return false, nil
	}
	digest := sha256.Sum256(message)
	if err := rsa.VerifyPSS(s.publicKey, crypto.SHA256, digest[:], raw, &verifyOptions); err != nil {
		return false, nil
	}
	return true, nil
}

func decodeSignature(signature string) ([]byte, bool) {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return nil, false
	}
	if raw, err := base64.StdEncoding.DecodeString(signature); err == nil {
		return raw, true
	}
	// tolerate senders that strip padding
	if raw, err := base64.RawStdEncoding.DecodeString(signature); err == nil {
		return raw, true
	}
	return nil, false
}
