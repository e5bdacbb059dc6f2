package signature

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/lestrrat-go/jwx/v3/jwk"
)

// Builder helps build Signer objects
type Builder struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	err        error
}

// NewBuilder creates a new Builder
func NewBuilder() *Builder {
	return &Builder{}
}

// PrivateKey sets the signing key from a PEM encoded string
func (b *Builder) PrivateKey(pemData string) *Builder {
	if b.err != nil {
		return b
	}
	key, err := parsePrivateKey([]byte(pemData))
	if err != nil {
		b.err = err
		return b
	}
	b.privateKey = key
	return b
}

// PublicKey sets the verification key from a PEM encoded string
func (b *Builder) PublicKey(pemData string) *Builder {
	if b.err != nil {
		return b
	}
	key, err := parsePublicKey([]byte(pemData))
	if err != nil {
		b.err = err
		return b
	}
	b.publicKey = key
	return b
}

// PrivateKeyFile reads the signing key from a PEM file
func (b *Builder) PrivateKeyFile(path string) *Builder {
	if b.err != nil {
		return b
	}
	data, err := os.ReadFile(path)
	if err != nil {
		b.err = fmt.Errorf("failed to read private key file: %w", err)
		return b
	}
	return b.PrivateKey(string(data))
}

// PublicKeyFile reads the verification key from a PEM file
func (b *Builder) PublicKeyFile(path string) *Builder {
	if b.err != nil {
		return b
	}
	data, err := os.ReadFile(path)
	if err != nil {
		b.err = fmt.Errorf("failed to read public key file: %w", err)
		return b
	}
	return b.PublicKey(string(data))
}

// RSAPrivateKey sets an already parsed signing key
func (b *Builder) RSAPrivateKey(key *rsa.PrivateKey) *Builder {
	b.privateKey = key
	return b
}

// RSAPublicKey sets an already parsed verification key
func (b *Builder) RSAPublicKey(key *rsa.PublicKey) *Builder {
	b.publicKey = key
	return b
}

// Build creates the Signer. It fails if any key could not be loaded or if
// no key was configured at all.
func (b *Builder) Build() (*Signer, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.privateKey == nil && b.publicKey == nil {
		return nil, fmt.Errorf("at least one of private key or public key is required")
	}
	return &Signer{
		privateKey: b.privateKey,
		publicKey:  b.publicKey,
	}, nil
}

// MustBuild creates the Signer and panics if Build fails
func (b *Builder) MustBuild() *Signer {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func parsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	raw, err := parsePEM(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	key, ok := raw.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key must be an RSA private key, got %T", raw)
	}
	return key, nil
}

func parsePublicKey(data []byte) (*rsa.PublicKey, error) {
	raw, err := parsePEM(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	key, ok := raw.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key must be an RSA public key, got %T", raw)
	}
	return key, nil
}

// parsePEM decodes a single PEM block into its raw crypto key.
func parsePEM(data []byte) (any, error) {
	key, err := jwk.ParseKey(data, jwk.WithPEM(true))
	if err != nil {
		return nil, err
	}
	var raw any
	if err := jwk.Export(key, &raw); err != nil {
		return nil, fmt.Errorf("failed to export key: %w", err)
	}
	return raw, nil
}
