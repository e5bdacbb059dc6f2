package signature_test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tokopedia/sat-go/internal/apierrors"
	"github.com/tokopedia/sat-go/signature"
)

const (
	privateKeyFile = "testdata/private.pem"
	publicKeyFile  = "testdata/public.pem"
)

func newTestSigner(t *testing.T) *signature.Signer {
	t.Helper()
	s, err := signature.NewBuilder().
		PrivateKeyFile(privateKeyFile).
		PublicKeyFile(publicKeyFile).
		Build()
	require.NoError(t, err)
	return s
}

func TestSignAndVerify(t *testing.T) {
	t.Parallel()
	s := newTestSigner(t)
	message := []byte(`{"data":{"type":"order","id":"NODESAT1","attributes":{"product_code":"pln-postpaid","client_number":"2121212"}}}`)

	t.Run("signatures are randomized", func(t *testing.T) {
		t.Parallel()
		first, err := s.Sign(message)
		require.NoError(t, err)
		second, err := s.Sign(message)
		require.NoError(t, err)
		require.NotEqual(t, first, second)

		for _, sig := range []string{first, second} {
			ok, err := s.Verify(message, sig)
			require.NoError(t, err)
			require.True(t, ok)
		}
	})

	t.Run("altered message does not verify", func(t *testing.T) {
		t.Parallel()
		sig, err := s.Sign(message)
		require.NoError(t, err)

		tampered := append([]byte(nil), message...)
		tampered[len(tampered)-3] = 'X'
		ok, err := s.Verify(tampered, sig)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("garbage signature does not verify", func(t *testing.T) {
		t.Parallel()
		for _, sig := range []string{"", "not base64!!", "c2hvcnQ="} {
			ok, err := s.Verify(message, sig)
			require.NoError(t, err)
			require.False(t, ok, "signature %q", sig)
		}
	})

	t.Run("signature from another key does not verify", func(t *testing.T) {
		t.Parallel()
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		otherSigner := signature.NewBuilder().RSAPrivateKey(other).MustBuild()

		sig, err := otherSigner.Sign(message)
		require.NoError(t, err)
		ok, err := s.Verify(message, sig)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestVerifyAnySaltLength(t *testing.T) {
	t.Parallel()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	s := signature.NewBuilder().RSAPublicKey(&key.PublicKey).MustBuild()

	message := []byte(`{"data":{"type":"order","id":"NODESAT1","attributes":{"status":"Success"}}}`)
	digest := sha256.Sum256(message)

	testcases := []struct {
		Name       string
		SaltLength int
	}{
		{Name: "maximum salt", SaltLength: rsa.PSSSaltLengthAuto},
		{Name: "salt equals hash", SaltLength: rsa.PSSSaltLengthEqualsHash},
		{Name: "no salt", SaltLength: 0},
		{Name: "odd salt", SaltLength: 20},
	}
	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			raw, err := rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], &rsa.PSSOptions{SaltLength: tc.SaltLength})
			require.NoError(t, err)
			sig := base64.StdEncoding.EncodeToString(raw)

			ok, err := s.Verify(message, sig)
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = s.Verify(append(message, ' '), sig)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestMissingKeyMaterial(t *testing.T) {
	t.Parallel()

	t.Run("sign without private key", func(t *testing.T) {
		t.Parallel()
		s, err := signature.NewBuilder().PublicKeyFile(publicKeyFile).Build()
		require.NoError(t, err)
		require.False(t, s.HasPrivateKey())

		_, err = s.Sign([]byte("message"))
		require.ErrorIs(t, err, apierrors.ErrMissingPrivateKey)
		var cfgErr *apierrors.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("verify without public key", func(t *testing.T) {
		t.Parallel()
		s, err := signature.NewBuilder().PrivateKeyFile(privateKeyFile).Build()
		require.NoError(t, err)
		require.False(t, s.HasPublicKey())

		ok, err := s.Verify([]byte("message"), "c2ln")
		require.False(t, ok)
		require.ErrorIs(t, err, apierrors.ErrMissingPublicKey)
	})

	t.Run("nil signer", func(t *testing.T) {
		t.Parallel()
		var s *signature.Signer
		_, err := s.Sign([]byte("message"))
		require.ErrorIs(t, err, apierrors.ErrMissingPrivateKey)
	})
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	t.Run("from strings", func(t *testing.T) {
		t.Parallel()
		priv, err := os.ReadFile(privateKeyFile)
		require.NoError(t, err)
		pub, err := os.ReadFile(publicKeyFile)
		require.NoError(t, err)

		s, err := signature.NewBuilder().PrivateKey(string(priv)).PublicKey(string(pub)).Build()
		require.NoError(t, err)
		require.True(t, s.HasPrivateKey())
		require.True(t, s.HasPublicKey())
	})

	t.Run("PKCS#1 keys", func(t *testing.T) {
		t.Parallel()
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
		pubPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey)})

		s, err := signature.NewBuilder().PrivateKey(string(privPEM)).PublicKey(string(pubPEM)).Build()
		require.NoError(t, err)

		sig, err := s.Sign([]byte("hello"))
		require.NoError(t, err)
		ok, err := s.Verify([]byte("hello"), sig)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("no keys", func(t *testing.T) {
		t.Parallel()
		_, err := signature.NewBuilder().Build()
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := signature.NewBuilder().PrivateKeyFile(filepath.Join(t.TempDir(), "nope.pem")).Build()
		require.ErrorContains(t, err, "failed to read private key file")
	})

	t.Run("malformed PEM", func(t *testing.T) {
		t.Parallel()
		_, err := signature.NewBuilder().PublicKey("-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n").Build()
		require.ErrorContains(t, err, "failed to parse public key")
	})

	t.Run("non-RSA key", func(t *testing.T) {
		t.Parallel()
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)
		der, err := x509.MarshalPKCS8PrivateKey(key)
		require.NoError(t, err)
		_, err = signature.NewBuilder().PrivateKey(string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))).Build()
		require.ErrorContains(t, err, "must be an RSA private key")
	})

	t.Run("first error wins", func(t *testing.T) {
		t.Parallel()
		_, err := signature.NewBuilder().
			PrivateKeyFile(filepath.Join(t.TempDir(), "missing.pem")).
			PublicKeyFile(publicKeyFile).
			Build()
		require.ErrorContains(t, err, "private key")
	})

	t.Run("MustBuild panics", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() { signature.NewBuilder().MustBuild() })
	})
}
