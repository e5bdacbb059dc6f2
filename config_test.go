package sat_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	sat "github.com/tokopedia/sat-go"
	"github.com/tokopedia/sat-go/pipeline"
	"github.com/tokopedia/sat-go/signature"
)

func TestConfigBuilder(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := sat.NewConfigBuilder("id", "secret").Build()
		require.NoError(t, err)
		require.Equal(t, "id", cfg.ClientID)
		require.Equal(t, "secret", cfg.ClientSecret)
		require.Equal(t, sat.DefaultBaseURL, cfg.BaseURL)
		require.Equal(t, sat.DefaultTokenHost, cfg.TokenHost)
		require.Equal(t, sat.DefaultSDKVersion, cfg.SDKVersion)
		require.Nil(t, cfg.Signer)
		require.False(t, cfg.VerifyStatusSignature)
		require.NotNil(t, cfg.HTTPClient)
		require.Zero(t, cfg.HTTPClient.Timeout)
		require.NotNil(t, cfg.Logger)
		require.IsType(t, pipeline.SystemClock{}, cfg.Clock)
	})

	t.Run("Overrides", func(t *testing.T) {
		hc := &http.Client{}
		signer := signature.NewBuilder().RSAPublicKey(testPublicKey).MustBuild()
		cfg := sat.NewConfigBuilder("id", "secret").
			BaseURL("https://api.example.com/api").
			TokenHost("https://auth.example.com").
			Signer(signer).
			VerifyStatusSignature(true).
			HTTPClient(hc).
			SDKVersion("custom@1").
			MustBuild()
		require.Equal(t, "https://api.example.com/api", cfg.BaseURL)
		require.Equal(t, "https://auth.example.com", cfg.TokenHost)
		require.Same(t, signer, cfg.Signer)
		require.True(t, cfg.VerifyStatusSignature)
		require.Same(t, hc, cfg.HTTPClient)
		require.Equal(t, "custom@1", cfg.SDKVersion)
	})

	testcases := []struct {
		Name    string
		Builder *sat.ConfigBuilder
		Is      error
	}{
		{
			Name:    "Missing client ID",
			Builder: sat.NewConfigBuilder("", "secret"),
			Is:      sat.ErrInvalidConfig,
		},
		{
			Name:    "Relative base URL",
			Builder: sat.NewConfigBuilder("id", "secret").BaseURL("/api"),
			Is:      sat.ErrInvalidConfig,
		},
		{
			Name:    "Relative token host",
			Builder: sat.NewConfigBuilder("id", "secret").TokenHost("accounts"),
			Is:      sat.ErrInvalidConfig,
		},
		{
			Name:    "Verification without signer",
			Builder: sat.NewConfigBuilder("id", "secret").VerifyStatusSignature(true),
			Is:      sat.ErrMissingPublicKey,
		},
		{
			Name: "Verification without public key",
			Builder: sat.NewConfigBuilder("id", "secret").
				Signer(signature.NewBuilder().RSAPrivateKey(testPrivateKey).MustBuild()).
				VerifyStatusSignature(true),
			Is: sat.ErrMissingPublicKey,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			cfg, err := tc.Builder.Build()
			require.Nil(t, cfg)
			require.ErrorIs(t, err, tc.Is)
			var cerr *sat.ConfigurationError
			require.ErrorAs(t, err, &cerr)

			require.Panics(t, func() { tc.Builder.MustBuild() })
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("Nil config", func(t *testing.T) {
		_, err := sat.New(nil)
		require.ErrorIs(t, err, sat.ErrInvalidConfig)
	})

	t.Run("Hand-built config is validated", func(t *testing.T) {
		_, err := sat.New(&sat.Config{ClientID: "id", BaseURL: "nope", TokenHost: sat.DefaultTokenHost})
		require.ErrorIs(t, err, sat.ErrInvalidConfig)
	})

	t.Run("Hand-built config gets defaults", func(t *testing.T) {
		client, err := sat.New(&sat.Config{
			ClientID:  "id",
			BaseURL:   sat.DefaultBaseURL,
			TokenHost: sat.DefaultTokenHost,
		})
		require.NoError(t, err)
		require.NotNil(t, client)
	})
}
