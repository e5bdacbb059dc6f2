package sat

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tokopedia/sat-go/internal/apierrors"
	"github.com/tokopedia/sat-go/pipeline"
	"github.com/tokopedia/sat-go/signature"
)

const (
	// DefaultBaseURL is the SAT sandbox API.
	DefaultBaseURL = "https://b2b-playground.tokopedia.com/api"

	// DefaultTokenHost is the authorization server issuing access tokens.
	DefaultTokenHost = "https://accounts.tokopedia.com"
)

// Clock provides the current time for the Date header and token expiry.
type Clock = pipeline.Clock

// Config holds everything a Client needs. Create one with NewConfigBuilder;
// a Config must not be modified after it has been passed to New.
type Config struct {
	ClientID     string
	ClientSecret string

	// BaseURL is the API root every operation path is resolved against.
	BaseURL string

	// TokenHost is the scheme and host of the token endpoint.
	TokenHost string

	// Signer signs checkout payloads and verifies status responses.
	// Without one, Checkout fails with a ConfigurationError.
	Signer *signature.Signer

	// VerifyStatusSignature makes CheckStatus verify the signature of every
	// 200 response before returning it.
	VerifyStatusSignature bool

	// HTTPClient sends API and token requests. It is never modified.
	HTTPClient *http.Client

	Logger     *slog.Logger
	Clock      Clock
	SDKVersion string
}

// ConfigBuilder helps build Config objects
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder for the given client
// credentials, with every other setting at its default.
func NewConfigBuilder(clientID, clientSecret string) *ConfigBuilder {
	return &ConfigBuilder{
		config: Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			BaseURL:      DefaultBaseURL,
			TokenHost:    DefaultTokenHost,
			SDKVersion:   DefaultSDKVersion,
		},
	}
}

// BaseURL sets the API root
func (b *ConfigBuilder) BaseURL(u string) *ConfigBuilder {
	b.config.BaseURL = u
	return b
}

// TokenHost sets the authorization server
func (b *ConfigBuilder) TokenHost(u string) *ConfigBuilder {
	b.config.TokenHost = u
	return b
}

// Signer sets the key material used for checkout and status verification
func (b *ConfigBuilder) Signer(s *signature.Signer) *ConfigBuilder {
	b.config.Signer = s
	return b
}

// VerifyStatusSignature enables or disables verification of status responses
func (b *ConfigBuilder) VerifyStatusSignature(v bool) *ConfigBuilder {
	b.config.VerifyStatusSignature = v
	return b
}

// HTTPClient sets the HTTP client
func (b *ConfigBuilder) HTTPClient(c *http.Client) *ConfigBuilder {
	b.config.HTTPClient = c
	return b
}

// Logger sets the structured logger
func (b *ConfigBuilder) Logger(l *slog.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

// Clock sets the time source
func (b *ConfigBuilder) Clock(c Clock) *ConfigBuilder {
	b.config.Clock = c
	return b
}

// SDKVersion overrides the X-Sat-Sdk-Version header value
func (b *ConfigBuilder) SDKVersion(v string) *ConfigBuilder {
	b.config.SDKVersion = v
	return b
}

// Build validates the settings and returns the Config
func (b *ConfigBuilder) Build() (*Config, error) {
	cfg := b.config
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Clock == nil {
		cfg.Clock = pipeline.SystemClock{}
	}
	return &cfg, nil
}

// MustBuild builds the Config and panics if validation fails
func (b *ConfigBuilder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.ClientID == "" {
		return apierrors.NewConfigurationError(apierrors.ErrInvalidConfig, "client ID is required")
	}
	if err := validateAbsoluteURL(c.BaseURL); err != nil {
		return apierrors.NewConfigurationError(err, "invalid base URL")
	}
	if err := validateAbsoluteURL(c.TokenHost); err != nil {
		return apierrors.NewConfigurationError(err, "invalid token host")
	}
	if c.VerifyStatusSignature && !c.Signer.HasPublicKey() {
		return apierrors.NewConfigurationError(apierrors.ErrMissingPublicKey, "status signature verification requires a public key")
	}
	return nil
}

func validateAbsoluteURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return errors.Join(apierrors.ErrInvalidConfig, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute URL", apierrors.ErrInvalidConfig, s)
	}
	return nil
}
