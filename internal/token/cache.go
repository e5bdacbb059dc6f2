// Package token acquires OAuth2 client-credentials access tokens and keeps
// the current one in memory until it expires.
package token

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tokopedia/sat-go/internal/apierrors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

// DefaultPath is the token endpoint path relative to the token host.
const DefaultPath = "/token"

// DefaultExchangeTimeout bounds a single client-credentials exchange.
const DefaultExchangeTimeout = 30 * time.Second

// maxLifetime caps the declared token lifetime.
const maxLifetime = 100 * 365 * 24 * time.Hour

const refreshKey = "access-token"

// Clock provides the current time for expiry decisions.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Token is a bearer token together with the instant after which it must
// no longer be used. A zero ExpiresAt means the issuer declared no lifetime.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// Valid reports whether the token can still be presented at now.
func (t *Token) Valid(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return t.ExpiresAt.IsZero() || now.Before(t.ExpiresAt)
}

// Config configures a Cache.
type Config struct {
	ClientID     string
	ClientSecret string

	// TokenHost is the scheme and host of the authorization server.
	TokenHost string

	// TokenPath is appended to TokenHost. Defaults to DefaultPath.
	TokenPath string

	// HTTPClient performs the token exchange. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// ExchangeTimeout bounds each exchange regardless of the callers'
	// contexts. Defaults to DefaultExchangeTimeout.
	ExchangeTimeout time.Duration

	// Clock decides expiry. Defaults to the system clock.
	Clock Clock

	// Logger receives debug records about token exchanges.
	Logger *slog.Logger
}

// Cache hands out a valid access token, exchanging client credentials for a
// new one whenever the cached token is missing or expired. Refreshes are
// reactive only: nothing happens until a caller asks for a token.
//
// Cache is safe for concurrent use. Callers racing on an expired token share
// a single exchange.
type Cache struct {
	credentials clientcredentials.Config
	httpClient  *http.Client
	timeout     time.Duration
	clock       Clock
	logger      *slog.Logger

	current atomic.Pointer[Token]
	group   singleflight.Group
}

// New creates a Cache. No network activity happens until the first call
// to AccessToken.
func New(cfg Config) (*Cache, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if cfg.TokenHost == "" {
		return nil, fmt.Errorf("token host is required")
	}
	if _, err := url.ParseRequestURI(cfg.TokenHost); err != nil {
		return nil, fmt.Errorf("invalid token host %q: %w", cfg.TokenHost, err)
	}

	path := cfg.TokenPath
	if path == "" {
		path = DefaultPath
	}

	c := &Cache{
		credentials: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     strings.TrimRight(cfg.TokenHost, "/") + "/" + strings.TrimLeft(path, "/"),
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: cfg.HTTPClient,
		timeout:    cfg.ExchangeTimeout,
		clock:      cfg.Clock,
		logger:     cfg.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.timeout <= 0 {
		c.timeout = DefaultExchangeTimeout
	}
	if c.clock == nil {
		c.clock = systemClock{}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c, nil
}

// TokenURL returns the token endpoint the Cache exchanges credentials at.
func (c *Cache) TokenURL() string {
	return c.credentials.TokenURL
}

// AccessToken returns a token that is valid at the time of the call.
// Failures to obtain one are reported as *apierrors.AuthenticationError;
// a stale or empty token is never returned.
func (c *Cache) AccessToken(ctx context.Context) (string, error) {
	if tok := c.current.Load(); tok.Valid(c.clock.Now()) {
		return tok.AccessToken, nil
	}

	// The exchange outlives any single waiter so that one caller giving up
	// does not fail everyone sharing the flight. It is still bounded by the
	// exchange timeout.
	ch := c.group.DoChan(refreshKey, func() (any, error) {
		exchangeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.refresh(exchangeCtx)
	})

	select {
	case <-ctx.Done():
		// Later callers start a new exchange instead of joining this one,
		// which may be stalled.
		c.group.Forget(refreshKey)
		return "", &apierrors.AuthenticationError{Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(*Token).AccessToken, nil
	}
}

// Current returns the cached token, or nil when none has been acquired.
func (c *Cache) Current() *Token {
	return c.current.Load()
}

// Invalidate drops the cached token so the next AccessToken call performs
// a new exchange.
func (c *Cache) Invalidate() {
	c.current.Store(nil)
}

func (c *Cache) refresh(ctx context.Context) (*Token, error) {
	// Another flight may have stored a fresh token after our caller checked.
	if tok := c.current.Load(); tok.Valid(c.clock.Now()) {
		return tok, nil
	}

	c.logger.DebugContext(ctx, "acquiring access token", slog.String("token_url", c.credentials.TokenURL))

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	issued, err := c.credentials.Token(ctx)
	if err != nil {
		c.logger.DebugContext(ctx, "access token exchange failed", slog.String("error", err.Error()))
		return nil, &apierrors.AuthenticationError{Err: err}
	}
	if issued.AccessToken == "" {
		return nil, &apierrors.AuthenticationError{Err: fmt.Errorf("token endpoint returned an empty access token")}
	}

	tok := &Token{
		AccessToken: issued.AccessToken,
		TokenType:   issued.TokenType,
	}
	if lifetime, ok := declaredLifetime(issued); ok {
		tok.ExpiresAt = c.clock.Now().Add(lifetime)
	}
	c.current.Store(tok)

	c.logger.DebugContext(ctx, "acquired access token",
		slog.String("token_type", tok.TokenType),
		slog.Time("expires_at", tok.ExpiresAt),
	)
	return tok, nil
}

// declaredLifetime extracts the issuer's expires_in. oauth2 stamps Expiry
// against the wall clock, so the raw value is preferred to keep expiry on
// our own clock.
func declaredLifetime(t *oauth2.Token) (time.Duration, bool) {
	switch v := t.Extra("expires_in").(type) {
	case float64:
		if v > 0 {
			return secondsToLifetime(v), true
		}
	case int64:
		if v > 0 {
			return secondsToLifetime(float64(v)), true
		}
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
			return secondsToLifetime(n), true
		}
	}
	if !t.Expiry.IsZero() {
		return time.Until(t.Expiry), true
	}
	return 0, false
}

func secondsToLifetime(seconds float64) time.Duration {
	if seconds >= maxLifetime.Seconds() {
		return maxLifetime
	}
	return time.Duration(seconds * float64(time.Second))
}
