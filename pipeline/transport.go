package pipeline

import (
	"context"
	"net/http"
)

// Header names set on every request.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderDate          = "Date"
	HeaderSDKVersion    = "X-Sat-Sdk-Version"
	HeaderSignature     = "Signature"
)

// TokenSource supplies bearer tokens. Implementations must be safe for
// concurrent use and must never return an empty token without an error.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenSourceFunc is a function adapter for TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) AccessToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// Transport is an http.RoundTripper that authenticates SAT requests.
//
// For every request, in this order, it:
//   - obtains a bearer token from Tokens and sets the Authorization header
//   - sets Content-Type to JSON, Date to the current time and the
//     SDK identification header
type Transport struct {
	// Base is the underlying RoundTripper.
	// If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Tokens supplies the bearer token.
	Tokens TokenSource

	// SDKVersion is sent as the X-Sat-Sdk-Version header.
	SDKVersion string

	// Clock provides the Date header. If nil, SystemClock is used.
	Clock Clock
}

// NewTransport creates a new Transport on top of http.DefaultTransport.
func NewTransport(tokens TokenSource, sdkVersion string) *Transport {
	return &Transport{
		Base:       http.DefaultTransport,
		Tokens:     tokens,
		SDKVersion: sdkVersion,
		Clock:      SystemClock{},
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.Tokens.AccessToken(req.Context())
	if err != nil {
		// RoundTrip must always close the body, including on errors.
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, err
	}

	// Clone the request to avoid modifying the original
	authReq := req.Clone(req.Context())
	authReq.Header.Set(HeaderAuthorization, "Bearer "+token)

	clock := t.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	authReq.Header.Set(HeaderContentType, "application/json")
	authReq.Header.Set(HeaderDate, clock.Now().UTC().Format(http.TimeFormat))
	authReq.Header.Set(HeaderSDKVersion, t.SDKVersion)

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(authReq)
}
