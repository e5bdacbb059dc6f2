package sat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tokopedia/sat-go/internal/apierrors"
	"github.com/tokopedia/sat-go/internal/token"
	"github.com/tokopedia/sat-go/pipeline"
	"github.com/tokopedia/sat-go/signature"
)

// API paths relative to Config.BaseURL.
const (
	PathInquiry = "v2/inquiry"
	PathOrder   = "v2/order"
	PathAccount = "v2/account"
	PathPing    = "ping"
)

// Client is a SAT API client. It is safe for concurrent use.
type Client struct {
	pipeline     *pipeline.Client
	tokens       *token.Cache
	signer       *signature.Signer
	verifyStatus bool
	logger       *slog.Logger
}

// New creates a Client from cfg. A nil cfg is a configuration error;
// use NewConfigBuilder to obtain one with defaults.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, apierrors.NewConfigurationError(apierrors.ErrInvalidConfig, "config is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tokens, err := token.New(token.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenHost:    cfg.TokenHost,
		HTTPClient:   cfg.HTTPClient,
		Clock:        cfg.Clock,
		Logger:       logger,
	})
	if err != nil {
		return nil, apierrors.NewConfigurationError(err, "failed to create token cache")
	}

	sdkVersion := cfg.SDKVersion
	if sdkVersion == "" {
		sdkVersion = DefaultSDKVersion
	}

	pc, err := pipeline.New(pipeline.Config{
		BaseURL:    cfg.BaseURL,
		Tokens:     tokens,
		HTTPClient: cfg.HTTPClient,
		Clock:      cfg.Clock,
		SDKVersion: sdkVersion,
		Logger:     logger,
	})
	if err != nil {
		return nil, apierrors.NewConfigurationError(err, "failed to create request pipeline")
	}

	return &Client{
		pipeline:     pc,
		tokens:       tokens,
		signer:       cfg.Signer,
		verifyStatus: cfg.VerifyStatusSignature,
		logger:       logger,
	}, nil
}

// Inquiry asks for the price and details of a product for a client number.
// The request is not signed.
func (c *Client) Inquiry(ctx context.Context, req InquiryRequest) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	body, err := marshalEnvelope(TypeInquiry, "", req)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPost, PathInquiry, body)
}

// Checkout places an order. The serialized envelope is signed with the
// configured private key and transmitted byte for byte as signed.
//
// Without a Signer holding a private key Checkout fails with a
// ConfigurationError before any network activity, token acquisition
// included.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (*Response, error) {
	if c.signer == nil {
		return nil, apierrors.NewConfigurationError(apierrors.ErrMissingSigner, "checkout requires a signer")
	}
	if !c.signer.HasPrivateKey() {
		return nil, apierrors.NewConfigurationError(apierrors.ErrMissingPrivateKey, "checkout requires a signer")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	body, err := marshalEnvelope(TypeOrder, req.RequestID, req)
	if err != nil {
		return nil, err
	}

	sig, err := c.signer.Sign(body)
	if err != nil {
		return nil, fmt.Errorf("failed to sign checkout payload: %w", err)
	}

	resp, err := c.pipeline.Post(ctx, PathOrder, body, pipeline.WithSignature(sig))
	if err != nil {
		return nil, err
	}
	return fromPipeline(resp), nil
}

// CheckStatus fetches the state of the order placed with requestID.
//
// When status verification is enabled and the server answers 200, the
// signature response header is verified over the exact body bytes; a
// missing or mismatching signature fails the call with a
// SignatureVerificationError and the response is discarded. Other statuses
// are returned unverified.
func (c *Client) CheckStatus(ctx context.Context, requestID string) (*Response, error) {
	switch requestID {
	case "":
		return nil, &apierrors.ValidationError{Errors: []string{"request ID is required"}}
	case ".", "..":
		// These would be resolved as dot segments instead of naming an order.
		return nil, &apierrors.ValidationError{Errors: []string{fmt.Sprintf("request ID %q is not a valid path segment", requestID)}}
	}

	resp, err := c.pipeline.Get(ctx, PathOrder+"/"+url.PathEscape(requestID))
	if err != nil {
		return nil, err
	}

	if c.verifyStatus && resp.StatusCode == http.StatusOK {
		if err := c.verifyResponse(resp); err != nil {
			c.logger.WarnContext(ctx, "SAT status response rejected",
				slog.String("request_id", requestID),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
	}

	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("status response for %q is not valid JSON", requestID)
	}
	return fromPipeline(resp), nil
}

// Account fetches the partner balance.
func (c *Client) Account(ctx context.Context) (*Response, error) {
	return c.send(ctx, http.MethodGet, PathAccount, nil)
}

// Ping checks that the API is reachable and the credentials are accepted.
func (c *Client) Ping(ctx context.Context) (*Response, error) {
	return c.send(ctx, http.MethodGet, PathPing, nil)
}

// InvalidateToken discards the cached access token so that the next call
// performs a fresh exchange. The client never does this on its own; call it
// after the API answers 401 with a token that should have been valid.
func (c *Client) InvalidateToken() {
	c.tokens.Invalidate()
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) (*Response, error) {
	resp, err := c.pipeline.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return fromPipeline(resp), nil
}

func (c *Client) verifyResponse(resp *pipeline.Response) error {
	sig := resp.Header.Get(pipeline.HeaderSignature)
	if sig == "" {
		return &apierrors.SignatureVerificationError{Message: "response carries no signature header"}
	}

	ok, err := c.signer.Verify(resp.Body, sig)
	if err != nil {
		return err
	}
	if !ok {
		return &apierrors.SignatureVerificationError{Message: "signature does not match response body"}
	}
	return nil
}

// marshalEnvelope serializes attributes inside a {data:{type,id,attributes}}
// envelope. HTML characters are not escaped and no trailing newline is
// written, so the result is exactly what goes on the wire.
func marshalEnvelope[T any](typ, id string, attributes T) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(envelope[T]{Data: resource[T]{Type: typ, ID: id, Attributes: attributes}}); err != nil {
		return nil, fmt.Errorf("failed to serialize %s request: %w", typ, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func fromPipeline(resp *pipeline.Response) *Response {
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}
}
