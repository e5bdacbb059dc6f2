package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tokopedia/sat-go/internal/apierrors"
)

// IsAccepted reports whether status is delivered to the caller as a
// response. The SAT API reports business failures with 400, 401 and 500
// and a JSON error document, so those are responses like 200 is.
func IsAccepted(status int) bool {
	switch status {
	case http.StatusOK, http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError:
		return true
	default:
		return false
	}
}

// Response is a completed exchange with an accepted status. Body holds the
// bytes exactly as received.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Config configures a Client.
type Config struct {
	// BaseURL is the absolute URL every request path is resolved against.
	BaseURL string

	// Tokens supplies bearer tokens. Required.
	Tokens TokenSource

	// HTTPClient sends requests. Its Transport is wrapped, not replaced;
	// the client itself is not modified. Defaults to a zero http.Client.
	HTTPClient *http.Client

	// Clock provides the Date header. Defaults to SystemClock.
	Clock Clock

	// SDKVersion is sent as the X-Sat-Sdk-Version header.
	SDKVersion string

	// Logger receives debug records for each request.
	Logger *slog.Logger
}

// Client sends authenticated requests relative to a fixed base URL.
// Exactly one attempt is made per call. Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new Client.
func New(cfg Config) (*Client, error) {
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", cfg.BaseURL)
	}

	var hc http.Client
	if cfg.HTTPClient != nil {
		hc = *cfg.HTTPClient
	}
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	hc.Transport = &Transport{
		Base:       hc.Transport,
		Tokens:     cfg.Tokens,
		SDKVersion: cfg.SDKVersion,
		Clock:      clock,
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    u.String(),
		httpClient: &hc,
		logger:     logger,
	}, nil
}

// BaseURL returns the URL request paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get sends a GET request for path.
func (c *Client) Get(ctx context.Context, path string, options ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, options...)
}

// Post sends body, which must already be serialized, to path. The bytes are
// transmitted unchanged so that a signature computed over them stays valid.
func (c *Client) Post(ctx context.Context, path string, body []byte, options ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, options...)
}

// Do sends a request and reads the complete response body.
//
// Responses with an accepted status (see IsAccepted) are returned with a nil
// error whatever their content. Any other status yields a
// *apierrors.StatusError and no response. Network failures and token
// acquisition failures are returned as produced by the http.Client.
func (c *Client) Do(ctx context.Context, method, path string, body []byte, options ...RequestOption) (*Response, error) {
	rc, err := newRequestConfig(options)
	if err != nil {
		return nil, err
	}

	target, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for _, h := range rc.headers {
		req.Header.Set(h.key, h.value)
	}
	if rc.signature != "" {
		req.Header.Set(HeaderSignature, rc.signature)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.DebugContext(ctx, "SAT request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Bool("signed", rc.signature != ""),
		slog.Duration("elapsed", time.Since(start)),
	)

	if !IsAccepted(resp.StatusCode) {
		return nil, &apierrors.StatusError{
			StatusCode: resp.StatusCode,
			Method:     method,
			URL:        target,
			Body:       data,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
