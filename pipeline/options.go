package pipeline

import (
	"fmt"

	"github.com/lestrrat-go/blackmagic"
	"github.com/lestrrat-go/option"
)

type Option = option.Interface

// RequestOption configures a single call made through Client.
type RequestOption interface {
	Option
	requestOption()
}

type requestOption struct {
	Option
}

func (requestOption) requestOption() {}

// Identifier types for options
type identSignature struct{}

func (identSignature) String() string { return "WithSignature" }

type identHeader struct{}

func (identHeader) String() string { return "WithHeader" }

type headerField struct {
	key   string
	value string
}

// WithSignature attaches a base64 payload signature to the request as the
// Signature header. An empty signature leaves the request unsigned.
func WithSignature(signature string) RequestOption {
	return requestOption{option.New(identSignature{}, signature)}
}

// WithHeader sets an additional request header. Headers managed by the
// Transport (Authorization, Content-Type, Date, X-Sat-Sdk-Version) cannot
// be overridden this way.
func WithHeader(key, value string) RequestOption {
	return requestOption{option.New(identHeader{}, headerField{key: key, value: value})}
}

// requestConfig is the resolved set of per-call options.
type requestConfig struct {
	signature string
	headers   []headerField
}

func newRequestConfig(options []RequestOption) (*requestConfig, error) {
	var rc requestConfig
	for _, o := range options {
		switch o.Ident() {
		case identSignature{}:
			if err := blackmagic.AssignIfCompatible(&rc.signature, o.Value()); err != nil {
				return nil, fmt.Errorf("invalid value for %s: %w", o.Ident(), err)
			}
		case identHeader{}:
			var h headerField
			if err := blackmagic.AssignIfCompatible(&h, o.Value()); err != nil {
				return nil, fmt.Errorf("invalid value for %s: %w", o.Ident(), err)
			}
			rc.headers = append(rc.headers, h)
		}
	}
	return &rc, nil
}
