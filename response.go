package sat

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a completed API call. Business failures (unknown product,
// duplicate request ID, and so on) are Responses with a 400, 401 or 500
// status, not errors; inspect StatusCode or Errors to branch on them.
type Response struct {
	StatusCode int
	Header     http.Header

	// Body is the payload exactly as received.
	Body []byte
}

// OK reports whether the API accepted the call.
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// Errors returns the errors member of the body, or nil if there is none.
func (r *Response) Errors() ([]ErrorObject, error) {
	var doc struct {
		Errors []ErrorObject `json:"errors"`
	}
	if err := r.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Errors, nil
}

// Inquiry decodes the body of an Inquiry response.
func (r *Response) Inquiry() (*Resource[Inquiry], error) {
	return decodeResource[Inquiry](r)
}

// Order decodes the body of a Checkout or CheckStatus response.
func (r *Response) Order() (*Resource[Order], error) {
	return decodeResource[Order](r)
}

// Account decodes the body of an Account response.
func (r *Response) Account() (*Resource[Account], error) {
	return decodeResource[Account](r)
}

// Ping decodes the body of a Ping response.
func (r *Response) Ping() (*PingStatus, error) {
	var status PingStatus
	if err := r.Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}

func decodeResource[T any](r *Response) (*Resource[T], error) {
	var doc struct {
		Data   *Resource[T]  `json:"data"`
		Errors []ErrorObject `json:"errors"`
	}
	if err := r.Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Data == nil {
		if len(doc.Errors) > 0 {
			return nil, fmt.Errorf("response status %d carries no data: %w", r.StatusCode, doc.Errors[0])
		}
		return nil, fmt.Errorf("response status %d carries no data", r.StatusCode)
	}
	return doc.Data, nil
}
