// Package apierrors provides the error types shared by the SAT client packages.
package apierrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingPrivateKey is returned when signing is attempted without a private key.
	ErrMissingPrivateKey = errors.New("missing private key")

	// ErrMissingPublicKey is returned when verification is attempted without a public key.
	ErrMissingPublicKey = errors.New("missing public key")

	// ErrMissingSigner is returned when an operation needs a signer and none is configured.
	ErrMissingSigner = errors.New("missing signer")

	// ErrInvalidConfig is returned when the client configuration is unusable.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAuthentication is returned when an access token cannot be acquired.
	ErrAuthentication = errors.New("unable to acquire access token")

	// ErrSignatureInvalid is returned when a response signature does not verify.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrUnexpectedStatus is returned when the server answers with a status
	// outside of the accepted set.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrValidation is returned when a request fails client-side validation.
	ErrValidation = errors.New("invalid request")
)

// ConfigurationError reports a caller bug: key material, a signer or some
// other piece of configuration is missing at call time. It is never retried.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError wraps err in a ConfigurationError, adding msg as context.
func NewConfigurationError(err error, msg string) *ConfigurationError {
	if msg == "" {
		return &ConfigurationError{Err: err}
	}
	return &ConfigurationError{Err: fmt.Errorf("%s: %w", msg, err)}
}

// AuthenticationError indicates the OAuth2 token exchange failed.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	if e.Err == nil {
		return ErrAuthentication.Error()
	}
	return fmt.Sprintf("%s: %v", ErrAuthentication, e.Err)
}

// Unwrap returns the underlying error.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// SignatureVerificationError indicates a response could not be authenticated.
// The response that triggered it must not be trusted.
type SignatureVerificationError struct {
	Message string
}

func (e *SignatureVerificationError) Error() string {
	if e.Message == "" {
		return ErrSignatureInvalid.Error()
	}
	return fmt.Sprintf("%s: %s", ErrSignatureInvalid, e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *SignatureVerificationError) Is(target error) bool {
	return target == ErrSignatureInvalid
}

// StatusError is the transport failure produced for HTTP statuses that are
// not delivered to the caller as responses.
type StatusError struct {
	StatusCode int
	Method     string
	URL        string
	Body       []byte
}

func (e *StatusError) Error() string {
	if e.Method != "" && e.URL != "" {
		return fmt.Sprintf("%s %s: %s %d", e.Method, e.URL, ErrUnexpectedStatus, e.StatusCode)
	}
	return fmt.Sprintf("%s %d", ErrUnexpectedStatus, e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// ValidationError contains multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Errors)
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
