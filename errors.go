package sat

import "github.com/tokopedia/sat-go/internal/apierrors"

// Error types returned by Client. Match them with errors.As.
type (
	// ConfigurationError reports missing or invalid client configuration,
	// such as calling Checkout without a private key.
	ConfigurationError = apierrors.ConfigurationError

	// AuthenticationError reports a failed client-credentials exchange.
	AuthenticationError = apierrors.AuthenticationError

	// SignatureVerificationError reports a status response whose signature
	// is missing or does not match its body.
	SignatureVerificationError = apierrors.SignatureVerificationError

	// StatusError reports an HTTP status outside the set the API uses for
	// business outcomes (200, 400, 401 and 500).
	StatusError = apierrors.StatusError

	// ValidationError reports a request rejected before it was sent.
	ValidationError = apierrors.ValidationError
)

// Sentinel errors. Match them with errors.Is.
var (
	ErrMissingPrivateKey = apierrors.ErrMissingPrivateKey
	ErrMissingPublicKey  = apierrors.ErrMissingPublicKey
	ErrMissingSigner     = apierrors.ErrMissingSigner
	ErrInvalidConfig     = apierrors.ErrInvalidConfig
	ErrAuthentication    = apierrors.ErrAuthentication
	ErrSignatureInvalid  = apierrors.ErrSignatureInvalid
	ErrUnexpectedStatus  = apierrors.ErrUnexpectedStatus
	ErrValidation        = apierrors.ErrValidation
)
