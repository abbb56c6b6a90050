package errors

import "fmt"

// Error types for the GST lookup service
var (
	ErrKeyMissing = &ServiceError{
		Code:       "API_KEY_MISSING",
		Status:     "Failed",
		Message:    "API Key missing",
		HTTPStatus: 401,
	}

	ErrKeyInvalid = &ServiceError{
		Code:       "INVALID_API_KEY",
		Status:     "Failed",
		Message:    "Invalid API Key",
		HTTPStatus: 401,
	}

	ErrKeyExpired = &ServiceError{
		Code:       "KEY_EXPIRED",
		Status:     "Expired",
		Message:    "Key Expired",
		HTTPStatus: 403,
	}

	// ErrGSTINMissing is returned before any upstream call is attempted; the
	// message doubles as the usage hint shown to callers.
	ErrGSTINMissing = &ServiceError{
		Code:       "GSTIN_MISSING",
		Status:     "Failed",
		Message:    "GSTIN missing. Use ?gst=GSTIN&key=YOURKEY",
		HTTPStatus: 400,
	}

	ErrUpstreamUnreachable = &ServiceError{
		Code:       "UPSTREAM_UNREACHABLE",
		Status:     "failed",
		Message:    "GST source unreachable",
		HTTPStatus: 500,
	}

	ErrUpstreamTimeout = &ServiceError{
		Code:       "UPSTREAM_TIMEOUT",
		Status:     "failed",
		Message:    "GST source timed out, try again later",
		HTTPStatus: 500,
	}

	ErrUpstreamMalformed = &ServiceError{
		Code:       "UPSTREAM_MALFORMED",
		Status:     "failed",
		Message:    "GST source returned an unreadable response",
		HTTPStatus: 500,
	}

	ErrRateLimitExceeded = &ServiceError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Status:     "Failed",
		Message:    "Rate limit exceeded",
		HTTPStatus: 429,
	}

	ErrInternalServer = &ServiceError{
		Code:       "INTERNAL_SERVER_ERROR",
		Status:     "failed",
		Message:    "Internal server error",
		HTTPStatus: 500,
	}
)

// ServiceError represents a service-level error. Status is the stable
// discriminator echoed in response bodies; Message is the only text that ever
// crosses the trust boundary (wrapped causes stay in logs).
type ServiceError struct {
	Code       string
	Status     string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Wrap wraps an error with a ServiceError
func Wrap(err error, serviceErr *ServiceError) *ServiceError {
	return &ServiceError{
		Code:       serviceErr.Code,
		Status:     serviceErr.Status,
		Message:    serviceErr.Message,
		HTTPStatus: serviceErr.HTTPStatus,
		Err:        err,
	}
}
