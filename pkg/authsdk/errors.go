package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/staffdesk/pkg/httpx"
)

// Error codes carried in the "error" field of every error body.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthenticated    = "unauthenticated"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeUserNotFound       = "user_not_found"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeValidation         = "validation_error"
	ErrorCodeConflict           = "conflict"
	ErrorCodeMFARequired        = "mfa_required"
	ErrorCodeResourceExhausted  = "resource_exhausted"
	ErrorCodeDependencyFailure  = "dependency_failure"
	ErrorCodeInternal           = "internal_error"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
)

// Icon values, re-exported so SDK users need not import httpx.
const (
	IconInfo    = httpx.IconInfo
	IconSuccess = httpx.IconSuccess
	IconWarning = httpx.IconWarning
	IconError   = httpx.IconError
)

// APIError is the error body returned by every endpoint. It is used both by
// the server (WriteError) and by the SDK (returned from failed calls).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	Code    string            `json:"error"`
	Message string            `json:"message"`
	Icon    string            `json:"icon"`
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches another *APIError with the same Code, so callers can write
// errors.Is(err, authsdk.ErrForbidden).
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

// NewAPIError creates an APIError.
func NewAPIError(statusCode int, code, message, icon string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message, Icon: icon}
}

// WithDetails returns a copy of e carrying field-level details.
func (e *APIError) WithDetails(details map[string]string) *APIError {
	cp := *e
	cp.Details = details
	return &cp
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "The request is malformed.",
		Icon:       IconWarning,
	}

	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "Invalid email or password.",
		Icon:       IconWarning,
	}

	ErrUnauthenticated = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthenticated,
		Message:    "Authentication credentials were not provided or are invalid.",
		Icon:       IconError,
	}

	ErrForbidden = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Message:    "You do not have permission to perform this action.",
		Icon:       IconError,
	}

	ErrUserNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeUserNotFound,
		Message:    "User not found.",
		Icon:       IconError,
	}

	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "Not found.",
		Icon:       IconError,
	}

	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidToken,
		Message:    "The token is invalid or has expired.",
		Icon:       IconError,
	}

	ErrValidation = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeValidation,
		Message:    "Some fields are invalid.",
		Icon:       IconWarning,
	}

	ErrConflict = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeConflict,
		Message:    "The resource already exists.",
		Icon:       IconWarning,
	}

	ErrMFARequired = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeMFARequired,
		Message:    "A one-time code from your authenticator app is required.",
		Icon:       IconInfo,
	}

	ErrResourceExhausted = &APIError{
		StatusCode: http.StatusServiceUnavailable,
		Code:       ErrorCodeResourceExhausted,
		Message:    "The service is temporarily unable to complete this request.",
		Icon:       IconError,
	}

	ErrDependencyFailure = &APIError{
		StatusCode: http.StatusBadGateway,
		Code:       ErrorCodeDependencyFailure,
		Message:    "A backing service failed. Please try again.",
		Icon:       IconError,
	}

	ErrInternal = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeInternal,
		Message:    "An unexpected error occurred.",
		Icon:       IconError,
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies that
// are not in the APIError shape become a generic error keyed on the status.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeInternal,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		Icon:       IconError,
	}
}
