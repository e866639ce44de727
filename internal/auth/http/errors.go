package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/staffdesk/internal/auth/service"
	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/aussiebroadwan/staffdesk/pkg/slogx"
)

var (
	errBootstrapDisabled = authsdk.NewAPIError(http.StatusNotFound, authsdk.ErrorCodeNotFound,
		"Bootstrap endpoint is not enabled.", authsdk.IconError)
	errBootstrapToken = authsdk.NewAPIError(http.StatusUnauthorized, authsdk.ErrorCodeUnauthenticated,
		"Invalid bootstrap token.", authsdk.IconError)
	errBootstrapAlready = authsdk.NewAPIError(http.StatusConflict, authsdk.ErrorCodeConflict,
		"System has already been bootstrapped.", authsdk.IconWarning)
)

// apiError maps a service error onto its wire form. Unknown errors become
// ErrInternal.
func apiError(err error) *authsdk.APIError {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return authsdk.ErrValidation.WithDetails(verr.Fields)
	}
	var cerr *service.ConflictError
	if errors.As(err, &cerr) {
		e := *authsdk.ErrConflict
		e.Message = cerr.Message
		return &e
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return authsdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrUnauthenticated):
		return authsdk.ErrUnauthenticated
	case errors.Is(err, service.ErrForbidden):
		return authsdk.ErrForbidden
	case errors.Is(err, service.ErrUserNotFound):
		return authsdk.ErrUserNotFound
	case errors.Is(err, service.ErrNotFound):
		return authsdk.ErrNotFound
	case errors.Is(err, service.ErrInvalidToken):
		return authsdk.ErrInvalidToken
	case errors.Is(err, service.ErrValidation):
		return authsdk.ErrValidation
	case errors.Is(err, service.ErrConflict):
		return authsdk.ErrConflict
	case errors.Is(err, service.ErrMFARequired):
		return authsdk.ErrMFARequired
	case errors.Is(err, service.ErrResourceExhausted):
		return authsdk.ErrResourceExhausted
	case errors.Is(err, service.ErrDependencyFailure):
		return authsdk.ErrDependencyFailure
	case errors.Is(err, service.ErrBootstrapDisabled):
		return errBootstrapDisabled
	case errors.Is(err, service.ErrBootstrapUnauthorized):
		return errBootstrapToken
	case errors.Is(err, service.ErrBootstrapAlready):
		return errBootstrapAlready
	}
	return authsdk.ErrInternal
}

// writeError logs server-side failures and writes the mapped error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := apiError(err)
	if e.StatusCode >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed", "status", e.StatusCode, "err", err)
	}
	e.WriteError(w)
}

// writeBadRequest answers a body that could not be decoded.
func writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Warn("failed to parse request", "err", err)
	e := *authsdk.ErrInvalidRequest
	e.Message = err.Error()
	e.WriteError(w)
}
