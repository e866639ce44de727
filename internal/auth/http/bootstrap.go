package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/service"
	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/aussiebroadwan/staffdesk/pkg/httpx"
	"github.com/aussiebroadwan/staffdesk/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the system
//	@Description	Creates the first superuser on an empty database. Only available when a bootstrap token is configured.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token"
//	@Param			request				body		authsdk.BootstrapRequest	true	"Superuser"
//	@Success		201					{object}	authsdk.BootstrapResponse	"Created superuser"
//	@Failure		400					{object}	authsdk.APIError			"Invalid request body or validation failed"
//	@Failure		401					{object}	authsdk.APIError			"Missing or invalid bootstrap token"
//	@Failure		404					{object}	authsdk.APIError			"Bootstrap not enabled"
//	@Failure		409					{object}	authsdk.APIError			"Already bootstrapped"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("starting bootstrap")

	if h.BootstrapService.Token == "" {
		errBootstrapDisabled.WriteError(w)
		return
	}
	token := r.Header.Get(authsdk.BootstrapTokenHeader)
	if token == "" {
		errBootstrapToken.WriteError(w)
		return
	}

	var req authsdk.BootstrapRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	if errs := req.Validate(); errs != nil {
		authsdk.ErrValidation.WithDetails(errs).WriteError(w)
		return
	}

	userID, err := h.BootstrapService.Bootstrap(r.Context(), token, domain.BootstrapData{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Username: strings.TrimSpace(req.Username),
		FullName: strings.TrimSpace(req.FullName),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.BootstrapResponse{UserID: userID})
}
