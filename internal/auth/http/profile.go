package http

import (
	"net/http"

	"github.com/aussiebroadwan/staffdesk/internal/auth/service"
	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/aussiebroadwan/staffdesk/pkg/httpx"
)

type ProfileHandler struct {
	ProfileService *service.ProfileService
}

// HandleGet handles GET /users/me/profile
//
//	@Summary		Get my profile
//	@Description	Returns a default built from the user when no profile has been saved.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.ProfileResponse	"Profile"
//	@Failure		401	{object}	authsdk.APIError		"Invalid or missing access token"
//	@Router			/users/me/profile [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProfileService.GetProfile(r.Context(), callerFrom(r).UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
}

// HandlePut handles PUT /users/me/profile
//
//	@Summary		Save my profile
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ProfileRequest	true	"Profile fields"
//	@Success		200		{object}	authsdk.ProfileResponse	"Saved profile"
//	@Failure		400		{object}	authsdk.APIError		"Validation failed"
//	@Failure		401		{object}	authsdk.APIError		"Invalid or missing access token"
//	@Router			/users/me/profile [put].
func (h *ProfileHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	p, err := h.ProfileService.UpsertProfile(r.Context(), callerFrom(r).UserID, service.ProfileInput{
		FullName: req.FullName,
		Picture:  req.Picture,
		Title:    req.Title,
		Bio:      req.Bio,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
}
