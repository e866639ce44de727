package http

import (
	"net/http"

	"github.com/aussiebroadwan/staffdesk/internal/auth/service"
	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/aussiebroadwan/staffdesk/pkg/httpx"
)

// MFAHandler handles all MFA-related endpoints.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/totp/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret for the authenticated user. MFA stays off until a code is verified.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.TOTPEnrollResponse	"TOTP secret and otpauth URL"
//	@Failure		401	{object}	authsdk.APIError			"Invalid or missing access token"
//	@Failure		409	{object}	authsdk.APIError			"MFA already enabled"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	enroll, err := h.MFAService.Enroll(r.Context(), callerFrom(r).UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.TOTPEnrollResponse{
		Secret:  enroll.Secret,
		QRCode:  enroll.QRCode,
		Issuer:  enroll.Issuer,
		Account: enroll.Account,
	})
}

// HandleVerify handles POST /v1/mfa/totp/verify
//
//	@Summary		Verify TOTP code and enable MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	authsdk.TOTPCodeRequest	true	"TOTP code"
//	@Success		204		"MFA enabled"
//	@Failure		400		{object}	authsdk.APIError	"Invalid code or not enrolled"
//	@Failure		401		{object}	authsdk.APIError	"Invalid or missing access token"
//	@Failure		409		{object}	authsdk.APIError	"MFA already enabled"
//	@Router			/v1/mfa/totp/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req authsdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	if err := h.MFAService.Verify(r.Context(), callerFrom(r).UserID, req.Code); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove handles DELETE /v1/mfa/totp
//
//	@Summary		Remove TOTP MFA
//	@Description	Disables MFA. Requires a current TOTP code.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	authsdk.TOTPCodeRequest	true	"TOTP code"
//	@Success		204		"MFA removed"
//	@Failure		400		{object}	authsdk.APIError	"Invalid code or MFA not enabled"
//	@Failure		401		{object}	authsdk.APIError	"Invalid or missing access token"
//	@Router			/v1/mfa/totp [delete].
func (h *MFAHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	var req authsdk.TOTPCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	if err := h.MFAService.Remove(r.Context(), callerFrom(r).UserID, req.Code); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
