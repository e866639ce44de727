package http

import (
	"net/http"

	"github.com/aussiebroadwan/staffdesk/internal/auth/service"
	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/aussiebroadwan/staffdesk/pkg/httpx"
)

// AuthHandler serves login, token refresh and the password flows.
type AuthHandler struct {
	AuthService  *service.AuthService
	TokenService *service.TokenService
	UserService  *service.UserService
}

// HandleLogin handles POST /auth/login
//
//	@Summary		Log in with email and password
//	@Description	Returns an access token and a refresh token. Accounts with MFA enabled must also send totp_code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.TokenResponse	"Token pair"
//	@Failure		400		{object}	authsdk.APIError		"Malformed request"
//	@Failure		401		{object}	authsdk.APIError		"Invalid email or password"
//	@Failure		409		{object}	authsdk.APIError		"TOTP code required"
//	@Failure		429		{object}	authsdk.APIError		"Rate limit exceeded"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password, req.TOTPCode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleRefresh handles POST /auth/token/refresh
//
//	@Summary		Refresh the access token
//	@Description	Exchanges a refresh token for a new access token. The refresh token is not rotated.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	authsdk.TokenResponse	"New access token"
//	@Failure		400		{object}	authsdk.APIError		"Malformed request"
//	@Failure		401		{object}	authsdk.APIError		"Invalid or expired refresh token"
//	@Router			/auth/token/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RefreshRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	pair, err := h.TokenService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleRequestReset handles POST /auth/reset-password
//
//	@Summary		Request a password reset
//	@Description	Emails a reset link when the address belongs to an active account. The response is identical either way.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.PasswordResetRequest	true	"Account email"
//	@Success		200		{object}	authsdk.PasswordResetResponse	"Neutral acknowledgement"
//	@Failure		400		{object}	authsdk.APIError				"Malformed request"
//	@Failure		502		{object}	authsdk.APIError				"Email could not be sent"
//	@Failure		503		{object}	authsdk.APIError				"No reset code could be allocated"
//	@Router			/auth/reset-password [post].
func (h *AuthHandler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req authsdk.PasswordResetRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	res, err := h.AuthService.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.PasswordResetResponse{
		Message: res.Message,
		Icon:    authsdk.IconSuccess,
		Link:    res.Link,
	})
}

// HandleCompleteReset handles POST /auth/reset-password/complete
//
//	@Summary		Complete a password reset
//	@Description	Sets a new password using the emailed code. Revokes the refresh token and the code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.CompletePasswordResetRequest	true	"Reset code and new password"
//	@Success		200		{object}	authsdk.MessageResponse					"Password changed"
//	@Failure		400		{object}	authsdk.APIError						"Malformed request or weak password"
//	@Failure		401		{object}	authsdk.APIError						"Invalid or expired code"
//	@Failure		404		{object}	authsdk.APIError						"Unknown user"
//	@Router			/auth/reset-password/complete [post].
func (h *AuthHandler) HandleCompleteReset(w http.ResponseWriter, r *http.Request) {
	var req authsdk.CompletePasswordResetRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	err := h.AuthService.CompletePasswordReset(r.Context(), req.UserID, req.OTP, req.NewPassword, req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Message: service.MsgPasswordChanged,
		Icon:    authsdk.IconSuccess,
	})
}

// HandleChangePassword handles POST /auth/change-password
//
//	@Summary		Change a password
//	@Description	Changes the caller's password. Staff may change another user's password by passing user_id.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ChangePasswordRequest	true	"Old and new password"
//	@Success		200		{object}	authsdk.MessageResponse			"Password changed"
//	@Failure		400		{object}	authsdk.APIError				"Malformed request or weak password"
//	@Failure		401		{object}	authsdk.APIError				"Wrong old password or missing token"
//	@Failure		403		{object}	authsdk.APIError				"Not allowed to change this user's password"
//	@Router			/auth/change-password [post].
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	err := h.AuthService.ChangePassword(r.Context(), callerFrom(r), req.UserID, req.OldPassword, req.NewPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Message: service.MsgPasswordChanged,
		Icon:    authsdk.IconSuccess,
	})
}

// HandleMe handles GET /auth/me
//
//	@Summary		Current user
//	@Description	Returns the authenticated user with its capabilities.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"Caller"
//	@Failure		401	{object}	authsdk.APIError		"Invalid or missing access token"
//	@Router			/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	u, err := h.UserService.GetUser(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u, caller.Capabilities))
}
