package authsdk

import (
	"context"
	"net/http"
)

// Login exchanges email and password for a token pair.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &out, http.StatusOK, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh obtains a new access token. The refresh token itself is unchanged.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var out TokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/token/refresh",
		RefreshRequest{RefreshToken: refreshToken}, &out, http.StatusOK, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestPasswordReset asks for a reset email. The response is the same
// whether or not the address belongs to an account.
func (c *SDKClient) RequestPasswordReset(ctx context.Context, email string) (*PasswordResetResponse, error) {
	var out PasswordResetResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password",
		PasswordResetRequest{Email: email}, &out, http.StatusOK, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CompletePasswordReset sets a new password using the emailed one-time code.
func (c *SDKClient) CompletePasswordReset(ctx context.Context, req CompletePasswordResetRequest) (*MessageResponse, error) {
	var out MessageResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password/complete", req, &out, http.StatusOK, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
