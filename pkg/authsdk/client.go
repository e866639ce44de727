package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the staffdesk auth service. It provides the
// unauthenticated operations and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AuthenticateWithPassword logs in and returns a session. totpCode may be
// empty for accounts without MFA; otherwise a 409 mfa_required APIError is
// returned and the call should be repeated with the code.
func (c *SDKClient) AuthenticateWithPassword(ctx context.Context, email, password, totpCode string) (*Session, error) {
	tokenResp, err := c.Login(ctx, LoginRequest{Email: email, Password: password, TOTPCode: totpCode})
	if err != nil {
		return nil, err
	}
	return newSession(c, tokenResp), nil
}

// AuthenticateWithRefreshToken creates a session from an existing refresh token.
func (c *SDKClient) AuthenticateWithRefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	tokenResp, err := c.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	tokenResp.RefreshToken = refreshToken
	return newSession(c, tokenResp), nil
}

// NewSessionFromTokens creates a session from tokens obtained elsewhere.
// The session still refreshes the access token when it expires.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken string, expiresIn int) *Session {
	return newSession(c, &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	})
}
