package domain

import "time"

// TokenPair is what login returns: the short-lived access token (JWT) and
// the opaque refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string        // "Bearer"
	ExpiresIn    time.Duration // access token lifetime
}
