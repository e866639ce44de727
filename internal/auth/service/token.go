package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
	"github.com/aussiebroadwan/staffdesk/pkg/cryptox"
	"github.com/aussiebroadwan/staffdesk/pkg/jwtx"
	"github.com/aussiebroadwan/staffdesk/pkg/slogx"
)

const TokenTypeBearer = "Bearer"

// TokenService issues signed access tokens and opaque refresh tokens. Each
// user holds at most one refresh token; issuing a new one replaces the
// fingerprint of the previous.
type TokenService struct {
	KeyManager *jwtx.KeyManager
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// Issue mints an access token and a fresh refresh token for u.
func (s *TokenService) Issue(ctx context.Context, u domain.User) (domain.TokenPair, error) {
	return s.issue(ctx, s.Store.Users(), u)
}

func (s *TokenService) issue(ctx context.Context, users store.Users, u domain.User) (domain.TokenPair, error) {
	access, err := s.signAccess(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.issueRefresh(ctx, users, u.ID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    TokenTypeBearer,
		ExpiresIn:    s.accessTTL(),
	}, nil
}

// issueRefresh generates a 256-bit opaque token and records its fingerprint
// on the user.
func (s *TokenService) issueRefresh(ctx context.Context, users store.Users, userID string) (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	exp := s.now().Add(s.refreshTTL())
	if err := users.SetRefreshToken(ctx, userID, cryptox.FingerprintToken(token), exp); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", dependency("store refresh token", err)
	}
	return token, nil
}

func (s *TokenService) signAccess(u domain.User) (string, error) {
	signer := s.KeyManager.GetSigner()
	if signer == nil {
		return "", fmt.Errorf("%w: no signing key loaded", ErrDependencyFailure)
	}
	claims := jwtx.NewAccessClaims(jwtx.Subject{
		ID:       u.ID,
		Role:     string(u.Role),
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}, s.Issuer, s.accessTTL(), s.now())

	token, err := signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

// Refresh derives a new access token from a refresh token without
// re-authenticating. The refresh token itself is not rotated.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	if refreshToken == "" {
		return domain.TokenPair{}, ErrInvalidToken
	}

	u, err := s.Store.Users().GetUserByRefreshHash(ctx, cryptox.FingerprintToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("refresh with unknown token")
			return domain.TokenPair{}, ErrInvalidToken
		}
		return domain.TokenPair{}, dependency("lookup refresh token", err)
	}
	if !s.MatchesRefresh(u, refreshToken) {
		l.Info("refresh with expired token", slog.String("user_id", u.ID))
		return domain.TokenPair{}, ErrInvalidToken
	}
	if !u.IsActive {
		return domain.TokenPair{}, ErrInvalidToken
	}

	access, err := s.signAccess(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{
		AccessToken: access,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   s.accessTTL(),
	}, nil
}

// MatchesRefresh reports whether token is the unexpired refresh token last
// recorded for u.
func (s *TokenService) MatchesRefresh(u domain.User, token string) bool {
	if u.RefreshHash == nil || u.RefreshExp == nil || token == "" {
		return false
	}
	if !s.now().Before(*u.RefreshExp) {
		return false
	}
	fp := cryptox.FingerprintToken(token)
	return subtle.ConstantTimeCompare([]byte(fp), []byte(*u.RefreshHash)) == 1
}

// Verify validates an access token. Any failure is ErrUnauthenticated.
func (s *TokenService) Verify(accessToken string) (jwtx.Claims, error) {
	claims, err := s.KeyManager.Verifier.Verify(accessToken)
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return claims, nil
}

// Revoke clears the refresh token recorded for userID.
func (s *TokenService) Revoke(ctx context.Context, userID string) error {
	return revokeRefresh(ctx, s.Store.Users(), userID)
}

func revokeRefresh(ctx context.Context, users store.Users, userID string) error {
	if err := users.ClearRefreshToken(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return dependency("revoke refresh token", err)
	}
	return nil
}
