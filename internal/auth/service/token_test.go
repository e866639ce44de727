package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueClaimsMatchUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u, err := env.users.CreateUser(ctx, domain.Identity{}, CreateUserInput{
		Email:    "Carol.Smith@Example.com",
		Password: "password123",
		FullName: "Carol Smith",
		Role:     "admin",
	})
	require.NoError(t, err)

	pair, err := env.tokens.Issue(ctx, u)
	require.NoError(t, err)
	require.Equal(t, "Bearer", pair.TokenType)
	require.Equal(t, 15*time.Minute, pair.ExpiresIn)
	require.Len(t, pair.RefreshToken, 43)

	claims, err := env.tokens.Verify(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.Subject)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, "carol.smith", claims.Username)
	require.Equal(t, "carol.smith@example.com", claims.Email)
	require.Equal(t, "Carol Smith", claims.FullName)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
}

func TestTokenService_Refresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.createUser(t, "r@x.com")

	pair, err := env.tokens.Issue(ctx, u)
	require.NoError(t, err)

	refreshed, err := env.tokens.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.Empty(t, refreshed.RefreshToken)
	claims, err := env.tokens.Verify(refreshed.AccessToken)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.Subject)

	// A new issue replaces the previous refresh token.
	second, err := env.tokens.Issue(ctx, u)
	require.NoError(t, err)
	_, err = env.tokens.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = env.tokens.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestTokenService_RefreshRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.createUser(t, "r@x.com")

	_, err := env.tokens.Refresh(ctx, "")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = env.tokens.Refresh(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-48 * time.Hour)
		env.tokens.Now = func() time.Time { return past }
		pair, err := env.tokens.Issue(ctx, u)
		require.NoError(t, err)
		env.tokens.Now = nil

		_, err = env.tokens.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("revoked", func(t *testing.T) {
		pair, err := env.tokens.Issue(ctx, u)
		require.NoError(t, err)
		require.NoError(t, env.tokens.Revoke(ctx, u.ID))

		_, err = env.tokens.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokenService_VerifyFailuresAreUnauthenticated(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tokens.Verify("garbage")
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.ErrorIs(t, err, jwtx.ErrMalformed)

	u := env.createUser(t, "v@x.com")
	env.tokens.Now = func() time.Time { return time.Now().Add(-time.Hour) }
	pair, err := env.tokens.Issue(context.Background(), u)
	require.NoError(t, err)

	_, err = env.tokens.Verify(pair.AccessToken)
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestTokenService_RevokeUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	require.ErrorIs(t, env.tokens.Revoke(context.Background(), "missing"), ErrUserNotFound)
}
