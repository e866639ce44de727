package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/aussiebroadwan/staffdesk/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// TestJWKSVerification verifies that tokens issued by the service can be
// verified offline using only the published JWKS.
func TestJWKSVerification(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	adminUserID := bootstrapService(t, client)
	session := performLogin(t, client, adminEmail, adminPassword)

	jwksResp, err := client.GetJWKS(t.Context())
	require.NoError(t, err, "Should fetch JWKS successfully")
	require.NotEmpty(t, jwksResp.Keys)

	keySet := jwtx.NewKeySet()
	require.NoError(t, keySet.ResetFromJWKS(jwtx.JWKS(*jwksResp)))

	verifier := jwtx.NewVerifier(keySet, jwtx.VerifyOptions{Issuer: "staffdesk-auth"})
	claims, err := verifier.Verify(session.AccessToken())
	require.NoError(t, err, "Should verify access token successfully")

	require.Equal(t, adminUserID, claims.Subject)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, adminEmail, claims.Email)
	require.Equal(t, "root", claims.Username)
	require.Equal(t, adminFullName, claims.FullName)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	require.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))

	// A verifier expecting another issuer must refuse the token.
	other := jwtx.NewVerifier(keySet, jwtx.VerifyOptions{Issuer: "someone-else"})
	_, err = other.Verify(session.AccessToken())
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

// TestJWKSFormat verifies the JWKS endpoint returns well formed public keys.
func TestJWKSFormat(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	jwksResp, err := client.GetJWKS(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, jwksResp.Keys)

	key := jwksResp.Keys[0]
	require.Equal(t, "OKP", key.Kty)
	require.Equal(t, "Ed25519", key.Crv)
	require.Equal(t, "EdDSA", key.Alg)
	require.Equal(t, "sig", key.Use)
	require.NotEmpty(t, key.Kid)
	require.NotEmpty(t, key.X)
	require.Empty(t, key.Y, "OKP keys have no y coordinate")

	pemStr, err := key.PEM()
	require.NoError(t, err)
	require.Contains(t, pemStr, "BEGIN PUBLIC KEY")
}
