package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestInvalidCredentials verifies wrong passwords and unknown emails get the
// same answer.
func TestInvalidCredentials(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)

	_, err := client.Login(t.Context(), authsdk.LoginRequest{Email: adminEmail, Password: "wrong-password"})
	wrongPassword := requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidCredentials)

	_, err = client.Login(t.Context(), authsdk.LoginRequest{Email: "nobody@staffdesk.test", Password: "wrong-password"})
	unknownEmail := requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidCredentials)

	require.Equal(t, wrongPassword.Message, unknownEmail.Message)
	require.Equal(t, authsdk.IconWarning, wrongPassword.Icon)
}

// TestInvalidAccessToken verifies protected endpoints reject forged tokens.
func TestInvalidAccessToken(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)

	session := client.NewSessionFromTokens("invalid-token-12345", "", 3600)

	_, err := session.Me(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthenticated)

	_, err = session.ListUsers(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthenticated)
}

// TestMissingAccessToken verifies protected endpoints need a bearer token.
func TestMissingAccessToken(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	for _, path := range []string{"/auth/me", "/users", "/partners", "/users/me/profile"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(baseURL + path)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

// TestResponsesAreNotCached verifies token responses carry no-store headers.
func TestResponsesAreNotCached(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	resp, err := http.Get(baseURL + "/auth/me")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
