package auth_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies /auth/login is strictly limited
// (5 req/min per IP and email) to slow down password guessing.
func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)

	for i := range 5 {
		_, err := client.Login(t.Context(), authsdk.LoginRequest{Email: adminEmail, Password: "wrong-password"})
		requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidCredentials)
		t.Logf("attempt %d rejected as invalid credentials", i+1)
	}

	_, err := client.Login(t.Context(), authsdk.LoginRequest{Email: adminEmail, Password: adminPassword})
	apiErr := requireAPIError(t, err, http.StatusTooManyRequests, authsdk.ErrorCodeRateLimited)
	require.Equal(t, authsdk.IconWarning, apiErr.Icon)
}

// TestRateLimitCompositeKeys verifies the login limit is tracked per email,
// so one account being hammered does not lock out another.
func TestRateLimitCompositeKeys(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)

	for range 6 {
		_, _ = client.Login(t.Context(), authsdk.LoginRequest{Email: "victim@staffdesk.test", Password: "guess"})
	}
	_, err := client.Login(t.Context(), authsdk.LoginRequest{Email: "victim@staffdesk.test", Password: "guess"})
	requireAPIError(t, err, http.StatusTooManyRequests, authsdk.ErrorCodeRateLimited)

	performLogin(t, client, adminEmail, adminPassword)
}

// TestRateLimitBootstrapEndpoint verifies /v1/bootstrap is strictly limited.
func TestRateLimitBootstrapEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	req := authsdk.BootstrapRequest{Email: adminEmail, Password: adminPassword}

	for range 5 {
		_, err := client.Bootstrap(t.Context(), "wrong-token", req)
		requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeUnauthenticated)
	}

	_, err := client.Bootstrap(t.Context(), bootstrapToken, req)
	requireAPIError(t, err, http.StatusTooManyRequests, authsdk.ErrorCodeRateLimited)
}

// TestRateLimitHealthEndpoints verifies the health endpoints tolerate
// frequent probing.
func TestRateLimitHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	for i := range 30 {
		health, err := client.GetLiveness(t.Context())
		require.NoError(t, err, "Liveness request %d should not be rate limited", i+1)
		require.Equal(t, "ok", health.Status)

		health, err = client.GetReadiness(t.Context())
		require.NoError(t, err, "Readiness request %d should not be rate limited", i+1)
		require.Equal(t, "ok", health.Status)
	}
}

// TestRateLimitJWKSEndpoint verifies JWKS is served under the public limit.
func TestRateLimitJWKSEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	for i := range 50 {
		_, err := client.GetJWKS(t.Context())
		require.NoError(t, err, "JWKS request %d should not be rate limited", i+1)
	}
}

// TestRateLimitMFAVerifyEndpoint verifies TOTP verification is limited per
// user.
func TestRateLimitMFAVerifyEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	admin := loginAdmin(t, client)

	_, err := admin.EnrollTOTP(t.Context())
	require.NoError(t, err)

	for range 5 {
		err := admin.VerifyTOTP(t.Context(), "000000")
		requireAPIError(t, err, http.StatusBadRequest, authsdk.ErrorCodeValidation)
	}

	err = admin.VerifyTOTP(t.Context(), "000000")
	requireAPIError(t, err, http.StatusTooManyRequests, authsdk.ErrorCodeRateLimited)
}

// TestRateLimitHeadersPresent verifies throttled responses explain when to
// retry.
func TestRateLimitHeadersPresent(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	body, err := json.Marshal(authsdk.LoginRequest{Email: "nobody@staffdesk.test", Password: "guess"})
	require.NoError(t, err)

	post := func() *http.Response {
		resp, err := http.Post(baseURL+"/auth/login", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		return resp
	}

	for range 5 {
		resp := post()
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	resp := post()
	defer resp.Body.Close()

	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
	require.Equal(t, "5", resp.Header.Get("X-RateLimit-Limit"))
	require.Equal(t, "1m0s", resp.Header.Get("X-RateLimit-Window"))

	var apiErr authsdk.APIError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
	require.Equal(t, authsdk.ErrorCodeRateLimited, apiErr.Code)
	require.NotEmpty(t, apiErr.Message)
}

// TestRateLimitConcurrentRequests verifies the limiter holds under
// concurrent load: no more than the burst gets through.
func TestRateLimitConcurrentRequests(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		throttled int
	)
	for range 10 {
		wg.Go(func() {
			_, err := client.Login(t.Context(), authsdk.LoginRequest{Email: adminEmail, Password: "wrong-password"})
			var apiErr *authsdk.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
				mu.Lock()
				throttled++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	require.GreaterOrEqual(t, throttled, 5, "at most the burst of 5 should pass")
}
