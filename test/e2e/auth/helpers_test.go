package auth_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "staffdesk-auth-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	adminEmail     = "root@staffdesk.test"
	adminFullName  = "Root Account"
	adminPassword  = "Admin123!"
	userPassword   = "Welcome123!"
)

// TestMain builds the Docker image once before all tests and removes it
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image.
func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// baseEnv is the environment every test container starts with.
func baseEnv() map[string]string {
	return map[string]string{
		"BOOTSTRAP_TOKEN":        bootstrapToken,
		"AUTH_DATABASE_FILE":     "/data/auth.db",
		"AUTH_PEPPER_FILE":       "/data/pepper",
		"AUTH_ISSUER":            "staffdesk-auth",
		"AUTH_ALGORITHM":         "EdDSA",
		"AUTH_NUM_KEYS":          "1",
		"AUTH_DEBUG_RESET_LINKS": "true",
		"MAIL_DRIVER":            "log",
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",
	}
}

// setupAuthContainer starts the auth service with relaxed rate limits.
// Tests make many rapid requests which would otherwise hit the production
// limits.
func setupAuthContainer(t *testing.T) (string, func()) {
	t.Helper()

	env := baseEnv()
	for _, profile := range []string{"STRICT", "MODERATE", "LENIENT", "PUBLIC"} {
		env["RATELIMIT_"+profile+"_REQUESTS"] = "1000"
		env["RATELIMIT_"+profile+"_BURST"] = "1000"
	}
	return startContainer(t, env)
}

// setupAuthContainerWithDefaultRateLimits starts the auth service with the
// production rate limits. Only rate limiting tests should use it.
func setupAuthContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, baseEnv())
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// bootstrapService creates the first superuser and returns its ID.
func bootstrapService(t *testing.T, client *authsdk.SDKClient) string {
	t.Helper()

	resp, err := client.Bootstrap(t.Context(), bootstrapToken, authsdk.BootstrapRequest{
		Email:    adminEmail,
		Password: adminPassword,
		FullName: adminFullName,
	})
	require.NoError(t, err, "Bootstrap should succeed")
	require.NotEmpty(t, resp.UserID, "Superuser ID should not be empty")

	return resp.UserID
}

// loginAdmin bootstraps the service and returns a superuser session.
func loginAdmin(t *testing.T, client *authsdk.SDKClient) *authsdk.Session {
	t.Helper()
	bootstrapService(t, client)
	return performLogin(t, client, adminEmail, adminPassword)
}

// performLogin authenticates with email and password and returns a session.
func performLogin(t *testing.T, client *authsdk.SDKClient, email, password string) *authsdk.Session {
	t.Helper()

	session, err := client.AuthenticateWithPassword(t.Context(), email, password, "")
	require.NoError(t, err, "Login should succeed")
	require.NotNil(t, session)
	require.NotEmpty(t, session.AccessToken())
	require.NotEmpty(t, session.RefreshToken())

	return session
}

// createUser creates a user through an authorised session.
func createUser(t *testing.T, admin *authsdk.Session, req authsdk.CreateUserRequest) *authsdk.UserResponse {
	t.Helper()
	if req.Password == "" {
		req.Password = userPassword
	}

	user, err := admin.CreateUser(t.Context(), req)
	require.NoError(t, err, "Create user should succeed")
	require.NotEmpty(t, user.ID)
	return user
}

// resetLinkParams extracts the query of a debug reset link.
func resetLinkParams(t *testing.T, link string) url.Values {
	t.Helper()
	require.NotEmpty(t, link, "debug reset links should be enabled")

	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query()
}

// generateTOTP returns the current code for a TOTP secret.
func generateTOTP(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	return code
}

// requireAPIError asserts err is an *authsdk.APIError with the given status
// and code, and returns it.
func requireAPIError(t *testing.T, err error, status int, code string) *authsdk.APIError {
	t.Helper()
	require.Error(t, err)

	var apiErr *authsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode, "unexpected status: %v", apiErr)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
