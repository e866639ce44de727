package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/staffdesk/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// mfaTestUser is a user with TOTP enrolled and verified.
type mfaTestUser struct {
	email    string
	password string
	secret   string
}

// createAndEnrollMFAUser creates a user, enrolls TOTP and verifies the
// first code.
func createAndEnrollMFAUser(t *testing.T, client *authsdk.SDKClient, admin *authsdk.Session, email string) *mfaTestUser {
	t.Helper()

	createUser(t, admin, authsdk.CreateUserRequest{Email: email})
	session := performLogin(t, client, email, userPassword)

	enroll, err := session.EnrollTOTP(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, enroll.Secret)
	require.Equal(t, email, enroll.Account)
	require.Contains(t, enroll.QRCode, "otpauth://totp/")

	require.NoError(t, session.VerifyTOTP(t.Context(), generateTOTP(t, enroll.Secret)))

	return &mfaTestUser{email: email, password: userPassword, secret: enroll.Secret}
}

// TestMFAEnrollmentAndAuthentication verifies that once TOTP is enabled the
// login requires a code.
func TestMFAEnrollmentAndAuthentication(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	admin := loginAdmin(t, client)
	user := createAndEnrollMFAUser(t, client, admin, "mfa@staffdesk.test")

	_, err := client.AuthenticateWithPassword(t.Context(), user.email, user.password, "")
	apiErr := requireAPIError(t, err, http.StatusConflict, authsdk.ErrorCodeMFARequired)
	require.Equal(t, authsdk.IconInfo, apiErr.Icon)

	_, err = client.AuthenticateWithPassword(t.Context(), user.email, user.password, "000000")
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeInvalidCredentials)

	session, err := client.AuthenticateWithPassword(t.Context(), user.email, user.password, generateTOTP(t, user.secret))
	require.NoError(t, err)

	me, err := session.Me(t.Context())
	require.NoError(t, err)
	require.True(t, me.MFAEnabled)
}

// TestMFARemoval verifies TOTP can be removed with a valid code, after which
// login no longer asks for one.
func TestMFARemoval(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	admin := loginAdmin(t, client)
	user := createAndEnrollMFAUser(t, client, admin, "mfa@staffdesk.test")

	session, err := client.AuthenticateWithPassword(t.Context(), user.email, user.password, generateTOTP(t, user.secret))
	require.NoError(t, err)

	err = session.RemoveTOTP(t.Context(), "000000")
	requireAPIError(t, err, http.StatusBadRequest, authsdk.ErrorCodeValidation)

	require.NoError(t, session.RemoveTOTP(t.Context(), generateTOTP(t, user.secret)))

	session = performLogin(t, client, user.email, user.password)
	me, err := session.Me(t.Context())
	require.NoError(t, err)
	require.False(t, me.MFAEnabled)
}

// TestMFAInvalidScenarios covers verify without enrollment and double
// enrollment.
func TestMFAInvalidScenarios(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	admin := loginAdmin(t, client)
	createUser(t, admin, authsdk.CreateUserRequest{Email: "bob@staffdesk.test"})
	bob := performLogin(t, client, "bob@staffdesk.test", userPassword)

	t.Run("verify before enroll", func(t *testing.T) {
		err := bob.VerifyTOTP(t.Context(), "123456")
		require.Error(t, err)
	})

	t.Run("remove when not enabled", func(t *testing.T) {
		err := bob.RemoveTOTP(t.Context(), "123456")
		require.Error(t, err)
	})

	t.Run("enroll twice after verify", func(t *testing.T) {
		enroll, err := bob.EnrollTOTP(t.Context())
		require.NoError(t, err)
		require.NoError(t, bob.VerifyTOTP(t.Context(), generateTOTP(t, enroll.Secret)))

		_, err = bob.EnrollTOTP(t.Context())
		requireAPIError(t, err, http.StatusConflict, authsdk.ErrorCodeConflict)
	})
}
