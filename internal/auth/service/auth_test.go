package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/mail"
	"github.com/aussiebroadwan/staffdesk/pkg/cryptox"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.createUser(t, "alice@example.com")

	t.Run("success", func(t *testing.T) {
		pair, err := env.auth.Login(ctx, "  Alice@Example.com ", "password123", "")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)

		claims, err := env.tokens.Verify(pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, string(domain.RoleManager), claims.Role)
		require.Equal(t, "alice", claims.Username)
		require.Equal(t, "alice@example.com", claims.Email)
		require.Equal(t, "alice", claims.FullName)

		require.NotNil(t, env.reload(t, u.ID).LastLogin)
	})

	t.Run("wrong password", func(t *testing.T) {
		pair, err := env.auth.Login(ctx, "alice@example.com", "nope-nope", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.Empty(t, pair.AccessToken)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := env.auth.Login(ctx, "bob@example.com", "password123", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLogin_HashesOnEveryFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	root := env.createSuperuser(t)
	env.createUser(t, "live@example.com")
	gone := env.createUser(t, "gone@example.com")
	_, err := env.users.UpdateUser(ctx, root, gone.ID, UpdateUserInput{IsActive: ptr(false)})
	require.NoError(t, err)

	var hashes []string
	orig := verifyPassword
	verifyPassword = func(pw, hash string) error {
		hashes = append(hashes, hash)
		return orig(pw, hash)
	}
	t.Cleanup(func() { verifyPassword = orig })

	dummy, err := cryptox.DummyHash()
	require.NoError(t, err)

	tests := []struct {
		name      string
		email     string
		password  string
		wantDummy bool
	}{
		{"unknown email", "nobody@example.com", "password123", true},
		{"wrong password", "live@example.com", "wrong-password", false},
		{"inactive user", "gone@example.com", "password123", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashes = nil
			_, err := env.auth.Login(ctx, tt.email, tt.password, "")
			require.ErrorIs(t, err, ErrInvalidCredentials)
			require.Len(t, hashes, 1)
			require.Equal(t, tt.wantDummy, hashes[0] == dummy)
		})
	}
}

func TestLogin_MFA(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.createUser(t, "mfa@example.com")

	enroll, err := env.mfa.Enroll(ctx, u.ID)
	require.NoError(t, err)
	code, err := totp.GenerateCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, env.mfa.Verify(ctx, u.ID, code))

	_, err = env.auth.Login(ctx, "mfa@example.com", "password123", "")
	require.ErrorIs(t, err, ErrMFARequired)

	_, err = env.auth.Login(ctx, "mfa@example.com", "password123", "000000x")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	code, err = totp.GenerateCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	pair, err := env.auth.Login(ctx, "mfa@example.com", "password123", code)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	env.auth.DebugResetLinks = true

	res, err := env.auth.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	require.Equal(t, MsgResetRequested, res.Message)
	require.Empty(t, res.Link)
	require.Empty(t, env.mailer.Sent())
}

type failingSender struct{}

func (failingSender) Send(context.Context, mail.Message) error {
	return errors.New("smtp: connection refused")
}

// Only a registered address reaches the mailer, so only it can surface a
// delivery failure.
func TestRequestPasswordReset_MailerFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createUser(t, "alice@example.com")
	env.auth.Mailer = failingSender{}

	_, err := env.auth.RequestPasswordReset(ctx, "alice@example.com")
	require.ErrorIs(t, err, ErrDependencyFailure)

	res, err := env.auth.RequestPasswordReset(ctx, "ghost@example.com")
	require.NoError(t, err)
	require.Equal(t, MsgResetRequested, res.Message)
}

func TestRequestPasswordReset_KnownEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.createUser(t, "alice@example.com")

	_, err := env.tokens.Issue(ctx, u)
	require.NoError(t, err)
	before := env.reload(t, u.ID)

	res, err := env.auth.RequestPasswordReset(ctx, "ALICE@example.com")
	require.NoError(t, err)
	require.Equal(t, MsgResetRequested, res.Message)
	require.Empty(t, res.Link, "link is hidden unless debug links are on")

	after := env.reload(t, u.ID)
	require.NotNil(t, after.OTP)
	require.NotEqual(t, *before.RefreshHash, *after.RefreshHash)

	sent := env.mailer.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, "alice@example.com", sent[0].To)
	require.Equal(t, "Password Reset Request", sent[0].Subject)

	link := extractLink(t, sent[0].Text)
	require.True(t, strings.HasPrefix(link, "https://app.staffdesk.test/create-new-password/?"))
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	q := parsed.Query()
	require.Equal(t, *after.OTP, q.Get("otp"))
	require.Equal(t, u.ID, q.Get("uuidb64"))
	require.Equal(t, *after.RefreshHash, cryptox.FingerprintToken(q.Get("refresh_token")))
}

func TestRequestPasswordReset_DebugLink(t *testing.T) {
	env := newTestEnv(t)
	env.auth.DebugResetLinks = true
	env.createUser(t, "alice@example.com")

	res, err := env.auth.RequestPasswordReset(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, res.Link)
	require.Contains(t, env.mailer.Sent()[0].Text, res.Link)
}

func extractLink(t *testing.T, text string) string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "https://") {
			return strings.TrimSpace(line)
		}
	}
	t.Fatalf("no link in %q", text)
	return ""
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.createUser(t, "alice@example.com")
	self := u.Identity()

	pair, err := env.tokens.Issue(ctx, u)
	require.NoError(t, err)
	require.NoError(t, env.otp.Bind(ctx, u.ID, "1234567"))

	t.Run("wrong old password leaves state untouched", func(t *testing.T) {
		before := env.reload(t, u.ID)
		err := env.auth.ChangePassword(ctx, self, u.ID, "wrong-password", "newpassword1")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		after := env.reload(t, u.ID)
		require.Equal(t, before.PasswordHash, after.PasswordHash)
		require.Equal(t, before.RefreshHash, after.RefreshHash)
		require.Equal(t, before.OTP, after.OTP)
	})

	t.Run("too short", func(t *testing.T) {
		err := env.auth.ChangePassword(ctx, self, "", "password123", "short")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown user", func(t *testing.T) {
		staff := self
		staff.IsStaff = true
		err := env.auth.ChangePassword(ctx, staff, "missing", "password123", "newpassword1")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("other user requires staff", func(t *testing.T) {
		other := env.createUser(t, "bob@example.com")
		err := env.auth.ChangePassword(ctx, self, other.ID, "password123", "newpassword1")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("success revokes refresh token and otp", func(t *testing.T) {
		require.NoError(t, env.auth.ChangePassword(ctx, self, "", "password123", "newpassword1"))

		after := env.reload(t, u.ID)
		require.Nil(t, after.RefreshHash)
		require.Nil(t, after.OTP)

		_, err := env.tokens.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidToken)

		_, err = env.auth.Login(ctx, "alice@example.com", "password123", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = env.auth.Login(ctx, "alice@example.com", "newpassword1", "")
		require.NoError(t, err)
	})
}

func TestCompletePasswordReset(t *testing.T) {
	env := newTestEnv(t)
	env.auth.DebugResetLinks = true
	ctx := context.Background()
	u := env.createUser(t, "alice@example.com")

	res, err := env.auth.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)
	link, err := url.Parse(res.Link)
	require.NoError(t, err)
	code := link.Query().Get("otp")
	refresh := link.Query().Get("refresh_token")

	require.ErrorIs(t, env.auth.CompletePasswordReset(ctx, u.ID, "0000000", "newpassword1", ""), ErrInvalidToken)
	require.ErrorIs(t, env.auth.CompletePasswordReset(ctx, u.ID, code, "newpassword1", "bogus"), ErrInvalidToken)
	require.ErrorIs(t, env.auth.CompletePasswordReset(ctx, "missing", code, "newpassword1", ""), ErrUserNotFound)
	require.ErrorIs(t, env.auth.CompletePasswordReset(ctx, u.ID, code, "short", refresh), ErrValidation)

	require.NoError(t, env.auth.CompletePasswordReset(ctx, u.ID, code, "newpassword1", refresh))

	after := env.reload(t, u.ID)
	require.Nil(t, after.OTP)
	require.Nil(t, after.RefreshHash)

	// The code is single-use.
	require.ErrorIs(t, env.auth.CompletePasswordReset(ctx, u.ID, code, "another-pass1", ""), ErrInvalidToken)

	_, err = env.auth.Login(ctx, "alice@example.com", "newpassword1", "")
	require.NoError(t, err)
}
