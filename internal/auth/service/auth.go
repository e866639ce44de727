package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/mail"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
	"github.com/aussiebroadwan/staffdesk/pkg/cryptox"
	"github.com/aussiebroadwan/staffdesk/pkg/slogx"
)

const (
	MsgResetRequested  = "If an account exists for this email, a password reset link has been sent."
	MsgPasswordChanged = "Password changed successfully"

	subjectPasswordReset = "Password Reset Request"
)

// verifyPassword is swapped in tests to observe hashing work.
var verifyPassword = cryptox.VerifyPassword

// ResetRequest is the outcome of RequestPasswordReset. Link is only set when
// debug reset links are enabled and the email matched a user.
type ResetRequest struct {
	Message string
	Link    string
}

// AuthService runs the login and credential recovery flows.
type AuthService struct {
	Store    store.Store
	Tokens   *TokenService
	OTP      *OTPService
	MFA      *MFAService
	Mailer   mail.Sender
	Renderer *mail.Renderer

	// FrontendURL is the base of links sent by email.
	FrontendURL string

	// DebugResetLinks returns the reset link to the HTTP caller. Never
	// enable outside development.
	DebugResetLinks bool

	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login authenticates by email and password. When the user has MFA enabled
// a valid totpCode is also required.
func (s *AuthService) Login(ctx context.Context, email, password, totpCode string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login for unknown email")
			burnPasswordCheck(password)
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, dependency("lookup user", err)
	}

	// Inactive users still pay for the hash so timing matches a live account.
	if err := verifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.String("user_id", u.ID), slog.Any("error", err))
		}
		l.Info("login with wrong password", slog.String("user_id", u.ID))
		return domain.TokenPair{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		l.Info("login for inactive user", slog.String("user_id", u.ID))
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	if u.HasMFA() {
		if totpCode == "" {
			return domain.TokenPair{}, ErrMFARequired
		}
		if !s.MFA.Check(u, totpCode) {
			l.Info("login with wrong TOTP code", slog.String("user_id", u.ID))
			return domain.TokenPair{}, ErrInvalidCredentials
		}
	}

	pair, err := s.Tokens.Issue(ctx, u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if err := s.Store.Users().TouchLastLogin(ctx, u.ID, s.now()); err != nil {
		l.Warn("failed to record last login", slog.String("user_id", u.ID), slog.Any("error", err))
	}

	l.Info("login succeeded", slog.String("user_id", u.ID))
	return pair, nil
}

// burnPasswordCheck spends the same argon2 work as a real verification.
func burnPasswordCheck(password string) {
	hash, err := cryptox.DummyHash()
	if err != nil {
		return
	}
	_ = verifyPassword(password, hash)
}

// RequestPasswordReset emails a reset link to a known address. Unknown
// addresses get the same neutral result with no side effects. Only a known
// address reaches the mailer, so only it can fail with ErrDependencyFailure
// and its response is slower; the route's strict rate limit bounds what
// that reveals.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (ResetRequest, error) {
	l := slogx.FromContext(ctx)
	neutral := ResetRequest{Message: MsgResetRequested}

	u, err := s.Store.Users().GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("password reset for unknown email")
			return neutral, nil
		}
		return ResetRequest{}, dependency("lookup user", err)
	}
	if !u.IsActive {
		l.Info("password reset for inactive user", slog.String("user_id", u.ID))
		return neutral, nil
	}

	refresh, err := s.Tokens.issueRefresh(ctx, s.Store.Users(), u.ID)
	if err != nil {
		return ResetRequest{}, err
	}
	code, err := s.OTP.Issue(ctx, u.ID)
	if err != nil {
		return ResetRequest{}, err
	}

	link := s.resetLink(code, u.ID, refresh)
	text, html, err := s.Renderer.Render(mail.TemplatePasswordReset, mail.PasswordResetData{
		Link:     link,
		Username: u.Username,
	})
	if err != nil {
		return ResetRequest{}, fmt.Errorf("render reset email: %w", err)
	}

	// The code stays bound when delivery fails; a new request replaces it.
	if err := s.Mailer.Send(ctx, mail.Message{
		To:      u.Email,
		Subject: subjectPasswordReset,
		Text:    text,
		HTML:    html,
	}); err != nil {
		return ResetRequest{}, dependency("send reset email", err)
	}

	l.Info("password reset email sent", slog.String("user_id", u.ID))
	if s.DebugResetLinks {
		neutral.Link = link
	}
	return neutral, nil
}

func (s *AuthService) resetLink(code, userID, refresh string) string {
	return strings.TrimRight(s.FrontendURL, "/") + "/create-new-password/" +
		"?otp=" + url.QueryEscape(code) +
		"&uuidb64=" + url.QueryEscape(userID) +
		"&refresh_token=" + url.QueryEscape(refresh)
}

// ChangePassword is the self-service variant. userID defaults to the
// caller; changing another user's password requires staff.
func (s *AuthService) ChangePassword(ctx context.Context, caller domain.Identity, userID, oldPassword, newPassword string) error {
	if userID == "" {
		userID = caller.UserID
	}
	if userID != caller.UserID && !Authorize(caller, RequireStaff) {
		return ErrForbidden
	}
	if err := validatePassword("new_password", newPassword); err != nil {
		return err
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return dependency("get user", err)
	}
	if err := verifyPassword(oldPassword, u.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	if err := s.setPassword(ctx, u.ID, newPassword); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("password changed",
		slog.String("user_id", u.ID),
		slog.String("changed_by", caller.UserID),
	)
	return nil
}

// CompletePasswordReset sets a new password using the emailed code. When
// refreshToken is given it must match the token minted with the code.
func (s *AuthService) CompletePasswordReset(ctx context.Context, userID, code, newPassword, refreshToken string) error {
	if err := validatePassword("new_password", newPassword); err != nil {
		return err
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return dependency("get user", err)
	}
	if !s.OTP.Consume(u, code) {
		slogx.FromContext(ctx).Info("password reset with invalid code", slog.String("user_id", u.ID))
		return ErrInvalidToken
	}
	if refreshToken != "" && !s.Tokens.MatchesRefresh(u, refreshToken) {
		return ErrInvalidToken
	}

	if err := s.setPassword(ctx, u.ID, newPassword); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("password reset completed", slog.String("user_id", u.ID))
	return nil
}

// setPassword stores the new hash and revokes the refresh token and any
// pending reset code in one transaction.
func (s *AuthService) setPassword(ctx context.Context, userID, newPassword string) error {
	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return dependency("update password", err)
		}
		if err := revokeRefresh(ctx, tx.Users(), userID); err != nil {
			return err
		}
		return clearOTP(ctx, tx.Users(), userID)
	})
}
