package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
	"github.com/aussiebroadwan/staffdesk/pkg/cryptox"
	"github.com/aussiebroadwan/staffdesk/pkg/slogx"
)

const (
	DefaultOTPLength      = 7
	DefaultOTPTTL         = 15 * time.Minute
	DefaultOTPMaxAttempts = 5
)

// DigitSource returns n random decimal digits.
type DigitSource func(n int) (string, error)

// OTPService manages single-use password reset codes. Stored codes are
// unique across users; generation redraws on collision a bounded number of
// times and then fails closed with ErrResourceExhausted.
type OTPService struct {
	Store       store.Store
	Length      int
	TTL         time.Duration
	MaxAttempts int

	// Digits defaults to cryptox.GenerateDigits.
	Digits DigitSource
	Now    func() time.Time
}

func (s *OTPService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *OTPService) length() int {
	if s.Length > 0 {
		return s.Length
	}
	return DefaultOTPLength
}

func (s *OTPService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultOTPTTL
}

func (s *OTPService) maxAttempts() int {
	if s.MaxAttempts > 0 {
		return s.MaxAttempts
	}
	return DefaultOTPMaxAttempts
}

func (s *OTPService) digits() DigitSource {
	if s.Digits != nil {
		return s.Digits
	}
	return cryptox.GenerateDigits
}

// Generate draws a code that no user currently holds.
func (s *OTPService) Generate(ctx context.Context) (string, error) {
	return s.generate(ctx, s.Store.Users())
}

func (s *OTPService) generate(ctx context.Context, users store.Users) (string, error) {
	for attempt := range s.maxAttempts() {
		code, err := s.digits()(s.length())
		if err != nil {
			return "", err
		}
		taken, err := users.OTPExists(ctx, code)
		if err != nil {
			return "", dependency("check otp", err)
		}
		if !taken {
			return code, nil
		}
		slogx.FromContext(ctx).Warn("otp collision, redrawing", slog.Int("attempt", attempt+1))
	}
	return "", ErrResourceExhausted
}

// Bind stores code on the user, replacing any previous code.
func (s *OTPService) Bind(ctx context.Context, userID, code string) error {
	return s.bind(ctx, s.Store.Users(), userID, code)
}

func (s *OTPService) bind(ctx context.Context, users store.Users, userID, code string) error {
	err := users.SetOTP(ctx, userID, code, s.now().Add(s.ttl()))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrConflict
	default:
		return dependency("bind otp", err)
	}
}

// Issue generates and binds a code in one step. A collision lost between
// the existence check and the write counts as a failed attempt.
func (s *OTPService) Issue(ctx context.Context, userID string) (string, error) {
	users := s.Store.Users()
	for range s.maxAttempts() {
		code, err := s.generate(ctx, users)
		if err != nil {
			return "", err
		}
		err = s.bind(ctx, users, userID, code)
		if errors.Is(err, ErrConflict) {
			continue
		}
		if err != nil {
			return "", err
		}
		return code, nil
	}
	return "", ErrResourceExhausted
}

// Consume reports whether code is the unexpired code stored on u. It does
// not clear the code.
func (s *OTPService) Consume(u domain.User, code string) bool {
	if u.OTP == nil || code == "" {
		return false
	}
	if u.OTPExpiresAt != nil && !s.now().Before(*u.OTPExpiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*u.OTP), []byte(code)) == 1
}

// Clear removes any code stored on the user.
func (s *OTPService) Clear(ctx context.Context, userID string) error {
	return clearOTP(ctx, s.Store.Users(), userID)
}

func clearOTP(ctx context.Context, users store.Users, userID string) error {
	if err := users.ClearOTP(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return dependency("clear otp", err)
	}
	return nil
}
