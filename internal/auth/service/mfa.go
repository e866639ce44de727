package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

type MFAService struct {
	Store  store.Store
	Issuer string // shown in authenticator apps
}

func (s *MFAService) user(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, dependency("get user", err)
	}
	return u, nil
}

// Enroll generates and stores a TOTP secret. MFA stays disabled until Verify
// succeeds. Enrolling again before verifying replaces the secret.
func (s *MFAService) Enroll(ctx context.Context, userID string) (domain.MFAEnrollResponse, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return domain.MFAEnrollResponse{}, err
	}
	if u.HasMFA() {
		return domain.MFAEnrollResponse{}, conflict("MFA is already enabled")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: u.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFAEnrollResponse{}, fmt.Errorf("generate TOTP key: %w", err)
	}

	if err := s.Store.Users().UpdateMFASecret(ctx, userID, key.Secret()); err != nil {
		return domain.MFAEnrollResponse{}, dependency("store MFA secret", err)
	}

	return domain.MFAEnrollResponse{
		Secret:  key.Secret(),
		QRCode:  key.URL(),
		Issuer:  s.Issuer,
		Account: u.Email,
	}, nil
}

// Verify checks a code against the pending secret and enables MFA.
func (s *MFAService) Verify(ctx context.Context, userID, code string) error {
	u, err := s.user(ctx, userID)
	if err != nil {
		return err
	}
	if u.MFASecret == nil {
		return invalidField("code", "enroll before verifying")
	}
	if u.HasMFA() {
		return conflict("MFA is already enabled")
	}
	if !totp.Validate(code, *u.MFASecret) {
		return invalidField("code", "is not valid")
	}
	if err := s.Store.Users().EnableMFA(ctx, userID); err != nil {
		return dependency("enable MFA", err)
	}
	return nil
}

// Remove disables MFA after checking a current code.
func (s *MFAService) Remove(ctx context.Context, userID, code string) error {
	u, err := s.user(ctx, userID)
	if err != nil {
		return err
	}
	if !u.HasMFA() {
		return invalidField("code", "MFA is not enabled")
	}
	if !s.Check(u, code) {
		return invalidField("code", "is not valid")
	}
	if err := s.Store.Users().DisableMFA(ctx, userID); err != nil {
		return dependency("disable MFA", err)
	}
	return nil
}

// Check reports whether code is valid for a user with MFA enabled.
func (s *MFAService) Check(u domain.User, code string) bool {
	if !u.HasMFA() || code == "" {
		return false
	}
	return totp.Validate(code, *u.MFASecret)
}
