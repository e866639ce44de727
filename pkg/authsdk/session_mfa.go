package authsdk

import (
	"context"
	"net/http"
)

// EnrollTOTP starts TOTP enrolment. MFA is not enforced until VerifyTOTP
// succeeds.
func (s *Session) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := s.doAuthJSON(ctx, http.MethodPost, "/v1/mfa/totp/enroll", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyTOTP confirms enrolment with a code from the authenticator app.
func (s *Session) VerifyTOTP(ctx context.Context, code string) error {
	return s.doAuthJSON(ctx, http.MethodPost, "/v1/mfa/totp/verify", TOTPCodeRequest{Code: code}, nil, http.StatusNoContent)
}

// RemoveTOTP disables MFA. A current code is required.
func (s *Session) RemoveTOTP(ctx context.Context, code string) error {
	return s.doAuthJSON(ctx, http.MethodDelete, "/v1/mfa/totp", TOTPCodeRequest{Code: code}, nil, http.StatusNoContent)
}
