package authsdk

import (
	"github.com/aussiebroadwan/staffdesk/pkg/jwtx"
)

// ============================================================================
// Auth Types
// ============================================================================

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct-horse-battery"`

	// TOTPCode is required when the account has MFA enabled.
	TOTPCode string `json:"totp_code,omitempty" example:"123456"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	// AccessToken is the signed JWT used to authenticate API requests
	AccessToken string `json:"access_token"`

	// RefreshToken is the opaque refresh token. Refresh responses omit it
	// because the refresh token is not rotated.
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type" example:"Bearer"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in" example:"900"`
}

// RefreshRequest is the body of POST /auth/token/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// PasswordResetRequest is the body of POST /auth/reset-password.
type PasswordResetRequest struct {
	Email string `json:"email" example:"alice@example.com"`
}

// PasswordResetResponse is the neutral answer to a reset request. Link is
// only populated when the server runs with debug reset links enabled.
type PasswordResetResponse struct {
	Message string `json:"message"`
	Icon    string `json:"icon"`
	Link    string `json:"link,omitempty"`
}

// CompletePasswordResetRequest is the body of POST /auth/reset-password/complete.
type CompletePasswordResetRequest struct {
	UserID       string `json:"user_id"`
	OTP          string `json:"otp" example:"0482913"`
	NewPassword  string `json:"new_password"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// ChangePasswordRequest is the body of POST /auth/change-password. UserID
// defaults to the caller; staff may change another user's password.
type ChangePasswordRequest struct {
	UserID      string `json:"user_id,omitempty"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// MessageResponse is a toast-style success body.
type MessageResponse struct {
	Message string `json:"message"`
	Icon    string `json:"icon"`
}

// ============================================================================
// User Types
// ============================================================================

// UserResponse is the public view of a user record.
type UserResponse struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Username     string   `json:"username"`
	FullName     string   `json:"full_name"`
	Role         string   `json:"role" example:"manager"`
	IsActive     bool     `json:"is_active"`
	IsStaff      bool     `json:"is_staff"`
	IsAdmin      bool     `json:"is_admin"`
	IsSuperAdmin bool     `json:"is_superadmin"`
	MFAEnabled   bool     `json:"mfa_enabled"`
	Capabilities []string `json:"capabilities"`
	DateJoined   string   `json:"date_joined"`           // RFC3339
	LastLogin    *string  `json:"last_login,omitempty"` // RFC3339
}

// ListUsersResponse is returned by GET /users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// CreateUserRequest is the body of POST /users. Username and FullName
// default to the local part of Email.
type CreateUserRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Username       string `json:"username,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	Role           string `json:"role,omitempty" example:"manager"`
	IsStaff        bool   `json:"is_staff,omitempty"`
	AddRecruitment bool   `json:"add_recruitment,omitempty"`
}

// UpdateUserRequest is the body of PUT /users/{id}. Omitted fields keep
// their stored value.
type UpdateUserRequest struct {
	Username       *string `json:"username,omitempty"`
	FullName       *string `json:"full_name,omitempty"`
	Role           *string `json:"role,omitempty" example:"manager"`
	IsActive       *bool   `json:"is_active,omitempty"`
	IsStaff        *bool   `json:"is_staff,omitempty"`
	AddRecruitment *bool   `json:"add_recruitment,omitempty"`
}

// ProfileRequest is the body of PUT /users/me/profile.
type ProfileRequest struct {
	FullName string `json:"full_name,omitempty"`
	Picture  string `json:"picture,omitempty"`
	Title    string `json:"title,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// ProfileResponse is the caller's profile.
type ProfileResponse struct {
	UserID    string `json:"user_id"`
	FullName  string `json:"full_name"`
	Picture   string `json:"picture"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	UpdatedAt string `json:"updated_at"` // RFC3339
}

// ============================================================================
// Partner Types
// ============================================================================

// PartnerRequest is the body of partner create and update.
type PartnerRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Website     string `json:"website,omitempty"`
}

// PartnerResponse is a single partner.
type PartnerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Website     string `json:"website"`
	CreatedAt   string `json:"created_at"` // RFC3339
	UpdatedAt   string `json:"updated_at"` // RFC3339
}

// ListPartnersResponse is returned by GET /partners.
type ListPartnersResponse struct {
	Partners []PartnerResponse `json:"partners"`
}

// ============================================================================
// Bootstrap Types
// ============================================================================

// BootstrapRequest creates the first superuser on an empty database.
type BootstrapRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// BootstrapResponse contains the ID of the created superuser.
type BootstrapResponse struct {
	UserID string `json:"user_id"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse contains the public keys used to verify access tokens.
type JWKSResponse jwtx.JWKS

// ============================================================================
// MFA Types
// ============================================================================

// TOTPEnrollResponse represents the response from TOTP enrollment.
type TOTPEnrollResponse struct {
	Secret  string `json:"secret" example:"JBSWY3DPEHPK3PXP"`
	QRCode  string `json:"qr_code" example:"otpauth://totp/staffdesk:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=staffdesk"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

// TOTPCodeRequest carries a 6-digit TOTP code for verify and remove.
type TOTPCodeRequest struct {
	Code string `json:"code" example:"123456"`
}
