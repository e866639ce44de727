package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string // UUID v4
	Email        string // lower-cased, unique
	Username     string // unique
	FullName     string
	PasswordHash string // argon2 encoded
	Role         Role

	IsActive     bool
	IsStaff      bool
	IsAdmin      bool
	IsSuperAdmin bool

	OTP          *string    // pending reset code (nullable)
	OTPExpiresAt *time.Time // nullable
	RefreshHash  *string    // fingerprint of the last issued refresh token (nullable)
	RefreshExp   *time.Time // nullable

	MFAEnabled *time.Time // Timestamp when MFA was enabled (nullable)
	MFASecret  *string    // TOTP secret (nullable, base32 encoded)

	DateJoined time.Time
	LastLogin  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasMFA reports whether TOTP is enrolled and verified.
func (u User) HasMFA() bool {
	return u.MFAEnabled != nil && u.MFASecret != nil
}

// Identity is the caller view of u used for permission checks.
func (u User) Identity() Identity {
	return Identity{
		UserID:       u.ID,
		Role:         u.Role,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		IsStaff:      u.IsStaff,
		IsSuperAdmin: u.IsSuperAdmin,
	}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailLocalPart returns the part of email before the last "@", or email
// itself when there is none.
func EmailLocalPart(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}
