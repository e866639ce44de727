package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories, which keeps transactions explicit: a Tx is the only
// way to get repositories that share one transaction.
type Store interface {
	Users() Users
	Profiles() Profiles
	Capabilities() Capabilities
	Partners() Partners

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects an already normalised address.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByRefreshHash finds the owner of a refresh token fingerprint.
	GetUserByRefreshHash(ctx context.Context, hash string) (domain.User, error)

	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts u. A duplicate email or username yields
	// ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// UpdateUser writes the account fields of u: username, full name, role
	// and the active, staff and admin flags. A taken username yields
	// ErrAlreadyExists.
	UpdateUser(ctx context.Context, u domain.User) error

	// SetOTP stores code on the user, replacing any previous one. A code held
	// by another user yields ErrAlreadyExists.
	SetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error
	ClearOTP(ctx context.Context, userID string) error

	// OTPExists reports whether any user currently stores code.
	OTPExists(ctx context.Context, code string) (bool, error)

	SetRefreshToken(ctx context.Context, userID, hash string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error

	TouchLastLogin(ctx context.Context, userID string, at time.Time) error

	// DeleteUser cascades to profiles and capability grants.
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)

	UpdateMFASecret(ctx context.Context, userID, secret string) error

	// EnableMFA stamps mfa_enabled with the current time.
	EnableMFA(ctx context.Context, userID string) error

	// DisableMFA clears both mfa_enabled and mfa_secret.
	DisableMFA(ctx context.Context, userID string) error

	// ClearExpiredOTPs and ClearExpiredRefreshTokens are housekeeping; they
	// return the number of users touched.
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
	ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type Profiles interface {
	GetProfile(ctx context.Context, userID string) (domain.UserProfile, error)

	// UpsertProfile creates or replaces the profile and returns the stored row.
	UpsertProfile(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error)
}

type Capabilities interface {
	// Grant is idempotent.
	Grant(ctx context.Context, g domain.CapabilityGrant) error
	Revoke(ctx context.Context, userID string, c domain.Capability) error
	ListForUser(ctx context.Context, userID string) ([]domain.CapabilityGrant, error)
}

type Partners interface {
	ListPartners(ctx context.Context) ([]domain.Partner, error)
	GetPartnerByID(ctx context.Context, id string) (domain.Partner, error)

	// CreatePartner yields ErrAlreadyExists on a duplicate name.
	CreatePartner(ctx context.Context, p domain.Partner) error
	UpdatePartner(ctx context.Context, p domain.Partner) error
	DeletePartner(ctx context.Context, id string) error
}
