package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store/drivers/sqlite/gen"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// NewStore opens the database file at path. Foreign keys, a busy timeout and
// immediate transactions are set per connection through the DSN so every
// connection in the pool gets them.
func NewStore(path string) (*Store, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn = "file:" + path +
			"?_pragma=foreign_keys(1)" +
			"&_pragma=busy_timeout(5000)" +
			"&_pragma=journal_mode(WAL)" +
			"&_txlock=immediate" +
			"&_time_format=sqlite"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users               { return &usersRepo{q: s.q} }
func (s *Store) Profiles() store.Profiles         { return &profilesRepo{q: s.q} }
func (s *Store) Capabilities() store.Capabilities { return &capabilitiesRepo{q: s.q} }
func (s *Store) Partners() store.Partners         { return &partnersRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique and primary key violations into
// store.ErrAlreadyExists.
func mapConstraint(err error) error {
	var se *moderncsqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists
		case sqlite3.SQLITE_CONSTRAINT:
			if strings.Contains(se.Error(), "UNIQUE constraint failed") {
				return store.ErrAlreadyExists
			}
		}
	}
	return err
}

// mapAffected reports store.ErrNotFound when an update or delete matched no row.
func mapAffected(n int64, err error) error {
	if err != nil {
		return mapConstraint(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapStringNull(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time
		return &val
	}
	return nil
}

func mapUnixNull(t time.Time) sql.NullInt64 {
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func mapNullUnixPtr(n sql.NullInt64) *time.Time {
	if n.Valid {
		val := time.Unix(n.Int64, 0).UTC()
		return &val
	}
	return nil
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Email:        row.Email,
		Username:     row.Username,
		FullName:     row.FullName,
		PasswordHash: row.PasswordHash,
		Role:         domain.Role(row.Role),
		IsActive:     row.IsActive,
		IsStaff:      row.IsStaff,
		IsAdmin:      row.IsAdmin,
		IsSuperAdmin: row.IsSuperadmin,
		OTP:          mapNullStringPtr(row.Otp),
		OTPExpiresAt: mapNullUnixPtr(row.OtpExpiresAt),
		RefreshHash:  mapNullStringPtr(row.RefreshTokenHash),
		RefreshExp:   mapNullUnixPtr(row.RefreshExpiresAt),
		MFAEnabled:   mapNullTimePtr(row.MfaEnabled),
		MFASecret:    mapNullStringPtr(row.MfaSecret),
		DateJoined:   row.DateJoined,
		LastLogin:    mapNullTimePtr(row.LastLogin),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapProfile(row gen.UserProfile) domain.UserProfile {
	return domain.UserProfile{
		UserID:    row.UserID,
		FullName:  row.FullName,
		Picture:   row.Picture,
		Title:     row.Title,
		Bio:       row.Bio,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapCapabilityGrant(row gen.CapabilityGrant) domain.CapabilityGrant {
	return domain.CapabilityGrant{
		UserID:     row.UserID,
		Capability: domain.Capability(row.Capability),
		GrantedBy:  mapNullStringPtr(row.GrantedBy),
		GrantedAt:  row.GrantedAt,
	}
}

func mapPartner(row gen.Partner) domain.Partner {
	return domain.Partner{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Logo:        row.Logo,
		Website:     row.Website,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
