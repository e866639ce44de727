package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByRefreshHash(ctx context.Context, hash string) (domain.User, error) {
	row, err := r.q.GetUserByRefreshTokenHash(ctx, mapStringNull(hash))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapUser(row))
	}
	return out, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	joined := u.DateJoined
	if joined.IsZero() {
		joined = now
	}
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		IsStaff:      u.IsStaff,
		IsAdmin:      u.IsAdmin,
		IsSuperadmin: u.IsSuperAdmin,
		DateJoined:   joined,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return mapAffected(r.q.UpdateUserPasswordHash(ctx, gen.UpdateUserPasswordHashParams{
		PasswordHash: newHash,
		UpdatedAt:    time.Now().UTC(),
		ID:           userID,
	}))
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	return mapAffected(r.q.UpdateUserAccount(ctx, gen.UpdateUserAccountParams{
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		IsStaff:   u.IsStaff,
		IsAdmin:   u.IsAdmin,
		UpdatedAt: time.Now().UTC(),
		ID:        u.ID,
	}))
}

func (r *usersRepo) SetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	return mapAffected(r.q.SetUserOTP(ctx, gen.SetUserOTPParams{
		Otp:          mapStringNull(code),
		OtpExpiresAt: mapUnixNull(expiresAt),
		UpdatedAt:    time.Now().UTC(),
		ID:           userID,
	}))
}

func (r *usersRepo) ClearOTP(ctx context.Context, userID string) error {
	return mapAffected(r.q.ClearUserOTP(ctx, gen.ClearUserOTPParams{
		UpdatedAt: time.Now().UTC(),
		ID:        userID,
	}))
}

func (r *usersRepo) OTPExists(ctx context.Context, code string) (bool, error) {
	n, err := r.q.CountUsersWithOTP(ctx, mapStringNull(code))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) SetRefreshToken(ctx context.Context, userID, hash string, expiresAt time.Time) error {
	return mapAffected(r.q.SetUserRefreshToken(ctx, gen.SetUserRefreshTokenParams{
		RefreshTokenHash: mapStringNull(hash),
		RefreshExpiresAt: mapUnixNull(expiresAt),
		UpdatedAt:        time.Now().UTC(),
		ID:               userID,
	}))
}

func (r *usersRepo) ClearRefreshToken(ctx context.Context, userID string) error {
	return mapAffected(r.q.ClearUserRefreshToken(ctx, gen.ClearUserRefreshTokenParams{
		UpdatedAt: time.Now().UTC(),
		ID:        userID,
	}))
}

func (r *usersRepo) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	return mapAffected(r.q.TouchUserLastLogin(ctx, gen.TouchUserLastLoginParams{
		LastLogin: sql.NullTime{Time: at.UTC(), Valid: true},
		ID:        userID,
	}))
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return mapAffected(r.q.DeleteUser(ctx, userID))
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.q.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *usersRepo) UpdateMFASecret(ctx context.Context, userID, secret string) error {
	return mapAffected(r.q.UpdateUserMFASecret(ctx, gen.UpdateUserMFASecretParams{
		MfaSecret: mapStringNull(secret),
		UpdatedAt: time.Now().UTC(),
		ID:        userID,
	}))
}

func (r *usersRepo) EnableMFA(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	return mapAffected(r.q.EnableUserMFA(ctx, gen.EnableUserMFAParams{
		MfaEnabled: sql.NullTime{Time: now, Valid: true},
		UpdatedAt:  now,
		ID:         userID,
	}))
}

func (r *usersRepo) DisableMFA(ctx context.Context, userID string) error {
	return mapAffected(r.q.DisableUserMFA(ctx, gen.DisableUserMFAParams{
		UpdatedAt: time.Now().UTC(),
		ID:        userID,
	}))
}

func (r *usersRepo) ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	return r.q.ClearExpiredOTPs(ctx, mapUnixNull(now))
}

func (r *usersRepo) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.q.ClearExpiredRefreshTokens(ctx, mapUnixNull(now))
}
