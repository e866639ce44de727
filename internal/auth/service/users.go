package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
	"github.com/aussiebroadwan/staffdesk/pkg/cryptox"
	"github.com/aussiebroadwan/staffdesk/pkg/jwtx"
	"github.com/aussiebroadwan/staffdesk/pkg/slogx"
	"github.com/google/uuid"
)

// CreateUserInput is the caller-supplied part of a new user. Username and
// FullName default to the local part of Email.
type CreateUserInput struct {
	Email          string
	Password       string
	Username       string
	FullName       string
	Role           string
	IsStaff        bool
	AddRecruitment bool
}

type UserService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// newUser applies defaults, validates and hashes the password. It does not
// touch the store.
func (s *UserService) newUser(in CreateUserInput) (domain.User, error) {
	email, emailErr := normalizeEmail(in.Email)
	pwErr := validatePassword("password", in.Password)
	role, err := domain.ParseRole(trim(in.Role))
	var roleErr error
	if err != nil {
		roleErr = invalidField("role", "must be admin or manager")
	}
	if err := mergeValidation(emailErr, pwErr, roleErr); err != nil {
		return domain.User{}, err
	}

	local := domain.EmailLocalPart(email)
	username := trim(in.Username)
	if username == "" {
		username = local
	}
	fullName := trim(in.FullName)
	if fullName == "" {
		fullName = local
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := s.now().UTC()
	return domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		IsStaff:      in.IsStaff,
		IsAdmin:      role == domain.RoleAdmin,
		DateJoined:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CreateUser creates a user on behalf of caller. A Manager created with
// AddRecruitment receives the add_recruitment grant in the same
// transaction; every other combination receives none.
func (s *UserService) CreateUser(ctx context.Context, caller domain.Identity, in CreateUserInput) (domain.User, error) {
	u, err := s.newUser(in)
	if err != nil {
		return domain.User{}, err
	}

	var grantedBy *string
	if caller.UserID != "" {
		grantedBy = &caller.UserID
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := insertUser(ctx, tx.Users(), u); err != nil {
			return err
		}
		if u.Role == domain.RoleManager && in.AddRecruitment {
			err := tx.Capabilities().Grant(ctx, domain.CapabilityGrant{
				UserID:     u.ID,
				Capability: domain.CapabilityAddRecruitment,
				GrantedBy:  grantedBy,
				GrantedAt:  s.now().UTC(),
			})
			if err != nil {
				return dependency("grant capability", err)
			}
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created",
		slog.String("user_id", u.ID),
		slog.String("role", string(u.Role)),
		slog.String("created_by", caller.UserID),
	)
	return u, nil
}

// CreateSuperuser forces role admin and every flag on regardless of input.
func (s *UserService) CreateSuperuser(ctx context.Context, in CreateUserInput) (domain.User, error) {
	in.Role = string(domain.RoleAdmin)
	u, err := s.newUser(in)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.RoleAdmin
	u.IsActive = true
	u.IsStaff = true
	u.IsAdmin = true
	u.IsSuperAdmin = true

	if err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return insertUser(ctx, tx.Users(), u)
	}); err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("superuser created", slog.String("user_id", u.ID))
	return u, nil
}

// insertUser reports duplicates per field before falling back on the
// store's unique constraints for races.
func insertUser(ctx context.Context, users store.Users, u domain.User) error {
	if _, err := users.GetUserByEmail(ctx, u.Email); err == nil {
		return conflict("User with this email already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return dependency("lookup email", err)
	}
	if _, err := users.GetUserByUsername(ctx, u.Username); err == nil {
		return conflict("User with this username already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return dependency("lookup username", err)
	}

	if err := users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return conflict("User already exists")
		}
		return dependency("create user", err)
	}
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, dependency("get user", err)
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, dependency("list users", err)
	}
	return users, nil
}

// DeleteUser removes the user with its profile and grants.
func (s *UserService) DeleteUser(ctx context.Context, caller domain.Identity, id string) error {
	if err := s.Store.Users().DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return dependency("delete user", err)
	}
	slogx.FromContext(ctx).Info("user deleted",
		slog.String("user_id", id),
		slog.String("deleted_by", caller.UserID),
	)
	return nil
}

// UpdateUserInput carries the account fields to change. Nil fields are left
// as stored.
type UpdateUserInput struct {
	Username       *string
	FullName       *string
	Role           *string
	IsActive       *bool
	IsStaff        *bool
	AddRecruitment *bool
}

// UpdateUser changes the account fields of user id on behalf of caller and
// re-applies the recruitment rule: a Manager holds add_recruitment only when
// granted, and any other role never does. Deactivating a user revokes its
// refresh token.
func (s *UserService) UpdateUser(ctx context.Context, caller domain.Identity, id string, in UpdateUserInput) (domain.User, error) {
	var errs []error
	if in.Username != nil {
		*in.Username = trim(*in.Username)
		if *in.Username == "" {
			errs = append(errs, invalidField("username", "may not be blank"))
		} else {
			errs = append(errs, lengthAtMost("username", *in.Username, 150))
		}
	}
	if in.FullName != nil {
		*in.FullName = trim(*in.FullName)
		errs = append(errs, lengthAtMost("full_name", *in.FullName, 255))
	}
	var role domain.Role
	if in.Role != nil {
		r, err := domain.ParseRole(trim(*in.Role))
		if err != nil || trim(*in.Role) == "" {
			errs = append(errs, invalidField("role", "must be admin or manager"))
		}
		role = r
	}
	if err := mergeValidation(errs...); err != nil {
		return domain.User{}, err
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return dependency("get user", err)
		}
		wasActive := u.IsActive

		if in.Username != nil && *in.Username != u.Username {
			if _, err := tx.Users().GetUserByUsername(ctx, *in.Username); err == nil {
				return conflict("User with this username already exists")
			} else if !errors.Is(err, store.ErrNotFound) {
				return dependency("lookup username", err)
			}
			u.Username = *in.Username
		}
		if in.FullName != nil {
			u.FullName = *in.FullName
		}
		if in.Role != nil {
			u.Role = role
		}
		if in.IsActive != nil {
			u.IsActive = *in.IsActive
		}
		if in.IsStaff != nil {
			u.IsStaff = *in.IsStaff
		}
		u.IsAdmin = u.Role == domain.RoleAdmin || u.IsSuperAdmin

		if err := tx.Users().UpdateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return conflict("User with this username already exists")
			}
			return dependency("update user", err)
		}
		if err := s.applyRecruitment(ctx, tx.Capabilities(), caller, u, in.AddRecruitment); err != nil {
			return err
		}
		if wasActive && !u.IsActive {
			if err := revokeRefresh(ctx, tx.Users(), u.ID); err != nil {
				return err
			}
		}
		updated = u
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user updated",
		slog.String("user_id", updated.ID),
		slog.String("role", string(updated.Role)),
		slog.Bool("is_active", updated.IsActive),
		slog.String("updated_by", caller.UserID),
	)
	return updated, nil
}

// applyRecruitment grants or revokes add_recruitment for u. A nil want keeps
// the current grant of a Manager.
func (s *UserService) applyRecruitment(ctx context.Context, caps store.Capabilities, caller domain.Identity, u domain.User, want *bool) error {
	if u.Role == domain.RoleManager && want != nil && *want {
		var grantedBy *string
		if caller.UserID != "" {
			grantedBy = &caller.UserID
		}
		err := caps.Grant(ctx, domain.CapabilityGrant{
			UserID:     u.ID,
			Capability: domain.CapabilityAddRecruitment,
			GrantedBy:  grantedBy,
			GrantedAt:  s.now().UTC(),
		})
		if err != nil {
			return dependency("grant capability", err)
		}
		return nil
	}
	if u.Role == domain.RoleManager && want == nil {
		return nil
	}
	if err := caps.Revoke(ctx, u.ID, domain.CapabilityAddRecruitment); err != nil && !errors.Is(err, store.ErrNotFound) {
		return dependency("revoke capability", err)
	}
	return nil
}

// Capabilities returns the explicit grants held by userID.
func (s *UserService) Capabilities(ctx context.Context, userID string) (domain.CapabilitySet, error) {
	grants, err := s.Store.Capabilities().ListForUser(ctx, userID)
	if err != nil {
		return nil, dependency("list capabilities", err)
	}
	caps := make([]domain.Capability, 0, len(grants))
	for _, g := range grants {
		caps = append(caps, g.Capability)
	}
	return domain.NewCapabilitySet(caps...), nil
}

// Identity resolves verified claims into the caller identity used for
// permission checks. Flags and grants come from the store so revocations
// apply before the access token expires.
func (s *UserService) Identity(ctx context.Context, claims jwtx.Claims) (domain.Identity, error) {
	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Identity{}, ErrUnauthenticated
		}
		return domain.Identity{}, dependency("load caller", err)
	}
	if !u.IsActive {
		return domain.Identity{}, ErrUnauthenticated
	}

	caps, err := s.Capabilities(ctx, u.ID)
	if err != nil {
		return domain.Identity{}, err
	}
	id := u.Identity()
	id.Capabilities = caps
	return id, nil
}
