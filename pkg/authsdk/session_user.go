package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Me returns the caller's user record.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := s.doAuthJSON(ctx, http.MethodGet, "/auth/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes a password. Leave req.UserID empty to change the
// caller's own password.
func (s *Session) ChangePassword(ctx context.Context, req ChangePasswordRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := s.doAuthJSON(ctx, http.MethodPost, "/auth/change-password", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// User Management (staff only)
// ============================================================================

// ListUsers lists every user.
func (s *Session) ListUsers(ctx context.Context) ([]UserResponse, error) {
	var out ListUsersResponse
	if err := s.doAuthJSON(ctx, http.MethodGet, "/users", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// GetUser fetches one user by ID.
func (s *Session) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	var out UserResponse
	if err := s.doAuthJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser creates a user. Requires staff and the add_recruitment capability.
func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := s.doAuthJSON(ctx, http.MethodPost, "/users", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser changes the account fields of a user. Requires staff.
func (s *Session) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := s.doAuthJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user. Requires staff and the admin role.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	return s.doAuthJSON(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

// ============================================================================
// Profile
// ============================================================================

// GetProfile returns the caller's profile, creating defaults on first read.
func (s *Session) GetProfile(ctx context.Context) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := s.doAuthJSON(ctx, http.MethodGet, "/users/me/profile", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile replaces the caller's profile.
func (s *Session) UpdateProfile(ctx context.Context, req ProfileRequest) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := s.doAuthJSON(ctx, http.MethodPut, "/users/me/profile", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
