package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
	"github.com/aussiebroadwan/staffdesk/pkg/slogx"
)

var (
	ErrBootstrapDisabled     = errors.New("bootstrap disabled")
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// BootstrapService creates the first superuser on an empty database.
type BootstrapService struct {
	Store store.Store
	Users *UserService
	Token string // empty disables bootstrap
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, dependency("count users", err)
	}
	return !empty, nil
}

// Bootstrap returns the id of the created superuser.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req domain.BootstrapData) (string, error) {
	l := slogx.FromContext(ctx)

	if s.Token == "" {
		return "", ErrBootstrapDisabled
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return "", ErrBootstrapUnauthorized
	}

	done, err := s.IsBootstrapped(ctx)
	if err != nil {
		return "", err
	}
	if done {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return "", ErrBootstrapAlready
	}

	u, err := s.Users.CreateSuperuser(ctx, CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		return "", err
	}

	l.Info("successfully bootstrapped system", slog.String("admin_user_id", u.ID))
	return u.ID, nil
}
