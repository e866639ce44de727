package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
)

type ProfileInput struct {
	FullName string
	Picture  string
	Title    string
	Bio      string
}

type ProfileService struct {
	Store store.Store
}

// GetProfile returns the stored profile, or an unsaved default built from the
// user when none exists yet.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	p, err := s.Store.Profiles().GetProfile(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.UserProfile{}, dependency("get profile", err)
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserProfile{}, ErrUserNotFound
		}
		return domain.UserProfile{}, dependency("get user", err)
	}
	return domain.UserProfile{UserID: u.ID, FullName: u.Username}, nil
}

// UpsertProfile replaces the profile. An empty FullName falls back to the
// owner's username.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID string, in ProfileInput) (domain.UserProfile, error) {
	if err := mergeValidation(
		validateURL("picture", trim(in.Picture)),
		lengthAtMost("title", in.Title, 100),
		lengthAtMost("full_name", in.FullName, 255),
	); err != nil {
		return domain.UserProfile{}, err
	}

	var out domain.UserProfile
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return dependency("get user", err)
		}

		fullName := trim(in.FullName)
		if fullName == "" {
			fullName = u.Username
		}
		out, err = tx.Profiles().UpsertProfile(ctx, domain.UserProfile{
			UserID:   u.ID,
			FullName: fullName,
			Picture:  trim(in.Picture),
			Title:    trim(in.Title),
			Bio:      in.Bio,
		})
		if err != nil {
			return dependency("upsert profile", err)
		}
		return nil
	})
	return out, err
}
