package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store/drivers/sqlite/gen"
)

type profilesRepo struct {
	q *gen.Queries
}

func (r *profilesRepo) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	row, err := r.q.GetUserProfile(ctx, userID)
	if err != nil {
		return domain.UserProfile{}, mapNotFound(err)
	}
	return mapProfile(row), nil
}

func (r *profilesRepo) UpsertProfile(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error) {
	now := time.Now().UTC()
	row, err := r.q.UpsertUserProfile(ctx, gen.UpsertUserProfileParams{
		UserID:    p.UserID,
		FullName:  p.FullName,
		Picture:   p.Picture,
		Title:     p.Title,
		Bio:       p.Bio,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.UserProfile{}, mapConstraint(err)
	}
	return mapProfile(row), nil
}
