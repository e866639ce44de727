package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store/drivers/sqlite/gen"
)

type partnersRepo struct {
	q *gen.Queries
}

func (r *partnersRepo) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	rows, err := r.q.ListPartners(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Partner, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPartner(row))
	}
	return out, nil
}

func (r *partnersRepo) GetPartnerByID(ctx context.Context, id string) (domain.Partner, error) {
	row, err := r.q.GetPartnerByID(ctx, id)
	if err != nil {
		return domain.Partner{}, mapNotFound(err)
	}
	return mapPartner(row), nil
}

func (r *partnersRepo) CreatePartner(ctx context.Context, p domain.Partner) error {
	now := time.Now().UTC()
	return mapConstraint(r.q.CreatePartner(ctx, gen.CreatePartnerParams{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Logo:        p.Logo,
		Website:     p.Website,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
}

func (r *partnersRepo) UpdatePartner(ctx context.Context, p domain.Partner) error {
	return mapAffected(r.q.UpdatePartner(ctx, gen.UpdatePartnerParams{
		Name:        p.Name,
		Description: p.Description,
		Logo:        p.Logo,
		Website:     p.Website,
		UpdatedAt:   time.Now().UTC(),
		ID:          p.ID,
	}))
}

func (r *partnersRepo) DeletePartner(ctx context.Context, id string) error {
	return mapAffected(r.q.DeletePartner(ctx, id))
}
