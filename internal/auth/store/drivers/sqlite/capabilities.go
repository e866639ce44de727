package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store/drivers/sqlite/gen"
)

type capabilitiesRepo struct {
	q *gen.Queries
}

func (r *capabilitiesRepo) Grant(ctx context.Context, g domain.CapabilityGrant) error {
	at := g.GrantedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return r.q.GrantCapability(ctx, gen.GrantCapabilityParams{
		UserID:     g.UserID,
		Capability: string(g.Capability),
		GrantedBy:  mapOptionalString(g.GrantedBy),
		GrantedAt:  at,
	})
}

func (r *capabilitiesRepo) Revoke(ctx context.Context, userID string, c domain.Capability) error {
	return mapAffected(r.q.RevokeCapability(ctx, gen.RevokeCapabilityParams{
		UserID:     userID,
		Capability: string(c),
	}))
}

func (r *capabilitiesRepo) ListForUser(ctx context.Context, userID string) ([]domain.CapabilityGrant, error) {
	rows, err := r.q.ListCapabilityGrantsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CapabilityGrant, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapCapabilityGrant(row))
	}
	return out, nil
}
