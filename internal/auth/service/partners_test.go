package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/staffdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestPartnerService_CRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.partners.Create(ctx, PartnerInput{Name: "  Acme ", Website: "https://acme.test"})
	require.NoError(t, err)
	require.Equal(t, "Acme", p.Name)
	_, err = idx.Parse(p.ID)
	require.NoError(t, err)
	require.False(t, p.CreatedAt.IsZero())

	_, err = env.partners.Create(ctx, PartnerInput{Name: "Acme"})
	require.ErrorIs(t, err, ErrConflict)
	require.EqualError(t, err, "Partner with this name already exists")

	other, err := env.partners.Create(ctx, PartnerInput{Name: "Globex"})
	require.NoError(t, err)

	_, err = env.partners.Update(ctx, other.ID, PartnerInput{Name: "Acme"})
	require.ErrorIs(t, err, ErrConflict)

	updated, err := env.partners.Update(ctx, p.ID, PartnerInput{Name: "Acme", Description: "Widgets"})
	require.NoError(t, err)
	require.Equal(t, "Widgets", updated.Description)

	list, err := env.partners.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Acme", list[0].Name)

	require.NoError(t, env.partners.Delete(ctx, p.ID))
	_, err = env.partners.Get(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, env.partners.Delete(ctx, p.ID), ErrNotFound)
	_, err = env.partners.Update(ctx, p.ID, PartnerInput{Name: "Gone"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPartnerService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.partners.Create(ctx, PartnerInput{Name: " "})
	require.ErrorIs(t, err, ErrValidation)

	_, err = env.partners.Create(ctx, PartnerInput{Name: "Bad", Logo: "not a url", Website: "javascript:alert(1)"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "logo")
	require.Contains(t, ve.Fields, "website")
}
