package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	data := domain.BootstrapData{Email: "root@x.com", Password: "password123"}

	disabled := &BootstrapService{Store: env.store, Users: env.users}
	_, err := disabled.Bootstrap(ctx, "", data)
	require.ErrorIs(t, err, ErrBootstrapDisabled)

	svc := &BootstrapService{Store: env.store, Users: env.users, Token: "s3cret"}
	_, err = svc.Bootstrap(ctx, "wrong", data)
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)

	done, err := svc.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, done)

	id, err := svc.Bootstrap(ctx, "s3cret", data)
	require.NoError(t, err)

	u := env.reload(t, id)
	require.True(t, u.IsSuperAdmin)
	require.Equal(t, "root", u.Username)

	_, err = svc.Bootstrap(ctx, "s3cret", domain.BootstrapData{Email: "again@x.com", Password: "password123"})
	require.ErrorIs(t, err, ErrBootstrapAlready)
}
