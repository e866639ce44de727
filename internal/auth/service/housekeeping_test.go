package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHousekeeping_RunOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.createUser(t, "a@x.com")
	v := env.createUser(t, "b@x.com")

	past := time.Now().Add(-48 * time.Hour)
	env.otp.Now = func() time.Time { return past }
	env.tokens.Now = func() time.Time { return past }
	require.NoError(t, env.otp.Bind(ctx, u.ID, "1234567"))
	_, err := env.tokens.Issue(ctx, u)
	require.NoError(t, err)

	env.otp.Now = nil
	env.tokens.Now = nil
	require.NoError(t, env.otp.Bind(ctx, v.ID, "7654321"))

	hk := NewHousekeepingService(env.store, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	require.Equal(t, time.Hour, hk.Interval)

	otps, refresh := hk.RunOnce(ctx)
	require.EqualValues(t, 1, otps)
	require.EqualValues(t, 1, refresh)

	require.Nil(t, env.reload(t, u.ID).OTP)
	require.Nil(t, env.reload(t, u.ID).RefreshHash)
	require.NotNil(t, env.reload(t, v.ID).OTP)
}

func TestHousekeeping_StartStop(t *testing.T) {
	env := newTestEnv(t)
	hk := NewHousekeepingService(env.store, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Minute)
	hk.Start()
	hk.Stop()

	// Stop without Start is a no-op.
	NewHousekeepingService(env.store, slog.Default(), time.Minute).Stop()
}
