package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/cobaltgate/iam/internal/iam/domain"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingSweepsExpiredChallenges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.seedUser(t, CreateUserInput{UserID: "alice", OTPService: domain.OTPChannelEmail})

	env.OTP.TTL = -time.Second
	stale, err := env.OTP.Issue(ctx, u)
	require.NoError(t, err)

	hk := NewHousekeepingService(env.Store, slog.Default(), time.Hour)
	hk.Start() // sweeps once immediately
	hk.Stop()

	challenge, err := env.Store.OTPs().GetOTP(ctx, stale)
	require.NoError(t, err)
	require.Equal(t, domain.OTPInvalidated, challenge.Status)
}
