package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/cobaltgate/iam/internal/iam/domain"
	"github.com/cobaltgate/iam/internal/iam/store"
	"github.com/cobaltgate/iam/pkg/idx"
	"github.com/stretchr/testify/require"
)

func seedOTP(t *testing.T, s *Store, mutate func(*domain.OTPChallenge)) domain.OTPChallenge {
	t.Helper()

	c := domain.OTPChallenge{
		ID:        idx.New().String(),
		Code:      "123456",
		AppID:     "app-1",
		UserID:    "alice",
		ExpiresAt: time.Now().UTC().Add(domain.DefaultOTPTTL),
		Status:    domain.OTPPending,
	}
	if mutate != nil {
		mutate(&c)
	}
	require.NoError(t, s.OTPs().CreateOTP(context.Background(), c))
	return c
}

func TestOTPCreateAndGet(t *testing.T) {
	s := newTestStore(t)

	c := seedOTP(t, s, nil)

	got, err := s.OTPs().GetOTP(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, "123456", got.Code)
	require.Equal(t, domain.OTPPending, got.Status)
	require.True(t, got.Redeemable(time.Now()))

	_, err = s.OTPs().GetOTP(context.Background(), idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestOTPMarkVerifiedOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedOTP(t, s, nil)

	require.NoError(t, s.OTPs().MarkVerified(ctx, c.ID))

	got, err := s.OTPs().GetOTP(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OTPVerified, got.Status)

	// A consumed challenge cannot be consumed again.
	err = s.OTPs().MarkVerified(ctx, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestOTPInvalidate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := seedOTP(t, s, nil)
	require.NoError(t, s.OTPs().Invalidate(ctx, c.ID))

	got, err := s.OTPs().GetOTP(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OTPInvalidated, got.Status)

	err = s.OTPs().MarkVerified(ctx, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestOTPInvalidatePending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := seedOTP(t, s, nil)
	second := seedOTP(t, s, func(c *domain.OTPChallenge) { c.ID = idx.New().String() })
	other := seedOTP(t, s, func(c *domain.OTPChallenge) {
		c.ID = idx.New().String()
		c.UserID = "bob"
	})

	require.NoError(t, s.OTPs().InvalidatePending(ctx, "app-1", "alice"))

	for _, id := range []string{first.ID, second.ID} {
		got, err := s.OTPs().GetOTP(ctx, id)
		require.NoError(t, err)
		require.Equal(t, domain.OTPInvalidated, got.Status)
	}

	got, err := s.OTPs().GetOTP(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OTPPending, got.Status)
}

func TestOTPInvalidateExpired(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	stale := seedOTP(t, s, func(c *domain.OTPChallenge) {
		c.ExpiresAt = now.Add(-time.Minute)
	})
	fresh := seedOTP(t, s, func(c *domain.OTPChallenge) {
		c.ID = idx.New().String()
		c.ExpiresAt = now.Add(time.Minute)
	})

	n, err := s.OTPs().InvalidateExpired(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := s.OTPs().GetOTP(ctx, stale.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OTPInvalidated, got.Status)

	got, err = s.OTPs().GetOTP(ctx, fresh.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OTPPending, got.Status)
}
