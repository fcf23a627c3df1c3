package service

import (
	"context"
	"testing"

	"github.com/cobaltgate/iam/internal/iam/domain"
	"github.com/stretchr/testify/require"
)

func TestLoginDirectToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedUser(t, CreateUserInput{
		UserID:      "alice",
		Username:    "Alice",
		Password:    "correct horse",
		CompanyID:   "acme",
		CompanyName: "Acme Corp",
		Profile:     "alice profile",
	})

	result, err := env.Auth.Login(ctx, "app-1", "alice", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Empty(t, result.OTPSession)
	require.Equal(t, "alice profile", result.Profile)

	identity, err := env.Auth.VerifyToken(ctx, result.Token)
	require.NoError(t, err)
	require.Equal(t, "alice", identity.UserID)
	require.Equal(t, "acme", identity.CompanyID)
	require.Equal(t, domain.RoleNormal, identity.Role)
}

func TestLoginErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedUser(t, CreateUserInput{UserID: "alice", Password: "correct horse"})
	env.seedUser(t, CreateUserInput{
		UserID:        "frosty",
		Password:      "correct horse",
		AccountStatus: domain.AccountFrozen,
	})

	_, err := env.Auth.Login(ctx, "app-1", "nobody", "correct horse")
	require.ErrorIs(t, err, ErrUseridNotExist)

	_, err = env.Auth.Login(ctx, "app-1", "alice", "wrong")
	require.ErrorIs(t, err, ErrPasswordIncorrect)

	// Freeze wins even over a correct password.
	_, err = env.Auth.Login(ctx, "app-1", "frosty", "correct horse")
	require.ErrorIs(t, err, ErrAccountFrozen)

	// Same userid under another app is a different account.
	_, err = env.Auth.Login(ctx, "app-2", "alice", "correct horse")
	require.ErrorIs(t, err, ErrUseridNotExist)
}

func TestLoginWithOTPGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedUser(t, CreateUserInput{
		UserID:     "alice",
		Password:   "correct horse",
		OTPService: domain.OTPChannelEmail,
		Profile:    "alice@example.com",
	})

	result, err := env.Auth.Login(ctx, "app-1", "alice", "correct horse")
	require.NoError(t, err)
	require.Empty(t, result.Token)
	require.NotEmpty(t, result.OTPSession)

	challenge, err := env.Store.OTPs().GetOTP(ctx, result.OTPSession)
	require.NoError(t, err)

	completed, err := env.Auth.CompleteOTP(ctx, "app-1", "alice", result.OTPSession, challenge.Code)
	require.NoError(t, err)
	require.NotEmpty(t, completed.Token)

	identity, err := env.Auth.VerifyToken(ctx, completed.Token)
	require.NoError(t, err)
	require.Equal(t, "alice", identity.UserID)
}

func TestCompleteOTPRejectsBadCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedUser(t, CreateUserInput{
		UserID:     "alice",
		Password:   "correct horse",
		OTPService: domain.OTPChannelEmail,
	})

	result, err := env.Auth.Login(ctx, "app-1", "alice", "correct horse")
	require.NoError(t, err)

	challenge, err := env.Store.OTPs().GetOTP(ctx, result.OTPSession)
	require.NoError(t, err)

	wrong := "000000"
	if challenge.Code == wrong {
		wrong = "000001"
	}
	_, err = env.Auth.CompleteOTP(ctx, "app-1", "alice", result.OTPSession, wrong)
	require.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyTokenRejectsGarbageAndDeleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedUser(t, CreateUserInput{UserID: "alice", Password: "correct horse"})
	result, err := env.Auth.Login(ctx, "app-1", "alice", "correct horse")
	require.NoError(t, err)

	_, err = env.Auth.VerifyToken(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	// Tokens die with their subject: a soft-deleted user fails verification
	// even though the signature is still good.
	require.NoError(t, env.Store.Users().SoftDelete(ctx, "app-1", "alice"))
	_, err = env.Auth.VerifyToken(ctx, result.Token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenReflectsCurrentRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedUser(t, CreateUserInput{
		UserID:   "alice",
		Password: "correct horse",
		Role:     domain.RoleAdmin,
	})
	result, err := env.Auth.Login(ctx, "app-1", "alice", "correct horse")
	require.NoError(t, err)

	root := domain.Identity{AppID: "app-1", Role: domain.RoleSuperadmin}
	_, err = env.Users.Update(ctx, root, "alice", UpdateUserInput{
		Username: "Alice",
		Role:     domain.RoleNormal,
	})
	require.NoError(t, err)

	identity, err := env.Auth.VerifyToken(ctx, result.Token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleNormal, identity.Role)
}

func TestIssueTokenBlockedByMidFlightFreeze(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedUser(t, CreateUserInput{
		UserID:     "alice",
		Password:   "correct horse",
		OTPService: domain.OTPChannelEmail,
	})

	result, err := env.Auth.Login(ctx, "app-1", "alice", "correct horse")
	require.NoError(t, err)

	root := domain.Identity{AppID: "app-1", Role: domain.RoleSuperadmin}
	_, err = env.Users.Update(ctx, root, "alice", UpdateUserInput{
		Username:      "Alice",
		AccountStatus: domain.AccountFrozen,
	})
	require.NoError(t, err)

	challenge, err := env.Store.OTPs().GetOTP(ctx, result.OTPSession)
	require.NoError(t, err)

	_, err = env.Auth.CompleteOTP(ctx, "app-1", "alice", result.OTPSession, challenge.Code)
	require.ErrorIs(t, err, ErrTokenIssuance)
}
