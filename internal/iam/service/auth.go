package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cobaltgate/iam/internal/iam/domain"
	"github.com/cobaltgate/iam/internal/iam/store"
	"github.com/cobaltgate/iam/pkg/cryptox"
	"github.com/cobaltgate/iam/pkg/jwtx"
)

var (
	// ErrUseridNotExist means no active user holds the (appid, userid)
	// presented at login.
	ErrUseridNotExist = errors.New("userid does not exist")

	// ErrPasswordIncorrect means the user exists but the password failed
	// verification.
	ErrPasswordIncorrect = errors.New("password is incorrect")

	// ErrAccountFrozen bars token issuance regardless of credentials.
	ErrAccountFrozen = errors.New("account is frozen")

	// ErrInvalidToken covers every bearer-token failure: bad signature,
	// expiry, or a subject that no longer resolves to an active user.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenIssuance means the user state changed between the credential
	// check and signing (deleted or frozen mid-flight), or signing failed.
	ErrTokenIssuance = errors.New("generating token failed")
)

type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	OTP      *OTPService

	Issuer string

	// TokenTTL defaults to jwtx.DefaultTokenTTL when zero.
	TokenTTL time.Duration
}

func (s *AuthService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return jwtx.DefaultTokenTTL
}

// Login checks credentials and either opens an OTP challenge or issues a
// token directly, depending on the user's otpservice channel. The checks
// run in a fixed order so the caller-visible error always names the first
// gate that failed: existence, then freeze, then password.
func (s *AuthService) Login(ctx context.Context, appID, userID, password string) (domain.LoginResult, error) {
	u, err := s.Store.Users().GetUser(ctx, appID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.LoginResult{}, ErrUseridNotExist
	}
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	if u.Frozen() {
		return domain.LoginResult{}, ErrAccountFrozen
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return domain.LoginResult{}, ErrPasswordIncorrect
	}

	if u.OTPService != domain.OTPChannelNone {
		session, err := s.OTP.Issue(ctx, u)
		if err != nil {
			return domain.LoginResult{}, err
		}
		return domain.LoginResult{OTPSession: session}, nil
	}

	return s.issueToken(ctx, appID, userID)
}

// CompleteOTP redeems a login challenge and finishes with the same token
// issuance as the direct path.
func (s *AuthService) CompleteOTP(ctx context.Context, appID, userID, session, code string) (domain.LoginResult, error) {
	if err := s.OTP.Verify(ctx, session, code); err != nil {
		return domain.LoginResult{}, err
	}
	return s.issueToken(ctx, appID, userID)
}

// issueToken re-resolves the user so a deletion or freeze that landed after
// the credential check still blocks the token.
func (s *AuthService) issueToken(ctx context.Context, appID, userID string) (domain.LoginResult, error) {
	u, err := s.Store.Users().GetUser(ctx, appID, userID)
	if err != nil || u.Frozen() {
		return domain.LoginResult{}, ErrTokenIssuance
	}

	claims := jwtx.NewClaims(
		u.UserID, u.AppID, u.CompanyID, u.CompanyName, string(u.Role),
		s.Issuer, s.tokenTTL(), time.Now().UTC(),
	)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("%w: %w", ErrTokenIssuance, err)
	}

	return domain.LoginResult{Token: token, Profile: u.Profile}, nil
}

// VerifyToken validates a bearer token and re-resolves the caller from
// storage. Claims are only trusted to locate the user; role and company
// always come back fresh, so demotions and deletions bite immediately.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return domain.Identity{}, ErrInvalidToken
	}

	u, err := s.Store.Users().GetUser(ctx, claims.AppID, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, ErrInvalidToken
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to resolve token subject: %w", err)
	}

	return domain.Identity{
		UserID:      u.UserID,
		AppID:       u.AppID,
		CompanyID:   u.CompanyID,
		CompanyName: u.CompanyName,
		Username:    u.Username,
		Role:        u.Role,
	}, nil
}
