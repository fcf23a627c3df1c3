package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/cobaltgate/iam/internal/iam/domain"
	"github.com/cobaltgate/iam/internal/iam/store"
	"github.com/cobaltgate/iam/pkg/idx"
	"github.com/cobaltgate/iam/pkg/mailx"
	"github.com/cobaltgate/iam/pkg/slogx"
)

// ErrInvalidOTP covers every verification failure: unknown session, wrong
// code, expired or already-consumed challenge. Callers cannot tell which,
// on purpose.
var ErrInvalidOTP = errors.New("invalid OTP")

const mailSendTimeout = 10 * time.Second

type OTPService struct {
	Store  store.Store
	Mailer mailx.Mailer

	// TTL is how long an issued challenge stays redeemable. Zero means
	// domain.DefaultOTPTTL.
	TTL time.Duration
}

func (s *OTPService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return domain.DefaultOTPTTL
}

// Issue mints a fresh challenge for the user, invalidating any challenge
// still pending for the same (appid, userid) so only the newest code works.
// Delivery is fire-and-forget; a mail failure never fails the login.
func (s *OTPService) Issue(ctx context.Context, u domain.User) (string, error) {
	if err := s.Store.OTPs().InvalidatePending(ctx, u.AppID, u.UserID); err != nil {
		return "", fmt.Errorf("failed to invalidate pending challenges: %w", err)
	}

	code, err := generateOTPCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}

	now := time.Now().UTC()
	challenge := domain.OTPChallenge{
		ID:        idx.New().String(),
		Code:      code,
		AppID:     u.AppID,
		UserID:    u.UserID,
		ExpiresAt: now.Add(s.ttl()),
		Status:    domain.OTPPending,
		CreatedAt: now,
	}
	if err := s.Store.OTPs().CreateOTP(ctx, challenge); err != nil {
		return "", fmt.Errorf("failed to store OTP challenge: %w", err)
	}

	if u.OTPService == domain.OTPChannelEmail && s.Mailer != nil {
		s.deliverAsync(ctx, u, code)
	}

	return challenge.ID, nil
}

// Resend re-issues a challenge through the user's stored channel. The
// active-user lookup errors surface unchanged (store.ErrNotFound when the
// user is gone).
func (s *OTPService) Resend(ctx context.Context, appID, userID string) (string, error) {
	u, err := s.Store.Users().GetUser(ctx, appID, userID)
	if err != nil {
		return "", err
	}
	return s.Issue(ctx, u)
}

// Exists reports whether a challenge with this session id was ever issued.
// Read-only; the challenge's status and expiry are not consulted.
func (s *OTPService) Exists(ctx context.Context, session string) (bool, error) {
	_, err := s.Store.OTPs().GetOTP(ctx, session)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Invalidate retires a challenge so it can never be redeemed.
func (s *OTPService) Invalidate(ctx context.Context, session string) error {
	err := s.Store.OTPs().Invalidate(ctx, session)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidOTP
	}
	return err
}

// Verify redeems a challenge. The session must exist, still be pending and
// unexpired, and the code must match exactly. Success consumes the
// challenge; failure mutates nothing.
func (s *OTPService) Verify(ctx context.Context, session, code string) error {
	challenge, err := s.Store.OTPs().GetOTP(ctx, session)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidOTP
	}
	if err != nil {
		return fmt.Errorf("failed to load OTP challenge: %w", err)
	}

	if !challenge.Redeemable(time.Now()) {
		return ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare([]byte(challenge.Code), []byte(code)) != 1 {
		return ErrInvalidOTP
	}

	// The status guard on MarkVerified makes redemption single-use even
	// when two requests race past the checks above.
	if err := s.Store.OTPs().MarkVerified(ctx, session); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to consume OTP challenge: %w", err)
	}
	return nil
}

// deliverAsync sends the code by mail without blocking or failing the
// caller. The goroutine gets its own deadline since the request context
// dies when the login response is written.
func (s *OTPService) deliverAsync(ctx context.Context, u domain.User, code string) {
	logger := slogx.FromContext(ctx)

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()

		subject := "Your one-time verification code"
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>Your verification code is <b>%s</b>. It expires in %d minutes.</p>",
			u.Username, code, int(s.ttl().Minutes()),
		)
		if err := s.Mailer.Send(sendCtx, u.Profile, subject, body); err != nil {
			logger.Error("failed to deliver OTP mail",
				"appid", u.AppID,
				"userid", u.UserID,
				"error", err,
			)
		}
	}()
}

// generateOTPCode draws a uniform 6-digit code from crypto/rand.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
