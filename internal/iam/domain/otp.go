package domain

import "time"

// OTP challenge lifecycle. Challenges are never physically deleted; they
// move between these states and stay on disk for audit.
const (
	OTPPending     = 0
	OTPVerified    = 1
	OTPInvalidated = 2
)

// DefaultOTPTTL is how long a freshly issued challenge can be redeemed.
const DefaultOTPTTL = 2 * time.Minute

// OTPChallenge is one pending (or consumed) login challenge. Its ID doubles
// as the "otp session" handed back to the client.
type OTPChallenge struct {
	ID        string // ULID, the otp session identifier
	Code      string // 6-digit numeric code
	AppID     string
	UserID    string
	ExpiresAt time.Time
	Status    int
	CreatedAt time.Time
}

// Redeemable reports whether the challenge can still be verified at now.
// Matching the submitted code is the caller's job.
func (c OTPChallenge) Redeemable(now time.Time) bool {
	return c.Status == OTPPending && now.Before(c.ExpiresAt)
}
