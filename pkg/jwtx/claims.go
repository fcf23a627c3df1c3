package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an issued bearer token. Expiry is the
// only server-side bound on a token; there is no revocation list.
const DefaultTokenTTL = 24 * time.Hour

// Claims are the bearer-token claims carried by every issued token. The
// claim set is canonical: both the direct-login path and the post-OTP path
// sign exactly these fields. Consumers must still re-resolve the user before
// authorizing anything; these values only witness who the token was minted
// for.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the tenant-scoped login identifier, not a storage key.
	UserID string `json:"userid"`

	// AppID scopes the identity to one application tenant.
	AppID string `json:"appid"`

	CompanyID   string `json:"companyid"`
	CompanyName string `json:"companyname"`

	// Role is one of superadmin, admin, normaluser as of issuance time.
	Role string `json:"role"`
}

// NewClaims builds minimally-correct claims for an identity.
func NewClaims(
	userID, appID, companyID, companyName, role string,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:      userID,
		AppID:       appID,
		CompanyID:   companyID,
		CompanyName: companyName,
		Role:        role,
	}
}

// ValidateIssuer checks the issuer claim against an expected value.
// An empty expectation enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
