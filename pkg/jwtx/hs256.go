package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Signer signs claims with a single shared HMAC secret. The secret is
// injected at construction; there is no ambient process state and no key
// rotation surface.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer from the shared secret.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty HMAC secret")
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign turns the claims into a signed compact JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// HS256Verifier validates HS256 tokens signed with the same shared secret.
type HS256Verifier struct {
	secret []byte
	issuer string
}

// NewVerifierHS256 creates a verifier bound to the shared secret and an
// expected issuer (empty issuer enforces nothing).
func NewVerifierHS256(secret []byte, issuer string) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty HMAC secret")
	}
	return &HS256Verifier{secret: secret, issuer: issuer}, nil
}

// Verify parses and validates the token, returning the embedded claims.
// Signature, algorithm, issuer and expiry are all checked here so callers
// get a single error to branch on.
func (v *HS256Verifier) Verify(token string) (Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrAlgMismatch
		}
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAlgMismatch):
			return Claims{}, ErrAlgMismatch
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return claims, nil
}
