package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "iam-test"

func testSecret() []byte { return []byte("0123456789abcdef0123456789abcdef") }

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret())
	require.NoError(t, err)
	verifier, err := NewVerifierHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	now := time.Now().UTC()
	claims := NewClaims("root", "app1", "com1", "Acme Pty Ltd", "superadmin", testIssuer, DefaultTokenTTL, now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "root", got.UserID)
	require.Equal(t, "app1", got.AppID)
	require.Equal(t, "com1", got.CompanyID)
	require.Equal(t, "Acme Pty Ltd", got.CompanyName)
	require.Equal(t, "superadmin", got.Role)
	require.Equal(t, "root", got.Subject)
	require.WithinDuration(t, now.Add(DefaultTokenTTL), got.ExpiresAt.Time, time.Second)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret())
	require.NoError(t, err)
	verifier, err := NewVerifierHS256([]byte("another-secret-another-secret!!!"), testIssuer)
	require.NoError(t, err)

	token, err := signer.Sign(NewClaims("u", "a", "c", "n", "admin", testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret())
	require.NoError(t, err)
	verifier, err := NewVerifierHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	stale := NewClaims("u", "a", "c", "n", "admin", testIssuer, time.Hour, time.Now().Add(-2*time.Hour))
	token, err := signer.Sign(stale)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret())
	require.NoError(t, err)
	verifier, err := NewVerifierHS256(testSecret(), "some-other-issuer")
	require.NoError(t, err)

	token, err := signer.Sign(NewClaims("u", "a", "c", "n", "admin", testIssuer, time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	verifier, err := NewVerifierHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := verifier.Verify(tok)
		require.Error(t, err)
	}
}

func TestEmptySecretRejected(t *testing.T) {
	t.Parallel()

	_, err := NewSignerHS256(nil)
	require.Error(t, err)
	_, err = NewVerifierHS256(nil, testIssuer)
	require.Error(t, err)
}
