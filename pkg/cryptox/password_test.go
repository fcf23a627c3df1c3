package cryptox

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Isolated pepper so tests never touch a real pepper file.
	dir, err := filepath.Abs("testdata")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper.test"))
	m.Run()
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("hunter2!", hash))
	require.ErrorIs(t, VerifyPassword("hunter3!", hash), ErrPasswordMismatch)
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	require.NoError(t, VerifyPassword("same-password", a))
	require.NoError(t, VerifyPassword("same-password", b))
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	for _, h := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
	} {
		require.Error(t, VerifyPassword("whatever", h), "hash %q", h)
	}
}
