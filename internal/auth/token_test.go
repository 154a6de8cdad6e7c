package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue("user-1", "alice@example.com", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "Alice", claims.Name)
}

func TestTokenManager_Expiry(t *testing.T) {
	expired := NewTokenManager("test-secret", -time.Minute)
	token, err := expired.Issue("user-1", "alice@example.com", "Alice")
	require.NoError(t, err)

	_, err = expired.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	// A token still inside its lifetime verifies fine, even close to the
	// boundary.
	fresh := NewTokenManager("test-secret", time.Second)
	token, err = fresh.Issue("user-1", "alice@example.com", "Alice")
	require.NoError(t, err)
	_, err = fresh.Verify(token)
	require.NoError(t, err)
}

func TestTokenManager_TamperedSignature(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, err := tm.Issue("user-1", "alice@example.com", "Alice")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := parts[2]
	flipped := "A"
	if sig[0] == 'A' {
		flipped = "B"
	}
	parts[2] = flipped + sig[1:]

	_, err = tm.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, err := tm.Issue("user-1", "alice@example.com", "Alice")
	require.NoError(t, err)

	other := NewTokenManager("other-secret", time.Hour)
	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d", "ey.ey.ey"} {
		_, err := tm.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}
