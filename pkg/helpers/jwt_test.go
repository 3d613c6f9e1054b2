package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("test-secret", time.Hour)
	ident := Identity{AccountID: 42, Email: "binder@example.com", RoleID: 1, RoleName: "admin"}

	tok, err := codec.Issue(ident)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, ident, *got)
}

func TestTokenCodec_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("test-secret", 0)
	tok, err := codec.Issue(Identity{AccountID: 7, Email: "a@b.com"})
	require.NoError(t, err)

	got, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.AccountID)
}

func TestTokenCodec_Expired(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("test-secret", -time.Minute)
	tok, err := codec.Issue(Identity{AccountID: 7, Email: "a@b.com"})
	require.NoError(t, err)

	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenCodec("right-secret", time.Hour).Issue(Identity{AccountID: 1, Email: "a@b.com"})
	require.NoError(t, err)

	_, err = NewTokenCodec("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenCodec("s", time.Hour).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
