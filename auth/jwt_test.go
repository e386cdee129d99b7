package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/onlinestore/config"
)

func TestJWTIssuer(t *testing.T) {
	user := &User{ID: 42, Username: "alice"}

	t.Run("IssueAndParse", func(t *testing.T) {
		issuer := newTestIssuer()
		pair, err := issuer.IssuePair(user)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.Access)
		assert.NotEmpty(t, pair.Refresh)
		assert.NotEqual(t, pair.Access, pair.Refresh)

		claims, err := issuer.ParseToken(pair.Access, tokenTypeAccess)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "42", claims.Subject)
		assert.NotEmpty(t, claims.ID)

		claims, err = issuer.ParseToken(pair.Refresh, tokenTypeRefresh)
		require.NoError(t, err)
		assert.Equal(t, tokenTypeRefresh, claims.TokenType)
	})

	t.Run("WrongType", func(t *testing.T) {
		issuer := newTestIssuer()
		pair, err := issuer.IssuePair(user)
		require.NoError(t, err)

		_, err = issuer.ParseToken(pair.Access, tokenTypeRefresh)
		assert.Error(t, err)
		_, err = issuer.ParseToken(pair.Refresh, tokenTypeAccess)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		issuer := newTestIssuer()
		issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
		pair, err := issuer.IssuePair(user)
		require.NoError(t, err)

		issuer.now = time.Now
		_, err = issuer.ParseToken(pair.Access, tokenTypeAccess)
		assert.Error(t, err)
		_, err = issuer.ParseToken(pair.Refresh, tokenTypeRefresh)
		assert.NoError(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		pair, err := newTestIssuer().IssuePair(user)
		require.NoError(t, err)

		other := NewJWTIssuer(&config.AuthConfig{
			JWTSecret:            "another-secret-with-at-least-32-chars",
			AccessTokenDuration:  time.Minute,
			RefreshTokenDuration: time.Hour,
		})
		_, err = other.ParseToken(pair.Access, tokenTypeAccess)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := newTestIssuer().ParseToken("not.a.token", tokenTypeAccess)
		assert.Error(t, err)
	})
}
