package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipalContext(t *testing.T) {
	t.Run("store and retrieve", func(t *testing.T) {
		ctx := WithPrincipal(context.Background(), Principal{UserID: 123, Username: "alice"})

		p, err := PrincipalFromContext(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 123, p.UserID)
		assert.Equal(t, "alice", p.Username)
	})

	t.Run("missing principal", func(t *testing.T) {
		_, err := PrincipalFromContext(context.Background())
		assert.ErrorIs(t, err, ErrNoUser)
	})

	t.Run("wrong value type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), userKey, "not-a-principal")
		_, err := PrincipalFromContext(ctx)
		assert.ErrorIs(t, err, ErrNoUser)
	})
}

func TestIssuer(t *testing.T) {
	issuer := NewIssuer("test_jwt_secret", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, exp, err := issuer.Issue(Principal{UserID: 7, Username: "bob"})
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		p, err := issuer.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, Principal{UserID: 7, Username: "bob"}, p)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewIssuer("wrong_secret", time.Hour)
		token, _, err := other.Issue(Principal{UserID: 7, Username: "bob"})
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		old := NewIssuer("test_jwt_secret", time.Hour)
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := old.Issue(Principal{UserID: 7, Username: "bob"})
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 7})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid bearer token", "Bearer token123", "token123"},
		{"lowercase scheme", "bearer token123", "token123"},
		{"no bearer prefix", "NotBearer token123", ""},
		{"no space", "Bearertoken123", ""},
		{"empty header", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTokenFromHeader(tt.header))
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	t.Run("header wins over cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer from-header")
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "from-cookie"})

		token, err := TokenFromRequest(req)
		assert.NoError(t, err)
		assert.Equal(t, "from-header", token)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "from-cookie"})

		token, err := TokenFromRequest(req)
		assert.NoError(t, err)
		assert.Equal(t, "from-cookie", token)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "InvalidFormat")

		_, err := TokenFromRequest(req)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("nothing", func(t *testing.T) {
		_, err := TokenFromRequest(httptest.NewRequest("GET", "/", nil))
		assert.ErrorIs(t, err, ErrNoToken)
	})
}
