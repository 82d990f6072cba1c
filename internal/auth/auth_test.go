package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(t *testing.T, ttl time.Duration) *Authenticator {
	t.Helper()
	a, err := New([]byte("test-secret"), ttl)
	require.NoError(t, err)
	return a
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(nil, 0)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestSignParse(t *testing.T) {
	a := newTestAuthenticator(t, 0)

	token, err := a.Sign(42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := a.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Nil(t, claims.ExpiresAt)
}

func TestParseRejects(t *testing.T) {
	a := newTestAuthenticator(t, 0)

	t.Run("empty", func(t *testing.T) {
		_, err := a.Parse("")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := a.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := New([]byte("other-secret"), 0)
		require.NoError(t, err)
		token, err := other.Sign(1)
		require.NoError(t, err)

		_, err = a.Parse(token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		short := newTestAuthenticator(t, time.Minute)
		short.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := short.Sign(1)
		require.NoError(t, err)

		_, err = short.Parse(token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("no subject", func(t *testing.T) {
		token, err := a.Sign(0)
		require.NoError(t, err)

		_, err = a.Parse(token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: 1}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = a.Parse(token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestMiddleware(t *testing.T) {
	a := newTestAuthenticator(t, 0)

	app := fiber.New()
	app.Get("/me", a.Middleware(), func(c *fiber.Ctx) error {
		id, ok := OwnerID(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(strconv.FormatUint(id, 10))
	})

	do := func(t *testing.T, header string) (int, string) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("authorization", header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	t.Run("valid raw token", func(t *testing.T) {
		token, err := a.Sign(7)
		require.NoError(t, err)

		status, body := do(t, token)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "7", body)
	})

	t.Run("missing token", func(t *testing.T) {
		status, body := do(t, "")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, msgNoToken, body)
	})

	t.Run("invalid token", func(t *testing.T) {
		status, body := do(t, "abc.def.ghi")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, msgInvalidToken, body)
	})
	t.Run("token without owner", func(t *testing.T) {
		token, err := a.Sign(0)
		require.NoError(t, err)

		status, body := do(t, token)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, msgInvalidToken, body)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: 7}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		status, _ := do(t, token)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("bearer scheme is not stripped", func(t *testing.T) {
		token, err := a.Sign(7)
		require.NoError(t, err)

		status, _ := do(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
