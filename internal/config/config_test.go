package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("BRAIN_JWT_SECRET", "secret")

		cfg, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:3000", cfg.HTTPListen())
		assert.Equal(t, "0.0.0.0:9000", cfg.GRPCListen())
		assert.Equal(t, DriverPostgres, cfg.DBDriver)
		assert.Equal(t, "disable", cfg.DBSSLMode)
		assert.Equal(t, time.Duration(0), cfg.JWTTTL)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.False(t, cfg.ShareStrict)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("BRAIN_JWT_SECRET", "secret")
		t.Setenv("BRAIN_PORT", "8080")
		t.Setenv("BRAIN_DB_DRIVER", "sqlite")
		t.Setenv("BRAIN_JWT_TTL", "24h")
		t.Setenv("BRAIN_BCRYPT_COST", "12")
		t.Setenv("BRAIN_SHARE_STRICT", "true")

		cfg, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, DriverSQLite, cfg.DBDriver)
		assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.True(t, cfg.ShareStrict)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("BRAIN_JWT_SECRET", "")

		_, err := NewConfig()
		assert.ErrorIs(t, err, ErrNoJWTSecret)
	})

	t.Run("bad ssl mode", func(t *testing.T) {
		t.Setenv("BRAIN_JWT_SECRET", "secret")
		t.Setenv("BRAIN_DB_SSL_MODE", "maybe")

		_, err := NewConfig()
		assert.Error(t, err)
	})

	t.Run("bad driver", func(t *testing.T) {
		t.Setenv("BRAIN_JWT_SECRET", "secret")
		t.Setenv("BRAIN_DB_DRIVER", "mongo")

		_, err := NewConfig()
		assert.Error(t, err)
	})
}
