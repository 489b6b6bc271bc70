package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
	assert.Nil(t, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, uint32(64*1024), cfg.Argon2MemoryKiB)
	assert.GreaterOrEqual(t, cfg.HashConcurrency, int64(1))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://app@localhost/app")
	t.Setenv("JWT_TTL", "5m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RESET_DB", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://app@localhost/app", cfg.DBDSN)
	assert.Equal(t, 5*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.ResetDB)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}
