package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644))
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("STORAGE_LOCAL_PATH", t.TempDir())
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "10000", cfg.Server.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, InsecureJWTSecret, cfg.JWT.Secret)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
server:
  port: "8080"
  mode: debug
jwt:
  secret: file-secret
  expire_hours: 24
storage:
  type: minio
  minio_bucket: from-file
cors:
  allowed_origins:
    - http://localhost:3000
`)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("S3_BUCKET_NAME", "from-env")
	t.Setenv("AWS_REGION", "us-east-1")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "from-env", cfg.Storage.MinioBucket)
	assert.Equal(t, "us-east-1", cfg.Storage.MinioRegion)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigFile)
}

func TestLoadConfig_CORSFromEnv(t *testing.T) {
	t.Setenv("STORAGE_LOCAL_PATH", t.TempDir())
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_ReleaseRejectsWeakSecret(t *testing.T) {
	t.Setenv("STORAGE_LOCAL_PATH", t.TempDir())
	t.Setenv("SERVER_MODE", "release")

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("short secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "short")
		_, err := LoadConfig(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("strong secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.True(t, cfg.IsRelease())
	})
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "server: [unterminated")

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
