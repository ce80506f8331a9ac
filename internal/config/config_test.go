package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "SERVER_ENV", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USERNAME",
		"DB_PASSWORD", "DB_NAME", "JWT_SECRET", "AWS_REGION", "S3_REGION",
		"AWS_S3_BUCKET", "S3_BUCKET_NAME", "S3_PUBLIC_BASE_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "your_secret_key", cfg.JWT.Secret)
	assert.Equal(t, 168, cfg.JWT.TTLHours)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, "ap-south-1", cfg.Storage.Region)
	assert.Contains(t, cfg.Database.DSN, "root@tcp(localhost:3306)/CineMarathi")
	assert.Contains(t, cfg.Database.DSN, "parseTime=true")
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 4000\nstorage:\n  bucket: from-yaml\n"), 0o600))

	t.Setenv("S3_BUCKET_NAME", "from-env")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Storage.Bucket)
	assert.Contains(t, cfg.Database.DSN, "tcp(db.internal:3306)")
}

func TestLoad_BucketPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_S3_BUCKET", "aws-bucket")
	t.Setenv("S3_BUCKET_NAME", "s3-bucket")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "s3-bucket", cfg.Storage.Bucket)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNormalizeDSN(t *testing.T) {
	dsn := normalizeDSN("mysql://app:secret@db:3307/cinema")
	assert.Contains(t, dsn, "app:secret@tcp(db:3307)/cinema")

	assert.Equal(t, "user@tcp(x)/y", normalizeDSN("user@tcp(x)/y"))
}

func TestMigrateURL(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	u := cfg.MigrateURL()
	assert.Contains(t, u, "mysql://root@tcp(localhost:3306)/CineMarathi")
	assert.Contains(t, u, "multiStatements=true")
}
