package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../migrations"

func TestMigrationFiles_UpAndDownPaired(t *testing.T) {
	entries, err := os.ReadDir(migrationsDir)
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestMigrationFiles_ContactSubmissionsSchema(t *testing.T) {
	up, err := os.ReadFile(filepath.Join(migrationsDir, "000001_create_contact_submissions.up.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS contact_submissions")
	for _, column := range []string{"id", "name", "email", "company", "message", "created_at"} {
		assert.Contains(t, string(up), column)
	}

	down, err := os.ReadFile(filepath.Join(migrationsDir, "000001_create_contact_submissions.down.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(down), "DROP TABLE IF EXISTS contact_submissions")
}

func TestRollbackMigrations_RejectsNonPositiveSteps(t *testing.T) {
	err := RollbackMigrations("postgres://localhost/mbsnyc", DefaultMigrationsPath, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rollback steps must be positive")
}

func TestRequiresVerification(t *testing.T) {
	assert.True(t, requiresVerification("postgres://h/db?sslmode=verify-full"))
	assert.True(t, requiresVerification("postgres://h/db?sslmode=verify-ca"))
	assert.False(t, requiresVerification("postgres://h/db?sslmode=require"))
	assert.False(t, requiresVerification("postgres://localhost/db"))
}

func TestConfigureTLS_MissingCertificateFile(t *testing.T) {
	t.Setenv(CACertEnv, filepath.Join(t.TempDir(), "missing.crt"))

	cfg, err := configureTLS("postgres://h/db?sslmode=verify-full")
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestConfigureTLS_NoCertificateConfigured(t *testing.T) {
	t.Setenv(CACertEnv, "")

	cfg, err := configureTLS("postgres://h/db?sslmode=verify-full")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}
