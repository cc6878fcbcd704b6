package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnv_MissingVersion(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_BackendRequirements(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("SAVE_BACKEND", SaveBackendPostgres)
	for _, key := range backendEnvVars[SaveBackendPostgres] {
		t.Setenv(key, "")
	}

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")

	t.Setenv("SAVE_BACKEND", SaveBackendFile)
	assert.NoError(t, ValidateEnv(), "the file backend needs no extra variables")
}

func TestValidateEnvWithWarnings(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("SAVE_BACKEND", SaveBackendPostgres)
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASSWORD", "change_this_secure_password")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "db")
	t.Setenv("API_KEY", "")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "API_KEY")
}

func TestEnvName(t *testing.T) {
	tests := map[string]string{
		"Port":                "PORT",
		"APIKey":              "API_KEY",
		"DBMaxConns":          "DB_MAX_CONNS",
		"RedisDB":             "REDIS_DB",
		"TravelStepDelay":     "TRAVEL_STEP_DELAY",
		"EventDeadLetterPath": "EVENT_DEAD_LETTER_PATH",
	}
	for field, want := range tests {
		assert.Equal(t, want, EnvName(field), field)
	}
}
