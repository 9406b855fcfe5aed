package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("API_BASE_URL", "https://api.petclinic.test/")
	t.Setenv("SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.petclinic.test", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10*time.Minute, cfg.CacheDirectoryTTL)
	assert.Equal(t, 2000, cfg.UploadMaxWidth)
	assert.Equal(t, int64(10), cfg.MaxUploadSizeMB)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "petclinic.env")
	content := "API_BASE_URL=http://localhost:9000\nRATE_LIMIT_RPS=2.5\nHTTP_TIMEOUT=5s\nSESSION_FILE=" + filepath.Join(dir, "s.json") + "\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", file)
	// godotenv does not override variables that are already set, so make sure
	// these are absent for the duration of the test.
	for _, k := range []string{"API_BASE_URL", "RATE_LIMIT_RPS", "HTTP_TIMEOUT", "SESSION_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.APIBaseURL)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			APIBaseURL:     "https://api.example.com",
			RateLimitRPS:   1,
			RateLimitBurst: 1,
			SessionFile:    "/tmp/session.json",
		}
	}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("relative base url", func(t *testing.T) {
		c := valid()
		c.APIBaseURL = "/api"
		assert.Error(t, c.Validate())
	})

	t.Run("zero rate", func(t *testing.T) {
		c := valid()
		c.RateLimitRPS = 0
		assert.Error(t, c.Validate())
	})

	t.Run("empty session file", func(t *testing.T) {
		c := valid()
		c.SessionFile = ""
		assert.Error(t, c.Validate())
	})
}

func TestTypedFallbacks(t *testing.T) {
	t.Setenv("PC_TEST_DURATION", "not-a-duration")
	t.Setenv("PC_TEST_INT", "x")
	t.Setenv("PC_TEST_FLOAT", "1.25")

	assert.Equal(t, time.Minute, getDurationEnv("PC_TEST_DURATION", time.Minute))
	assert.Equal(t, 7, getIntEnv("PC_TEST_INT", 7))
	assert.Equal(t, 1.25, getFloatEnv("PC_TEST_FLOAT", 0))
}
