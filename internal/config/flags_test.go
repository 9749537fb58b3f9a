package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaults(t *testing.T) {
	t.Setenv("POLICYASK_DEV", "")
	os.Unsetenv("POLICYASK_DEV")
	t.Setenv("POLICYASK_LOG_PATH", "")
	t.Setenv("POLICYASK_TIMEOUT", "")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	Register(fs)
	require.NoError(t, fs.Parse(nil))

	assert.False(t, Dev)
	assert.Empty(t, LogPath)
	assert.Empty(t, Ask)
	assert.Equal(t, defaultTimeout, Timeout)
}

func TestRegisterEnvDefaultsAndOverrides(t *testing.T) {
	t.Setenv("POLICYASK_DEV", "true")
	t.Setenv("POLICYASK_LOG_PATH", "/tmp/logs")
	t.Setenv("POLICYASK_TIMEOUT", "5s")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	Register(fs)
	require.NoError(t, fs.Parse([]string{"-ask", "housing support?", "-timeout", "10s"}))

	assert.True(t, Dev)
	assert.Equal(t, "/tmp/logs", LogPath)
	assert.Equal(t, "housing support?", Ask)
	assert.Equal(t, 10*time.Second, Timeout)
}

func TestDotEnvFeedsDefaults(t *testing.T) {
	t.Setenv("POLICYASK_TIMEOUT", "")
	os.Unsetenv("POLICYASK_TIMEOUT")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("POLICYASK_TIMEOUT=45s\n"), 0o600))
	require.NoError(t, godotenv.Load(path))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	Register(fs)
	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, 45*time.Second, Timeout)
}

func TestInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("POLICYASK_DEV", "sometimes")
	t.Setenv("POLICYASK_TIMEOUT", "soon")

	assert.False(t, envBool("POLICYASK_DEV", false))
	assert.Equal(t, time.Minute, envDuration("POLICYASK_TIMEOUT", time.Minute))
}
