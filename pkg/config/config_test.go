package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_RemoteStoreConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("REMOTE_STORE_BASE_URL", "http://test-store:9000")
	os.Setenv("REMOTE_STORE_TIMEOUT_SECONDS", "15")
	defer func() {
		os.Unsetenv("REMOTE_STORE_BASE_URL")
		os.Unsetenv("REMOTE_STORE_TIMEOUT_SECONDS")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "http://test-store:9000", cfg.RemoteStore.BaseURL)
	assert.Equal(t, 15, cfg.RemoteStore.TimeoutSeconds)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("REMOTE_STORE_BASE_URL")
	os.Unsetenv("REMOTE_STORE_TIMEOUT_SECONDS")
	os.Unsetenv("OPENAI_MODEL")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 60, cfg.RemoteStore.TimeoutSeconds)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}
