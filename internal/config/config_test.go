package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, "transactions.txt", cfg.TransactionsFile)
	assert.Equal(t, "payers.txt", cfg.PayersFile)
	assert.Equal(t, "recurring.txt", cfg.RecurringFile)
	assert.Equal(t, "@hourly", cfg.RecurringSchedule)
	assert.Equal(t, "INR", cfg.DefaultCurrency)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", BackendFile)
	t.Setenv("DATA_DIR", "/var/lib/gateway")
	t.Setenv("DEFAULT_CURRENCY", "USD")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, "/var/lib/gateway", cfg.DataDir)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
}
