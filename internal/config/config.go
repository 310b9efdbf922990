// Package config loads gateway settings from environment variables.
package config

import (
	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the gateway.
type Config struct {
	ServerPort        string `mapstructure:"SERVER_PORT"`
	StoreBackend      string `mapstructure:"STORE_BACKEND"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DataDir           string `mapstructure:"DATA_DIR"`
	TransactionsFile  string `mapstructure:"TRANSACTIONS_FILE"`
	PayersFile        string `mapstructure:"PAYERS_FILE"`
	RecurringFile     string `mapstructure:"RECURRING_FILE"`
	RecurringSchedule string `mapstructure:"RECURRING_SCHEDULE"`
	DefaultCurrency   string `mapstructure:"DEFAULT_CURRENCY"`
}

// LoadConfig reads configuration from environment variables, applying
// defaults for everything but the database URL.
func LoadConfig() (*Config, error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("STORE_BACKEND", BackendMemory)
	viper.SetDefault("DATA_DIR", ".")
	viper.SetDefault("TRANSACTIONS_FILE", "transactions.txt")
	viper.SetDefault("PAYERS_FILE", "payers.txt")
	viper.SetDefault("RECURRING_FILE", "recurring.txt")
	viper.SetDefault("RECURRING_SCHEDULE", "@hourly")
	viper.SetDefault("DEFAULT_CURRENCY", "INR")
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("STORE_BACKEND")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("DATA_DIR")
	_ = viper.BindEnv("TRANSACTIONS_FILE")
	_ = viper.BindEnv("PAYERS_FILE")
	_ = viper.BindEnv("RECURRING_FILE")
	_ = viper.BindEnv("RECURRING_SCHEDULE")
	_ = viper.BindEnv("DEFAULT_CURRENCY")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
