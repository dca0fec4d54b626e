package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig, and passed to extensions.
const (
	EnvLedgerFile = "NW_LEDGER_FILE"
	EnvCurrency   = "NW_CURRENCY"
	EnvVerbose    = "NW_VERBOSE"
	EnvAddr       = "NW_ADDR"
)

// Config holds the defaults of the global flags.
type Config struct {
	LedgerFile string
	Currency   string
	Verbose    bool
	Addr       string
}

// LoadConfig reads the configuration from the environment, after loading a
// .env file from the working directory when there is one.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}
	return Config{
		LedgerFile: getEnv(EnvLedgerFile, "networth.jsonl"),
		Currency:   getEnv(EnvCurrency, "USD"),
		Verbose:    getEnvAsBool(EnvVerbose, false),
		Addr:       getEnv(EnvAddr, "localhost:8080"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
