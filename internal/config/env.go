package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvRPCURL        = "ASSETCHECK_RPC_URL"
	EnvChainID       = "ASSETCHECK_CHAIN_ID"
	EnvAccount       = "ASSETCHECK_ACCOUNT"
	EnvRedisAddr     = "ASSETCHECK_REDIS_ADDR"
	EnvRedisPassword = "ASSETCHECK_REDIS_PASSWORD"
)

// LoadDotEnv reads .env-style files into the process environment. Missing files are ignored.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...) // best-effort
}

// ApplyEnv overlays the ASSETCHECK_* variables onto cfg. Secrets such as the redis password
// are expected to come from here rather than the config file.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvRPCURL); v != "" {
		cfg.Chain.RPCURL = v
	}
	if v := os.Getenv(EnvChainID); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvChainID, err)
		}
		cfg.Chain.ChainID = id
	}
	if v := os.Getenv(EnvAccount); v != "" {
		cfg.Chain.Account = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		cfg.Redis.Addr = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		cfg.Redis.Password = v
	}
	return nil
}
