// Package config defines configuration for the predict-cli tool.
// Config is loaded from a YAML file (default: configs/config.yaml) with
// sensitive fields overridable via PREDICT_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"predict-sdk/pkg/types"
)

// Config is the top-level configuration. Maps directly to the YAML file
// structure.
type Config struct {
	DryRun  bool          `mapstructure:"dry_run"`
	Wallet  WalletConfig  `mapstructure:"wallet"`
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// WalletConfig holds the key that signs orders and the chain to target.
type WalletConfig struct {
	PrivateKey string `mapstructure:"private_key"`
	ChainID    uint64 `mapstructure:"chain_id"`
	RPCURL     string `mapstructure:"rpc_url"`
}

// APIConfig holds the exchange API endpoint and credentials.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	ApiKey  string `mapstructure:"api_key"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads config from a YAML file with env var overrides.
// Sensitive fields use env vars: PREDICT_PRIVATE_KEY, PREDICT_API_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("PREDICT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Override sensitive fields from env
	if key := os.Getenv("PREDICT_PRIVATE_KEY"); key != "" {
		cfg.Wallet.PrivateKey = key
	}
	if key := os.Getenv("PREDICT_API_KEY"); key != "" {
		cfg.API.ApiKey = key
	}
	if os.Getenv("PREDICT_DRY_RUN") == "true" || os.Getenv("PREDICT_DRY_RUN") == "1" {
		cfg.DryRun = true
	}

	return &cfg, nil
}

// Validate checks all required fields and value ranges.
func (c *Config) Validate() error {
	if c.Wallet.PrivateKey == "" {
		return fmt.Errorf("wallet.private_key is required (set PREDICT_PRIVATE_KEY)")
	}
	switch types.ChainID(c.Wallet.ChainID) {
	case types.BNBMainnet, types.BNBTestnet:
	default:
		return fmt.Errorf("wallet.chain_id must be %d (mainnet) or %d (testnet)", types.BNBMainnet, types.BNBTestnet)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	return nil
}
