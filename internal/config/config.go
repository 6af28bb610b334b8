// Package config loads the node configuration from a yaml file, IBCCORE_*
// environment variables and command line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	// EnvPrefix prefixes every environment override, e.g. IBCCORE_CHAIN_ID.
	EnvPrefix = "IBCCORE"

	// FileName is the config file name without extension.
	FileName = "ibc-core"

	DefaultMaxClientDepth = 4
)

// Keys of the config file, environment and flags.
const (
	KeyChainID         = "chain_id"
	KeyGRPCAddress     = "grpc_address"
	KeyDBBackend       = "db_backend"
	KeyDBDir           = "db_dir"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyMarketMakers    = "market_makers"
	KeyAuthority       = "authority"
	KeyMaxClientDepth  = "max_client_depth"
	KeyBlockTime       = "block_time"
	KeyTelemetryOn     = "telemetry.enabled"
	KeyTelemetryName   = "telemetry.service_name"
	KeyTelemetryPeriod = "telemetry.retention"
)

// Config holds the node configuration.
type Config struct {
	ChainID     string `yaml:"chain_id"`
	GRPCAddress string `yaml:"grpc_address"`
	DBBackend   string `yaml:"db_backend"`
	DBDir       string `yaml:"db_dir"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`

	// MarketMakers may deliver packets through intent receive.
	MarketMakers []string `yaml:"market_makers"`
	// Authority administers the market maker set.
	Authority string `yaml:"authority"`

	MaxClientDepth uint32        `yaml:"max_client_depth"`
	BlockTime      time.Duration `yaml:"block_time"`

	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// TelemetryConfig configures the in-memory metrics sink.
type TelemetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	ServiceName string        `yaml:"service_name"`
	Retention   time.Duration `yaml:"retention"`
}

// DefaultConfig returns the configuration written by `config init`.
func DefaultConfig() Config {
	return Config{
		ChainID:        "ibc-core-1",
		GRPCAddress:    "localhost:9090",
		DBBackend:      "goleveldb",
		DBDir:          "data",
		LogLevel:       "info",
		LogFormat:      "plain",
		MaxClientDepth: DefaultMaxClientDepth,
		BlockTime:      time.Second,
		Telemetry: TelemetryConfig{
			ServiceName: "ibc-core",
			Retention:   time.Minute,
		},
	}
}

// NewViper returns a viper instance seeded with defaults that reads
// IBCCORE_* environment overrides.
func NewViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault(KeyChainID, def.ChainID)
	v.SetDefault(KeyGRPCAddress, def.GRPCAddress)
	v.SetDefault(KeyDBBackend, def.DBBackend)
	v.SetDefault(KeyDBDir, def.DBDir)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFormat, def.LogFormat)
	v.SetDefault(KeyMarketMakers, def.MarketMakers)
	v.SetDefault(KeyAuthority, def.Authority)
	v.SetDefault(KeyMaxClientDepth, def.MaxClientDepth)
	v.SetDefault(KeyBlockTime, def.BlockTime)
	v.SetDefault(KeyTelemetryOn, def.Telemetry.Enabled)
	v.SetDefault(KeyTelemetryName, def.Telemetry.ServiceName)
	v.SetDefault(KeyTelemetryPeriod, def.Telemetry.Retention)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadInConfig loads home/ibc-core.yaml into v. A missing file is not an
// error; defaults and the environment still apply.
func ReadInConfig(v *viper.Viper, home string) error {
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(home)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load builds a Config from v. List and duration values are coerced so that
// environment strings such as "a,b" and "5s" are accepted.
func Load(v *viper.Viper) (Config, error) {
	maxDepth, err := cast.ToUint32E(v.Get(KeyMaxClientDepth))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyMaxClientDepth, err)
	}

	blockTime, err := cast.ToDurationE(v.Get(KeyBlockTime))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyBlockTime, err)
	}

	retention, err := cast.ToDurationE(v.Get(KeyTelemetryPeriod))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyTelemetryPeriod, err)
	}

	enabled, err := cast.ToBoolE(v.Get(KeyTelemetryOn))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyTelemetryOn, err)
	}

	cfg := Config{
		ChainID:        v.GetString(KeyChainID),
		GRPCAddress:    v.GetString(KeyGRPCAddress),
		DBBackend:      v.GetString(KeyDBBackend),
		DBDir:          v.GetString(KeyDBDir),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		MarketMakers:   stringList(v.Get(KeyMarketMakers)),
		Authority:      v.GetString(KeyAuthority),
		MaxClientDepth: maxDepth,
		BlockTime:      blockTime,
		Telemetry: TelemetryConfig{
			Enabled:     enabled,
			ServiceName: v.GetString(KeyTelemetryName),
			Retention:   retention,
		},
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ChainID) == "" {
		return fmt.Errorf("%s cannot be blank", KeyChainID)
	}
	switch c.DBBackend {
	case "memdb", "goleveldb":
	default:
		return fmt.Errorf("unsupported %s %q, expected memdb or goleveldb", KeyDBBackend, c.DBBackend)
	}
	switch c.LogFormat {
	case "plain", "json":
	default:
		return fmt.Errorf("unsupported %s %q, expected plain or json", KeyLogFormat, c.LogFormat)
	}
	if c.MaxClientDepth == 0 {
		return fmt.Errorf("%s must be positive", KeyMaxClientDepth)
	}
	if c.BlockTime <= 0 {
		return fmt.Errorf("%s must be positive", KeyBlockTime)
	}
	for _, mm := range c.MarketMakers {
		if strings.TrimSpace(mm) == "" {
			return fmt.Errorf("%s cannot contain blank addresses", KeyMarketMakers)
		}
	}
	return nil
}

// IsMarketMaker reports whether address is configured as a market maker.
func (c Config) IsMarketMaker(address string) bool {
	for _, mm := range c.MarketMakers {
		if mm == address {
			return true
		}
	}
	return false
}

// WriteFile writes c as yaml to home/ibc-core.yaml.
func WriteFile(home string, c Config) (string, error) {
	bz, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(home, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(home, FileName+".yaml")
	if err := os.WriteFile(path, bz, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func stringList(raw interface{}) []string {
	if s, ok := raw.(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return cast.ToStringSlice(raw)
}
