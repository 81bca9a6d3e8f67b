package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "FEETRACKER"

type Config struct {
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Price   *PriceConfig  `mapstructure:"price"`
	Store   StoreConfig   `mapstructure:"store"`
	Server  ServerConfig  `mapstructure:"server"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Wallet  WalletConfig  `mapstructure:"wallet"`
	Poller  PollerConfig  `mapstructure:"poller"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Ledger.Validate(); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}

	// price lookups are optional, without them fees are shown without usd values
	if cfg.Price != nil {
		if err := cfg.Price.Validate(); err != nil {
			return fmt.Errorf("price: %w", err)
		}
	}

	if err := cfg.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if err := cfg.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	if err := cfg.Wallet.Validate(); err != nil {
		return fmt.Errorf("wallet: %w", err)
	}

	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller: %w", err)
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
// Every key can be overridden with an env variable, e.g. FEETRACKER_LEDGER_URL for ledger.url.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ledger.timeout", defaultLedgerTimeout)
	v.SetDefault("ledger.max-retry-times", defaultLedgerMaxRetryTimes)
	v.SetDefault("ledger.retry-interval", defaultLedgerRetryInterval)
	v.SetDefault("ledger.page-size", defaultPageSize)
	v.SetDefault("ledger.max-pages", defaultMaxPages)

	v.SetDefault("store.backend", StoreBackendBolt)
	v.SetDefault("store.bolt.path", defaultBoltPath)
	v.SetDefault("store.bolt.timeout", defaultBoltTimeout)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.read-timeout", defaultServerTimeout)
	v.SetDefault("server.write-timeout", defaultServerWriteTimeout)

	v.SetDefault("metrics.host", "0.0.0.0")
	v.SetDefault("metrics.port", defaultMetricsPort)

	v.SetDefault("wallet.min-balance", defaultMinBalance)

	v.SetDefault("poller.price-polling-interval", defaultPricePollingInterval)
}
