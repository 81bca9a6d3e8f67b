package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	defaultLedgerTimeout       = 20 * time.Second
	defaultLedgerMaxRetryTimes = 3
	defaultLedgerRetryInterval = 1 * time.Second
	defaultPageSize            = 100
	defaultMaxPages            = 1000
)

// LedgerConfig defines how the remote ledger rpc is reached and walked.
type LedgerConfig struct {
	// URL is the ledger rpc base url including the version prefix, e.g. https://rpc-mainnet.example.com/rpc/v3
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
	// PageSize is the number of records requested per page
	PageSize uint64 `mapstructure:"page-size"`
	// MaxPages caps a single aggregation run
	MaxPages uint64 `mapstructure:"max-pages"`
}

func DefaultLedgerConfig() *LedgerConfig {
	return &LedgerConfig{
		Timeout:       defaultLedgerTimeout,
		MaxRetryTimes: defaultLedgerMaxRetryTimes,
		RetryInterval: defaultLedgerRetryInterval,
		PageSize:      defaultPageSize,
		MaxPages:      defaultMaxPages,
	}
}

func (cfg *LedgerConfig) Validate() error {
	if cfg.URL == "" {
		return errors.New("ledger url is required")
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return fmt.Errorf("invalid ledger url: %w", err)
	}
	if cfg.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if cfg.MaxRetryTimes == 0 {
		return errors.New("max-retry-times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return errors.New("retry-interval must be positive")
	}
	if cfg.PageSize == 0 {
		return errors.New("page-size must be positive")
	}
	if cfg.MaxPages == 0 {
		return errors.New("max-pages must be positive")
	}

	return nil
}
