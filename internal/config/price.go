package config

import (
	"errors"
	"time"
)

type PriceConfig struct {
	URL string `mapstructure:"url"`
	// AssetID is the id of the native token on the price api
	AssetID       string        `mapstructure:"asset-id"`
	APIKey        string        `mapstructure:"api-key"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *PriceConfig) Validate() error {
	if cfg.URL == "" {
		return errors.New("price url must be set")
	}
	if cfg.AssetID == "" {
		return errors.New("asset-id must be set")
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

	return nil
}
