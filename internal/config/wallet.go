package config

import (
	"errors"
	"fmt"
	"math/big"
	"time"
)

const (
	defaultMinBalance           = "1000"
	defaultPricePollingInterval = 5 * time.Minute
)

type WalletConfig struct {
	// MinBalance is the whole-token balance a wallet needs to meet the access requirement
	MinBalance string `mapstructure:"min-balance"`
}

func (cfg *WalletConfig) Validate() error {
	n, ok := new(big.Int).SetString(cfg.MinBalance, 10)
	if !ok {
		return fmt.Errorf("min-balance %q is not an integer", cfg.MinBalance)
	}
	if n.Sign() < 0 {
		return errors.New("min-balance must not be negative")
	}
	return nil
}

type PollerConfig struct {
	PricePollingInterval time.Duration `mapstructure:"price-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.PricePollingInterval <= 0 {
		return errors.New("price-polling-interval must be positive")
	}
	return nil
}
