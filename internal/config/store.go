package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/feetracker-io/wallet-fee-tracker/internal/utils"
)

const (
	StoreBackendBolt   = "bolt"
	StoreBackendMongo  = "mongo"
	StoreBackendMemory = "memory"

	defaultBoltPath    = "feetracker.db"
	defaultBoltTimeout = 1 * time.Second
)

var storeBackends = []string{StoreBackendBolt, StoreBackendMongo, StoreBackendMemory}

// StoreConfig selects where cache entries and cooldowns are persisted.
type StoreConfig struct {
	Backend string     `mapstructure:"backend"`
	Bolt    BoltConfig `mapstructure:"bolt"`
	Db      *DbConfig  `mapstructure:"db"`
}

type BoltConfig struct {
	Path string `mapstructure:"path"`
	// Timeout is how long to wait for the file lock held by another process
	Timeout time.Duration `mapstructure:"timeout"`
}

type DbConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"db-name"`
	Address  string `mapstructure:"address"`
}

func (cfg *StoreConfig) Validate() error {
	if !utils.Contains(storeBackends, cfg.Backend) {
		return fmt.Errorf("unknown backend %q, should be one of %v", cfg.Backend, storeBackends)
	}

	switch cfg.Backend {
	case StoreBackendBolt:
		if cfg.Bolt.Path == "" {
			return errors.New("bolt path is required")
		}
		if cfg.Bolt.Timeout <= 0 {
			return errors.New("bolt timeout must be positive")
		}
	case StoreBackendMongo:
		if cfg.Db == nil {
			return errors.New("db section is required for the mongo backend")
		}
		return cfg.Db.Validate()
	}

	return nil
}

func (cfg *DbConfig) Validate() error {
	if cfg.Username == "" {
		return errors.New("missing db username")
	}
	if cfg.Password == "" {
		return errors.New("missing db password")
	}
	if cfg.Address == "" {
		return errors.New("missing db address")
	}
	if cfg.DbName == "" {
		return errors.New("missing db name")
	}

	return nil
}
