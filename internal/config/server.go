package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultServerPort         = 8080
	defaultServerTimeout      = 30 * time.Second
	defaultServerWriteTimeout = 5 * time.Minute
	defaultMetricsPort        = 2112
)

type ServerConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	ReadTimeout time.Duration `mapstructure:"read-timeout"`
	// WriteTimeout has to cover a full aggregation run of a cold address
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("missing server host")
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("server port %d out of range", cfg.Port)
	}
	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}
	return nil
}

func (cfg *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("metrics server port must be between 0 and 65535 (inclusive)")
	}

	if cfg.Host == "" {
		return errors.New("metrics server host cannot be empty")
	}

	return nil
}

func (cfg *MetricsConfig) GetMetricsPort() int {
	return cfg.Port
}
