package computeburn

import (
	"fmt"
	"time"

	"calorie-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func FromWorkerConfig(wc config.WorkerConfig) *Config {
	cfg := DefaultConfig()
	if wc.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wc.Timeout)
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
