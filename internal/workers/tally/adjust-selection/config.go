package adjustselection

import (
	"fmt"
	"time"

	"calorie-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// TallyTTL is refreshed on every adjustment.
	TallyTTL time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:  5 * time.Second,
		TallyTTL: 24 * time.Hour,
	}
}

func FromWorkerConfig(wc config.WorkerConfig, tallyTTL time.Duration) *Config {
	cfg := DefaultConfig()
	if wc.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wc.Timeout)
	}
	if tallyTTL > 0 {
		cfg.TallyTTL = tallyTTL
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.TallyTTL <= 0 {
		return fmt.Errorf("tally ttl must be positive")
	}
	return nil
}
