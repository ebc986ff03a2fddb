package computebmi

import (
	"time"

	"calorie-workers/internal/common/config"
)

// No per-worker settings beyond the timeout.
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
