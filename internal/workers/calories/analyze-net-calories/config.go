package analyzenetcalories

import (
	"time"

	"calorie-workers/internal/common/config"
)

// Config for the analyze-net-calories worker.
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
