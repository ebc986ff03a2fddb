package recorddailysummary

import (
	"fmt"
	"time"

	"calorie-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// SummaryIndex is the Elasticsearch index summaries are mirrored into.
	SummaryIndex string
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:      10 * time.Second,
		SummaryIndex: "daily-summaries",
	}
}

func FromWorkerConfig(wc config.WorkerConfig, summaryIndex string) *Config {
	cfg := DefaultConfig()
	if wc.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wc.Timeout)
	}
	if summaryIndex != "" {
		cfg.SummaryIndex = summaryIndex
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.SummaryIndex == "" {
		return fmt.Errorf("summary index is required")
	}
	return nil
}
