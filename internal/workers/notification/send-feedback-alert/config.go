package sendfeedbackalert

import (
	"fmt"
	"time"

	"calorie-workers/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	SenderID     string
	Timeout      time.Duration
}

func DefaultConfig() *Config {
	return &Config{Timeout: 15 * time.Second}
}

func FromWorkerConfig(wc config.WorkerConfig, nc config.NotificationConfig) *Config {
	cfg := DefaultConfig()
	if wc.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wc.Timeout)
	}
	cfg.EmailEnabled = nc.Email.Enabled
	cfg.FromEmail = nc.Email.FromEmail
	cfg.SMSEnabled = nc.SMS.Enabled
	cfg.SenderID = nc.SMS.SenderID
	return cfg
}

func (c *Config) Validate() error {
	if c.EmailEnabled && c.FromEmail == "" {
		return fmt.Errorf("from email is required when email is enabled")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
