package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `
app:
  name: calorie-workers
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: calories
    user: calories
    password: ${TEST_DB_PASSWORD}
  elasticsearch:
    addresses:
      - http://localhost:9200
  redis:
    address: localhost:6379
notifications:
  aws:
    region: us-east-1
  email:
    enabled: true
    from_email: alerts@example.com
workers:
  compute-bmi:
    enabled: true
    max_jobs_active: 20
  send-feedback-alert:
    enabled: false
catalog:
  path: ./configs/catalog.json
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "localhost:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Equal(t, "http://localhost:9200", cfg.Database.Elasticsearch.GetURL())
	assert.Equal(t, "./configs/catalog.json", cfg.Catalog.Path)

	// defaults
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "daily-summaries", cfg.Database.Elasticsearch.SummaryIndex)
	assert.Equal(t, 86400, cfg.Database.Redis.TallyTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "@every 30s", cfg.Server.ReadinessSchedule)
	assert.Equal(t, "daily-calorie-pipeline", cfg.Camunda.ProcessID)

	bmi := GetWorkerConfig(cfg, "compute-bmi")
	assert.True(t, bmi.Enabled)
	assert.Equal(t, 20, bmi.MaxJobsActive)
	assert.Equal(t, 30000, bmi.Timeout)
	assert.Equal(t, 3, bmi.MaxRetries)

	assert.False(t, IsWorkerEnabled(cfg, "send-feedback-alert"))
	assert.True(t, IsWorkerEnabled(cfg, "compute-intake"))
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "app:\n  name: x\n",
			wantErr: "camunda.broker_address is required",
		},
		{
			name: "summary worker without postgres",
			body: `
camunda:
  broker_address: localhost:26500
`,
			wantErr: "database.postgres.host is required",
		},
		{
			name: "tally worker without redis",
			body: `
camunda:
  broker_address: localhost:26500
workers:
  record-daily-summary:
    enabled: false
`,
			wantErr: "database.redis.address is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_OnlyPureWorkers(t *testing.T) {
	body := `
camunda:
  broker_address: localhost:26500
workers:
  record-daily-summary:
    enabled: false
  adjust-selection:
    enabled: false
  send-feedback-alert:
    enabled: false
`
	cfg, err := LoadFromFile(writeConfig(t, body))
	require.NoError(t, err)
	assert.Empty(t, cfg.Database.Postgres.Host)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
