// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calorie-workers/internal/common/camunda"
	"calorie-workers/internal/common/config"
	"calorie-workers/internal/common/database"
	"calorie-workers/internal/common/logger"
	"calorie-workers/internal/nutrition"

	rds "calorie-workers/internal/workers/reporting/record-daily-summary"
	as "calorie-workers/internal/workers/tally/adjust-selection"
)

// These run against a local zeebe, postgres, elasticsearch and redis.
// Set CALORIE_E2E=1 to enable them.
func skipUnlessE2E(t *testing.T) {
	t.Helper()
	if testing.Short() || os.Getenv("CALORIE_E2E") == "" {
		t.Skip("Skipping E2E tests; set CALORIE_E2E=1 with services running")
	}
}

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)

	// force localhost for E2E runs
	cfg.Camunda.BrokerAddress = "localhost:26500"
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	return cfg
}

func TestServicesConnectivity(t *testing.T) {
	skipUnlessE2E(t)
	cfg := loadConfig(t)
	ctx := context.Background()

	zeebe, err := camunda.NewClientWithConfig(camunda.ConfigFrom(cfg.Camunda))
	require.NoError(t, err, "Zeebe connection failed")
	defer zeebe.Close()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer pg.Close()
	assert.NoError(t, pg.Ping(ctx), "PostgreSQL ping failed")

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	defer rdb.Close()
	assert.NoError(t, rdb.Ping(ctx), "Redis ping failed")

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)
	assert.NoError(t, es.Ping(ctx), "Elasticsearch ping failed")
}

func TestAdjustSelection_RealRedis(t *testing.T) {
	skipUnlessE2E(t)
	cfg := loadConfig(t)
	ctx := context.Background()

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	defer rdb.Close()

	handler := as.NewHandler(
		as.FromWorkerConfig(config.GetWorkerConfig(cfg, as.TaskType), time.Minute),
		nutrition.DefaultCatalog(), rdb.Client, logger.NewTestLogger(t),
	)

	tallyID := uuid.NewString()
	defer rdb.Client.Del(ctx, fmt.Sprintf("tally:%s:%s", tallyID, as.KindIntake))

	out, err := handler.Execute(ctx, &as.Input{TallyID: tallyID, Kind: as.KindIntake, Index: 0, Action: as.ActionIncrement})
	require.NoError(t, err)
	assert.Equal(t, 365, out.Total)

	out, err = handler.Execute(ctx, &as.Input{TallyID: tallyID, Kind: as.KindIntake, Index: 4, Action: as.ActionIncrement})
	require.NoError(t, err)
	assert.Equal(t, 526, out.Total)

	out, err = handler.Execute(ctx, &as.Input{TallyID: tallyID, Kind: as.KindIntake, Index: 0, Action: as.ActionDecrement})
	require.NoError(t, err)
	assert.Equal(t, 161, out.Total)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 0, 0, 0, 0, 0}, out.Selection)

	ttl, err := rdb.Client.TTL(ctx, fmt.Sprintf("tally:%s:%s", tallyID, as.KindIntake)).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)
}

func TestRecordDailySummary_RealStores(t *testing.T) {
	skipUnlessE2E(t)
	cfg := loadConfig(t)
	ctx := context.Background()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer pg.Close()
	require.NoError(t, database.EnsureSchema(ctx, pg.GetDB()))

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)
	index := cfg.Database.Elasticsearch.SummaryIndex
	require.NoError(t, es.EnsureSummaryIndex(ctx, index))

	handler := rds.NewHandler(
		rds.FromWorkerConfig(config.GetWorkerConfig(cfg, rds.TaskType), index),
		nutrition.DefaultCatalog(), pg.GetDB(), es, logger.NewTestLogger(t),
	)

	userRef := "e2e-" + uuid.NewString()
	input := &rds.Input{
		UserRef:     userRef,
		SummaryDate: "2026-03-14",
		Frequencies: nutrition.IntakeSelection{2, 0, 0, 0, 1, 0, 0, 0, 1, 0},
		Durations:   nutrition.ActivitySelection{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		Measurement: &nutrition.BodyMeasurement{
			HeightUnit:    nutrition.HeightCentimeters,
			HeightPrimary: 175,
			WeightUnit:    nutrition.WeightKilograms,
			WeightValue:   70,
		},
	}
	defer pg.GetDB().ExecContext(ctx, `DELETE FROM daily_summaries WHERE user_ref = $1`, userRef)

	out, err := handler.Execute(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, rds.SummaryID(userRef, "2026-03-14"), out.SummaryID)
	assert.Equal(t, 1256, out.Report.ConsumedCalories)

	// a second run for the same user and day upserts the same row
	input.Durations = nutrition.ActivitySelection{30, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	_, err = handler.Execute(ctx, input)
	require.NoError(t, err)

	var (
		count  int
		burned int
	)
	row := pg.GetDB().QueryRowContext(ctx,
		`SELECT COUNT(*), MAX(burned_calories) FROM daily_summaries WHERE user_ref = $1`, userRef)
	require.NoError(t, row.Scan(&count, &burned))
	assert.Equal(t, 1, count)
	assert.Equal(t, 350, burned)
}
