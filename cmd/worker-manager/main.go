// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"calorie-workers/internal/common/aws"
	"calorie-workers/internal/common/camunda"
	"calorie-workers/internal/common/config"
	"calorie-workers/internal/common/database"
	"calorie-workers/internal/common/logger"
	"calorie-workers/internal/common/observability"
	"calorie-workers/internal/server"
	"calorie-workers/pkg/catalogfile"

	// Body Workers (1)
	bmi "calorie-workers/internal/workers/body/compute-bmi"

	// Calorie Workers (3)
	anc "calorie-workers/internal/workers/calories/analyze-net-calories"
	cb "calorie-workers/internal/workers/calories/compute-burn"
	ci "calorie-workers/internal/workers/calories/compute-intake"

	// Stateful Workers (3)
	sfa "calorie-workers/internal/workers/notification/send-feedback-alert"
	rds "calorie-workers/internal/workers/reporting/record-daily-summary"
	as "calorie-workers/internal/workers/tally/adjust-selection"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}
	_ = bootLog.Sync()

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format).With(
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	catalog, err := catalogfile.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.String("path", cfg.Catalog.Path), zap.Error(err))
	}
	zapLog.Info("Catalog loaded",
		zap.Int("foods", len(catalog.Foods)),
		zap.Int("activities", len(catalog.Activities)),
	)

	readiness := server.NewReadiness(log)

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(camunda.ConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	readiness.Register("zeebe", zeebe.HealthCheck)
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL and Elasticsearch (record-daily-summary) ---
	var (
		pg       *database.PostgresClient
		esClient *database.ElasticsearchClient
	)
	if config.IsWorkerEnabled(cfg, rds.TaskType) {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		if err := database.EnsureSchema(ctx, pg.GetDB()); err != nil {
			zapLog.Fatal("postgres schema setup failed", zap.Error(err))
		}
		readiness.Register("postgres", pg.Ping)
		zapLog.Info("PostgreSQL connected successfully")

		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		if err := esClient.EnsureSummaryIndex(ctx, cfg.Database.Elasticsearch.SummaryIndex); err != nil {
			zapLog.Fatal("elasticsearch index setup failed", zap.Error(err))
		}
		readiness.Register("elasticsearch", esClient.Ping)
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Init Redis (adjust-selection) ---
	var redis *database.RedisClient
	if config.IsWorkerEnabled(cfg, as.TaskType) {
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		readiness.Register("redis", redis.Ping)
		zapLog.Info("Redis connected successfully")
	}

	// --- Init AWS clients (send-feedback-alert) ---
	var awsClients *aws.Clients
	if config.IsWorkerEnabled(cfg, sfa.TaskType) {
		awsClients, err = aws.NewClients(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws clients init failed", zap.Error(err))
		}
		zapLog.Info("AWS clients initialized", zap.String("region", cfg.Notifications.AWS.Region))
	}

	// --- Register Workers ---
	zbClient := zeebe.GetClient()
	var workers []*camunda.Worker
	start := func(taskType string, handler camunda.JobHandler) {
		workers = append(workers, camunda.NewWorker(zbClient, taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, log))
	}

	if config.IsWorkerEnabled(cfg, ci.TaskType) {
		c := ci.FromWorkerConfig(config.GetWorkerConfig(cfg, ci.TaskType))
		if err := c.Validate(); err != nil {
			zapLog.Fatal("invalid compute-intake config", zap.Error(err))
		}
		start(ci.TaskType, ci.NewHandler(c, catalog, log))
	}

	if config.IsWorkerEnabled(cfg, cb.TaskType) {
		c := cb.FromWorkerConfig(config.GetWorkerConfig(cfg, cb.TaskType))
		if err := c.Validate(); err != nil {
			zapLog.Fatal("invalid compute-burn config", zap.Error(err))
		}
		start(cb.TaskType, cb.NewHandler(c, catalog, log))
	}

	if config.IsWorkerEnabled(cfg, bmi.TaskType) {
		start(bmi.TaskType, bmi.NewHandler(bmi.FromWorkerConfig(config.GetWorkerConfig(cfg, bmi.TaskType)), log))
	}

	if config.IsWorkerEnabled(cfg, anc.TaskType) {
		start(anc.TaskType, anc.NewHandler(anc.FromWorkerConfig(config.GetWorkerConfig(cfg, anc.TaskType)), log))
	}

	if config.IsWorkerEnabled(cfg, as.TaskType) {
		c := as.FromWorkerConfig(config.GetWorkerConfig(cfg, as.TaskType), redis.TallyTTL)
		if err := c.Validate(); err != nil {
			zapLog.Fatal("invalid adjust-selection config", zap.Error(err))
		}
		start(as.TaskType, as.NewHandler(c, catalog, redis.Client, log))
	}

	if config.IsWorkerEnabled(cfg, rds.TaskType) {
		c := rds.FromWorkerConfig(config.GetWorkerConfig(cfg, rds.TaskType), cfg.Database.Elasticsearch.SummaryIndex)
		if err := c.Validate(); err != nil {
			zapLog.Fatal("invalid record-daily-summary config", zap.Error(err))
		}
		start(rds.TaskType, rds.NewHandler(c, catalog, pg.GetDB(), esClient, log))
	}

	if config.IsWorkerEnabled(cfg, sfa.TaskType) {
		c := sfa.FromWorkerConfig(config.GetWorkerConfig(cfg, sfa.TaskType), cfg.Notifications)
		if err := c.Validate(); err != nil {
			zapLog.Fatal("invalid send-feedback-alert config", zap.Error(err))
		}
		start(sfa.TaskType, sfa.NewHandler(c, awsClients.SES, awsClients.SNS, log))
	}

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Readiness, Health & Metrics Server ---
	if err := readiness.Start(cfg.Server.ReadinessSchedule); err != nil {
		zapLog.Fatal("invalid readiness schedule", zap.String("schedule", cfg.Server.ReadinessSchedule), zap.Error(err))
	}

	srv := server.New(server.Options{
		Address:        cfg.Server.Address,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ProcessID:      cfg.Camunda.ProcessID,
		Catalog:        catalog,
		Starter:        zeebe,
		Readiness:      readiness,
		Logger:         log,
	})
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	readiness.Stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down observability", zap.Error(err))
	}
	if redis != nil {
		if err := redis.Close(); err != nil {
			zapLog.Error("Error closing Redis client", zap.Error(err))
		}
	}
	if pg != nil {
		if err := pg.Close(); err != nil {
			zapLog.Error("Error closing PostgreSQL client", zap.Error(err))
		}
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
