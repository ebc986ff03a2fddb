package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"calorie-workers/internal/common/logger"

	"github.com/robfig/cron/v3"
)

// Check probes one backing service.
type Check func(ctx context.Context) error

// Readiness caches the result of the registered checks so /ready never blocks on a slow dependency.
type Readiness struct {
	mu      sync.RWMutex
	checks  map[string]Check
	results map[string]string
	checked time.Time

	timeout   time.Duration
	scheduler *cron.Cron
	logger    logger.Logger
}

func NewReadiness(log logger.Logger) *Readiness {
	return &Readiness{
		checks:  make(map[string]Check),
		results: make(map[string]string),
		timeout: 5 * time.Second,
		logger:  log,
	}
}

// Register adds a named check. Call before Start.
func (r *Readiness) Register(name string, check Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[name] = check
	r.results[name] = "pending"
}

// Refresh runs every check once and records "ok" or the error text.
func (r *Readiness) Refresh(ctx context.Context) {
	r.mu.RLock()
	checks := make(map[string]Check, len(r.checks))
	for name, check := range r.checks {
		checks[name] = check
	}
	r.mu.RUnlock()

	results := make(map[string]string, len(checks))
	for name, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := check(checkCtx)
		cancel()

		if err != nil {
			results[name] = err.Error()
			r.logger.Warn("readiness check failed", map[string]interface{}{
				"check": name,
				"error": err,
			})
			continue
		}
		results[name] = "ok"
	}

	r.mu.Lock()
	r.results = results
	r.checked = time.Now().UTC()
	r.mu.Unlock()
}

// Start refreshes immediately and then on the cron schedule (e.g. "@every 30s").
func (r *Readiness) Start(schedule string) error {
	r.Refresh(context.Background())

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { r.Refresh(context.Background()) }); err != nil {
		return err
	}
	c.Start()

	r.mu.Lock()
	r.scheduler = c
	r.mu.Unlock()
	return nil
}

func (r *Readiness) Stop() {
	r.mu.RLock()
	c := r.scheduler
	r.mu.RUnlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// Snapshot reports whether every check passed on the last refresh along with per-check results.
func (r *Readiness) Snapshot() (bool, map[string]string, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ready := true
	out := make(map[string]string, len(r.results))
	for name, result := range r.results {
		out[name] = result
		if result != "ok" {
			ready = false
		}
	}
	return ready, out, r.checked
}

// Names lists registered checks in order.
func (r *Readiness) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
