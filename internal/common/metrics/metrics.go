package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	BMICategoryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bmi_category_total",
			Help: "BMI results by weight band",
		},
		[]string{"category"},
	)

	NetCalorieFeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "net_calorie_feedback_total",
			Help: "Net calorie analyses by feedback",
		},
		[]string{"feedback"},
	)

	FeedbackAlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_alerts_total",
			Help: "Feedback alerts by channel and status",
		},
		[]string{"channel", "status"},
	)
)
