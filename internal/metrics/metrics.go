// Package metrics defines the application counters exposed on /metrics
// alongside the HTTP metrics collected by fiberprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "securepulse"

var (
	SamplesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "samples_ingested_total",
		Help:      "Health samples persisted.",
	})

	AlertsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_created_total",
		Help:      "Emergency alerts created, by alert type and source.",
	}, []string{"type", "source"})

	IngestAlertFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_alert_failures_total",
		Help:      "Anomalies detected during ingestion whose alert could not be created.",
	})

	EnqueueFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_enqueue_failures_total",
		Help:      "Notification jobs that could not be handed to the queue.",
	}, []string{"kind"})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Notification attempts, by channel and outcome.",
	}, []string{"channel", "status"})

	JobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_jobs_total",
		Help:      "Notification jobs taken off the queue, by kind and outcome.",
	}, []string{"kind", "outcome"})
)
