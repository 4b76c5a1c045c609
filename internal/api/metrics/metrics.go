// Package metrics defines the Prometheus metrics emitted by a seed run. It is
// the single source of truth for metric names, labels, and help strings.
//
// All metrics live on Registry rather than the default registry so that a
// Pushgateway push carries only seeder series.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	namespace = "ecommerce"
	subsystem = "seeder"
	pushJob   = "ecommerce_seeder"
)

// Registry holds every seeder metric.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// StepDuration measures how long each seed step takes.
// Label:
//   - step: "authenticate", "insert_config", "create_indexes", …
var StepDuration = factory.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "step_duration_seconds",
		Help:      "Duration of each seed step.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"step"},
)

// StepErrorsTotal counts failed steps.
// Labels:
//   - step: the step that failed
//   - reason: "auth", "duplicate_key", "write", "verification", "other"
var StepErrorsTotal = factory.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "step_errors_total",
		Help:      "Total number of seed steps that failed.",
	},
	[]string{"step", "reason"},
)

// DocumentsWrittenTotal counts documents handled per collection.
// Labels:
//   - collection: target collection
//   - result: "inserted" or "existing"
var DocumentsWrittenTotal = factory.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "documents_total",
		Help:      "Seed documents handled, by collection and result.",
	},
	[]string{"collection", "result"},
)

// IndexesCreatedTotal counts index creations per collection.
var IndexesCreatedTotal = factory.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "indexes_created_total",
		Help:      "Indexes created (or confirmed present), by collection.",
	},
	[]string{"collection"},
)

// LastSuccessTimestamp is the unix time of the last successful run.
var LastSuccessTimestamp = factory.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful seed run.",
	},
)

// Push sends the current contents of Registry to a Pushgateway, grouped by
// database.
func Push(ctx context.Context, url, database string) error {
	err := push.New(url, pushJob).
		Gatherer(Registry).
		Grouping("database", database).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
