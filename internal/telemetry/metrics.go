package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/wolfeidau/tenantctl"
)

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	// Provisioning workflow metrics
	ProjectsCreatedTotal   metric.Int64Counter
	ProjectsDeletedTotal   metric.Int64Counter
	ProvisionFailuresTotal metric.Int64Counter
	CreateProjectDuration  metric.Float64Histogram
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.ProjectsCreatedTotal, _ = meter.Int64Counter(
		"tenantctl.projects.created.total",
		metric.WithDescription("Total number of projects provisioned"),
		metric.WithUnit("{project}"),
	)

	m.ProjectsDeletedTotal, _ = meter.Int64Counter(
		"tenantctl.projects.deleted.total",
		metric.WithDescription("Total number of projects deleted"),
		metric.WithUnit("{project}"),
	)

	m.ProvisionFailuresTotal, _ = meter.Int64Counter(
		"tenantctl.provision.failures.total",
		metric.WithDescription("Total number of provisioning failures by stage"),
		metric.WithUnit("{failure}"),
	)

	m.CreateProjectDuration, _ = meter.Float64Histogram(
		"tenantctl.provision.create.duration",
		metric.WithDescription("Duration of the full create project workflow"),
		metric.WithUnit("ms"),
	)

	return m
}
