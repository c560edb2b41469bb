package metrics

import "sort"

// Metric names shared by both registries.
const (
	NameHTTPRequests      = "http_requests_total"
	NameHTTPErrors        = "http_errors_total"
	NameBytesProcessed    = "bytes_processed_total"
	NameActiveConnections = "active_connections"
	NameMemoryUsage       = "memory_usage_bytes"
	NameQueueSize         = "queue_size"
	NameCPUUsage          = "cpu_usage_percent"
	NameHTTPDuration      = "http_request_duration_seconds"
	NameDBDuration        = "db_query_duration_seconds"
	NameResponseSize      = "response_size_bytes"
	NameRequestSummary    = "request_duration_seconds_summary"
	NamePayloadSummary    = "payload_size_bytes_summary"
	NamePayloadSize       = "payload_size_bytes"
	NameAppInfo           = "app_info"
	NameAppState          = "app_state"
)

// States of the app_state enum, in declaration order.
const (
	StateStarting     = "starting"
	StateRunning      = "running"
	StateDegraded     = "degraded"
	StateShuttingDown = "shutting_down"
)

var (
	httpDurationBuckets = []float64{0.1, 0.5, 1, 2, 5, 10}
	dbDurationBuckets   = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
	responseSizeBuckets = []float64{100, 1000, 10000, 100000, 1000000, 10000000}

	defaultObjectives = map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001}

	appStateValues = []string{StateStarting, StateRunning, StateDegraded, StateShuttingDown}

	appInfoFields = map[string]string{
		"version":     "1.2.3",
		"environment": "production",
		"build_date":  "2024-12-01",
		"git_commit":  "abc123def",
	}
)

// RegisterPullCatalog declares the full demo catalog on a pull registry:
// three counters, four gauges, three histograms, two summaries, the app_info
// metric and the app_state enum.
func RegisterPullCatalog(registry *PullRegistry) error {
	counters := []Definition{
		{Name: NameHTTPRequests, Help: "Total HTTP requests", LabelNames: []string{"method", "endpoint", "status"}},
		{Name: NameHTTPErrors, Help: "Total HTTP errors", LabelNames: []string{"method", "endpoint", "error_type"}},
		{Name: NameBytesProcessed, Help: "Total bytes processed", LabelNames: []string{"operation"}},
	}
	for _, def := range counters {
		if err := registry.RegisterCounter(def); err != nil {
			return err
		}
	}

	gauges := []Definition{
		{Name: NameActiveConnections, Help: "Number of active connections", LabelNames: []string{"protocol"}},
		{Name: NameMemoryUsage, Help: "Current memory usage in bytes", LabelNames: []string{"region"}},
		{Name: NameQueueSize, Help: "Current queue size", LabelNames: []string{"queue_name"}},
		{Name: NameCPUUsage, Help: "Current CPU usage percentage"},
	}
	for _, def := range gauges {
		if err := registry.RegisterGauge(def); err != nil {
			return err
		}
	}

	histograms := []Definition{
		{Name: NameHTTPDuration, Help: "HTTP request duration in seconds", LabelNames: []string{"method", "endpoint", "status"}, Buckets: httpDurationBuckets},
		{Name: NameDBDuration, Help: "Database query duration in seconds", LabelNames: []string{"query_type", "table"}, Buckets: dbDurationBuckets},
		{Name: NameResponseSize, Help: "HTTP response size in bytes", LabelNames: []string{"endpoint"}, Buckets: responseSizeBuckets},
	}
	for _, def := range histograms {
		if err := registry.RegisterHistogram(def); err != nil {
			return err
		}
	}

	summaries := []Definition{
		{Name: NameRequestSummary, Help: "Request duration summary with quantiles", LabelNames: []string{"method", "endpoint"}},
		{Name: NamePayloadSummary, Help: "Payload size summary", LabelNames: []string{"direction"}},
	}
	for _, def := range summaries {
		if err := registry.RegisterSummary(def); err != nil {
			return err
		}
	}

	if err := registry.RegisterInfo(Definition{Name: NameAppInfo, Help: "Application information", Fields: appInfoFields}); err != nil {
		return err
	}
	return registry.RegisterEnum(Definition{Name: NameAppState, Help: "Current application state", States: appStateValues})
}

// RegisterPushCatalog declares the push-side catalog: the same counters and
// histograms as the pull side plus a payload size histogram, and the four
// system gauges as observables fed by the shared snapshot. Summaries have no
// OpenTelemetry equivalent and are pull-only.
func RegisterPushCatalog(registry *PushRegistry) error {
	counters := []Definition{
		{Name: NameHTTPRequests, Help: "Total HTTP requests", Unit: "1", LabelNames: []string{"method", "endpoint", "status"}, Note: "Actual values tracked internally"},
		{Name: NameHTTPErrors, Help: "Total HTTP errors", Unit: "1", LabelNames: []string{"method", "endpoint", "error_type"}},
		{Name: NameBytesProcessed, Help: "Total bytes processed", Unit: "bytes", LabelNames: []string{"operation"}},
	}
	for _, def := range counters {
		if err := registry.RegisterCounter(def); err != nil {
			return err
		}
	}

	gauges := []struct {
		def     Definition
		observe ObserveFunc
	}{
		{
			Definition{Name: NameActiveConnections, Help: "Number of active connections", Unit: "1", LabelNames: []string{"protocol"}},
			func(sample SystemSample) []GaugePoint { return int64Points("protocol", sample.Connections) },
		},
		{
			Definition{Name: NameMemoryUsage, Help: "Current memory usage in bytes", Unit: "bytes", LabelNames: []string{"region"}},
			func(sample SystemSample) []GaugePoint { return int64Points("region", sample.MemoryBytes) },
		},
		{
			Definition{Name: NameQueueSize, Help: "Current queue size", Unit: "1", LabelNames: []string{"queue_name"}},
			func(sample SystemSample) []GaugePoint { return int64Points("queue_name", sample.QueueDepths) },
		},
		{
			Definition{Name: NameCPUUsage, Help: "Current CPU usage percentage", Unit: "%"},
			func(sample SystemSample) []GaugePoint { return []GaugePoint{{Value: sample.CPUPercent}} },
		},
	}
	for _, gauge := range gauges {
		if err := registry.RegisterObservableGauge(gauge.def, gauge.observe); err != nil {
			return err
		}
	}

	histograms := []Definition{
		{Name: NameHTTPDuration, Help: "HTTP request duration in seconds", Unit: "s", LabelNames: []string{"method", "endpoint", "status"}, Buckets: httpDurationBuckets},
		{Name: NameDBDuration, Help: "Database query duration in seconds", Unit: "s", LabelNames: []string{"query_type", "table"}, Buckets: dbDurationBuckets},
		{Name: NameResponseSize, Help: "HTTP response size in bytes", Unit: "bytes", LabelNames: []string{"endpoint"}, Buckets: responseSizeBuckets},
		{Name: NamePayloadSize, Help: "Payload size", Unit: "bytes", LabelNames: []string{"direction"}},
	}
	for _, def := range histograms {
		if err := registry.RegisterHistogram(def); err != nil {
			return err
		}
	}
	return nil
}

func int64Points(labelName string, values map[string]int64) []GaugePoint {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	points := make([]GaugePoint, 0, len(names))
	for _, name := range names {
		points = append(points, GaugePoint{Labels: Labels{labelName: name}, Value: float64(values[name])})
	}
	return points
}
