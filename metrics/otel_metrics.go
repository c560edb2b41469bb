package metrics

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	internalMetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const summaryNote = "This is a simplified representation. In production, OTEL metrics would be exported to an OTEL collector via OTLP protocol (gRPC or HTTP)."

// ResourceConfig identifies the service that owns the push-side instruments.
// The fields become OpenTelemetry resource attributes and the meter scope.
type ResourceConfig struct {
	ServiceName           string
	ServiceVersion        string
	ServiceInstanceID     string
	DeploymentEnvironment string
}

// PushRegistry holds OpenTelemetry instruments behind the same kind of facade
// as PullRegistry. Observable gauges read their values from the snapshot
// provider inside collection callbacks, so the registry never stores gauge
// values itself.
type PushRegistry struct {
	mu       sync.Mutex
	provider *metric.MeterProvider
	reader   *metric.ManualReader
	meter    internalMetric.Meter
	resource ResourceConfig
	snapshot SnapshotProvider
	metrics  map[string]*pushMetric
	order    []string
}

type pushMetric struct {
	def       Definition
	counter   internalMetric.Int64Counter
	histogram internalMetric.Float64Histogram
	gauge     internalMetric.Float64ObservableGauge
	observe   ObserveFunc
}

// NewPushRegistry creates a push registry backed by a manual reader, so
// nothing is exported until somebody calls Collect. The snapshot provider
// must not be nil.
func NewPushRegistry(config ResourceConfig, snapshot SnapshotProvider) *PushRegistry {
	reader := metric.NewManualReader()
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
		semconv.ServiceInstanceID(config.ServiceInstanceID),
		semconv.DeploymentEnvironment(config.DeploymentEnvironment),
	)
	provider := metric.NewMeterProvider(
		metric.WithReader(reader),
		metric.WithResource(res),
	)
	meter := provider.Meter(config.ServiceName, internalMetric.WithInstrumentationVersion(config.ServiceVersion))

	return &PushRegistry{
		provider: provider,
		reader:   reader,
		meter:    meter,
		resource: config,
		snapshot: snapshot,
		metrics:  map[string]*pushMetric{},
	}
}

// RegisterCounter declares a monotonically increasing counter.
func (r *PushRegistry) RegisterCounter(def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.metrics[def.Name]; ok {
		return NewDuplicateNameError(def.Name)
	}
	counter, err := r.meter.Int64Counter(
		def.Name,
		internalMetric.WithDescription(def.Help),
		internalMetric.WithUnit(def.Unit),
	)
	if err != nil {
		return fmt.Errorf("can't create counter %s: %w", def.Name, err)
	}
	def.Kind = KindCounter
	r.track(&pushMetric{def: def, counter: counter})
	return nil
}

// RegisterHistogram declares a histogram, with explicit bucket boundaries
// when the definition carries them.
func (r *PushRegistry) RegisterHistogram(def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.metrics[def.Name]; ok {
		return NewDuplicateNameError(def.Name)
	}
	opts := []internalMetric.Float64HistogramOption{
		internalMetric.WithDescription(def.Help),
		internalMetric.WithUnit(def.Unit),
	}
	if len(def.Buckets) > 0 {
		opts = append(opts, internalMetric.WithExplicitBucketBoundaries(def.Buckets...))
	}
	histogram, err := r.meter.Float64Histogram(def.Name, opts...)
	if err != nil {
		return fmt.Errorf("can't create histogram %s: %w", def.Name, err)
	}
	def.Kind = KindHistogram
	r.track(&pushMetric{def: def, histogram: histogram})
	return nil
}

// RegisterObservableGauge declares a gauge whose values are read on demand.
// The observe function maps the shared system sample to gauge points and runs
// both during Collect and when building a Summary.
func (r *PushRegistry) RegisterObservableGauge(def Definition, observe ObserveFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.metrics[def.Name]; ok {
		return NewDuplicateNameError(def.Name)
	}
	gauge, err := r.meter.Float64ObservableGauge(
		def.Name,
		internalMetric.WithDescription(def.Help),
		internalMetric.WithUnit(def.Unit),
	)
	if err != nil {
		return fmt.Errorf("can't create observable gauge %s: %w", def.Name, err)
	}
	_, err = r.meter.RegisterCallback(func(_ context.Context, observer internalMetric.Observer) error {
		sample := r.snapshot.Load()
		for _, point := range observe(sample) {
			observer.ObserveFloat64(gauge, point.Value, internalMetric.WithAttributes(toOtelAttributes(point.Labels)...))
		}
		return nil
	}, gauge)
	if err != nil {
		return fmt.Errorf("can't register callback for %s: %w", def.Name, err)
	}
	def.Kind = KindObservableGauge
	r.track(&pushMetric{def: def, gauge: gauge, observe: observe})
	return nil
}

// Add increments a counter by the given non-negative amount.
func (r *PushRegistry) Add(ctx context.Context, name string, labels Labels, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.metrics[name]
	if !ok || m.counter == nil {
		return NewUnknownMetricError(name, "counter")
	}
	if err := m.def.checkLabels(labels); err != nil {
		return err
	}
	if amount < 0 {
		return NewInvalidValueError(name, "counter amount must not be negative")
	}
	m.counter.Add(ctx, amount, internalMetric.WithAttributes(toOtelAttributes(labels)...))
	return nil
}

// Record appends an observation to a histogram.
func (r *PushRegistry) Record(ctx context.Context, name string, labels Labels, value float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.metrics[name]
	if !ok || m.histogram == nil {
		return NewUnknownMetricError(name, "histogram")
	}
	if err := m.def.checkLabels(labels); err != nil {
		return err
	}
	if err := m.def.checkFinite(value); err != nil {
		return err
	}
	m.histogram.Record(ctx, value, internalMetric.WithAttributes(toOtelAttributes(labels)...))
	return nil
}

// Summary builds the human-readable JSON view of the registry: the resource
// identity plus every registered instrument in registration order. Gauge
// values come from a single snapshot read, so all gauges in one summary
// describe the same system pass.
func (r *PushRegistry) Summary() *Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	sample := r.snapshot.Load()
	entries := make([]SummaryMetric, 0, len(r.order))
	for _, name := range r.order {
		m := r.metrics[name]
		entry := SummaryMetric{
			Name:        m.def.Name,
			Description: m.def.Help,
			Unit:        m.def.Unit,
			Type:        summaryType(m.def.Kind),
			Note:        m.def.Note,
		}
		if m.gauge != nil {
			points := m.observe(sample)
			if len(m.def.LabelNames) == 0 {
				if len(points) > 0 {
					value := points[0].Value
					entry.CurrentValue = &value
				}
			} else {
				labelName := m.def.LabelNames[0]
				values := make(map[string]float64, len(points))
				for _, point := range points {
					values[point.Labels[labelName]] = point.Value
				}
				entry.CurrentValues = values
			}
		}
		entries = append(entries, entry)
	}

	return &Summary{
		Resource: SummaryResource{
			Attributes: map[string]string{
				"service.name":           r.resource.ServiceName,
				"service.version":        r.resource.ServiceVersion,
				"service.instance.id":    r.resource.ServiceInstanceID,
				"deployment.environment": r.resource.DeploymentEnvironment,
			},
		},
		ScopeMetrics: []SummaryScope{{
			Scope:   ScopeIdentity{Name: r.resource.ServiceName, Version: r.resource.ServiceVersion},
			Metrics: entries,
		}},
		Note: summaryNote,
	}
}

// Collect drains the current state of every instrument into out, running the
// observable gauge callbacks along the way.
func (r *PushRegistry) Collect(ctx context.Context, out *metricdata.ResourceMetrics) error {
	return r.reader.Collect(ctx, out)
}

// Shutdown flushes and stops the underlying meter provider.
func (r *PushRegistry) Shutdown(ctx context.Context) error {
	return r.provider.Shutdown(ctx)
}

func (r *PushRegistry) track(m *pushMetric) {
	r.metrics[m.def.Name] = m
	r.order = append(r.order, m.def.Name)
}

func summaryType(kind Kind) string {
	switch kind {
	case KindCounter:
		return "Counter"
	case KindHistogram:
		return "Histogram"
	case KindObservableGauge:
		return "Observable Gauge"
	default:
		return string(kind)
	}
}

// toOtelAttributes converts labels to a sorted slice of attribute.KeyValue.
func toOtelAttributes(labels Labels) []attribute.KeyValue {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]attribute.KeyValue, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, attribute.String(name, labels[name]))
	}
	return attrs
}

// Summary is the JSON document served instead of a real OTLP export.
type Summary struct {
	Resource     SummaryResource `json:"resource"`
	ScopeMetrics []SummaryScope  `json:"scope_metrics"`
	Note         string          `json:"note"`
}

// SummaryResource carries the resource attributes as plain strings.
type SummaryResource struct {
	Attributes map[string]string `json:"attributes"`
}

// SummaryScope groups the instruments of one instrumentation scope.
type SummaryScope struct {
	Scope   ScopeIdentity   `json:"scope"`
	Metrics []SummaryMetric `json:"metrics"`
}

// ScopeIdentity names the instrumentation scope.
type ScopeIdentity struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// SummaryMetric describes one instrument. CurrentValues is set for labeled
// observable gauges, CurrentValue for unlabeled ones; counters and histograms
// carry neither because their values live inside the SDK.
type SummaryMetric struct {
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Unit          string             `json:"unit"`
	Type          string             `json:"type"`
	Note          string             `json:"note,omitempty"`
	CurrentValues map[string]float64 `json:"current_values,omitempty"`
	CurrentValue  *float64           `json:"current_value,omitempty"`
}
