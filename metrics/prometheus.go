package metrics

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// TextContentType is the content type of the exposition produced by Serialize.
const TextContentType = string(expfmt.FmtText)

// PullRegistry holds Prometheus-style instruments behind a single facade.
// Every mutation and Serialize take the registry lock, so a scrape never
// observes a half-applied generation pass.
type PullRegistry struct {
	mu       sync.Mutex
	registry *prometheus.Registry
	metrics  map[string]*pullMetric
}

type pullMetric struct {
	def        Definition
	counter    *prometheus.CounterVec
	gauge      *prometheus.GaugeVec
	histogram  *prometheus.HistogramVec
	summary    *prometheus.SummaryVec
	stateVec   *prometheus.GaugeVec
	infoVec    *prometheus.GaugeVec
	fieldNames []string
	state      string
}

// NewPullRegistry creates an empty pull registry.
func NewPullRegistry() *PullRegistry {
	return &PullRegistry{
		registry: prometheus.NewRegistry(),
		metrics:  map[string]*pullMetric{},
	}
}

// RegisterCounter declares a monotonically increasing counter.
func (r *PullRegistry) RegisterCounter(def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: def.Name, Help: def.Help}, def.LabelNames)
	def.Kind = KindCounter
	return r.add(def, &pullMetric{def: def, counter: vec}, vec)
}

// RegisterGauge declares a last-write-wins gauge.
func (r *PullRegistry) RegisterGauge(def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: def.Name, Help: def.Help}, def.LabelNames)
	def.Kind = KindGauge
	return r.add(def, &pullMetric{def: def, gauge: vec}, vec)
}

// RegisterHistogram declares a histogram with explicit bucket boundaries.
func (r *PullRegistry) RegisterHistogram(def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(def.Buckets) == 0 {
		return NewInvalidValueError(def.Name, "histogram requires bucket boundaries")
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    def.Name,
		Help:    def.Help,
		Buckets: def.Buckets,
	}, def.LabelNames)
	def.Kind = KindHistogram
	return r.add(def, &pullMetric{def: def, histogram: vec}, vec)
}

// RegisterSummary declares a summary. Definitions without explicit objectives
// get the classic 0.5/0.9/0.99 quantile targets.
func (r *PullRegistry) RegisterSummary(def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	objectives := def.Objectives
	if objectives == nil {
		objectives = defaultObjectives
	}
	vec := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name:       def.Name,
		Help:       def.Help,
		Objectives: objectives,
	}, def.LabelNames)
	def.Kind = KindSummary
	return r.add(def, &pullMetric{def: def, summary: vec}, vec)
}

// RegisterInfo declares an info metric and sets its initial field values from
// the definition. It serializes as a single series with the fields as labels
// and the value 1.
func (r *PullRegistry) RegisterInfo(def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(def.LabelNames) != 0 {
		return NewInvalidValueError(def.Name, "info metrics declare fields, not label names")
	}
	fieldNames := make([]string, 0, len(def.Fields))
	for name := range def.Fields {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)

	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: def.Name, Help: def.Help}, fieldNames)
	def.Kind = KindInfo
	metric := &pullMetric{def: def, infoVec: vec, fieldNames: fieldNames}
	if err := r.add(def, metric, vec); err != nil {
		return err
	}
	setInfoSeries(metric, def.Fields)
	return nil
}

// RegisterEnum declares an enum metric. The first declared state is active.
// It serializes as one series per state, with the metric name as the label
// key and exactly one series at 1.
func (r *PullRegistry) RegisterEnum(def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(def.States) == 0 {
		return NewInvalidValueError(def.Name, "enum requires at least one state")
	}
	if len(def.LabelNames) != 0 {
		return NewInvalidValueError(def.Name, "enum metrics must not declare label names")
	}
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: def.Name, Help: def.Help}, []string{def.Name})
	def.Kind = KindEnum
	metric := &pullMetric{def: def, stateVec: vec}
	if err := r.add(def, metric, vec); err != nil {
		return err
	}
	setEnumSeries(metric, def.States[0])
	return nil
}

// Add increments a counter series by the given non-negative amount.
func (r *PullRegistry) Add(name string, labels Labels, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	metric, ok := r.metrics[name]
	if !ok || metric.counter == nil {
		return NewUnknownMetricError(name, "counter")
	}
	if err := metric.def.checkLabels(labels); err != nil {
		return err
	}
	if err := metric.def.checkFinite(amount); err != nil {
		return err
	}
	if amount < 0 {
		return NewInvalidValueError(name, "counter amount must not be negative")
	}
	series, err := metric.counter.GetMetricWith(prometheus.Labels(labels))
	if err != nil {
		return NewLabelMismatchError(name, metric.def.LabelNames, labels)
	}
	series.Add(amount)
	return nil
}

// Set replaces the current value of a gauge series.
func (r *PullRegistry) Set(name string, labels Labels, value float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	metric, ok := r.metrics[name]
	if !ok || metric.gauge == nil {
		return NewUnknownMetricError(name, "gauge")
	}
	if err := metric.def.checkLabels(labels); err != nil {
		return err
	}
	if err := metric.def.checkFinite(value); err != nil {
		return err
	}
	series, err := metric.gauge.GetMetricWith(prometheus.Labels(labels))
	if err != nil {
		return NewLabelMismatchError(name, metric.def.LabelNames, labels)
	}
	series.Set(value)
	return nil
}

// Observe appends an observation to a histogram or summary series.
func (r *PullRegistry) Observe(name string, labels Labels, value float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	metric, ok := r.metrics[name]
	if !ok || (metric.histogram == nil && metric.summary == nil) {
		return NewUnknownMetricError(name, "histogram or summary")
	}
	if err := metric.def.checkLabels(labels); err != nil {
		return err
	}
	if err := metric.def.checkFinite(value); err != nil {
		return err
	}

	var observer prometheus.Observer
	var err error
	if metric.histogram != nil {
		observer, err = metric.histogram.GetMetricWith(prometheus.Labels(labels))
	} else {
		observer, err = metric.summary.GetMetricWith(prometheus.Labels(labels))
	}
	if err != nil {
		return NewLabelMismatchError(name, metric.def.LabelNames, labels)
	}
	observer.Observe(value)
	return nil
}

// SetState moves an enum metric to the given state. The transition is atomic
// under the registry lock: a concurrent Serialize sees either the old state
// or the new one active, never both.
func (r *PullRegistry) SetState(name, state string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	metric, ok := r.metrics[name]
	if !ok || metric.stateVec == nil {
		return NewUnknownMetricError(name, "enum")
	}
	if !metric.def.hasState(state) {
		return NewInvalidValueError(name, fmt.Sprintf("unknown state %q", state))
	}
	if metric.state != state {
		setEnumSeries(metric, state)
	}
	return nil
}

// SetInfo replaces the field values of an info metric. The supplied fields
// must have exactly the declared field names.
func (r *PullRegistry) SetInfo(name string, fields map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	metric, ok := r.metrics[name]
	if !ok || metric.infoVec == nil {
		return NewUnknownMetricError(name, "info")
	}
	if len(fields) != len(metric.fieldNames) {
		return NewLabelMismatchError(name, metric.fieldNames, Labels(fields))
	}
	for _, fieldName := range metric.fieldNames {
		if _, ok := fields[fieldName]; !ok {
			return NewLabelMismatchError(name, metric.fieldNames, Labels(fields))
		}
	}
	metric.infoVec.Reset()
	setInfoSeries(metric, fields)
	return nil
}

// Serialize renders every registered family in the Prometheus text exposition
// format. With no writes in between, two calls return identical bytes.
func (r *PullRegistry) Serialize() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("can't gather metric families: %w", err)
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return nil, fmt.Errorf("can't encode metric family %s: %w", family.GetName(), err)
		}
	}
	return buf.Bytes(), nil
}

func (r *PullRegistry) add(def Definition, metric *pullMetric, collector prometheus.Collector) error {
	if _, ok := r.metrics[def.Name]; ok {
		return NewDuplicateNameError(def.Name)
	}
	if err := r.registry.Register(collector); err != nil {
		alreadyRegistered := prometheus.AlreadyRegisteredError{}
		if errors.As(err, &alreadyRegistered) {
			return NewDuplicateNameError(def.Name)
		}
		return fmt.Errorf("can't register metric %s: %w", def.Name, err)
	}
	metric.def = def
	r.metrics[def.Name] = metric
	return nil
}

func setEnumSeries(metric *pullMetric, state string) {
	for _, known := range metric.def.States {
		value := 0.0
		if known == state {
			value = 1.0
		}
		metric.stateVec.WithLabelValues(known).Set(value)
	}
	metric.state = state
}

func setInfoSeries(metric *pullMetric, fields map[string]string) {
	values := make([]string, 0, len(metric.fieldNames))
	for _, fieldName := range metric.fieldNames {
		values = append(values, fields[fieldName])
	}
	metric.infoVec.WithLabelValues(values...).Set(1)
}
