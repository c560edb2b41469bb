package metrics

import "math"

// Kind is the instrument family of a metric definition.
type Kind string

const (
	KindCounter         Kind = "counter"
	KindGauge           Kind = "gauge"
	KindHistogram       Kind = "histogram"
	KindSummary         Kind = "summary"
	KindInfo            Kind = "info"
	KindEnum            Kind = "enum"
	KindObservableGauge Kind = "observable_gauge"
)

// Labels is one concrete assignment of values to a definition's label names.
type Labels map[string]string

// Definition declares a single metric: its identity, documentation and shape.
// Only the fields matching the Kind are consulted: Buckets for histograms,
// Objectives for summaries, States for enums, Fields for info metrics.
type Definition struct {
	Name       string
	Kind       Kind
	Help       string
	Unit       string
	LabelNames []string
	Buckets    []float64
	Objectives map[float64]float64
	States     []string
	Fields     map[string]string
	// Note is extra explanatory text carried into the push-side summary.
	Note string
}

// checkLabels verifies the supplied labels cover the declared label names
// exactly: same count, no unknown names.
func (def *Definition) checkLabels(labels Labels) error {
	if len(labels) != len(def.LabelNames) {
		return NewLabelMismatchError(def.Name, def.LabelNames, labels)
	}
	for _, name := range def.LabelNames {
		if _, ok := labels[name]; !ok {
			return NewLabelMismatchError(def.Name, def.LabelNames, labels)
		}
	}
	return nil
}

// checkFinite rejects NaN and infinities before they reach an instrument.
func (def *Definition) checkFinite(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewInvalidValueError(def.Name, "value must be a finite number")
	}
	return nil
}

func (def *Definition) hasState(state string) bool {
	for _, known := range def.States {
		if known == state {
			return true
		}
	}
	return false
}
