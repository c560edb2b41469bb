package metrics

import (
	"bytes"
	"math"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/require"
)

func TestPullRegistryCatalog(t *testing.T) {
	registry := NewPullRegistry()
	require.NoError(t, RegisterPullCatalog(registry))

	var duplicate DuplicateNameError
	require.ErrorAs(t, RegisterPullCatalog(registry), &duplicate)
	require.Equal(t, NameHTTPRequests, duplicate.Name)

	// Vector instruments expose no series before the first write, so a fresh
	// catalog serializes only the info and enum families.
	families := parseFamilies(t, registry)
	require.Len(t, families, 2)

	info := families[NameAppInfo]
	require.NotNil(t, info)
	require.Equal(t, dto.MetricType_GAUGE, info.GetType())
	require.Equal(t, "Application information", info.GetHelp())
	series := requireSeries(t, info, appInfoFields)
	require.Equal(t, 1.0, series.GetGauge().GetValue())

	state := families[NameAppState]
	require.NotNil(t, state)
	require.Len(t, state.GetMetric(), len(appStateValues))
	requireActiveState(t, state, StateStarting)
}

func TestPullRegistryCounter(t *testing.T) {
	registry := NewPullRegistry()
	require.NoError(t, RegisterPullCatalog(registry))

	labels := Labels{"method": "GET", "endpoint": "/users", "status": "200"}
	require.NoError(t, registry.Add(NameHTTPRequests, labels, 1))
	require.NoError(t, registry.Add(NameHTTPRequests, labels, 2))

	families := parseFamilies(t, registry)
	family := families[NameHTTPRequests]
	require.Equal(t, dto.MetricType_COUNTER, family.GetType())
	series := requireSeries(t, family, labels)
	require.Equal(t, 3.0, series.GetCounter().GetValue())

	var unknown UnknownMetricError
	require.ErrorAs(t, registry.Add("no_such_metric", nil, 1), &unknown)
	require.ErrorAs(t, registry.Add(NameCPUUsage, nil, 1), &unknown)

	var invalid InvalidValueError
	require.ErrorAs(t, registry.Add(NameHTTPRequests, labels, -1), &invalid)
	require.ErrorAs(t, registry.Add(NameHTTPRequests, labels, math.NaN()), &invalid)

	var mismatch LabelMismatchError
	require.ErrorAs(t, registry.Add(NameHTTPRequests, Labels{"method": "GET"}, 1), &mismatch)
	require.Equal(t, []string{"method", "endpoint", "status"}, mismatch.Expected)
}

func TestPullRegistryGauge(t *testing.T) {
	registry := NewPullRegistry()
	require.NoError(t, RegisterPullCatalog(registry))

	require.NoError(t, registry.Set(NameCPUUsage, nil, 42.5))
	require.NoError(t, registry.Set(NameQueueSize, Labels{"queue_name": "normal"}, 7))
	require.NoError(t, registry.Set(NameQueueSize, Labels{"queue_name": "normal"}, 3))

	families := parseFamilies(t, registry)
	cpu := requireSeries(t, families[NameCPUUsage], nil)
	require.Equal(t, 42.5, cpu.GetGauge().GetValue())

	queue := requireSeries(t, families[NameQueueSize], Labels{"queue_name": "normal"})
	require.Equal(t, 3.0, queue.GetGauge().GetValue())

	var unknown UnknownMetricError
	require.ErrorAs(t, registry.Set(NameHTTPRequests, nil, 1), &unknown)
}

func TestPullRegistryHistogram(t *testing.T) {
	registry := NewPullRegistry()
	require.NoError(t, RegisterPullCatalog(registry))

	labels := Labels{"method": "GET", "endpoint": "/users", "status": "200"}
	require.NoError(t, registry.Observe(NameHTTPDuration, labels, 0.3))
	require.NoError(t, registry.Observe(NameHTTPDuration, labels, 1.2))

	families := parseFamilies(t, registry)
	family := families[NameHTTPDuration]
	require.Equal(t, dto.MetricType_HISTOGRAM, family.GetType())
	series := requireSeries(t, family, labels)
	require.Equal(t, uint64(2), series.GetHistogram().GetSampleCount())
	require.InDelta(t, 1.5, series.GetHistogram().GetSampleSum(), 1e-9)
	// Explicit bounds plus the +Inf bucket.
	require.Len(t, series.GetHistogram().GetBucket(), len(httpDurationBuckets)+1)

	var invalid InvalidValueError
	require.ErrorAs(t, registry.RegisterHistogram(Definition{Name: "no_buckets"}), &invalid)
}

func TestPullRegistrySummary(t *testing.T) {
	registry := NewPullRegistry()
	require.NoError(t, RegisterPullCatalog(registry))

	labels := Labels{"method": "GET", "endpoint": "/users"}
	for i := range 10 {
		require.NoError(t, registry.Observe(NameRequestSummary, labels, float64(i)))
	}

	families := parseFamilies(t, registry)
	family := families[NameRequestSummary]
	require.Equal(t, dto.MetricType_SUMMARY, family.GetType())
	series := requireSeries(t, family, labels)
	require.Equal(t, uint64(10), series.GetSummary().GetSampleCount())
	require.Equal(t, 45.0, series.GetSummary().GetSampleSum())

	quantiles := make([]float64, 0, len(series.GetSummary().GetQuantile()))
	for _, quantile := range series.GetSummary().GetQuantile() {
		quantiles = append(quantiles, quantile.GetQuantile())
	}
	require.ElementsMatch(t, []float64{0.5, 0.9, 0.99}, quantiles)
}

func TestPullRegistryEnum(t *testing.T) {
	registry := NewPullRegistry()
	require.NoError(t, RegisterPullCatalog(registry))

	require.NoError(t, registry.SetState(NameAppState, StateRunning))
	requireActiveState(t, parseFamilies(t, registry)[NameAppState], StateRunning)

	require.NoError(t, registry.SetState(NameAppState, StateShuttingDown))
	requireActiveState(t, parseFamilies(t, registry)[NameAppState], StateShuttingDown)

	var invalid InvalidValueError
	require.ErrorAs(t, registry.SetState(NameAppState, "rebooting"), &invalid)

	var unknown UnknownMetricError
	require.ErrorAs(t, registry.SetState(NameAppInfo, StateRunning), &unknown)
}

func TestPullRegistryInfo(t *testing.T) {
	registry := NewPullRegistry()
	require.NoError(t, RegisterPullCatalog(registry))

	fields := map[string]string{
		"version":     "2.0.0",
		"environment": "staging",
		"build_date":  "2025-01-15",
		"git_commit":  "fedcba987",
	}
	require.NoError(t, registry.SetInfo(NameAppInfo, fields))

	families := parseFamilies(t, registry)
	family := families[NameAppInfo]
	require.Len(t, family.GetMetric(), 1)
	series := requireSeries(t, family, fields)
	require.Equal(t, 1.0, series.GetGauge().GetValue())

	var mismatch LabelMismatchError
	require.ErrorAs(t, registry.SetInfo(NameAppInfo, map[string]string{"version": "2.0.0"}), &mismatch)
	require.ErrorAs(t, registry.SetInfo(NameAppInfo, map[string]string{
		"version":     "2.0.0",
		"environment": "staging",
		"build_date":  "2025-01-15",
		"git_hash":    "fedcba987",
	}), &mismatch)
}

func TestPullRegistryDuplicateName(t *testing.T) {
	registry := NewPullRegistry()
	require.NoError(t, registry.RegisterCounter(Definition{Name: "jobs_total"}))

	var duplicate DuplicateNameError
	require.ErrorAs(t, registry.RegisterCounter(Definition{Name: "jobs_total"}), &duplicate)
	require.ErrorAs(t, registry.RegisterGauge(Definition{Name: "jobs_total"}), &duplicate)
	require.Equal(t, "jobs_total", duplicate.Name)
}

func TestPullRegistrySerializeStable(t *testing.T) {
	registry := NewPullRegistry()
	require.NoError(t, RegisterPullCatalog(registry))
	require.NoError(t, registry.SetState(NameAppState, StateRunning))

	labels := Labels{"method": "GET", "endpoint": "/users", "status": "200"}
	require.NoError(t, registry.Add(NameHTTPRequests, labels, 5))
	require.NoError(t, registry.Observe(NameHTTPDuration, labels, 0.42))
	require.NoError(t, registry.Observe(NamePayloadSummary, Labels{"direction": "inbound"}, 2048))
	require.NoError(t, registry.Set(NameCPUUsage, nil, 33.3))

	first, err := registry.Serialize()
	require.NoError(t, err)
	second, err := registry.Serialize()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.True(t, bytes.Contains(first, []byte(`app_state{app_state="running"} 1`)))
}

func parseFamilies(t *testing.T, registry *PullRegistry) map[string]*dto.MetricFamily {
	t.Helper()

	payload, err := registry.Serialize()
	require.NoError(t, err)

	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(payload))
	require.NoError(t, err)
	return families
}

func requireSeries(t *testing.T, family *dto.MetricFamily, labels map[string]string) *dto.Metric {
	t.Helper()
	require.NotNil(t, family)

	for _, series := range family.GetMetric() {
		if matchesLabels(series, labels) {
			return series
		}
	}
	t.Fatalf("no series with labels %v in family %s", labels, family.GetName())
	return nil
}

func matchesLabels(series *dto.Metric, labels map[string]string) bool {
	if len(series.GetLabel()) != len(labels) {
		return false
	}
	for _, pair := range series.GetLabel() {
		if labels[pair.GetName()] != pair.GetValue() {
			return false
		}
	}
	return true
}

func requireActiveState(t *testing.T, family *dto.MetricFamily, active string) {
	t.Helper()
	require.NotNil(t, family)

	for _, series := range family.GetMetric() {
		require.Len(t, series.GetLabel(), 1)
		expected := 0.0
		if series.GetLabel()[0].GetValue() == active {
			expected = 1.0
		}
		require.Equal(t, expected, series.GetGauge().GetValue())
	}
}
