package generator

import (
	"github.com/metricsim/metricsim/metrics"
)

// PullGenerator drives the Prometheus-style registry.
type PullGenerator struct {
	registry *metrics.PullRegistry
	source   Source
}

// NewPullGenerator creates a generator writing to the given registry.
func NewPullGenerator(registry *metrics.PullRegistry, source Source) *PullGenerator {
	return &PullGenerator{registry: registry, source: source}
}

// GenerateAll runs one full pass: HTTP traffic, database queries, a system
// pass and payload sizes, in that order.
func (g *PullGenerator) GenerateAll() (Report, error) {
	if err := g.GenerateHTTP(DefaultHTTPCount); err != nil {
		return Report{}, err
	}
	if err := g.GenerateDatabase(DefaultDatabaseCount); err != nil {
		return Report{}, err
	}
	bytesProcessed, err := g.GenerateSystem()
	if err != nil {
		return Report{}, err
	}
	if err := g.GeneratePayload(DefaultPayloadCount); err != nil {
		return Report{}, err
	}

	return Report{
		HTTPSamples:     DefaultHTTPCount,
		DatabaseSamples: DefaultDatabaseCount,
		PayloadSamples:  DefaultPayloadCount,
		BytesProcessed:  bytesProcessed,
	}, nil
}

// GenerateHTTP simulates count HTTP requests. Nine out of ten succeed, the
// rest split evenly between not found and internal errors, each outcome with
// its own latency range.
func (g *PullGenerator) GenerateHTTP(count int) error {
	for i := 0; i < count; i++ {
		method := g.source.Pick(httpMethods)
		endpoint := g.source.Pick(httpEndpoints)

		var status string
		var duration float64
		if g.source.Float64() < 0.9 {
			status = "200"
			duration = g.source.UniformFloat(0.05, 2.0)
		} else if g.source.Float64() < 0.5 {
			status = "404"
			duration = g.source.UniformFloat(0.01, 0.1)
			errorLabels := metrics.Labels{"method": method, "endpoint": endpoint, "error_type": "not_found"}
			if err := g.registry.Add(metrics.NameHTTPErrors, errorLabels, 1); err != nil {
				return err
			}
		} else {
			status = "500"
			duration = g.source.UniformFloat(0.5, 5.0)
			errorLabels := metrics.Labels{"method": method, "endpoint": endpoint, "error_type": "internal_error"}
			if err := g.registry.Add(metrics.NameHTTPErrors, errorLabels, 1); err != nil {
				return err
			}
		}

		labels := metrics.Labels{"method": method, "endpoint": endpoint, "status": status}
		if err := g.registry.Add(metrics.NameHTTPRequests, labels, 1); err != nil {
			return err
		}
		if err := g.registry.Observe(metrics.NameHTTPDuration, labels, duration); err != nil {
			return err
		}
		if err := g.registry.Observe(metrics.NameRequestSummary, metrics.Labels{"method": method, "endpoint": endpoint}, duration); err != nil {
			return err
		}

		size := g.source.UniformInt(100, 50000)
		if err := g.registry.Observe(metrics.NameResponseSize, metrics.Labels{"endpoint": endpoint}, float64(size)); err != nil {
			return err
		}
	}
	return nil
}

// GenerateDatabase simulates count database queries. Selects are faster than
// writes.
func (g *PullGenerator) GenerateDatabase(count int) error {
	for i := 0; i < count; i++ {
		queryType := g.source.Pick(queryTypes)
		table := g.source.Pick(queryTables)

		var duration float64
		if queryType == "SELECT" {
			duration = g.source.UniformFloat(0.001, 0.1)
		} else {
			duration = g.source.UniformFloat(0.005, 0.2)
		}
		if err := g.registry.Observe(metrics.NameDBDuration, metrics.Labels{"query_type": queryType, "table": table}, duration); err != nil {
			return err
		}
	}
	return nil
}

// GenerateSystem refreshes every system gauge once and bumps the processed
// bytes counters. It returns how many bytes the pass added.
func (g *PullGenerator) GenerateSystem() (int64, error) {
	for _, protocol := range protocols {
		connections := float64(g.source.UniformInt(10, 100))
		if err := g.registry.Set(metrics.NameActiveConnections, metrics.Labels{"protocol": protocol}, connections); err != nil {
			return 0, err
		}
	}
	for _, region := range memoryRegions {
		memory := float64(g.source.UniformInt(1000000, 50000000))
		if err := g.registry.Set(metrics.NameMemoryUsage, metrics.Labels{"region": region}, memory); err != nil {
			return 0, err
		}
	}
	for _, queue := range queueNames {
		depth := float64(g.source.UniformInt(0, 100))
		if err := g.registry.Set(metrics.NameQueueSize, metrics.Labels{"queue_name": queue}, depth); err != nil {
			return 0, err
		}
	}
	if err := g.registry.Set(metrics.NameCPUUsage, nil, g.source.UniformFloat(10, 90)); err != nil {
		return 0, err
	}

	upload := int64(g.source.UniformInt(100000, 1000000))
	if err := g.registry.Add(metrics.NameBytesProcessed, metrics.Labels{"operation": "upload"}, float64(upload)); err != nil {
		return 0, err
	}
	download := int64(g.source.UniformInt(500000, 5000000))
	if err := g.registry.Add(metrics.NameBytesProcessed, metrics.Labels{"operation": "download"}, float64(download)); err != nil {
		return 0, err
	}
	return upload + download, nil
}

// GeneratePayload observes count pairs of inbound and outbound payload sizes.
func (g *PullGenerator) GeneratePayload(count int) error {
	for i := 0; i < count; i++ {
		inbound := float64(g.source.UniformInt(100, 10000))
		if err := g.registry.Observe(metrics.NamePayloadSummary, metrics.Labels{"direction": "inbound"}, inbound); err != nil {
			return err
		}
		outbound := float64(g.source.UniformInt(500, 50000))
		if err := g.registry.Observe(metrics.NamePayloadSummary, metrics.Labels{"direction": "outbound"}, outbound); err != nil {
			return err
		}
	}
	return nil
}
