package generator

import (
	"context"

	"github.com/metricsim/metricsim/metrics"
)

// PushGenerator drives the OpenTelemetry registry. Gauge values go through
// the shared snapshot instead of the registry, because the push side reads
// them back through observable gauge callbacks.
type PushGenerator struct {
	registry *metrics.PushRegistry
	snapshot *metrics.SystemSnapshot
	source   Source
}

// NewPushGenerator creates a generator writing to the given registry and
// snapshot.
func NewPushGenerator(registry *metrics.PushRegistry, snapshot *metrics.SystemSnapshot, source Source) *PushGenerator {
	return &PushGenerator{registry: registry, snapshot: snapshot, source: source}
}

// GenerateAll runs one full pass: HTTP traffic, database queries, a system
// pass and payload sizes, in that order.
func (g *PushGenerator) GenerateAll(ctx context.Context) (Report, error) {
	if err := g.GenerateHTTP(ctx, DefaultHTTPCount); err != nil {
		return Report{}, err
	}
	if err := g.GenerateDatabase(ctx, DefaultDatabaseCount); err != nil {
		return Report{}, err
	}
	bytesProcessed, err := g.GenerateSystem(ctx)
	if err != nil {
		return Report{}, err
	}
	if err := g.GeneratePayload(ctx, DefaultPayloadCount); err != nil {
		return Report{}, err
	}

	return Report{
		HTTPSamples:     DefaultHTTPCount,
		DatabaseSamples: DefaultDatabaseCount,
		PayloadSamples:  DefaultPayloadCount,
		BytesProcessed:  bytesProcessed,
	}, nil
}

// GenerateHTTP simulates count HTTP requests with the same outcome mix as the
// pull side. There is no request duration summary here, the pull side keeps
// that one alone.
func (g *PushGenerator) GenerateHTTP(ctx context.Context, count int) error {
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
			if err := g.registry.Add(ctx, metrics.NameHTTPErrors, errorLabels, 1); err != nil {
				return err
			}
		} else {
			status = "500"
			duration = g.source.UniformFloat(0.5, 5.0)
			errorLabels := metrics.Labels{"method": method, "endpoint": endpoint, "error_type": "internal_error"}
			if err := g.registry.Add(ctx, metrics.NameHTTPErrors, errorLabels, 1); err != nil {
				return err
			}
		}

		labels := metrics.Labels{"method": method, "endpoint": endpoint, "status": status}
		if err := g.registry.Add(ctx, metrics.NameHTTPRequests, labels, 1); err != nil {
			return err
		}
		if err := g.registry.Record(ctx, metrics.NameHTTPDuration, labels, duration); err != nil {
			return err
		}

		size := g.source.UniformInt(100, 50000)
		if err := g.registry.Record(ctx, metrics.NameResponseSize, metrics.Labels{"endpoint": endpoint}, float64(size)); err != nil {
			return err
		}
	}
	return nil
}

// GenerateDatabase simulates count database queries.
func (g *PushGenerator) GenerateDatabase(ctx context.Context, count int) error {
	for i := 0; i < count; i++ {
		queryType := g.source.Pick(queryTypes)
		table := g.source.Pick(queryTables)

		var duration float64
		if queryType == "SELECT" {
			duration = g.source.UniformFloat(0.001, 0.1)
		} else {
			duration = g.source.UniformFloat(0.005, 0.2)
		}
		if err := g.registry.Record(ctx, metrics.NameDBDuration, metrics.Labels{"query_type": queryType, "table": table}, duration); err != nil {
			return err
		}
	}
	return nil
}

// GenerateSystem draws a fresh system sample, publishes it through the
// snapshot and bumps the processed bytes counters. It returns how many bytes
// the pass added.
func (g *PushGenerator) GenerateSystem(ctx context.Context) (int64, error) {
	sample := metrics.SystemSample{
		Connections: map[string]int64{},
		MemoryBytes: map[string]int64{},
		QueueDepths: map[string]int64{},
	}
	for _, protocol := range protocols {
		sample.Connections[protocol] = int64(g.source.UniformInt(10, 100))
	}
	for _, region := range memoryRegions {
		sample.MemoryBytes[region] = int64(g.source.UniformInt(1000000, 50000000))
	}
	for _, queue := range queueNames {
		sample.QueueDepths[queue] = int64(g.source.UniformInt(0, 100))
	}
	sample.CPUPercent = g.source.UniformFloat(10, 90)
	g.snapshot.Store(sample)

	upload := int64(g.source.UniformInt(100000, 1000000))
	if err := g.registry.Add(ctx, metrics.NameBytesProcessed, metrics.Labels{"operation": "upload"}, upload); err != nil {
		return 0, err
	}
	download := int64(g.source.UniformInt(500000, 5000000))
	if err := g.registry.Add(ctx, metrics.NameBytesProcessed, metrics.Labels{"operation": "download"}, download); err != nil {
		return 0, err
	}
	return upload + download, nil
}

// GeneratePayload records count pairs of inbound and outbound payload sizes.
func (g *PushGenerator) GeneratePayload(ctx context.Context, count int) error {
	for i := 0; i < count; i++ {
		inbound := float64(g.source.UniformInt(100, 10000))
		if err := g.registry.Record(ctx, metrics.NamePayloadSize, metrics.Labels{"direction": "inbound"}, inbound); err != nil {
			return err
		}
		outbound := float64(g.source.UniformInt(500, 50000))
		if err := g.registry.Record(ctx, metrics.NamePayloadSize, metrics.Labels{"direction": "outbound"}, outbound); err != nil {
			return err
		}
	}
	return nil
}
