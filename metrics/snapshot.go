package metrics

import "sync"

// SystemSample is the result of one system-metrics generation pass. The push
// registry's observable gauges report whatever the latest sample holds.
type SystemSample struct {
	Connections map[string]int64
	MemoryBytes map[string]int64
	QueueDepths map[string]int64
	CPUPercent  float64
}

// SnapshotProvider supplies the latest system sample to observable gauges and
// to the push-side summary.
type SnapshotProvider interface {
	Load() SystemSample
}

// GaugePoint is one observed value with its label set.
type GaugePoint struct {
	Labels Labels
	Value  float64
}

// ObserveFunc extracts the points an observable gauge reports from a sample.
type ObserveFunc func(SystemSample) []GaugePoint

// SystemSnapshot is the default SnapshotProvider: a mutex-guarded sample the
// system generator overwrites wholesale.
type SystemSnapshot struct {
	mu     sync.RWMutex
	sample SystemSample
}

// NewSystemSnapshot creates an empty snapshot. Until the first Store every
// gauge reads as absent and the CPU percentage as zero.
func NewSystemSnapshot() *SystemSnapshot {
	return &SystemSnapshot{}
}

// Store replaces the whole sample.
func (s *SystemSnapshot) Store(sample SystemSample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sample = copySample(sample)
}

// Load returns a copy of the latest sample, safe to read without further
// locking.
func (s *SystemSnapshot) Load() SystemSample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copySample(s.sample)
}

func copySample(sample SystemSample) SystemSample {
	out := SystemSample{
		Connections: make(map[string]int64, len(sample.Connections)),
		MemoryBytes: make(map[string]int64, len(sample.MemoryBytes)),
		QueueDepths: make(map[string]int64, len(sample.QueueDepths)),
		CPUPercent:  sample.CPUPercent,
	}
	for key, value := range sample.Connections {
		out.Connections[key] = value
	}
	for key, value := range sample.MemoryBytes {
		out.MemoryBytes[key] = value
	}
	for key, value := range sample.QueueDepths {
		out.QueueDepths[key] = value
	}
	return out
}
