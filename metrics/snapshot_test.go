package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSystemSnapshotCopies(t *testing.T) {
	snapshot := NewSystemSnapshot()

	sample := SystemSample{
		Connections: map[string]int64{"http": 1},
		MemoryBytes: map[string]int64{"heap": 2},
		QueueDepths: map[string]int64{"normal": 3},
		CPUPercent:  50,
	}
	snapshot.Store(sample)

	// Neither the stored sample nor a loaded one may share maps with callers.
	sample.Connections["http"] = 100
	require.Equal(t, int64(1), snapshot.Load().Connections["http"])

	loaded := snapshot.Load()
	loaded.MemoryBytes["heap"] = 200
	require.Equal(t, int64(2), snapshot.Load().MemoryBytes["heap"])
}

func TestSystemSnapshotEmpty(t *testing.T) {
	snapshot := NewSystemSnapshot()

	loaded := snapshot.Load()
	require.Empty(t, loaded.Connections)
	require.Empty(t, loaded.MemoryBytes)
	require.Empty(t, loaded.QueueDepths)
	require.Zero(t, loaded.CPUPercent)
}

func TestSystemSnapshotConcurrentAccess(t *testing.T) {
	snapshot := NewSystemSnapshot()
	wg := &sync.WaitGroup{}
	workersCount := 2
	wg.Add(workersCount * 2)

	for range workersCount {
		go func() {
			for i := range 1_000 {
				snapshot.Store(SystemSample{CPUPercent: float64(i)})
			}

			wg.Done()
		}()
		go func() {
			for range 1_000 {
				snapshot.Load()
			}

			wg.Done()
		}()
	}

	wg.Wait()

	require.Less(t, snapshot.Load().CPUPercent, 1_000.0)
}
