package metrics

import (
	"runtime"
	"time"
)

// RuntimeSnapshot is a point-in-time reading of the monitor's own footprint,
// shown in the dashboard so its overhead stays visible next to the
// processes it watches.
type RuntimeSnapshot struct {
	HeapAlloc  uint64
	HeapSys    uint64
	NumGC      uint32
	PauseTotal time.Duration
	Goroutines int
}

// ReadRuntime reads the current runtime statistics.
func ReadRuntime() RuntimeSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeSnapshot{
		HeapAlloc:  m.HeapAlloc,
		HeapSys:    m.HeapSys,
		NumGC:      m.NumGC,
		PauseTotal: time.Duration(m.PauseTotalNs),
		Goroutines: runtime.NumGoroutine(),
	}
}
