package helpers

import "runtime"

// -----------------------------------------------------------------------------

// MemoryUsageMB returns the current heap usage of the process in megabytes.
// Feeds the /api/metrics endpoint.
func MemoryUsageMB() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.HeapAlloc) / (1024 * 1024)
}
