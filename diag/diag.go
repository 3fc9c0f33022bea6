// Package diag holds the small runtime-diagnostics helpers a long-running
// solver process wants around its main loop: memory-usage reporting and a
// NaN check the divergence test builds on, adapted from the teacher's
// utils.GetMemUsage/utils.IsNan (utils/system.go) for this module's
// element types instead of the teacher's DG Matrix/Vector.
package diag

import (
	"fmt"
	"math"
	"runtime"
)

// MemUsage reports current heap/system memory in MiB, the same
// runtime.MemStats snapshot utils.GetMemUsage took, used for an
// occasional log line rather than per-step overhead.
func MemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	bToMb := func(b uint64) uint64 { return b / 1024 / 1024 }
	return fmt.Sprintf("alloc=%vMiB totalAlloc=%vMiB sys=%vMiB numGC=%v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

// IsNan reports whether any value in a float64 slice is NaN, mirroring
// utils.IsNan's slice case.
func IsNan(vals []float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// IsNanPanic panics if any value in vals is NaN, the programmer-error
// escape hatch utils.IsNanPanic provided for conditions that should never
// occur once upstream validation has run.
func IsNanPanic(vals []float64) {
	if IsNan(vals) {
		panic("diag: NaN found")
	}
}
