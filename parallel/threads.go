package parallel

import "runtime"
import "sync/atomic"

import "github.com/klauspost/cpuid/v2"

var threads atomic.Int64

func init() {
	n := cpuid.CPU.LogicalCores
	if n <= 0 {
		n = runtime.NumCPU()
	}
	threads.Store(int64(n))
}

// Threads is the goroutine limit used by Each
func Threads() int {
	return int(threads.Load())
}

// SetThreads overrides the goroutine limit. Values below 1 restore the detected core count.
func SetThreads(n int) {
	if n < 1 {
		n = cpuid.CPU.LogicalCores
		if n <= 0 {
			n = runtime.NumCPU()
		}
	}
	threads.Store(int64(n))
}

// Features lists the vector extensions of the CPU relevant to the float kernels
func Features() []string {
	var o []string
	for _, f := range []cpuid.FeatureID{cpuid.SSE2, cpuid.AVX, cpuid.AVX2, cpuid.FMA3, cpuid.AVX512F} {
		if cpuid.CPU.Supports(f) {
			o = append(o, f.String())
		}
	}
	return o
}

// Brand is the CPU brand name
func Brand() string {
	return cpuid.CPU.BrandName
}
