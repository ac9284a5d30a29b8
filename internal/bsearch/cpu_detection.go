package bsearch

import (
	"sync/atomic"

	"github.com/klauspost/cpuid/v2"
)

// CPUFeatures contains the detected vector capabilities.
type CPUFeatures struct {
	Vendor    string
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool
	HasSVE    bool
}

var (
	features       CPUFeatures
	implementation string
	vectorBits     atomic.Int64
)

func init() {
	detectCPU()
	vectorBits.Store(int64(implementationBits(implementation)))
	initializeDispatch()
}

// detectCPU detects CPU capabilities and selects the widest usable vector
// implementation.
func detectCPU() {
	// masked integer compares need F+BW+VL
	hasAVX512 := cpuid.CPU.Supports(cpuid.AVX512F) &&
		cpuid.CPU.Supports(cpuid.AVX512BW) &&
		cpuid.CPU.Supports(cpuid.AVX512VL)

	features = CPUFeatures{
		Vendor:    cpuid.CPU.VendorString,
		HasAVX2:   cpuid.CPU.Supports(cpuid.AVX2),
		HasAVX512: hasAVX512,
		HasNEON:   cpuid.CPU.Supports(cpuid.ASIMD),
		HasSVE:    cpuid.CPU.Supports(cpuid.SVE),
	}

	switch {
	case features.HasAVX512 && osSupports("avx512"):
		implementation = "avx512"
	case features.HasAVX2 && osSupports("avx2"):
		implementation = "avx2"
	case features.HasSVE:
		// 128 bits is the architectural minimum of an SVE vector
		implementation = "sve"
	case features.HasNEON && osSupports("neon"):
		implementation = "neon"
	default:
		implementation = "generic"
	}
}

func implementationBits(impl string) int {
	switch impl {
	case "avx512":
		return 512
	case "avx2":
		return 256
	case "sve", "neon":
		return 128
	default:
		return 0
	}
}

// GetCPUFeatures returns the detected CPU capabilities.
func GetCPUFeatures() CPUFeatures {
	return features
}

// GetImplementation returns the selected implementation name.
func GetImplementation() string {
	return implementation
}

// HasPredicates reports whether the selected implementation executes
// per-lane masks natively.
func HasPredicates() bool {
	return implementation == "avx512" || implementation == "sve"
}

// VectorBits returns the vector width used to size lanes; 0 means scalar.
func VectorBits() int {
	return int(vectorBits.Load())
}

// SetVectorBits overrides the detected width and returns the previous one.
// Values that are not a power of two between 64 and 512 select scalar mode.
func SetVectorBits(n int) int {
	switch n {
	case 64, 128, 256, 512:
	default:
		n = 0
	}
	return int(vectorBits.Swap(int64(n)))
}
