//go:build amd64

package bsearch

import "golang.org/x/sys/cpu"

// osSupports cross-checks cpuid against the OS-enabled register state
// reported by x/sys/cpu.
func osSupports(impl string) bool {
	switch impl {
	case "avx512":
		return cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VL
	case "avx2":
		return cpu.X86.HasAVX2
	default:
		return false
	}
}
