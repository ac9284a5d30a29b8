//go:build arm64

package bsearch

import "golang.org/x/sys/cpu"

func osSupports(impl string) bool {
	return impl == "neon" && cpu.ARM64.HasASIMD
}
