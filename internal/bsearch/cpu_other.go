//go:build !amd64 && !arm64

package bsearch

func osSupports(string) bool {
	return false
}
