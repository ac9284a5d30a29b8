//go:build !bsearchdebug

package bsearch

const debugChecks = false

func assertSearchRange[T Signed](a []T, from, to int) {}

func assertBatchRange[T Signed](a []T, from, to int, keys []T, keysFrom, keysTo int, results []int) {}
