package errors

import "fmt"

// ValidateRange checks 0 <= from <= to <= length.
func ValidateRange(operation, name string, length, from, to int) error {
	if from < 0 || to > length || from > to {
		return NewValidationError(operation, fmt.Sprintf("%s range [%d, %d) invalid for length %d", name, from, to, length)).
			WithContext("from", from).
			WithContext("to", to).
			WithContext("length", length)
	}
	return nil
}

// ValidateBatch checks both ranges of a batch search and that results can
// hold one entry per key.
func ValidateBatch(operation string, arrayLen, from, to, keysLen, keysFrom, keysTo, resultsLen int) error {
	if err := ValidateRange(operation, "array", arrayLen, from, to); err != nil {
		return err
	}
	if err := ValidateRange(operation, "keys", keysLen, keysFrom, keysTo); err != nil {
		return err
	}
	if n := keysTo - keysFrom; resultsLen < n {
		return NewValidationError(operation, fmt.Sprintf("results length %d < key count %d", resultsLen, n)).
			WithContext("results", resultsLen)
	}
	return nil
}
