package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredError_Error(t *testing.T) {
	// Test error without cause
	err := New(ErrorTypeValidation, "test_op", "test message")
	expected := "[validation] test_op: test message"
	assert.Equal(t, expected, err.Error())

	// Test error with cause
	cause := errors.New("underlying error")
	err = Wrap(cause, ErrorTypeStorage, "save_op", "failed to save")
	assert.Contains(t, err.Error(), "[storage] save_op: failed to save")
	assert.Contains(t, err.Error(), "underlying error")
	assert.Equal(t, cause, err.Unwrap())
}

func TestStructuredError_WithContext(t *testing.T) {
	err := New(ErrorTypeValidation, "test_op", "test message")
	err = err.WithContext("from", 3).WithContext("strategy", "masked")

	assert.Equal(t, 3, err.Context["from"])
	assert.Equal(t, "masked", err.Context["strategy"])
}

func TestErrorWrapping(t *testing.T) {
	originalErr := errors.New("original error")

	wrapped := WrapConfigurationError(originalErr, "load_config", "invalid setting")
	assert.Equal(t, ErrorTypeConfiguration, wrapped.Type)
	assert.Equal(t, "load_config", wrapped.Operation)
	assert.Equal(t, "invalid setting", wrapped.Message)
	assert.Equal(t, originalErr, wrapped.Unwrap())
	assert.ErrorIs(t, wrapped, originalErr)

	stored := WrapStorageError(originalErr, "fixtures.Load", "read failed")
	assert.Equal(t, ErrorTypeStorage, stored.Type)
	assert.ErrorIs(t, stored, &StructuredError{Type: ErrorTypeStorage})

	cancelled := WrapCancelled(context.Canceled, "search_all")
	assert.Equal(t, ErrorTypeCancelled, cancelled.Type)
	assert.ErrorIs(t, cancelled, context.Canceled)

	// Test that Wrap returns nil for nil error
	assert.Nil(t, Wrap(nil, ErrorTypeStorage, "op", "msg"))
}

func TestErrorsIsMatchesType(t *testing.T) {
	var err error = NewValidationError("op", "bad")
	assert.ErrorIs(t, err, &StructuredError{Type: ErrorTypeValidation})
	assert.NotErrorIs(t, err, &StructuredError{Type: ErrorTypeStorage})
}

func TestStackTraceCapture(t *testing.T) {
	err := New(ErrorTypeValidation, "test", "message")
	assert.Greater(t, len(err.Stack), 0)
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, ValidateRange("op", "array", 4, 0, 4))
	assert.NoError(t, ValidateRange("op", "array", 4, 2, 2))
	assert.NoError(t, ValidateRange("op", "array", 0, 0, 0))

	for _, r := range [][2]int{{-1, 2}, {0, 5}, {3, 2}} {
		err := ValidateRange("op", "array", 4, r[0], r[1])
		require.Error(t, err, "%v", r)
		var se *StructuredError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, ErrorTypeValidation, se.Type)
		assert.Equal(t, r[0], se.Context["from"])
	}
}

func TestValidateBatch(t *testing.T) {
	assert.NoError(t, ValidateBatch("op", 10, 0, 10, 5, 1, 5, 4))
	assert.Error(t, ValidateBatch("op", 10, 0, 11, 5, 1, 5, 4))
	assert.Error(t, ValidateBatch("op", 10, 0, 10, 5, 1, 6, 5))
	assert.Error(t, ValidateBatch("op", 10, 0, 10, 5, 1, 5, 3))
}
