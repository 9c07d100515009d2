package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypesDispatch(t *testing.T) {
	err := NewConfigurationError("days_needed must be positive, got %d", -1)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "days_needed must be positive, got -1", cfgErr.Error())

	// A ConfigurationError is not any of the other kinds.
	var genErr *DataGenerationError
	assert.False(t, errors.As(err, &genErr))
}

// -----------------------------------------------------------------------------

func TestDatabaseErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseError("failed to save outcome", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to save outcome")
	assert.Contains(t, err.Error(), "connection refused")
}

// -----------------------------------------------------------------------------

func TestIsRetryableGeneration(t *testing.T) {
	assert.False(t, IsRetryableGeneration(NewConfigurationError("bad input")))
	assert.True(t, IsRetryableGeneration(NewDataGenerationError("empty series")))
	assert.True(t, IsRetryableGeneration(NewPriceValidationError("close mismatch")))
	assert.False(t, IsRetryableGeneration(errors.New("plain error")))
	assert.False(t, IsRetryableGeneration(NewDatabaseError("db", nil)))
}

// -----------------------------------------------------------------------------

func TestRetryGenerationStopsOnSuccess(t *testing.T) {
	attempts := 0
	err := RetryGeneration(5, func() error {
		attempts++
		if attempts < 3 {
			return NewPriceValidationError("unlucky rounding")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

// -----------------------------------------------------------------------------

func TestRetryGenerationStopsOnNonRetryable(t *testing.T) {
	attempts := 0
	err := RetryGeneration(5, func() error {
		attempts++
		return NewConfigurationError("deterministic failure")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

// -----------------------------------------------------------------------------

func TestRetryGenerationExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := RetryGeneration(4, func() error {
		attempts++
		return NewDataGenerationError("attempt %d", attempts)
	})

	require.Error(t, err)
	assert.Equal(t, 4, attempts)
	assert.Contains(t, err.Error(), "attempt 4")
}
