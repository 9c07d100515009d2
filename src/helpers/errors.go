package helpers

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type ChartChallengeError struct {
	Message string
	Cause   error
}

func (e *ChartChallengeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ChartChallengeError) Unwrap() error {
	return e.Cause
}

// Distinct error types for errors.As dispatch.
//
// ConfigurationError: invalid generation inputs, rejected before any random
// draw. DataGenerationError: structural problems while building a dataset
// (empty series, NaN prices, missing resolution). PriceValidationError: the
// cross-resolution open/close mismatch caught by the final validator.
// DatabaseError: storage-layer failures.
type ConfigurationError struct{ ChartChallengeError }
type DataGenerationError struct{ ChartChallengeError }
type PriceValidationError struct{ ChartChallengeError }
type DatabaseError struct{ ChartChallengeError }

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewConfigurationError(format string, args ...interface{}) error {
	return &ConfigurationError{ChartChallengeError{Message: fmt.Sprintf(format, args...)}}
}

func NewDataGenerationError(format string, args ...interface{}) error {
	return &DataGenerationError{ChartChallengeError{Message: fmt.Sprintf(format, args...)}}
}

func NewPriceValidationError(format string, args ...interface{}) error {
	return &PriceValidationError{ChartChallengeError{Message: fmt.Sprintf(format, args...)}}
}

func NewDatabaseError(message string, cause error) error {
	return &DatabaseError{ChartChallengeError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsRetryableGeneration reports whether a failed generation attempt is worth
// repeating with a fresh random stream. Data-generation and price-validation
// failures are probabilistic rounding artifacts; configuration errors are
// deterministic and retrying them can never succeed.
func IsRetryableGeneration(err error) bool {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return false
	}

	var genErr *DataGenerationError
	var priceErr *PriceValidationError
	return errors.As(err, &genErr) || errors.As(err, &priceErr)
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryGeneration runs fn up to maxAttempts times, stopping early on success
// or on a non-retryable error. Generation is pure CPU work, so attempts are
// immediate, without backoff.
func RetryGeneration(maxAttempts int, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRetryableGeneration(err) {
			return err
		}
	}

	return lastErr
}
