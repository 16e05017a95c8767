package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input domain errors, validated before a sample is drawn
	ErrDomain           = errors.New("domain error")
	ErrNegativeVariance = fmt.Errorf("%w: variance must not be negative", ErrDomain)
	ErrSampleTooSmall   = fmt.Errorf("%w: sample size must be at least 2", ErrDomain)
	ErrSampleTooLarge   = fmt.Errorf("%w: sample size exceeds the configured maximum", ErrDomain)
	ErrZeroExpected     = fmt.Errorf("%w: expected characteristic is zero", ErrDomain)
	ErrZeroProbability  = fmt.Errorf("%w: expected probability is zero", ErrDomain)
	ErrUntabulatedDF    = fmt.Errorf("%w: degrees of freedom not in critical value table", ErrDomain)
	ErrEmptySample      = fmt.Errorf("%w: sample is empty", ErrDomain)

	// Numerical degeneracy
	ErrDegenerate        = errors.New("numerical degeneracy")
	ErrDegenerateUniform = fmt.Errorf("%w: uniform source keeps returning zero", ErrDegenerate)
	ErrNonFinite         = fmt.Errorf("%w: result is not finite", ErrDegenerate)

	// Malformed input that is not a statistical domain violation
	ErrInvalidInput = errors.New("invalid input")

	// Internal consistency
	ErrUnclassified = errors.New("sample value outside every interval")
)

// NewValidationError reports an invalid named input
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: validation failed for %s: %s", ErrInvalidInput, field, reason)
}

// NewDomainError attaches the offending value to a sentinel
func NewDomainError(sentinel error, field string, value interface{}) error {
	return fmt.Errorf("%w (%s=%v)", sentinel, field, value)
}

// IsDomainError reports whether err is an input domain error
func IsDomainError(err error) bool {
	return errors.Is(err, ErrDomain)
}

// IsDegenerate reports whether err stems from a guarded numerical degeneracy
func IsDegenerate(err error) bool {
	return errors.Is(err, ErrDegenerate)
}
