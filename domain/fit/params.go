package fit

import (
	"fmt"
	"math"
	"strings"

	"normfit/domain/core"
)

// ExpectationMode selects how expected interval probabilities are estimated
type ExpectationMode string

const (
	// ExpectationLegacy uses step * first value * midpoint per interval
	ExpectationLegacy ExpectationMode = "legacy"
	// ExpectationCDF uses the normal CDF difference across each interval
	ExpectationCDF ExpectationMode = "cdf"
)

// ParseExpectationMode accepts "" as legacy
func ParseExpectationMode(s string) (ExpectationMode, error) {
	switch ExpectationMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ExpectationLegacy:
		return ExpectationLegacy, nil
	case ExpectationCDF:
		return ExpectationCDF, nil
	default:
		return "", core.NewValidationError("expectation", fmt.Sprintf("unknown mode %q (want legacy or cdf)", s))
	}
}

// MinSampleSize is the smallest sample Sturges' rule can bin meaningfully
const MinSampleSize = 2

// Params are the hypothesized distribution and run options
type Params struct {
	Mean        float64         `json:"mean"`
	Variance    float64         `json:"variance"`
	Size        int             `json:"size"`
	Seed        *int64          `json:"seed,omitempty"`
	Expectation ExpectationMode `json:"expectation,omitempty"`
}

// Deviation returns the hypothesized standard deviation
func (p Params) Deviation() float64 {
	return math.Sqrt(p.Variance)
}

// Validate checks every input domain condition before any sample is drawn.
// maxSize <= 0 disables the upper bound.
func (p Params) Validate(maxSize int) error {
	if math.IsNaN(p.Mean) || math.IsInf(p.Mean, 0) {
		return core.NewValidationError("mean", "must be finite")
	}
	if math.IsNaN(p.Variance) || math.IsInf(p.Variance, 0) {
		return core.NewValidationError("variance", "must be finite")
	}
	if p.Variance < 0 {
		return core.NewDomainError(core.ErrNegativeVariance, "variance", p.Variance)
	}
	if p.Variance == 0 {
		return core.NewDomainError(core.ErrZeroExpected, "variance", p.Variance)
	}
	if p.Mean == 0 {
		return core.NewDomainError(core.ErrZeroExpected, "mean", p.Mean)
	}
	if p.Size < MinSampleSize {
		return core.NewDomainError(core.ErrSampleTooSmall, "size", p.Size)
	}
	if maxSize > 0 && p.Size > maxSize {
		return core.NewDomainError(core.ErrSampleTooLarge, "size", p.Size)
	}
	if _, err := ParseExpectationMode(string(p.Expectation)); err != nil {
		return err
	}
	return nil
}
