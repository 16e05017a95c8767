// Package expectation estimates the probability mass the hypothesized
// distribution assigns to each histogram interval.
package expectation

import (
	"normfit/domain/core"
	"normfit/domain/fit"

	"gonum.org/v1/gonum/stat/distuv"
)

// Estimator produces one expected probability per interval
type Estimator interface {
	Name() fit.ExpectationMode
	Estimate(intervals fit.IntervalSet, sample fit.Sample) (fit.ExpectedProbabilities, error)
}

// New returns the estimator for mode, parameterized by the hypothesized distribution
func New(mode fit.ExpectationMode, mean, deviation float64) (Estimator, error) {
	switch mode {
	case "", fit.ExpectationLegacy:
		return LegacyEstimator{}, nil
	case fit.ExpectationCDF:
		return NewNormalCDFEstimator(mean, deviation)
	default:
		return nil, core.NewValidationError("expectation", string(mode))
	}
}

// LegacyEstimator reproduces the coarse per-interval approximation
// step * value * midpoint, where value is the first sample value (in draw order)
// inside the interval. Intervals no value falls into get 0.
// The result is not a probability; it is kept for comparability with earlier runs.
type LegacyEstimator struct{}

// Name returns the mode this estimator implements
func (LegacyEstimator) Name() fit.ExpectationMode { return fit.ExpectationLegacy }

// Estimate scans the sample once per interval
func (LegacyEstimator) Estimate(intervals fit.IntervalSet, sample fit.Sample) (fit.ExpectedProbabilities, error) {
	if len(sample) == 0 {
		return nil, core.ErrEmptySample
	}
	out := make(fit.ExpectedProbabilities, intervals.Len())
	for i, right := range intervals.Bounds {
		midpoint := (right + intervals.Left(i)) / 2
		for _, v := range sample {
			if intervals.Contains(i, v) {
				out[i] = intervals.Step * v * midpoint
				break
			}
		}
	}
	return out, nil
}

// NormalCDFEstimator computes Φ(right) − Φ(left) under N(mean, deviation²)
type NormalCDFEstimator struct {
	dist distuv.Normal
}

// NewNormalCDFEstimator creates a CDF-difference estimator
func NewNormalCDFEstimator(mean, deviation float64) (*NormalCDFEstimator, error) {
	if deviation <= 0 {
		return nil, core.NewDomainError(core.ErrZeroExpected, "deviation", deviation)
	}
	return &NormalCDFEstimator{dist: distuv.Normal{Mu: mean, Sigma: deviation}}, nil
}

// Name returns the mode this estimator implements
func (e *NormalCDFEstimator) Name() fit.ExpectationMode { return fit.ExpectationCDF }

// Estimate integrates the hypothesized density across each interval
func (e *NormalCDFEstimator) Estimate(intervals fit.IntervalSet, sample fit.Sample) (fit.ExpectedProbabilities, error) {
	if len(sample) == 0 {
		return nil, core.ErrEmptySample
	}
	out := make(fit.ExpectedProbabilities, intervals.Len())
	for i, right := range intervals.Bounds {
		out[i] = e.dist.CDF(right) - e.dist.CDF(intervals.Left(i))
	}
	return out, nil
}
