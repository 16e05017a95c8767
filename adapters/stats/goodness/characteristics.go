package goodness

import (
	"math"

	"normfit/domain/core"
	"normfit/domain/fit"
)

// Characteristics returns the population mean and variance in one pass:
// mean = Σx/n, variance = Σx²/n − mean².
func Characteristics(sample fit.Sample) (fit.Characteristics, error) {
	if len(sample) == 0 {
		return fit.Characteristics{}, core.ErrEmptySample
	}
	var sum, sumSq float64
	for _, v := range sample {
		sum += v
		sumSq += v * v
	}
	n := float64(len(sample))
	mean := sum / n
	variance := sumSq/n - mean*mean
	if math.IsInf(sumSq, 0) || math.IsNaN(variance) || math.IsInf(variance, 0) {
		return fit.Characteristics{}, core.NewDomainError(core.ErrNonFinite, "variance", variance)
	}
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return fit.Characteristics{}, core.NewDomainError(core.ErrNonFinite, "mean", mean)
	}
	return fit.Characteristics{Mean: mean, Variance: variance}, nil
}

// RelativeErrors returns |empirical − expected| / |expected| for mean and variance
func RelativeErrors(expected, empirical fit.Characteristics) (fit.RelativeErrors, error) {
	if expected.Mean == 0 {
		return fit.RelativeErrors{}, core.NewDomainError(core.ErrZeroExpected, "mean", expected.Mean)
	}
	if expected.Variance == 0 {
		return fit.RelativeErrors{}, core.NewDomainError(core.ErrZeroExpected, "variance", expected.Variance)
	}
	return fit.RelativeErrors{
		Mean:     math.Abs(empirical.Mean-expected.Mean) / math.Abs(expected.Mean),
		Variance: math.Abs(empirical.Variance-expected.Variance) / math.Abs(expected.Variance),
	}, nil
}
