package goodness

import (
	"fmt"

	"normfit/domain/core"
	"normfit/domain/fit"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquaredTest computes Σ f²/(n·p) − n over the intervals and compares it with
// the tabulated critical value for k−1 degrees of freedom.
func ChiSquaredTest(size int, freqs fit.Frequencies, expected fit.ExpectedProbabilities, alpha float64) (fit.ChiSquaredResult, error) {
	if size < 1 {
		return fit.ChiSquaredResult{}, core.NewDomainError(core.ErrEmptySample, "size", size)
	}
	if len(freqs) != len(expected) {
		return fit.ChiSquaredResult{}, core.NewValidationError("expected",
			fmt.Sprintf("%d probabilities for %d intervals", len(expected), len(freqs)))
	}

	df := len(freqs) - 1
	critical, err := CriticalValueAt(alpha, df)
	if err != nil {
		return fit.ChiSquaredResult{}, err
	}

	n := float64(size)
	statistic := 0.0
	for i, f := range freqs {
		if expected[i] == 0 {
			return fit.ChiSquaredResult{}, core.NewDomainError(core.ErrZeroProbability, "interval", i)
		}
		statistic += f * f / (n * expected[i])
	}
	statistic -= n

	return fit.ChiSquaredResult{
		Reject:           statistic > critical,
		Statistic:        statistic,
		Critical:         critical,
		DegreesOfFreedom: df,
		Alpha:            alpha,
		PValue:           PValue(statistic, df),
	}, nil
}

// PValue is the upper tail probability of statistic under chi-squared(df).
// Non-positive statistics have p = 1.
func PValue(statistic float64, df int) float64 {
	if df <= 0 || statistic <= 0 {
		return 1
	}
	return distuv.ChiSquared{K: float64(df)}.Survival(statistic)
}
