package variate

import (
	"math"

	"normfit/domain/core"
	"normfit/domain/fit"
)

// DrawSample draws size independent N(mean, variance) variates
func DrawSample(gen *Generator, mean, variance float64, size int) (fit.Sample, error) {
	if size < 1 {
		return nil, core.NewDomainError(core.ErrEmptySample, "size", size)
	}
	if variance < 0 {
		return nil, core.NewDomainError(core.ErrNegativeVariance, "variance", variance)
	}

	deviation := math.Sqrt(variance)
	sample := make(fit.Sample, size)
	for i := range sample {
		v, err := gen.ScaledNormal(mean, deviation)
		if err != nil {
			return nil, err
		}
		sample[i] = v
	}
	return sample, nil
}
