package binning

import (
	"math"

	"normfit/domain/core"
	"normfit/domain/fit"

	"github.com/montanaflynn/stats"
)

// IntervalCount applies Sturges' rule: floor(log2(size)) + 1.
// Non-positive sizes yield 0.
func IntervalCount(size int) int {
	if size < 1 {
		return 0
	}
	return int(math.Floor(math.Log2(float64(size)))) + 1
}

// IntervalStep is the common width of k intervals spanning [minV, maxV]
func IntervalStep(maxV, minV float64, k int) float64 {
	if k < 1 {
		return 0
	}
	return (maxV - minV) / float64(k)
}

// BuildIntervals partitions the sample range into Sturges' count of equal-width intervals
func BuildIntervals(sample fit.Sample) (fit.IntervalSet, error) {
	if len(sample) == 0 {
		return fit.IntervalSet{}, core.ErrEmptySample
	}
	minV, err := stats.Min(stats.Float64Data(sample))
	if err != nil {
		return fit.IntervalSet{}, err
	}
	maxV, err := stats.Max(stats.Float64Data(sample))
	if err != nil {
		return fit.IntervalSet{}, err
	}

	k := IntervalCount(len(sample))
	step := IntervalStep(maxV, minV, k)
	bounds := make([]float64, k)
	for i := range bounds {
		bounds[i] = minV + step*float64(i+1)
	}
	// min + step*k can land a ulp below max; the last bucket must reach the maximum
	bounds[k-1] = maxV

	return fit.IntervalSet{Min: minV, Step: step, Bounds: bounds}, nil
}

// Locate returns the interval holding v, or -1 when v lies outside [Min, last bound]
func Locate(intervals fit.IntervalSet, v float64) int {
	for i := range intervals.Bounds {
		if intervals.Contains(i, v) {
			return i
		}
	}
	return -1
}

// ClassifyAndCount counts sample values per interval and normalizes by sample size
func ClassifyAndCount(sample fit.Sample, intervals fit.IntervalSet) (fit.Frequencies, error) {
	if len(sample) == 0 {
		return nil, core.ErrEmptySample
	}
	counts := make([]int, intervals.Len())
	for _, v := range sample {
		i := Locate(intervals, v)
		if i < 0 {
			return nil, core.NewDomainError(core.ErrUnclassified, "value", v)
		}
		counts[i]++
	}

	size := float64(len(sample))
	freqs := make(fit.Frequencies, len(counts))
	for i, c := range counts {
		freqs[i] = float64(c) / size
	}
	return freqs, nil
}
