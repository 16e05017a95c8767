package fit

import (
	"normfit/domain/core"
)

// Sample is an ordered, fully materialized draw. It is not modified after generation.
type Sample []float64

// IntervalSet partitions [Min, Bounds[k-1]] into k contiguous buckets.
// Bucket 0 is [Min, Bounds[0]], bucket i is (Bounds[i-1], Bounds[i]].
type IntervalSet struct {
	Min    float64   `json:"min"`
	Step   float64   `json:"step"`
	Bounds []float64 `json:"bounds"`
}

// Len returns the number of intervals
func (s IntervalSet) Len() int {
	return len(s.Bounds)
}

// Left returns the left edge of interval i
func (s IntervalSet) Left(i int) float64 {
	if i == 0 {
		return s.Min
	}
	return s.Bounds[i-1]
}

// Contains applies the boundary rule: closed on both ends for interval 0,
// half-open (left, right] for every other interval.
func (s IntervalSet) Contains(i int, v float64) bool {
	if i == 0 {
		return v >= s.Min && v <= s.Bounds[0]
	}
	return v > s.Bounds[i-1] && v <= s.Bounds[i]
}

// Frequencies holds one relative frequency per interval
type Frequencies []float64

// ExpectedProbabilities holds one expected probability estimate per interval
type ExpectedProbabilities []float64

// Characteristics are the population moments of a sample
type Characteristics struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

// RelativeErrors compares empirical characteristics against hypothesized ones
type RelativeErrors struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

// ChiSquaredResult is the verdict of the goodness-of-fit test
type ChiSquaredResult struct {
	Reject           bool    `json:"reject"`
	Statistic        float64 `json:"statistic"`
	Critical         float64 `json:"critical"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
	Alpha            float64 `json:"alpha"`
	PValue           float64 `json:"p_value"`
}

// Histogram is the rendering request for a bar chart of the sample
type Histogram struct {
	Labels      []string  `json:"labels"`
	Frequencies []float64 `json:"frequencies"`
	Expected    []float64 `json:"expected"`
}

// SampleSummary describes the drawn sample without shipping every value
type SampleSummary struct {
	Size int     `json:"size"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Report is the complete, all-or-nothing result of one run
type Report struct {
	RunID           core.RunID       `json:"run_id"`
	Fingerprint     core.Hash        `json:"fingerprint"`
	CreatedAt       core.Timestamp   `json:"created_at"`
	RuntimeMs       int64            `json:"runtime_ms"`
	Params          Params           `json:"params"`
	Sample          SampleSummary    `json:"sample"`
	Intervals       IntervalSet      `json:"intervals"`
	Characteristics Characteristics  `json:"characteristics"`
	RelativeErrors  RelativeErrors   `json:"relative_errors"`
	ChiSquared      ChiSquaredResult `json:"chi_squared"`
	Histogram       Histogram        `json:"histogram"`

	MeanText       string `json:"mean_text"`
	VarianceText   string `json:"variance_text"`
	ChiSquaredText string `json:"chi_squared_text"`
}
