// Package report renders run results into the strings shown to a user.
package report

import (
	"fmt"
	"math"
	"strconv"

	"normfit/domain/fit"

	"github.com/montanaflynn/stats"
)

// Places is the number of decimals every reported number is rounded to
const Places = 2

// FormatRounded rounds half away from zero to two decimals and drops trailing zeros
func FormatRounded(v float64) string {
	if math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	r, err := stats.Round(v, Places)
	if err != nil {
		return "NaN"
	}
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// MeanText formats "Average: <mean> (error = <err>)"
func MeanText(c fit.Characteristics, e fit.RelativeErrors) string {
	return fmt.Sprintf("Average: %s (error = %s)", FormatRounded(c.Mean), FormatRounded(e.Mean))
}

// VarianceText formats "Variance: <variance> (error = <err>)"
func VarianceText(c fit.Characteristics, e fit.RelativeErrors) string {
	return fmt.Sprintf("Variance: %s (error = %s)", FormatRounded(c.Variance), FormatRounded(e.Variance))
}

// ChiSquaredText formats "Chi-squared: <statistic> > <critical> is <reject>"
func ChiSquaredText(r fit.ChiSquaredResult) string {
	return fmt.Sprintf("Chi-squared: %s > %s is %t", FormatRounded(r.Statistic), FormatRounded(r.Critical), r.Reject)
}

// IntervalLabels renders "[min;b0]" for the first interval and "(b(i-1);b(i)]" after it
func IntervalLabels(s fit.IntervalSet) []string {
	labels := make([]string, s.Len())
	for i, right := range s.Bounds {
		if i == 0 {
			labels[i] = "[" + FormatRounded(s.Min) + ";" + FormatRounded(right) + "]"
			continue
		}
		labels[i] = "(" + FormatRounded(s.Bounds[i-1]) + ";" + FormatRounded(right) + "]"
	}
	return labels
}

// Fill writes the user-facing texts and histogram labels into a report
func Fill(r *fit.Report) {
	r.MeanText = MeanText(r.Characteristics, r.RelativeErrors)
	r.VarianceText = VarianceText(r.Characteristics, r.RelativeErrors)
	r.ChiSquaredText = ChiSquaredText(r.ChiSquared)
	r.Histogram.Labels = IntervalLabels(r.Intervals)
}
