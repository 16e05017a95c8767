package goodness

import (
	"sort"

	"normfit/domain/core"
)

// DefaultAlpha is the significance level of the goodness-of-fit test
const DefaultAlpha = 0.05

// chiSquared005 holds upper 5% critical values of the chi-squared distribution
var chiSquared005 = map[int]float64{
	1: 3.841459, 2: 5.991465, 3: 7.814728, 4: 9.487729, 5: 11.070498,
	6: 12.591587, 7: 14.067140, 8: 15.507313, 9: 16.918978, 10: 18.307038,
	11: 19.675138, 12: 21.026070, 13: 22.362032, 14: 23.684791, 15: 24.995790,
	16: 26.296228, 17: 27.587112, 18: 28.869299, 19: 30.143527, 20: 31.410433,
	21: 32.670573, 22: 33.924438, 23: 35.172462, 24: 36.415029, 25: 37.652484,
	26: 38.885139, 27: 40.113272, 28: 41.337138, 29: 42.556968, 30: 43.772972,
	40: 55.758479, 50: 67.504807, 60: 79.081944, 70: 90.531225, 80: 101.879474,
	90: 113.145270, 100: 124.342113,
}

var criticalTables = map[float64]map[int]float64{
	DefaultAlpha: chiSquared005,
}

// CriticalValue looks up the chi-squared critical value for df at the default alpha
func CriticalValue(df int) (float64, error) {
	return CriticalValueAt(DefaultAlpha, df)
}

// CriticalValueAt looks up the chi-squared critical value for df at alpha
func CriticalValueAt(alpha float64, df int) (float64, error) {
	table, ok := criticalTables[alpha]
	if !ok {
		return 0, core.NewDomainError(core.ErrUntabulatedDF, "alpha", alpha)
	}
	v, ok := table[df]
	if !ok {
		return 0, core.NewDomainError(core.ErrUntabulatedDF, "df", df)
	}
	return v, nil
}

// TabulatedDegrees lists the degrees of freedom available at alpha, ascending
func TabulatedDegrees(alpha float64) []int {
	table := criticalTables[alpha]
	dfs := make([]int, 0, len(table))
	for df := range table {
		dfs = append(dfs, df)
	}
	sort.Ints(dfs)
	return dfs
}
