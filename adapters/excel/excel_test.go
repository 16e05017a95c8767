package excel

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"normfit/adapters/rng"
	"normfit/app"
	"normfit/domain/fit"
	"normfit/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runReport(t *testing.T) *fit.Report {
	t.Helper()
	svc, err := app.NewFitService(rng.NewRNGAdapter(), internal.NewLoggerTo(io.Discard, internal.LogLevelError, false), app.DefaultFitOptions())
	require.NoError(t, err)

	seed := int64(314)
	rep, err := svc.Run(context.Background(), fit.Params{Mean: 5, Variance: 4, Size: 1000, Seed: &seed})
	require.NoError(t, err)
	return rep
}

func TestReportWriter_RoundTrip(t *testing.T) {
	rep := runReport(t)
	w := NewReportWriter()

	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, rep))
	assert.Equal(t, ContentType, w.ContentType())

	data, err := ReadWorkbookFrom(&buf)
	require.NoError(t, err)

	assert.Equal(t, rep.RunID.String(), data.Summary["Run ID"])
	assert.Equal(t, rep.MeanText, data.Summary["Average"])
	assert.Equal(t, rep.VarianceText, data.Summary["Variance"])
	assert.Equal(t, rep.ChiSquaredText, data.Summary["Chi-squared"])
	assert.Equal(t, "314", data.Summary["Seed"])

	require.Len(t, data.Histogram, len(rep.Histogram.Labels))
	for i, row := range data.Histogram {
		assert.Equal(t, rep.Histogram.Labels[i], row.Label)
		assert.InDelta(t, rep.Histogram.Frequencies[i], row.Frequency, 1e-9)
		assert.InDelta(t, rep.Histogram.Expected[i], row.Expected, 1e-6*(1+abs(rep.Histogram.Expected[i])))
	}
}

func TestReportWriter_WriteFile(t *testing.T) {
	rep := runReport(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, NewReportWriter().WriteFile(path, rep))

	data, err := ReadWorkbook(path)
	require.NoError(t, err)
	assert.Len(t, data.Histogram, rep.Intervals.Len())
}

func TestReportWriter_RejectsMismatchedHistogram(t *testing.T) {
	rep := runReport(t)
	rep.Histogram.Labels = rep.Histogram.Labels[:1]

	err := NewReportWriter().Write(io.Discard, rep)
	assert.Error(t, err)
}

func TestReadWorkbook_Missing(t *testing.T) {
	_, err := ReadWorkbook(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
