package excel

import (
	"fmt"
	"io"

	"normfit/domain/fit"

	"github.com/xuri/excelize/v2"
)

// ReportWriter renders a fit report as an .xlsx workbook with a histogram chart
type ReportWriter struct{}

// NewReportWriter creates a workbook writer
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// ContentType returns the workbook MIME type
func (w *ReportWriter) ContentType() string {
	return ContentType
}

// Write renders report into out
func (w *ReportWriter) Write(out io.Writer, report *fit.Report) error {
	f, err := w.build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile renders report to path
func (w *ReportWriter) WriteFile(path string, report *fit.Report) error {
	f, err := w.build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func (w *ReportWriter) build(report *fit.Report) (*excelize.File, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(HistogramSheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeSummary(f, report, bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := writeHistogram(f, report, bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write histogram sheet: %w", err)
	}
	return f, nil
}

func writeSummary(f *excelize.File, report *fit.Report, bold int) error {
	seed := "none"
	if report.Params.Seed != nil {
		seed = fmt.Sprintf("%d", *report.Params.Seed)
	}
	rows := [][]interface{}{
		{"Run ID", report.RunID.String()},
		{"Fingerprint", report.Fingerprint.String()},
		{"Created at", report.CreatedAt.Time().Format("2006-01-02 15:04:05")},
		{"Hypothesized mean", report.Params.Mean},
		{"Hypothesized variance", report.Params.Variance},
		{"Sample size", report.Params.Size},
		{"Seed", seed},
		{"Expectation mode", string(report.Params.Expectation)},
		{"Sample min", report.Sample.Min},
		{"Sample max", report.Sample.Max},
		{"Empirical mean", report.Characteristics.Mean},
		{"Empirical variance", report.Characteristics.Variance},
		{"Mean relative error", report.RelativeErrors.Mean},
		{"Variance relative error", report.RelativeErrors.Variance},
		{"Chi-squared statistic", report.ChiSquared.Statistic},
		{"Critical value", report.ChiSquared.Critical},
		{"Degrees of freedom", report.ChiSquared.DegreesOfFreedom},
		{"Alpha", report.ChiSquared.Alpha},
		{"P-value", report.ChiSquared.PValue},
		{"Reject", fmt.Sprintf("%t", report.ChiSquared.Reject)},
		{"Average", report.MeanText},
		{"Variance", report.VarianceText},
		{"Chi-squared", report.ChiSquaredText},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(1, len(rows))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", last, bold); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "A", "B", 28)
}

func writeHistogram(f *excelize.File, report *fit.Report, bold int) error {
	h := report.Histogram
	if len(h.Labels) != len(h.Frequencies) {
		return fmt.Errorf("%d labels for %d frequencies", len(h.Labels), len(h.Frequencies))
	}

	header := make([]interface{}, len(histogramHeaders))
	for i, v := range histogramHeaders {
		header[i] = v
	}
	if err := f.SetSheetRow(HistogramSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(HistogramSheet, "A1", "C1", bold); err != nil {
		return err
	}

	for i, label := range h.Labels {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{label, h.Frequencies[i]}
		if i < len(h.Expected) {
			row = append(row, h.Expected[i])
		}
		if err := f.SetSheetRow(HistogramSheet, cell, &row); err != nil {
			return err
		}
	}
	if len(h.Labels) == 0 {
		return nil
	}

	lastRow := len(h.Labels) + 1
	return f.AddChart(HistogramSheet, "E2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", HistogramSheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", HistogramSheet, lastRow),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", HistogramSheet, lastRow),
		}},
		Title:  []excelize.RichTextRun{{Text: "Relative frequencies"}},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Intervals"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Frequencies"}}},
		Legend: excelize.ChartLegend{Position: "none"},
	})
}
