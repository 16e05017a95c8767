package excel

// Sheet names used by exported workbooks
const (
	SummarySheet   = "Summary"
	HistogramSheet = "Histogram"
)

// ContentType is the MIME type of an .xlsx workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var histogramHeaders = []string{"Interval", "Frequency", "Expected"}

// HistogramRow is one interval of an exported histogram
type HistogramRow struct {
	Label     string
	Frequency float64
	Expected  float64
}

// WorkbookData is what ReadWorkbook recovers from an exported file
type WorkbookData struct {
	Summary   map[string]string // Summary sheet, label -> formatted value
	Histogram []HistogramRow
}
