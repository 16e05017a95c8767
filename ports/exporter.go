package ports

import (
	"io"

	"normfit/domain/fit"
)

// ReportExporter renders a finished report into a document format
type ReportExporter interface {
	// ContentType is the MIME type of the rendered document
	ContentType() string
	// Write renders the report to w
	Write(w io.Writer, report *fit.Report) error
}
