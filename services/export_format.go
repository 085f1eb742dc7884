package services

import (
	"errors"
	"strings"
)

// ExportFormat selects the file type produced by Render.
type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

// ErrUnsupportedFormat is returned for export formats other than xlsx and pdf.
var ErrUnsupportedFormat = errors.New("unsupported export format: must be xlsx or pdf")

// ParseExportFormat normalises a format name, accepting "excel" for xlsx.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", ErrUnsupportedFormat
}

// ContentType is the MIME type of the format.
func (f ExportFormat) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render produces the export file for data in format f.
func Render(data ExportData, f ExportFormat) ([]byte, error) {
	switch f {
	case FormatXLSX:
		return GenerateExcel(data)
	case FormatPDF:
		return GeneratePDF(data)
	}
	return nil, ErrUnsupportedFormat
}
