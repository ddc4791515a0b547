package report

import (
	"fmt"
	"strings"

	"github.com/yanqian/healthdash/internal/domain/health"
	apperrors "github.com/yanqian/healthdash/pkg/errors"
)

// Format selects an export representation.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// ParseFormat accepts "pdf" or "csv" in any case.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", apperrors.Invalid(fmt.Sprintf("unsupported export format %q", value))
	}
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatCSV:
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// Artifact is one rendered export file.
type Artifact struct {
	Name        string
	Format      Format
	ContentType string
	Data        []byte
}

// FileName is the deterministic export name: health-report-<month>-<year>.<ext>.
func FileName(r health.MonthlyReport, ext string) string {
	return fmt.Sprintf("health-report-%d-%d.%s", r.Month, r.Year, ext)
}
