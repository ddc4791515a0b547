package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/yanqian/healthdash/internal/domain/health"
)

// TableHeader is the first row of every tabular export.
var TableHeader = []string{"Date", "Steps", "Calories", "Anomaly", "Anomaly Type"}

// ToTable renders one CSV row per entry after the header. Rows are CRLF separated with
// no trailing line break.
func ToTable(r health.MonthlyReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	if err := w.Write(TableHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, e := range r.Entries {
		if err := w.Write(row(e)); err != nil {
			return nil, fmt.Errorf("write row %s: %w", e.Date, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\r\n")), nil
}

func row(e health.Entry) []string {
	anomaly, anomalyType := "No", "N/A"
	if e.IsAnomaly {
		anomaly = "Yes"
	}
	if e.AnomalyType != "" {
		anomalyType = e.AnomalyType
	}
	return []string{
		e.Date,
		strconv.Itoa(e.Steps),
		strconv.Itoa(e.Calories),
		anomaly,
		anomalyType,
	}
}
