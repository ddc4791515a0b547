package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yanqian/healthdash/internal/domain/health"
)

// Layout in millimetres on an A4 portrait page.
const (
	marginLeft      = 20.0
	titleY          = 20.0
	firstStatY      = 40.0
	lineSpacing     = 10.0
	suggestionsY    = 110.0
	firstItemY      = 120.0
	pageBottomLimit = 277.0
	titleFontSize   = 18.0
	bodyFontSize    = 12.0
	fontFamily      = "Helvetica"
)

var numbers = message.NewPrinter(language.AmericanEnglish)

// ToDocument renders the report as a PDF. Output depends only on the report value.
func ToDocument(r health.MonthlyReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	stamp := documentDate(r)
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(fmt.Sprintf("Monthly Report - %d/%d", r.Month, r.Year), false)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(fontFamily, "", titleFontSize)
	pdf.Text(marginLeft, titleY, tr(fmt.Sprintf("Monthly Report - %d/%d", r.Month, r.Year)))

	pdf.SetFont(fontFamily, "", bodyFontSize)
	for i, line := range StatLines(r) {
		pdf.Text(marginLeft, firstStatY+float64(i)*lineSpacing, tr(line))
	}

	pdf.Text(marginLeft, suggestionsY, "AI Recommendations:")
	y := firstItemY
	for i, suggestion := range r.AISuggestions {
		if y > pageBottomLimit {
			pdf.AddPage()
			pdf.SetFont(fontFamily, "", bodyFontSize)
			y = titleY
		}
		pdf.Text(marginLeft, y, tr(fmt.Sprintf("%d. %s", i+1, suggestion)))
		y += lineSpacing
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// StatLines are the six labelled figures shared by the document and the terminal view.
func StatLines(r health.MonthlyReport) []string {
	return []string{
		"Total Steps: " + GroupDigits(r.TotalSteps),
		"Average Steps: " + GroupDigits(r.AvgSteps),
		"Total Calories: " + GroupDigits(r.TotalCalories),
		"Average Calories: " + GroupDigits(r.AvgCalories),
		fmt.Sprintf("Active Days: %d", r.ActiveDays),
		fmt.Sprintf("Current Streak: %d days", r.CurrentStreak),
	}
}

// GroupDigits formats n with en-US thousands separators.
func GroupDigits(n int) string {
	return numbers.Sprintf("%d", n)
}

// documentDate pins the PDF metadata timestamps to the report month.
func documentDate(r health.MonthlyReport) time.Time {
	month := r.Month
	if month < 1 || month > 12 {
		month = 1
	}
	year := r.Year
	if year < 1 {
		year = 1970
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
