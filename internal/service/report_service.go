package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/util"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// Page layout in millimetres
const (
	reportMarginLeft   = 15.0
	reportMarginTop    = 15.0
	reportMarginRight  = 15.0
	reportMarginBottom = 15.0
	reportContentWidth = 210.0 - reportMarginLeft - reportMarginRight
)

// ReportService renders the dashboard as a printable PDF
type ReportService struct {
	now func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService() *ReportService {
	return &ReportService{now: time.Now}
}

// WriteDashboardPDF writes a PDF summary of the dashboard to w
func (s *ReportService) WriteDashboardPDF(w io.Writer, dashboard *domain.Dashboard) error {
	if dashboard == nil || dashboard.Settings == nil || dashboard.Comparison == nil {
		return domain.ErrInvalidInput
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(reportMarginLeft, reportMarginTop, reportMarginRight)
	pdf.SetAutoPageBreak(true, reportMarginBottom)
	pdf.SetTitle("Mortgage-free plan", false)
	pdf.AddPage()

	s.writeHeader(pdf, dashboard)
	writeLoanSection(pdf, dashboard)
	writeComparisonSection(pdf, dashboard)
	writeProgressSection(pdf, dashboard)
	writeWarnings(pdf, dashboard.Warnings)
	writeYearlyBalances(pdf, dashboard.Chart)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

func (s *ReportService) writeHeader(pdf *fpdf.Fpdf, dashboard *domain.Dashboard) {
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(6, 95, 70)
	pdf.CellFormat(reportContentWidth, 10, "Your Mortgage-free Plan", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(reportContentWidth, 5, "Generated "+s.now().Format("2 January 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(236, 253, 245)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(30, 41, 59)
	pdf.MultiCell(reportContentWidth, 6, dashboard.Headline, "1", "L", true)
	pdf.Ln(4)
}

func writeSectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(reportContentWidth, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(50, 50, 50)
}

func writeKeyValue(pdf *fpdf.Fpdf, key, value string) {
	pdf.CellFormat(60, 6, key, "", 0, "L", false, 0, "")
	pdf.CellFormat(reportContentWidth-60, 6, value, "", 1, "L", false, 0, "")
}

func writeLoanSection(pdf *fpdf.Fpdf, dashboard *domain.Dashboard) {
	settings := dashboard.Settings
	writeSectionTitle(pdf, "Your mortgage")

	writeKeyValue(pdf, "Outstanding balance", formatMoney(settings.Balance))
	writeKeyValue(pdf, "Interest rate", settings.Rate.String()+"%")
	writeKeyValue(pdf, "Remaining term", util.FormatYearsMonths(settings.Years, settings.Months))
	writeKeyValue(pdf, "Monthly payment", formatMoney(dashboard.Comparison.Baseline.BasePayment))
	writeKeyValue(pdf, "Monthly overpayment", formatMoney(settings.Overpay))

	switch {
	case dashboard.Rate.IsTracker:
		writeKeyValue(pdf, "Rate type", "Tracker")
	case dashboard.Rate.FixedRateEnd != nil:
		writeKeyValue(pdf, "Fixed rate ends", util.FormatMonthYear(*dashboard.Rate.FixedRateEnd))
	}
	pdf.Ln(4)
}

func writeComparisonSection(pdf *fpdf.Fpdf, dashboard *domain.Dashboard) {
	comparison := dashboard.Comparison
	writeSectionTitle(pdf, "Current plan vs overpaying")

	colWidths := []float64{60, (reportContentWidth - 60) / 2, (reportContentWidth - 60) / 2}
	pdf.SetFillColor(245, 247, 250)
	pdf.SetFont("Helvetica", "B", 10)
	for i, heading := range []string{"", "Current plan", "With overpayment"} {
		pdf.CellFormat(colWidths[i], 7, heading, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	rows := [][3]string{
		{"Monthly payment", formatMoney(comparison.Baseline.EffectivePayment), formatMoney(comparison.WithOverpay.EffectivePayment)},
		{"Time to clear", formatMonths(comparison.Baseline.MonthsToClear), formatMonths(comparison.WithOverpay.MonthsToClear)},
		{"Mortgage-free by", util.FormatMonthYear(dashboard.BaselinePayoff), util.FormatMonthYear(dashboard.OverpayPayoff)},
		{"Total interest", formatMoney(comparison.Baseline.TotalInterestPaid), formatMoney(comparison.WithOverpay.TotalInterestPaid)},
	}
	for _, row := range rows {
		pdf.CellFormat(colWidths[0], 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, row[1], "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, row[2], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	writeKeyValue(pdf, "Time saved", util.FormatYearsMonths(dashboard.SavedTime.Years, dashboard.SavedTime.Months))
	writeKeyValue(pdf, "Interest saved", formatMoney(comparison.InterestSaved))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Ln(4)
}

func writeProgressSection(pdf *fpdf.Fpdf, dashboard *domain.Dashboard) {
	writeSectionTitle(pdf, "Progress")

	if dashboard.Progress != nil {
		writeKeyValue(pdf, "Paid off", fmt.Sprintf("%s of %s (%s%%)",
			formatMoney(dashboard.Progress.PaidOff),
			formatMoney(dashboard.Progress.OriginalMortgage),
			dashboard.Progress.Percent.StringFixed(1)))
	} else {
		writeKeyValue(pdf, "Paid off", "Add the original mortgage amount to see progress")
	}
	if dashboard.LoanToValue != nil {
		writeKeyValue(pdf, "Loan to value", dashboard.LoanToValue.StringFixed(1)+"%")
	}
	writeKeyValue(pdf, "Penalty-free allowance", fmt.Sprintf("%s a month (%s%% a year)",
		formatMoney(dashboard.PenaltyFree.MonthlyAllowance),
		dashboard.PenaltyFree.PercentPerYear.String()))
	pdf.Ln(4)
}

func writeWarnings(pdf *fpdf.Fpdf, warnings []domain.Warning) {
	if len(warnings) == 0 {
		return
	}
	writeSectionTitle(pdf, "Check before you commit")
	pdf.SetTextColor(146, 64, 14)
	for _, w := range warnings {
		pdf.MultiCell(reportContentWidth, 5, "- "+w.Message, "", "L", false)
	}
	pdf.SetTextColor(50, 50, 50)
	pdf.Ln(4)
}

// writeYearlyBalances prints one row per year plus the final month
func writeYearlyBalances(pdf *fpdf.Fpdf, chart []domain.ChartRow) {
	if len(chart) == 0 {
		return
	}
	writeSectionTitle(pdf, "Balance by year")

	colWidths := []float64{30, (reportContentWidth - 30) / 2, (reportContentWidth - 30) / 2}
	pdf.SetFont("Helvetica", "B", 9)
	for i, heading := range []string{"Year", "Current plan", "With overpayment"} {
		pdf.CellFormat(colWidths[i], 6, heading, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	last := len(chart) - 1
	for i, row := range chart {
		if i%12 != 0 && i != last {
			continue
		}
		year := fmt.Sprintf("%d", row.Year)
		if i%12 != 0 {
			year = fmt.Sprintf("%d (+%d mo)", row.Year, i%12)
		}
		pdf.CellFormat(colWidths[0], 5, year, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[1], 5, formatOptionalMoney(row.Current), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 5, formatOptionalMoney(row.Overpay), "1", 1, "R", false, 0, "")
	}
}

func formatMonths(months int) string {
	ym := domain.NewYearsMonths(months)
	return util.FormatYearsMonths(ym.Years, ym.Months)
}

func formatOptionalMoney(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return formatMoney(*d)
}

// formatMoney renders an amount with two decimals and thousands separators, e.g. 1,055.67
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}
