// Command planner runs a mortgage scenario file through the amortization engine
// and prints the plan, without the API or a settings store.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/service"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to the YAML scenario file")
	pdfPath := flag.String("pdf", "", "write a PDF report to this path")
	showSchedule := flag.Bool("schedule", false, "print the month-by-month balances")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if *scenarioPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	dashboard, err := run(*scenarioPath, time.Now())
	if err != nil {
		log.Fatal().Err(err).Str("scenario", *scenarioPath).Msg("Failed to run scenario")
	}

	printSummary(os.Stdout, dashboard)
	if *showSchedule {
		printSchedule(os.Stdout, dashboard.Chart)
	}

	if *pdfPath != "" {
		if err := writePDF(*pdfPath, dashboard); err != nil {
			log.Fatal().Err(err).Str("path", *pdfPath).Msg("Failed to write report")
		}
		fmt.Fprintf(os.Stdout, "\nReport written to %s\n", *pdfPath)
	}
}

func run(path string, now time.Time) (*domain.Dashboard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scenario, err := loadScenario(f)
	if err != nil {
		return nil, err
	}
	settings, err := scenario.Settings()
	if err != nil {
		return nil, err
	}
	pct, err := scenario.PenaltyFree(decimal.NewFromInt(domain.DefaultPenaltyFreePercent))
	if err != nil {
		return nil, err
	}

	return service.NewPlanService(nil, pct).BuildDashboard(settings, now)
}

func writePDF(path string, dashboard *domain.Dashboard) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := service.NewReportService().WriteDashboardPDF(f, dashboard); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(w io.Writer, d *domain.Dashboard) {
	baseline := d.Comparison.Baseline
	overpay := d.Comparison.WithOverpay

	fmt.Fprintln(w, d.Headline)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tCurrent plan\tWith overpayment")
	fmt.Fprintf(tw, "Monthly payment\t%s\t%s\n", baseline.EffectivePayment.StringFixed(2), overpay.EffectivePayment.StringFixed(2))
	fmt.Fprintf(tw, "Time to clear\t%s\t%s\n",
		formatMonths(baseline.MonthsToClear), formatMonths(overpay.MonthsToClear))
	fmt.Fprintf(tw, "Mortgage-free\t%s\t%s\n", util.FormatMonthYear(d.BaselinePayoff), util.FormatMonthYear(d.OverpayPayoff))
	fmt.Fprintf(tw, "Total interest\t%s\t%s\n", baseline.TotalInterestPaid.StringFixed(0), overpay.TotalInterestPaid.StringFixed(0))
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Interest saved: %s\n", d.Comparison.InterestSaved.StringFixed(0))
	if d.LoanToValue != nil {
		fmt.Fprintf(w, "Loan to value: %s%%\n", d.LoanToValue.StringFixed(1))
	}
	if d.Progress != nil {
		fmt.Fprintf(w, "Paid off: %s of %s (%s%%)\n",
			d.Progress.PaidOff.StringFixed(2), d.Progress.OriginalMortgage.StringFixed(2), d.Progress.Percent.StringFixed(1))
	}
	fmt.Fprintf(w, "Penalty-free allowance: %s a month (%s%% a year)\n",
		d.PenaltyFree.MonthlyAllowance.StringFixed(2), d.PenaltyFree.PercentPerYear.String())

	for _, warning := range d.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning.Message)
	}
}

func printSchedule(w io.Writer, rows []domain.ChartRow) {
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tCurrent plan\tWith overpayment\t")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", row.MonthIndex, balanceCell(row.Current), balanceCell(row.Overpay))
	}
	tw.Flush()
}

func balanceCell(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.StringFixed(2)
}

func formatMonths(months int) string {
	ym := domain.NewYearsMonths(months)
	return util.FormatYearsMonths(ym.Years, ym.Months)
}
