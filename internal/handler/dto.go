package handler

import (
	"strings"
	"time"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/util"
	"github.com/shopspring/decimal"
)

// decimalParser collects field errors while parsing decimal request fields
type decimalParser struct {
	errs []ValidationError
}

// parse reads a decimal field; an empty optional field is zero
func (p *decimalParser) parse(field, value string, required bool) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			p.errs = append(p.errs, ValidationError{Field: field, Message: "Is required"})
		}
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		p.errs = append(p.errs, ValidationError{Field: field, Message: "Must be a valid decimal number"})
		return decimal.Zero
	}
	return d
}

// CorrectionResponse reports a substituted payment
type CorrectionResponse struct {
	RequestedPayment   string `json:"requestedPayment"`
	SubstitutedPayment string `json:"substitutedPayment"`
}

// SchedulePointResponse is one month of a schedule
type SchedulePointResponse struct {
	MonthIndex       int    `json:"monthIndex"`
	RemainingBalance string `json:"remainingBalance"`
}

// AmortizationResponse represents a simulation result in API responses
type AmortizationResponse struct {
	Outcome           string                  `json:"outcome"`
	MonthsToClear     int                     `json:"monthsToClear"`
	TotalInterestPaid string                  `json:"totalInterestPaid"`
	BasePayment       string                  `json:"basePayment"`
	EffectivePayment  string                  `json:"effectivePayment"`
	Correction        *CorrectionResponse     `json:"correction,omitempty"`
	Schedule          []SchedulePointResponse `json:"schedule,omitempty"`
}

// ComparisonResponse represents the baseline vs overpayment comparison
type ComparisonResponse struct {
	Baseline      AmortizationResponse `json:"baseline"`
	WithOverpay   AmortizationResponse `json:"withOverpay"`
	MonthsSaved   int                  `json:"monthsSaved"`
	InterestSaved string               `json:"interestSaved"`
}

// SettingsResponse represents the stored settings record
type SettingsResponse struct {
	Balance           string `json:"balance"`
	Rate              string `json:"rate"`
	Years             int    `json:"years"`
	Months            int    `json:"months"`
	Overpay           string `json:"overpay"`
	HouseValue        string `json:"houseValue"`
	OriginalMortgage  string `json:"originalMortgage"`
	FixedRateEndMonth int    `json:"fixedRateEndMonth,omitempty"`
	FixedRateEndYear  int    `json:"fixedRateEndYear,omitempty"`
	IsTracker         bool   `json:"isTracker"`
}

// ProgressResponse is the repaid share of the original mortgage
type ProgressResponse struct {
	OriginalMortgage string `json:"originalMortgage"`
	PaidOff          string `json:"paidOff"`
	Percent          string `json:"percent"`
}

// RateResponse describes the rate arrangement
type RateResponse struct {
	IsTracker     bool    `json:"isTracker"`
	FixedRateEnd  *string `json:"fixedRateEnd,omitempty"`
	FixedEndLabel *string `json:"fixedEndLabel,omitempty"`
}

// PenaltyFreeResponse is the informational penalty-free allowance
type PenaltyFreeResponse struct {
	PercentPerYear   string `json:"percentPerYear"`
	MonthlyAllowance string `json:"monthlyAllowance"`
	WithinAllowance  bool   `json:"withinAllowance"`
}

// ChartRowResponse is one month of the balance chart; null means that scenario has ended
type ChartRowResponse struct {
	MonthIndex int     `json:"monthIndex"`
	Year       int     `json:"year"`
	Current    *string `json:"current"`
	Overpay    *string `json:"overpay"`
}

// PayoffResponse is a payoff month
type PayoffResponse struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// DashboardResponse represents the dashboard in API responses
type DashboardResponse struct {
	Settings       SettingsResponse    `json:"settings"`
	Comparison     ComparisonResponse  `json:"comparison"`
	TimeToClear    domain.YearsMonths  `json:"timeToClear"`
	SavedTime      domain.YearsMonths  `json:"savedTime"`
	BaselinePayoff PayoffResponse      `json:"baselinePayoff"`
	OverpayPayoff  PayoffResponse      `json:"overpayPayoff"`
	Headline       string              `json:"headline"`
	Progress       *ProgressResponse   `json:"progress,omitempty"`
	LoanToValue    *string             `json:"loanToValue,omitempty"`
	Rate           RateResponse        `json:"rate"`
	PenaltyFree    PenaltyFreeResponse `json:"penaltyFree"`
	Chart          []ChartRowResponse  `json:"chart"`
	Warnings       []domain.Warning    `json:"warnings"`
}

func toAmortizationResponse(r *domain.AmortizationResult, withSchedule bool) AmortizationResponse {
	resp := AmortizationResponse{
		Outcome:           string(r.Outcome),
		MonthsToClear:     r.MonthsToClear,
		TotalInterestPaid: r.TotalInterestPaid.StringFixed(2),
		BasePayment:       r.BasePayment.StringFixed(2),
		EffectivePayment:  r.EffectivePayment.StringFixed(2),
	}
	if r.Correction != nil {
		resp.Correction = &CorrectionResponse{
			RequestedPayment:   r.Correction.RequestedPayment.StringFixed(2),
			SubstitutedPayment: r.Correction.SubstitutedPayment.StringFixed(2),
		}
	}
	if withSchedule {
		resp.Schedule = make([]SchedulePointResponse, len(r.Schedule))
		for i, p := range r.Schedule {
			resp.Schedule[i] = SchedulePointResponse{
				MonthIndex:       p.MonthIndex,
				RemainingBalance: p.RemainingBalance.StringFixed(2),
			}
		}
	}
	return resp
}

func toComparisonResponse(c *domain.ScenarioComparison, withSchedule bool) ComparisonResponse {
	return ComparisonResponse{
		Baseline:      toAmortizationResponse(c.Baseline, withSchedule),
		WithOverpay:   toAmortizationResponse(c.WithOverpay, withSchedule),
		MonthsSaved:   c.MonthsSaved,
		InterestSaved: c.InterestSaved.StringFixed(2),
	}
}

func toSettingsResponse(s *domain.MortgageSettings) SettingsResponse {
	return SettingsResponse{
		Balance:           s.Balance.StringFixed(2),
		Rate:              s.Rate.String(),
		Years:             s.Years,
		Months:            s.Months,
		Overpay:           s.Overpay.StringFixed(2),
		HouseValue:        s.HouseValue.StringFixed(2),
		OriginalMortgage:  s.OriginalMortgage.StringFixed(2),
		FixedRateEndMonth: s.FixedRateEndMonth,
		FixedRateEndYear:  s.FixedRateEndYear,
		IsTracker:         s.IsTracker,
	}
}

func toPayoffResponse(t time.Time) PayoffResponse {
	return PayoffResponse{
		Date:  t.Format("2006-01-02"),
		Label: util.FormatMonthYear(t),
	}
}

func optionalFixed(d *decimal.Decimal, places int32) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(places)
	return &s
}

func toDashboardResponse(d *domain.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		Settings:       toSettingsResponse(d.Settings),
		Comparison:     toComparisonResponse(d.Comparison, false),
		TimeToClear:    d.TimeToClear,
		SavedTime:      d.SavedTime,
		BaselinePayoff: toPayoffResponse(d.BaselinePayoff),
		OverpayPayoff:  toPayoffResponse(d.OverpayPayoff),
		Headline:       d.Headline,
		LoanToValue:    optionalFixed(d.LoanToValue, 1),
		Rate:           RateResponse{IsTracker: d.Rate.IsTracker},
		PenaltyFree: PenaltyFreeResponse{
			PercentPerYear:   d.PenaltyFree.PercentPerYear.String(),
			MonthlyAllowance: d.PenaltyFree.MonthlyAllowance.StringFixed(2),
			WithinAllowance:  d.PenaltyFree.WithinAllowance,
		},
		Chart:    make([]ChartRowResponse, len(d.Chart)),
		Warnings: d.Warnings,
	}

	if d.Progress != nil {
		resp.Progress = &ProgressResponse{
			OriginalMortgage: d.Progress.OriginalMortgage.StringFixed(2),
			PaidOff:          d.Progress.PaidOff.StringFixed(2),
			Percent:          d.Progress.Percent.StringFixed(1),
		}
	}
	if d.Rate.FixedRateEnd != nil {
		date := d.Rate.FixedRateEnd.Format("2006-01-02")
		label := util.FormatMonthYear(*d.Rate.FixedRateEnd)
		resp.Rate.FixedRateEnd = &date
		resp.Rate.FixedEndLabel = &label
	}
	for i, row := range d.Chart {
		resp.Chart[i] = ChartRowResponse{
			MonthIndex: row.MonthIndex,
			Year:       row.Year,
			Current:    optionalFixed(row.Current, 2),
			Overpay:    optionalFixed(row.Overpay, 2),
		}
	}
	if resp.Warnings == nil {
		resp.Warnings = []domain.Warning{}
	}
	return resp
}
