package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warning codes shown as banners next to the plan
const (
	WarningPaymentCorrected = "payment_corrected"
	WarningDidNotConverge   = "did_not_converge"
	WarningAbovePenaltyFree = "above_penalty_free_allowance"
)

// YearsMonths is a duration expressed the way people read a mortgage term
type YearsMonths struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// NewYearsMonths splits a month count; negative counts become zero
func NewYearsMonths(months int) YearsMonths {
	if months < 0 {
		months = 0
	}
	return YearsMonths{Years: months / 12, Months: months % 12}
}

// TotalMonths returns the duration in months
func (y YearsMonths) TotalMonths() int {
	return y.Years*12 + y.Months
}

// MortgageProgress is how much of the original mortgage has been repaid
type MortgageProgress struct {
	OriginalMortgage decimal.Decimal `json:"originalMortgage"`
	PaidOff          decimal.Decimal `json:"paidOff"`
	Percent          decimal.Decimal `json:"percent"`
}

// RateInfo describes the current rate arrangement
type RateInfo struct {
	IsTracker    bool       `json:"isTracker"`
	FixedRateEnd *time.Time `json:"fixedRateEnd,omitempty"`
}

// PenaltyFreeAllowance is the monthly overpayment a lender typically accepts without charges.
// It is informational only and never limits the simulation.
type PenaltyFreeAllowance struct {
	PercentPerYear   decimal.Decimal `json:"percentPerYear"`
	MonthlyAllowance decimal.Decimal `json:"monthlyAllowance"`
	WithinAllowance  bool            `json:"withinAllowance"`
}

// ChartRow is one month of the balance chart; a nil balance means that scenario already ended
type ChartRow struct {
	MonthIndex int              `json:"monthIndex"`
	Year       int              `json:"year"`
	Current    *decimal.Decimal `json:"current"`
	Overpay    *decimal.Decimal `json:"overpay"`
}

// Warning is a user-facing notice about the plan
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Dashboard is everything the planner screen renders for the stored settings
type Dashboard struct {
	Settings       *MortgageSettings    `json:"settings"`
	Comparison     *ScenarioComparison  `json:"comparison"`
	TimeToClear    YearsMonths          `json:"timeToClear"`
	SavedTime      YearsMonths          `json:"savedTime"`
	BaselinePayoff time.Time            `json:"baselinePayoff"`
	OverpayPayoff  time.Time            `json:"overpayPayoff"`
	Headline       string               `json:"headline"`
	Progress       *MortgageProgress    `json:"progress,omitempty"`
	LoanToValue    *decimal.Decimal     `json:"loanToValue,omitempty"`
	Rate           RateInfo             `json:"rate"`
	PenaltyFree    PenaltyFreeAllowance `json:"penaltyFree"`
	Chart          []ChartRow           `json:"chart"`
	Warnings       []Warning            `json:"warnings"`
}
