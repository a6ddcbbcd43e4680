package domain

import (
	"github.com/shopspring/decimal"
)

const (
	// SafetyCeilingMonths is the hard upper bound on simulated months (100 years)
	SafetyCeilingMonths = 1200

	// MaxAmount is the largest money amount the engine accepts (one trillion)
	MaxAmount = 1_000_000_000_000

	// DefaultPenaltyFreePercent is the yearly share of the balance most lenders accept as overpayment
	DefaultPenaltyFreePercent = 10
)

// Outcome tags how a simulation finished
type Outcome string

const (
	OutcomeConverged      Outcome = "converged"
	OutcomeDidNotConverge Outcome = "did_not_converge"
)

// LoanTerms describes the loan a calculation runs against
type LoanTerms struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent"`
	TermMonths        int             `json:"termMonths"`
}

// Validate checks the terms are usable by the engine
func (t LoanTerms) Validate() error {
	if t.Principal.IsNegative() {
		return ErrInvalidPrincipal
	}
	if t.AnnualRatePercent.IsNegative() {
		return ErrInvalidRate
	}
	if t.TermMonths <= 0 {
		return ErrInvalidTerm
	}
	return nil
}

// PaymentPlan is a single amortization run: the loan plus a fixed monthly overpayment
type PaymentPlan struct {
	LoanTerms
	ExtraMonthlyPayment decimal.Decimal `json:"extraMonthlyPayment"`
}

// Validate checks the terms and the overpayment
func (p PaymentPlan) Validate() error {
	if err := p.LoanTerms.Validate(); err != nil {
		return err
	}
	if p.ExtraMonthlyPayment.IsNegative() {
		return ErrInvalidOverpayment
	}
	return nil
}

// SchedulePoint is the balance left after a given month; month 0 is the starting balance
type SchedulePoint struct {
	MonthIndex       int             `json:"monthIndex"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// PaymentCorrection records the payment substituted when the requested one could not cover interest
type PaymentCorrection struct {
	RequestedPayment   decimal.Decimal `json:"requestedPayment"`
	SubstitutedPayment decimal.Decimal `json:"substitutedPayment"`
}

// AmortizationResult is the outcome of one simulated payoff
type AmortizationResult struct {
	Outcome           Outcome            `json:"outcome"`
	MonthsToClear     int                `json:"monthsToClear"`
	TotalInterestPaid decimal.Decimal    `json:"totalInterestPaid"`
	BasePayment       decimal.Decimal    `json:"basePayment"`
	EffectivePayment  decimal.Decimal    `json:"effectivePayment"`
	Correction        *PaymentCorrection `json:"correction,omitempty"`
	Schedule          []SchedulePoint    `json:"schedule"`
}

// Converged returns true if the balance reached zero before the safety ceiling
func (r *AmortizationResult) Converged() bool {
	return r.Outcome == OutcomeConverged
}

// WasCorrected returns true if the engine substituted a payment to guarantee progress
func (r *AmortizationResult) WasCorrected() bool {
	return r.Correction != nil
}

// ScenarioComparison contrasts the plain schedule with one that includes an overpayment
type ScenarioComparison struct {
	Baseline      *AmortizationResult `json:"baseline"`
	WithOverpay   *AmortizationResult `json:"withOverpay"`
	MonthsSaved   int                 `json:"monthsSaved"`
	InterestSaved decimal.Decimal     `json:"interestSaved"`
}
