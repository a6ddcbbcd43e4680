package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SettingsKey is the single key the settings record is stored under in every backend
const SettingsKey = "mortgageData"

// Settings limits
const (
	MaxAnnualRatePercent = 100
	MaxTermYears         = 50
)

var ErrSettingsNotFound = errors.New("mortgage settings not found")

// MortgageSettings is the flat record of everything the user entered.
// It is stored verbatim and overwritten wholesale on every edit.
type MortgageSettings struct {
	Balance           decimal.Decimal `json:"balance"`
	Rate              decimal.Decimal `json:"rate"`
	Years             int             `json:"years"`
	Months            int             `json:"months"`
	Overpay           decimal.Decimal `json:"overpay"`
	HouseValue        decimal.Decimal `json:"houseValue"`
	OriginalMortgage  decimal.Decimal `json:"originalMortgage"`
	FixedRateEndMonth int             `json:"fixedRateEndMonth,omitempty"`
	FixedRateEndYear  int             `json:"fixedRateEndYear,omitempty"`
	IsTracker         bool            `json:"isTracker"`
}

// TermMonths returns the remaining term in months
func (s *MortgageSettings) TermMonths() int {
	return s.Years*12 + s.Months
}

// Terms returns the loan terms the engine runs against
func (s *MortgageSettings) Terms() LoanTerms {
	return LoanTerms{
		Principal:         s.Balance,
		AnnualRatePercent: s.Rate,
		TermMonths:        s.TermMonths(),
	}
}

// Plan returns the terms together with the stored overpayment
func (s *MortgageSettings) Plan() PaymentPlan {
	return PaymentPlan{
		LoanTerms:           s.Terms(),
		ExtraMonthlyPayment: s.Overpay,
	}
}

// Validate checks every field and reports all problems at once
func (s *MortgageSettings) Validate() error {
	var errs ValidationErrors

	errs = append(errs, checkAmount("balance", s.Balance)...)
	if s.Rate.IsNegative() || s.Rate.GreaterThan(decimal.NewFromInt(MaxAnnualRatePercent)) {
		errs = append(errs, FieldError{Field: "rate", Message: fmt.Sprintf("Must be between 0 and %d", MaxAnnualRatePercent)})
	}
	if s.Years < 0 || s.Years > MaxTermYears {
		errs = append(errs, FieldError{Field: "years", Message: fmt.Sprintf("Must be between 0 and %d", MaxTermYears)})
	}
	if s.Months < 0 || s.Months > 11 {
		errs = append(errs, FieldError{Field: "months", Message: "Must be between 0 and 11"})
	}
	if s.Years >= 0 && s.Months >= 0 && s.TermMonths() <= 0 {
		errs = append(errs, FieldError{Field: "years", Message: "Term must be at least 1 month"})
	}
	errs = append(errs, checkAmount("overpay", s.Overpay)...)
	errs = append(errs, checkAmount("houseValue", s.HouseValue)...)
	errs = append(errs, checkAmount("originalMortgage", s.OriginalMortgage)...)
	if s.FixedRateEndMonth != 0 && (s.FixedRateEndMonth < 1 || s.FixedRateEndMonth > 12) {
		errs = append(errs, FieldError{Field: "fixedRateEndMonth", Message: "Must be between 1 and 12"})
	}
	if s.FixedRateEndYear < 0 {
		errs = append(errs, FieldError{Field: "fixedRateEndYear", Message: "Must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkAmount(field string, amount decimal.Decimal) []FieldError {
	switch {
	case amount.IsNegative():
		return []FieldError{{Field: field, Message: "Must not be negative"}}
	case amount.GreaterThan(decimal.NewFromInt(MaxAmount)):
		return []FieldError{{Field: field, Message: fmt.Sprintf("Must not exceed %d", int64(MaxAmount))}}
	}
	return nil
}

// FieldError is a single invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects field errors; it matches ErrInvalidInput with errors.Is
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return ErrInvalidInput
}

// SettingsRepository persists the single settings record
type SettingsRepository interface {
	// Load returns ErrSettingsNotFound when nothing has been saved yet
	Load(ctx context.Context) (*MortgageSettings, error)
	Save(ctx context.Context, settings *MortgageSettings) error
}
