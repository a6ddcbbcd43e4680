package service

import (
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// workingPlaces is the number of decimal places carried through rates, growth and balances.
// It keeps the fixed payment exact enough to clear a 100% APR loan over 1200 months.
const workingPlaces = 48

var (
	one          = decimal.NewFromInt(1)
	monthsInYear = decimal.NewFromInt(1200)

	// settledBalance is the residue below which a balance counts as cleared (half a penny)
	settledBalance = decimal.RequireFromString("0.005")

	// maxGrowth caps (1+r)^n; past it 1/(1+r)^n is below the working precision
	maxGrowth = decimal.New(1, workingPlaces)

	maxAmount = decimal.NewFromInt(domain.MaxAmount)
)

// ComputeFixedPayment returns the monthly payment that clears principal over termMonths
// at the given APR with no overpayment.
// Formula: P * r * g / (g - 1) where r = APR/100/12 and g = (1+r)^n; P / n when r is zero
func ComputeFixedPayment(principal, annualRatePercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	terms := domain.LoanTerms{Principal: principal, AnnualRatePercent: annualRatePercent, TermMonths: termMonths}
	if err := terms.Validate(); err != nil {
		return decimal.Zero, err
	}
	if principal.GreaterThan(maxAmount) {
		return decimal.Zero, domain.ErrNonFiniteResult
	}

	r := monthlyRate(annualRatePercent)
	if r.IsZero() {
		return principal.DivRound(decimal.NewFromInt(int64(termMonths)), workingPlaces), nil
	}

	g := growth(r, termMonths)
	return principal.Mul(r).Mul(g).DivRound(g.Sub(one), workingPlaces), nil
}

// SimulateSchedule pays the balance down month by month with a fixed payment.
//
// A payment that cannot cover the first month's interest is replaced once, up front, by
// interest + 1 so every month makes progress; the substitution is reported on the result.
// The run never exceeds safetyCeilingMonths. Hitting the ceiling with a balance left is
// reported as OutcomeDidNotConverge, not as an error.
func SimulateSchedule(principal, annualRatePercent, payment decimal.Decimal, safetyCeilingMonths int) (*domain.AmortizationResult, error) {
	if principal.IsNegative() {
		return nil, domain.ErrInvalidPrincipal
	}
	if annualRatePercent.IsNegative() {
		return nil, domain.ErrInvalidRate
	}
	if payment.IsNegative() {
		return nil, domain.ErrInvalidPayment
	}
	if safetyCeilingMonths < 1 || safetyCeilingMonths > domain.SafetyCeilingMonths {
		return nil, domain.ErrInvalidCeiling
	}
	if principal.GreaterThan(maxAmount) || payment.GreaterThan(maxAmount) {
		return nil, domain.ErrNonFiniteResult
	}

	r := monthlyRate(annualRatePercent)
	balance := principal
	pay := payment

	result := &domain.AmortizationResult{
		BasePayment:      payment,
		EffectivePayment: payment,
	}

	if firstInterest := interestOn(balance, r); r.IsPositive() && balance.IsPositive() && pay.LessThanOrEqual(firstInterest) {
		pay = firstInterest.Add(one)
		result.Correction = &domain.PaymentCorrection{
			RequestedPayment:   payment,
			SubstitutedPayment: pay,
		}
		result.EffectivePayment = pay

		log.Warn().
			Str("requested_payment", payment.StringFixed(2)).
			Str("substituted_payment", pay.StringFixed(2)).
			Str("first_month_interest", firstInterest.StringFixed(2)).
			Msg("Payment does not reduce the balance; using safety payment instead")
	}

	result.Schedule = make([]domain.SchedulePoint, 0, safetyCeilingMonths+1)
	result.Schedule = append(result.Schedule, domain.SchedulePoint{MonthIndex: 0, RemainingBalance: principal})

	totalInterest := decimal.Zero
	month := 0
	for balance.GreaterThan(settledBalance) && month < safetyCeilingMonths {
		interest := interestOn(balance, r)
		principalPaid := decimal.Max(decimal.Zero, pay.Sub(interest))
		balance = balance.Sub(principalPaid)
		totalInterest = totalInterest.Add(interest)
		month++

		if balance.LessThan(settledBalance) {
			balance = decimal.Zero
		}
		result.Schedule = append(result.Schedule, domain.SchedulePoint{
			MonthIndex:       month,
			RemainingBalance: balance.Round(2),
		})
	}

	result.MonthsToClear = month
	result.TotalInterestPaid = totalInterest.Round(0)
	result.Outcome = domain.OutcomeConverged
	if balance.GreaterThan(settledBalance) {
		result.Outcome = domain.OutcomeDidNotConverge
		log.Warn().
			Int("ceiling_months", safetyCeilingMonths).
			Str("remaining_balance", balance.StringFixed(2)).
			Msg("Schedule hit the safety ceiling before the balance cleared")
	}

	return result, nil
}

// Amortize runs one plan: the fixed payment for the terms plus the plan's overpayment
func Amortize(plan domain.PaymentPlan) (*domain.AmortizationResult, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	basePayment, err := ComputeFixedPayment(plan.Principal, plan.AnnualRatePercent, plan.TermMonths)
	if err != nil {
		return nil, err
	}

	result, err := SimulateSchedule(plan.Principal, plan.AnnualRatePercent, basePayment.Add(plan.ExtraMonthlyPayment), domain.SafetyCeilingMonths)
	if err != nil {
		return nil, err
	}
	result.BasePayment = basePayment
	return result, nil
}

// CompareScenarios runs the terms with and without the overpayment over the same nominal term
func CompareScenarios(terms domain.LoanTerms, extraOverpay decimal.Decimal) (*domain.ScenarioComparison, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	if extraOverpay.IsNegative() {
		return nil, domain.ErrInvalidOverpayment
	}

	baseline, err := Amortize(domain.PaymentPlan{LoanTerms: terms, ExtraMonthlyPayment: decimal.Zero})
	if err != nil {
		return nil, err
	}
	withOverpay, err := Amortize(domain.PaymentPlan{LoanTerms: terms, ExtraMonthlyPayment: extraOverpay})
	if err != nil {
		return nil, err
	}

	monthsSaved := baseline.MonthsToClear - withOverpay.MonthsToClear
	if monthsSaved < 0 {
		monthsSaved = 0
	}

	return &domain.ScenarioComparison{
		Baseline:      baseline,
		WithOverpay:   withOverpay,
		MonthsSaved:   monthsSaved,
		InterestSaved: decimal.Max(decimal.Zero, baseline.TotalInterestPaid.Sub(withOverpay.TotalInterestPaid)),
	}, nil
}

// OverpaymentForTargetTerm returns the extra monthly amount needed to clear the loan in
// targetTermMonths instead of currentTermMonths. Zero when the target is not shorter.
func OverpaymentForTargetTerm(principal, annualRatePercent decimal.Decimal, currentTermMonths, targetTermMonths int) (decimal.Decimal, error) {
	currentPayment, err := ComputeFixedPayment(principal, annualRatePercent, currentTermMonths)
	if err != nil {
		return decimal.Zero, err
	}
	if targetTermMonths >= currentTermMonths {
		return decimal.Zero, nil
	}

	targetPayment, err := ComputeFixedPayment(principal, annualRatePercent, targetTermMonths)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Max(decimal.Zero, targetPayment.Sub(currentPayment)), nil
}

// PenaltyFreeAllowance returns the monthly overpayment allowed penalty-free when a lender
// accepts percentPerYear of the balance each year. Negative inputs give zero.
func PenaltyFreeAllowance(balance, percentPerYear decimal.Decimal) decimal.Decimal {
	if balance.IsNegative() || percentPerYear.IsNegative() {
		return decimal.Zero
	}
	return balance.Mul(percentPerYear).Div(decimal.NewFromInt(100 * 12)).Round(2)
}

func monthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.DivRound(monthsInYear, workingPlaces)
}

func interestOn(balance, r decimal.Decimal) decimal.Decimal {
	return balance.Mul(r).Round(workingPlaces)
}

// growth returns (1+r)^n by repeated squaring, rounded to workingPlaces at each step
// and capped at maxGrowth.
func growth(r decimal.Decimal, n int) decimal.Decimal {
	base := one.Add(r)
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(workingPlaces)
			if result.GreaterThan(maxGrowth) {
				return maxGrowth
			}
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base).Round(workingPlaces)
			if base.GreaterThan(maxGrowth) {
				return maxGrowth
			}
		}
	}
	return result
}
