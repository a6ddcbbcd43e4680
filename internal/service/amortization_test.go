package service

import (
	"fmt"
	"testing"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertScheduleNonIncreasing(t *testing.T, schedule []domain.SchedulePoint) {
	t.Helper()
	for i := 1; i < len(schedule); i++ {
		assert.Equal(t, i, schedule[i].MonthIndex)
		assert.False(t, schedule[i].RemainingBalance.IsNegative(), "month %d balance negative", i)
		assert.True(t, schedule[i].RemainingBalance.LessThanOrEqual(schedule[i-1].RemainingBalance),
			"balance increased at month %d: %s -> %s", i, schedule[i-1].RemainingBalance, schedule[i].RemainingBalance)
	}
}

func TestComputeFixedPayment_AcceptanceNumbers(t *testing.T) {
	// £508,000 at 3.99% over the remaining 28 years, and over a 10 year target
	baseline, err := ComputeFixedPayment(d("508000"), d("3.99"), 28*12)
	require.NoError(t, err)
	assert.Equal(t, "2513", baseline.Round(0).String())

	target, err := ComputeFixedPayment(d("508000"), d("3.99"), 10*12)
	require.NoError(t, err)
	assert.Equal(t, "5141", target.Round(0).String())
}

func TestComputeFixedPayment_StandardMortgage(t *testing.T) {
	// £200k @ 4% for 25 years
	payment, err := ComputeFixedPayment(d("200000"), d("4"), 300)
	require.NoError(t, err)
	assert.Equal(t, "1055.67", payment.StringFixed(2))
}

func TestComputeFixedPayment_ZeroRate(t *testing.T) {
	payment, err := ComputeFixedPayment(d("120000"), decimal.Zero, 240)
	require.NoError(t, err)
	assert.True(t, payment.Equal(d("500")), "expected 500, got %s", payment)
}

func TestComputeFixedPayment_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		months    int
		wantErr   error
	}{
		{"zero term", d("100000"), d("4"), 0, domain.ErrInvalidTerm},
		{"negative term", d("100000"), d("4"), -12, domain.ErrInvalidTerm},
		{"zero term at zero rate", d("100000"), decimal.Zero, 0, domain.ErrInvalidTerm},
		{"negative principal", d("-1"), d("4"), 12, domain.ErrInvalidPrincipal},
		{"negative rate", d("100000"), d("-0.5"), 12, domain.ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := ComputeFixedPayment(tt.principal, tt.rate, tt.months)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, payment.IsZero())
		})
	}
}

func TestSimulateSchedule_FixedPaymentClearsWithinTerm(t *testing.T) {
	tests := []struct {
		principal string
		rate      string
		months    int
	}{
		{"508000", "3.99", 336},
		{"508000", "3.99", 120},
		{"200000", "4", 300},
		{"150000", "0", 180},
		{"1000", "12.5", 12},
		{"75000", "7.25", 1},
		{"350000", "15", 480},
		{"200000", "0", 7},
	}

	for _, tt := range tests {
		t.Run(tt.principal+"@"+tt.rate, func(t *testing.T) {
			payment, err := ComputeFixedPayment(d(tt.principal), d(tt.rate), tt.months)
			require.NoError(t, err)
			assert.False(t, payment.IsNegative())

			result, err := SimulateSchedule(d(tt.principal), d(tt.rate), payment, domain.SafetyCeilingMonths)
			require.NoError(t, err)

			assert.True(t, result.Converged())
			assert.Nil(t, result.Correction)
			assert.InDelta(t, tt.months, result.MonthsToClear, 1)
			assert.Len(t, result.Schedule, result.MonthsToClear+1)
			assert.True(t, result.Schedule[0].RemainingBalance.Equal(d(tt.principal)))
			assert.True(t, result.Schedule[len(result.Schedule)-1].RemainingBalance.IsZero())
			assert.False(t, result.TotalInterestPaid.IsNegative())
			assertScheduleNonIncreasing(t, result.Schedule)
		})
	}
}

func TestAmortize_HighRateLongTermClearsWithinTerm(t *testing.T) {
	tests := []struct {
		rate   string
		months int
	}{
		{"80", 480},
		{"80", 600},
		{"90", 480},
		{"90", 600},
		{"99", 480},
		{"99", 600},
		{"100", 480},
		{"100", 600},
		{"100", 1200},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s%%/%d", tt.rate, tt.months), func(t *testing.T) {
			result, err := Amortize(domain.PaymentPlan{LoanTerms: domain.LoanTerms{
				Principal: d("200000"), AnnualRatePercent: d(tt.rate), TermMonths: tt.months,
			}})
			require.NoError(t, err)

			// payment > P * rate / 1200, compared without dividing
			assert.True(t, result.BasePayment.Mul(d("1200")).GreaterThan(d("200000").Mul(d(tt.rate))),
				"payment %s should exceed the first month's interest", result.BasePayment)
			assert.Nil(t, result.Correction)
			assert.True(t, result.Converged())
			assert.InDelta(t, tt.months, result.MonthsToClear, 1)
			assert.True(t, result.Schedule[len(result.Schedule)-1].RemainingBalance.IsZero())
			assertScheduleNonIncreasing(t, result.Schedule)
		})
	}
}

func TestComputeFixedPayment_AmountTooLarge(t *testing.T) {
	_, err := ComputeFixedPayment(d("1e400"), d("4"), 300)
	assert.ErrorIs(t, err, domain.ErrNonFiniteResult)

	_, err = SimulateSchedule(d("1000"), d("4"), d("1e400"), domain.SafetyCeilingMonths)
	assert.ErrorIs(t, err, domain.ErrNonFiniteResult)
}

func TestSimulateSchedule_ShorterTermPaysLessInterest(t *testing.T) {
	long, err := Amortize(domain.PaymentPlan{LoanTerms: domain.LoanTerms{Principal: d("508000"), AnnualRatePercent: d("3.99"), TermMonths: 336}})
	require.NoError(t, err)
	short, err := Amortize(domain.PaymentPlan{LoanTerms: domain.LoanTerms{Principal: d("508000"), AnnualRatePercent: d("3.99"), TermMonths: 120}})
	require.NoError(t, err)

	assert.True(t, short.TotalInterestPaid.LessThan(long.TotalInterestPaid),
		"10 year interest %s should be below 28 year interest %s", short.TotalInterestPaid, long.TotalInterestPaid)
}

func TestSimulateSchedule_ZeroRateHasNoInterest(t *testing.T) {
	result, err := Amortize(domain.PaymentPlan{LoanTerms: domain.LoanTerms{Principal: d("120000"), AnnualRatePercent: decimal.Zero, TermMonths: 240}})
	require.NoError(t, err)

	assert.True(t, result.BasePayment.Equal(d("500")))
	assert.True(t, result.TotalInterestPaid.IsZero())
	assert.Equal(t, 240, result.MonthsToClear)
}

func TestSimulateSchedule_NonReducingPaymentIsCorrected(t *testing.T) {
	// 99% APR: the first month's interest on £1,000 is £82.50, so a zero payment can never clear it
	result, err := SimulateSchedule(d("1000"), d("99"), decimal.Zero, domain.SafetyCeilingMonths)
	require.NoError(t, err)

	require.NotNil(t, result.Correction)
	assert.True(t, result.Correction.RequestedPayment.IsZero())
	assert.Equal(t, "83.50", result.Correction.SubstitutedPayment.StringFixed(2))
	assert.True(t, result.EffectivePayment.Equal(result.Correction.SubstitutedPayment))
	assert.True(t, result.BasePayment.IsZero())

	assert.True(t, result.Converged())
	assert.Less(t, result.MonthsToClear, domain.SafetyCeilingMonths)
	assertScheduleNonIncreasing(t, result.Schedule)
}

func TestSimulateSchedule_PaymentEqualToInterestIsCorrected(t *testing.T) {
	// 12% APR on £10,000 is exactly £100 interest a month
	result, err := SimulateSchedule(d("10000"), d("12"), d("100"), domain.SafetyCeilingMonths)
	require.NoError(t, err)

	require.NotNil(t, result.Correction)
	assert.Equal(t, "101.00", result.EffectivePayment.StringFixed(2))
	assert.True(t, result.Converged())
}

func TestSimulateSchedule_SafetyCeilingReported(t *testing.T) {
	// The corrected payment on £200k at 5% still needs well over 100 years
	result, err := SimulateSchedule(d("200000"), d("5"), decimal.Zero, domain.SafetyCeilingMonths)
	require.NoError(t, err)

	assert.NotNil(t, result.Correction)
	assert.Equal(t, domain.OutcomeDidNotConverge, result.Outcome)
	assert.False(t, result.Converged())
	assert.Equal(t, domain.SafetyCeilingMonths, result.MonthsToClear)
	assert.Len(t, result.Schedule, domain.SafetyCeilingMonths+1)
	assert.True(t, result.Schedule[len(result.Schedule)-1].RemainingBalance.IsPositive())
}

func TestSimulateSchedule_CustomCeiling(t *testing.T) {
	result, err := SimulateSchedule(d("100000"), d("5"), d("500"), 12)
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeDidNotConverge, result.Outcome)
	assert.Equal(t, 12, result.MonthsToClear)
	assert.Len(t, result.Schedule, 13)
	assert.Nil(t, result.Correction)
}

func TestSimulateSchedule_ZeroPrincipal(t *testing.T) {
	result, err := SimulateSchedule(decimal.Zero, d("5"), decimal.Zero, domain.SafetyCeilingMonths)
	require.NoError(t, err)

	assert.True(t, result.Converged())
	assert.Equal(t, 0, result.MonthsToClear)
	assert.Nil(t, result.Correction)
	assert.Len(t, result.Schedule, 1)
	assert.True(t, result.TotalInterestPaid.IsZero())
}

func TestSimulateSchedule_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		payment   decimal.Decimal
		ceiling   int
		wantErr   error
	}{
		{"negative principal", d("-100"), d("4"), d("10"), 1200, domain.ErrInvalidPrincipal},
		{"negative rate", d("100"), d("-4"), d("10"), 1200, domain.ErrInvalidRate},
		{"negative payment", d("100"), d("4"), d("-10"), 1200, domain.ErrInvalidPayment},
		{"zero ceiling", d("100"), d("4"), d("10"), 0, domain.ErrInvalidCeiling},
		{"ceiling above 100 years", d("100"), d("4"), d("10"), 1201, domain.ErrInvalidCeiling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SimulateSchedule(tt.principal, tt.rate, tt.payment, tt.ceiling)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}
}

func TestAmortize_OverpaymentMonotonicity(t *testing.T) {
	terms := domain.LoanTerms{Principal: d("250000"), AnnualRatePercent: d("4.5"), TermMonths: 300}
	extras := []string{"0", "10", "50", "100", "250", "500", "1000", "5000", "250000"}

	var prev *domain.AmortizationResult
	for _, extra := range extras {
		result, err := Amortize(domain.PaymentPlan{LoanTerms: terms, ExtraMonthlyPayment: d(extra)})
		require.NoError(t, err)
		require.True(t, result.Converged())
		assert.True(t, result.EffectivePayment.Equal(result.BasePayment.Add(d(extra))))

		if prev != nil {
			assert.LessOrEqual(t, result.MonthsToClear, prev.MonthsToClear, "extra %s", extra)
			assert.True(t, result.TotalInterestPaid.LessThanOrEqual(prev.TotalInterestPaid), "extra %s", extra)
		}
		prev = result
	}
}

func TestAmortize_NegativeOverpayment(t *testing.T) {
	_, err := Amortize(domain.PaymentPlan{
		LoanTerms:           domain.LoanTerms{Principal: d("100000"), AnnualRatePercent: d("4"), TermMonths: 120},
		ExtraMonthlyPayment: d("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOverpayment)
}

func TestCompareScenarios_OverpaymentSaves(t *testing.T) {
	// £200k @ 4% for 25 years with £100/month extra
	terms := domain.LoanTerms{Principal: d("200000"), AnnualRatePercent: d("4"), TermMonths: 300}

	comparison, err := CompareScenarios(terms, d("100"))
	require.NoError(t, err)

	assert.Greater(t, comparison.MonthsSaved, 0)
	assert.True(t, comparison.InterestSaved.IsPositive())
	assert.Equal(t, comparison.Baseline.MonthsToClear-comparison.WithOverpay.MonthsToClear, comparison.MonthsSaved)
	assert.True(t, comparison.InterestSaved.Equal(comparison.Baseline.TotalInterestPaid.Sub(comparison.WithOverpay.TotalInterestPaid)))
	assert.True(t, comparison.Baseline.BasePayment.Equal(comparison.WithOverpay.BasePayment))
}

func TestCompareScenarios_ZeroOverpaymentSavesNothing(t *testing.T) {
	terms := domain.LoanTerms{Principal: d("200000"), AnnualRatePercent: d("4"), TermMonths: 300}

	comparison, err := CompareScenarios(terms, decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, 0, comparison.MonthsSaved)
	assert.True(t, comparison.InterestSaved.IsZero())
}

func TestCompareScenarios_Idempotent(t *testing.T) {
	terms := domain.LoanTerms{Principal: d("508000"), AnnualRatePercent: d("3.99"), TermMonths: 336}

	first, err := CompareScenarios(terms, d("250"))
	require.NoError(t, err)
	second, err := CompareScenarios(terms, d("250"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompareScenarios_InvalidInput(t *testing.T) {
	_, err := CompareScenarios(domain.LoanTerms{Principal: d("1000"), AnnualRatePercent: d("4"), TermMonths: 0}, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)

	_, err = CompareScenarios(domain.LoanTerms{Principal: d("1000"), AnnualRatePercent: d("4"), TermMonths: 12}, d("-5"))
	assert.ErrorIs(t, err, domain.ErrInvalidOverpayment)
}

func TestOverpaymentForTargetTerm(t *testing.T) {
	overpay, err := OverpaymentForTargetTerm(d("508000"), d("3.99"), 336, 120)
	require.NoError(t, err)
	assert.InDelta(t, 2628, overpay.InexactFloat64(), 1)

	result, err := Amortize(domain.PaymentPlan{
		LoanTerms:           domain.LoanTerms{Principal: d("508000"), AnnualRatePercent: d("3.99"), TermMonths: 336},
		ExtraMonthlyPayment: overpay,
	})
	require.NoError(t, err)
	assert.InDelta(t, 120, result.MonthsToClear, 1)
}

func TestOverpaymentForTargetTerm_TargetNotShorter(t *testing.T) {
	overpay, err := OverpaymentForTargetTerm(d("200000"), d("4"), 300, 300)
	require.NoError(t, err)
	assert.True(t, overpay.IsZero())

	overpay, err = OverpaymentForTargetTerm(d("200000"), d("4"), 300, 360)
	require.NoError(t, err)
	assert.True(t, overpay.IsZero())
}

func TestOverpaymentForTargetTerm_InvalidTarget(t *testing.T) {
	_, err := OverpaymentForTargetTerm(d("200000"), d("4"), 300, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)
}

func TestPenaltyFreeAllowance(t *testing.T) {
	assert.Equal(t, "1000.00", PenaltyFreeAllowance(d("120000"), d("10")).StringFixed(2))
	assert.Equal(t, "4233.33", PenaltyFreeAllowance(d("508000"), d("10")).StringFixed(2))
	assert.True(t, PenaltyFreeAllowance(d("-1"), d("10")).IsZero())
	assert.True(t, PenaltyFreeAllowance(d("1000"), decimal.Zero).IsZero())
}
