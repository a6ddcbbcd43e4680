package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SimulationRecorder receives every amortization run the service performs
type SimulationRecorder interface {
	ObserveSimulation(operation string, result *domain.AmortizationResult)
}

// SettingsProvider supplies the stored settings record
type SettingsProvider interface {
	Get() (*domain.MortgageSettings, error)
}

// PlanService runs the amortization engine for API requests and builds the dashboard view
type PlanService struct {
	settings           SettingsProvider
	recorder           SimulationRecorder
	penaltyFreePercent decimal.Decimal
	now                func() time.Time
}

// NewPlanService creates a new PlanService
func NewPlanService(settings SettingsProvider, penaltyFreePercent decimal.Decimal) *PlanService {
	return &PlanService{
		settings:           settings,
		penaltyFreePercent: penaltyFreePercent,
		now:                time.Now,
	}
}

// SetRecorder sets the metrics recorder
func (s *PlanService) SetRecorder(recorder SimulationRecorder) {
	s.recorder = recorder
}

func (s *PlanService) record(operation string, results ...*domain.AmortizationResult) {
	if s.recorder == nil {
		return
	}
	for _, r := range results {
		s.recorder.ObserveSimulation(operation, r)
	}
}

// SimulateInput holds the input for a schedule simulation with an explicit payment
type SimulateInput struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	Payment           decimal.Decimal
	// CeilingMonths defaults to domain.SafetyCeilingMonths when zero
	CeilingMonths int
}

// FixedPayment returns the payment that clears the terms exactly
func (s *PlanService) FixedPayment(terms domain.LoanTerms) (decimal.Decimal, error) {
	return ComputeFixedPayment(terms.Principal, terms.AnnualRatePercent, terms.TermMonths)
}

// Simulate pays the principal down with the given payment
func (s *PlanService) Simulate(input SimulateInput) (*domain.AmortizationResult, error) {
	ceiling := input.CeilingMonths
	if ceiling == 0 {
		ceiling = domain.SafetyCeilingMonths
	}

	result, err := SimulateSchedule(input.Principal, input.AnnualRatePercent, input.Payment, ceiling)
	if err != nil {
		if !domain.IsValidationError(err) {
			s.record("simulate", nil)
		}
		return nil, err
	}
	s.record("simulate", result)
	return result, nil
}

// Compare runs the terms with and without the overpayment
func (s *PlanService) Compare(terms domain.LoanTerms, extraOverpay decimal.Decimal) (*domain.ScenarioComparison, error) {
	comparison, err := CompareScenarios(terms, extraOverpay)
	if err != nil {
		return nil, err
	}
	s.record("compare", comparison.Baseline, comparison.WithOverpay)
	return comparison, nil
}

// TargetOverpayment returns the extra monthly payment needed to finish in targetTermMonths
func (s *PlanService) TargetOverpayment(terms domain.LoanTerms, targetTermMonths int) (decimal.Decimal, error) {
	if targetTermMonths <= 0 {
		return decimal.Zero, domain.ErrInvalidTerm
	}
	return OverpaymentForTargetTerm(terms.Principal, terms.AnnualRatePercent, terms.TermMonths, targetTermMonths)
}

// Dashboard builds the dashboard for the stored settings
func (s *PlanService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}

	dashboard, err := s.BuildDashboard(settings, s.now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to build dashboard")
		return nil, err
	}
	return dashboard, nil
}

// BuildDashboard derives the whole dashboard view from a settings record, relative to now
func (s *PlanService) BuildDashboard(settings *domain.MortgageSettings, now time.Time) (*domain.Dashboard, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	comparison, err := s.Compare(settings.Terms(), settings.Overpay)
	if err != nil {
		return nil, err
	}

	baselineMonths := comparison.Baseline.MonthsToClear
	overpayMonths := comparison.WithOverpay.MonthsToClear
	timeToClear := domain.NewYearsMonths(overpayMonths)
	savedTime := domain.NewYearsMonths(comparison.MonthsSaved)

	allowance := PenaltyFreeAllowance(settings.Balance, s.penaltyFreePercent)

	dashboard := &domain.Dashboard{
		Settings:       settings,
		Comparison:     comparison,
		TimeToClear:    timeToClear,
		SavedTime:      savedTime,
		BaselinePayoff: util.AddMonths(now, baselineMonths),
		OverpayPayoff:  util.AddMonths(now, overpayMonths),
		Headline:       headline(timeToClear, savedTime),
		Progress:       mortgageProgress(settings.OriginalMortgage, settings.Balance),
		LoanToValue:    loanToValue(settings.Balance, settings.HouseValue),
		Rate:           rateInfo(settings),
		PenaltyFree: domain.PenaltyFreeAllowance{
			PercentPerYear:   s.penaltyFreePercent,
			MonthlyAllowance: allowance,
			WithinAllowance:  settings.Overpay.LessThanOrEqual(allowance),
		},
		Chart:    buildChart(comparison.Baseline.Schedule, comparison.WithOverpay.Schedule),
		Warnings: []domain.Warning{},
	}

	for _, result := range []*domain.AmortizationResult{comparison.Baseline, comparison.WithOverpay} {
		if result.WasCorrected() {
			dashboard.Warnings = append(dashboard.Warnings, domain.Warning{
				Code: domain.WarningPaymentCorrected,
				Message: fmt.Sprintf("A payment of %s does not cover the monthly interest; %s was used instead.",
					result.Correction.RequestedPayment.StringFixed(2), result.Correction.SubstitutedPayment.StringFixed(2)),
			})
			break
		}
	}
	for _, result := range []*domain.AmortizationResult{comparison.Baseline, comparison.WithOverpay} {
		if !result.Converged() {
			dashboard.Warnings = append(dashboard.Warnings, domain.Warning{
				Code:    domain.WarningDidNotConverge,
				Message: fmt.Sprintf("The balance is not cleared within %d years at this payment.", domain.SafetyCeilingMonths/12),
			})
			break
		}
	}
	if !dashboard.PenaltyFree.WithinAllowance {
		dashboard.Warnings = append(dashboard.Warnings, domain.Warning{
			Code: domain.WarningAbovePenaltyFree,
			Message: fmt.Sprintf("Overpaying %s a month is above the usual penalty-free allowance of %s; check your lender's terms.",
				settings.Overpay.StringFixed(2), allowance.StringFixed(2)),
		})
	}

	return dashboard, nil
}

func headline(timeToClear, saved domain.YearsMonths) string {
	text := fmt.Sprintf("Based on your new plan, you'll be mortgage-free in %s!",
		util.FormatYearsMonths(timeToClear.Years, timeToClear.Months))
	if saved.TotalMonths() > 0 {
		text += fmt.Sprintf(" That's %s earlier than your current plan!",
			util.FormatYearsMonths(saved.Years, saved.Months))
	}
	return text
}

// mortgageProgress is nil when the original mortgage amount is unknown
func mortgageProgress(original, balance decimal.Decimal) *domain.MortgageProgress {
	if !original.IsPositive() {
		return nil
	}
	paidOff := decimal.Max(decimal.Zero, original.Sub(balance))
	percent := decimal.Min(decimal.NewFromInt(100), paidOff.Div(original).Mul(decimal.NewFromInt(100)))
	return &domain.MortgageProgress{
		OriginalMortgage: original,
		PaidOff:          paidOff.Round(2),
		Percent:          percent.Round(1),
	}
}

// loanToValue is a percentage to one decimal place, nil when the house value is unknown
func loanToValue(balance, houseValue decimal.Decimal) *decimal.Decimal {
	if !houseValue.IsPositive() {
		return nil
	}
	ltv := balance.Div(houseValue).Mul(decimal.NewFromInt(100)).Round(1)
	return &ltv
}

func rateInfo(settings *domain.MortgageSettings) domain.RateInfo {
	if settings.IsTracker {
		return domain.RateInfo{IsTracker: true}
	}
	return domain.RateInfo{FixedRateEnd: util.FirstOfMonth(settings.FixedRateEndYear, settings.FixedRateEndMonth)}
}

// buildChart merges both schedules month by month; the shorter one is padded with nils
func buildChart(baseline, overpay []domain.SchedulePoint) []domain.ChartRow {
	n := len(baseline)
	if len(overpay) > n {
		n = len(overpay)
	}

	rows := make([]domain.ChartRow, n)
	for i := 0; i < n; i++ {
		rows[i] = domain.ChartRow{MonthIndex: i, Year: i / 12}
		if i < len(baseline) {
			balance := baseline[i].RemainingBalance
			rows[i].Current = &balance
		}
		if i < len(overpay) {
			balance := overpay[i].RemainingBalance
			rows[i].Overpay = &balance
		}
	}
	return rows
}
