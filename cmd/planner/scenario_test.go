package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	s, err := loadScenario(strings.NewReader(`
balance: "508000"
rate: 3.99
years: 28
overpay: 2628.04
fixedRateEnd:
  month: 3
  year: 2027
penaltyFreePercent: 10
`))
	require.NoError(t, err)

	settings, err := s.Settings()
	require.NoError(t, err)
	assert.True(t, settings.Balance.Equal(decimal.NewFromInt(508000)))
	assert.True(t, settings.Rate.Equal(decimal.RequireFromString("3.99")))
	assert.Equal(t, 336, settings.TermMonths())
	assert.True(t, settings.Overpay.Equal(decimal.RequireFromString("2628.04")))
	assert.Equal(t, 3, settings.FixedRateEndMonth)
	assert.Equal(t, 2027, settings.FixedRateEndYear)

	pct, err := s.PenaltyFree(decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, pct.Equal(decimal.NewFromInt(10)))
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"unknown key", "balance: 1000\ninterest: 4\n"},
		{"malformed", "balance: [1000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadScenario(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestScenario_Settings_Invalid(t *testing.T) {
	s := &Scenario{Balance: "lots", Years: 10}
	_, err := s.Settings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "balance: must be a number")
	assert.Contains(t, err.Error(), "rate: is required")

	s = &Scenario{Balance: "1000", Rate: "4", Years: 0, Months: 0}
	_, err = s.Settings()
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestScenario_PenaltyFree(t *testing.T) {
	fallback := decimal.NewFromInt(10)

	pct, err := (&Scenario{}).PenaltyFree(fallback)
	require.NoError(t, err)
	assert.True(t, pct.Equal(fallback))

	_, err = (&Scenario{PenaltyFreePercent: "120"}).PenaltyFree(fallback)
	assert.Error(t, err)
	_, err = (&Scenario{PenaltyFreePercent: "ten"}).PenaltyFree(fallback)
	assert.Error(t, err)
}

func TestRun_SampleScenario(t *testing.T) {
	now := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

	dashboard, err := run("testdata/plan.yaml", now)
	require.NoError(t, err)
	assert.Equal(t, 300, dashboard.Comparison.Baseline.MonthsToClear)
	assert.Equal(t, 259, dashboard.Comparison.WithOverpay.MonthsToClear)

	var out bytes.Buffer
	printSummary(&out, dashboard)
	assert.Contains(t, out.String(), "mortgage-free in 21 years and 7 months")
	assert.Contains(t, out.String(), "Loan to value: 50.0%")

	out.Reset()
	printSchedule(&out, dashboard.Chart)
	assert.Contains(t, out.String(), "200000.00")
	assert.Equal(t, len(dashboard.Chart)+2, strings.Count(out.String(), "\n"))
}
