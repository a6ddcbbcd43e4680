package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Scenario is a mortgage described in a YAML file. Money fields are read as
// text so amounts keep their exact decimal value.
type Scenario struct {
	Name               string       `yaml:"name"`
	Balance            string       `yaml:"balance"`
	Rate               string       `yaml:"rate"`
	Years              int          `yaml:"years"`
	Months             int          `yaml:"months"`
	Overpay            string       `yaml:"overpay"`
	HouseValue         string       `yaml:"houseValue"`
	OriginalMortgage   string       `yaml:"originalMortgage"`
	FixedRateEnd       FixedRateEnd `yaml:"fixedRateEnd"`
	IsTracker          bool         `yaml:"isTracker"`
	PenaltyFreePercent string       `yaml:"penaltyFreePercent"`
}

// FixedRateEnd is the month the fixed-rate deal ends
type FixedRateEnd struct {
	Month int `yaml:"month"`
	Year  int `yaml:"year"`
}

// loadScenario decodes a scenario, rejecting unknown keys
func loadScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("scenario file is empty")
		}
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return &s, nil
}

// Settings converts the scenario to a validated settings record
func (s *Scenario) Settings() (*domain.MortgageSettings, error) {
	var errs []string
	money := func(field, value string, required bool) decimal.Decimal {
		value = strings.TrimSpace(value)
		if value == "" {
			if required {
				errs = append(errs, field+": is required")
			}
			return decimal.Zero
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			errs = append(errs, field+": must be a number")
			return decimal.Zero
		}
		return d
	}

	settings := &domain.MortgageSettings{
		Balance:           money("balance", s.Balance, true),
		Rate:              money("rate", s.Rate, true),
		Years:             s.Years,
		Months:            s.Months,
		Overpay:           money("overpay", s.Overpay, false),
		HouseValue:        money("houseValue", s.HouseValue, false),
		OriginalMortgage:  money("originalMortgage", s.OriginalMortgage, false),
		FixedRateEndMonth: s.FixedRateEnd.Month,
		FixedRateEndYear:  s.FixedRateEnd.Year,
		IsTracker:         s.IsTracker,
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid scenario: %s", strings.Join(errs, "; "))
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// PenaltyFree returns the scenario's yearly penalty-free percentage, or fallback when unset
func (s *Scenario) PenaltyFree(fallback decimal.Decimal) (decimal.Decimal, error) {
	value := strings.TrimSpace(s.PenaltyFreePercent)
	if value == "" {
		return fallback, nil
	}
	pct, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("penaltyFreePercent must be a number: %w", err)
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, fmt.Errorf("penaltyFreePercent must be between 0 and 100")
	}
	return pct, nil
}
